package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/launchbynttdata/launch-extended-version/internal/config"
	"github.com/launchbynttdata/launch-extended-version/internal/render"
	"github.com/launchbynttdata/launch-extended-version/internal/version"
	"github.com/launchbynttdata/launch-extended-version/metadata"
)

var stampedEntries = metadata.Entries{
	metadata.TagExtendedVersion:          {"0.1.2-rev3.4"},
	metadata.TagExtendedVersionAttribute: {"1.0", "+build5"},
	metadata.TagSemVer:                   {"v2.3.4-rc.1+linux"},
	metadata.TagBuildTime:                {"2025-01-02T03:04:05Z"},
}

func testDeps(entries metadata.Entries, env map[string]string) deps {
	table := metadata.NewTable(entries)
	return deps{
		table:  func() metadata.Table { return table },
		build:  func() version.Info { return version.FromTable(table) },
		lookup: fakeEnv(env),
	}
}

func fakeEnv(values map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func runCommand(t *testing.T, d deps, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand(d)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestShowText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default tag", args: []string{"show"}, want: "0.1.2-rev3.4\n"},
		{name: "segments", args: []string{"show", "--segments"}, want: "0\n1\n2\nrev3\n4\n"},
		{name: "index", args: []string{"show", "--index=3"}, want: "rev3\n"},
		{name: "first index", args: []string{"show", "--index=0"}, want: "0\n"},
		{name: "attribute fragments", args: []string{"show", "--tag", "extendedversionattribute"}, want: "1.0+build5\n"},
		{name: "semver", args: []string{"show", "-t", "SemVer", "--semver"}, want: "2.3.4-rc.1+linux\n"},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCommand(t, testDeps(stampedEntries, nil), tc.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if stdout != tc.want {
				t.Fatalf("want %q got %q", tc.want, stdout)
			}
		})
	}
}

func TestShowSegmentsJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, testDeps(stampedEntries, nil), "show", "--segments", "-o", "json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var view render.Record
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"0", "1", "2", "rev3", "4"}, view.Segments); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	if view.Tag != "ExtendedVersion" {
		t.Fatalf("unexpected tag: %s", view.Tag)
	}
}

func TestShowSemverYAMLFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{envTag: "SemVer", envSemver: "true", envOutput: "yaml"}
	stdout, _, err := runCommand(t, testDeps(stampedEntries, env), "show")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var view render.Semver
	if err := yaml.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := render.Semver{
		Tag:        "SemVer",
		Version:    "2.3.4-rc.1+linux",
		Major:      2,
		Minor:      3,
		Patch:      4,
		Prerelease: []string{"rc", "1"},
		Build:      []string{"linux"},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("semver mismatch (-want +got):\n%s", diff)
	}
}

func TestShowErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{name: "absent tag", args: []string{"show", "--tag", "Revision"}, target: ErrNotEmbedded},
		{name: "index past end", args: []string{"show", "--index=5"}, target: metadata.ErrSegmentOutOfRange},
		{name: "negative index", args: []string{"show", "--index=-2"}, target: metadata.ErrSegmentOutOfRange},
		{name: "negative one index", args: []string{"show", "--index=-1"}, target: metadata.ErrSegmentOutOfRange},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCommand(t, testDeps(stampedEntries, nil), tc.args...)
			if !errors.Is(err, tc.target) {
				t.Fatalf("want %v got %v", tc.target, err)
			}
			if stdout != "" {
				t.Fatalf("expected no output, got %q", stdout)
			}
		})
	}
}

func TestShowIndexFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		index   string
		want    string
		wantErr error
	}{
		{name: "in range", index: "3", want: "rev3\n"},
		{name: "negative one", index: "-1", wantErr: metadata.ErrSegmentOutOfRange},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := map[string]string{envSegmentIndex: tc.index}
			stdout, _, err := runCommand(t, testDeps(stampedEntries, env), "show")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if stdout != tc.want {
				t.Fatalf("want %q got %q", tc.want, stdout)
			}
		})
	}
}

func TestShowRejectsSemverWithIndex(t *testing.T) {
	t.Parallel()

	if _, _, err := runCommand(t, testDeps(stampedEntries, nil), "show", "--semver", "--index=0"); err == nil {
		t.Fatalf("expected error combining --semver and --index")
	}
}

func TestShowAbsentTagLogsWarning(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCommand(t, testDeps(nil, nil), "show")
	if !errors.Is(err, ErrNotEmbedded) {
		t.Fatalf("expected ErrNotEmbedded, got %v", err)
	}
	if !strings.Contains(stderr, "metadata tag not embedded") {
		t.Fatalf("expected warning in log output, got %q", stderr)
	}
}

func TestShowRejectsSemverWithSegments(t *testing.T) {
	t.Parallel()

	if _, _, err := runCommand(t, testDeps(stampedEntries, nil), "show", "--semver", "--segments"); err == nil {
		t.Fatalf("expected error combining --semver and --segments")
	}
}

func TestShowSemverInvalid(t *testing.T) {
	t.Parallel()

	entries := metadata.Entries{metadata.TagExtendedVersion: {"not.a.version"}}
	if _, _, err := runCommand(t, testDeps(entries, nil), "show", "--semver"); err == nil {
		t.Fatalf("expected semver parse error")
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, testDeps(stampedEntries, nil), "list")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 rows, got %q", stdout)
	}
	if !strings.HasPrefix(lines[1], "ExtendedVersion ") {
		t.Fatalf("expected ExtendedVersion first, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "1.0+build5") {
		t.Fatalf("expected attribute second, got %q", lines[2])
	}
}

func TestListEmptyWarns(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runCommand(t, testDeps(nil, nil), "list", "-o", "json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "no metadata embedded") {
		t.Fatalf("expected warning, got %q", stderr)
	}
	var view render.List
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(view.Records))
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "single fragment", args: []string{"split", "1.2.3"}, want: "1\n2\n3\n"},
		{name: "fragments concatenated", args: []string{"split", "1.0", "+build5"}, want: "1\n0\nbuild5\n"},
		{name: "empty segment kept", args: []string{"split", "1..2"}, want: "1\n\n2\n"},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCommand(t, testDeps(nil, nil), tc.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if stdout != tc.want {
				t.Fatalf("want %q got %q", tc.want, stdout)
			}
		})
	}
}

func TestSplitRequiresFragment(t *testing.T) {
	t.Parallel()

	if _, _, err := runCommand(t, testDeps(nil, nil), "split"); err == nil {
		t.Fatalf("expected error without fragments")
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, testDeps(stampedEntries, nil), "version")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout != "xver 0.1.2-rev3.4\nbuild date: 2025-01-02T03:04:05Z\n" {
		t.Fatalf("unexpected version output: %q", stdout)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	t.Parallel()

	if _, _, err := runCommand(t, testDeps(stampedEntries, nil), "show", "-o", "xml"); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestEnvOutputWinsAndLogsConflict(t *testing.T) {
	t.Parallel()

	env := map[string]string{envOutput: "json"}
	stdout, stderr, err := runCommand(t, testDeps(stampedEntries, env), "version", "-o", "yaml")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var view render.Build
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("expected json output, got %q: %v", stdout, err)
	}
	if view.Name != "xver" {
		t.Fatalf("unexpected name: %s", view.Name)
	}
	if !strings.Contains(stderr, "config: conflict for output") {
		t.Fatalf("expected conflict warning, got %q", stderr)
	}
}
