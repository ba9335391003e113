package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/launchbynttdata/launch-extended-version/metadata"
)

// Format selects how command results are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value into a Format. Empty means text.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q", value)
	}
}

// Texter is implemented by every view; it renders the plain text form.
type Texter interface {
	WriteText(w io.Writer) error
}

// Write renders v to w in the requested format.
func Write(w io.Writer, format Format, v Texter) error {
	switch format {
	case FormatText, "":
		return v.WriteText(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
}

// Record is the view of one metadata record.
type Record struct {
	Tag      string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Version  string   `json:"version" yaml:"version"`
	Values   []string `json:"values" yaml:"values"`
	Segments []string `json:"segments" yaml:"segments"`

	// SegmentsOnly switches the text form to one segment per line.
	SegmentsOnly bool `json:"-" yaml:"-"`
}

// NewRecord builds the view for r.
func NewRecord(tag metadata.Tag, r metadata.Record) Record {
	return Record{
		Tag:      tag.String(),
		Version:  r.Version(),
		Values:   r.Values(),
		Segments: r.Segments(),
	}
}

// WriteText implements Texter.
func (r Record) WriteText(w io.Writer) error {
	if !r.SegmentsOnly {
		_, err := fmt.Fprintln(w, r.Version)
		return err
	}
	for _, s := range r.Segments {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// Segment is the view of a single indexed segment.
type Segment struct {
	Tag     string `json:"tag" yaml:"tag"`
	Index   int    `json:"index" yaml:"index"`
	Segment string `json:"segment" yaml:"segment"`
}

// WriteText implements Texter.
func (s Segment) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, s.Segment)
	return err
}

// Semver is the view of a record read as a semantic version.
type Semver struct {
	Tag        string   `json:"tag" yaml:"tag"`
	Version    string   `json:"version" yaml:"version"`
	Major      uint64   `json:"major" yaml:"major"`
	Minor      uint64   `json:"minor" yaml:"minor"`
	Patch      uint64   `json:"patch" yaml:"patch"`
	Prerelease []string `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
	Build      []string `json:"build,omitempty" yaml:"build,omitempty"`
}

// WriteText implements Texter.
func (s Semver) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, s.Version)
	return err
}

// List is the view of a whole metadata table.
type List struct {
	Records []Record `json:"records" yaml:"records"`
}

// NewList builds the view of every tag in table.
func NewList(table metadata.Table) List {
	tags := table.Tags()
	list := List{Records: make([]Record, 0, len(tags))}
	for _, tag := range tags {
		r, _ := table.Lookup(tag)
		list.Records = append(list.Records, NewRecord(tag, r))
	}
	return list
}

// WriteText implements Texter.
func (l List) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TAG\tVERSION"); err != nil {
		return err
	}
	for _, r := range l.Records {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.Tag, r.Version); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Build is the view of xver's own build metadata.
type Build struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	Revision  string `json:"revision,omitempty" yaml:"revision,omitempty"`
}

// WriteText implements Texter.
func (b Build) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s %s\nbuild date: %s\n", b.Name, b.Version, b.BuildDate); err != nil {
		return err
	}
	if b.Revision == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "revision: %s\n", b.Revision)
	return err
}
