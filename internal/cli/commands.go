package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchbynttdata/launch-extended-version/internal/config"
	"github.com/launchbynttdata/launch-extended-version/internal/render"
	"github.com/launchbynttdata/launch-extended-version/metadata"
)

type showFlagSet struct {
	tag      *stringFlag
	segments *boolFlag
	index    *intFlag
	semver   *boolFlag
}

type showConfig struct {
	tag      metadata.Tag
	segments bool
	index    int
	indexSet bool
	semver   bool
}

func newShowCommand(rootFlags *rootFlagSet, d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one embedded metadata record",
		Args:  cobra.NoArgs,
	}

	showFlags := bindShowFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		runtime, cleanup, err := buildRuntime(cmd, rootFlags, d)
		if err != nil {
			return err
		}
		defer cleanup()

		cfg, err := showFlags.resolve(runtime.resolver)
		if err != nil {
			return err
		}

		log := runtime.logger.With(zap.String("tag", cfg.tag.String()))
		log.Debug("looking up metadata")

		record, ok := runtime.table.Lookup(cfg.tag)
		if !ok {
			log.Warn("metadata tag not embedded", zap.Int("embeddedTags", runtime.table.Len()))
			return fmt.Errorf("%s: %w", cfg.tag, ErrNotEmbedded)
		}
		log.Debug("metadata found", zap.String("version", record.Version()), zap.Int("segments", record.Len()))

		view, err := showView(cfg, record)
		if err != nil {
			return err
		}
		if err := render.Write(cmd.OutOrStdout(), runtime.format, view); err != nil {
			return fmt.Errorf("writing metadata: %w", err)
		}
		return nil
	}

	return cmd
}

func bindShowFlags(cmd *cobra.Command) *showFlagSet {
	fs := cmd.Flags()
	return &showFlagSet{
		tag:      bindStringFlag(fs, flagTag, flagTag, "t", envTag, metadata.TagExtendedVersion.String(), "Metadata tag to print ("+knownTagNames()+" or a custom tag)"),
		segments: bindBoolFlag(fs, flagSegments, flagSegments, "", envSegments, false, "Print the split segments instead of the version"),
		index:    bindIntFlag(fs, flagIndex, flagIndex, "i", envSegmentIndex, 0, "Print only the segment at this zero-based index"),
		semver:   bindBoolFlag(fs, flagSemver, flagSemver, "", envSemver, false, "Interpret the version as a semantic version"),
	}
}

func knownTagNames() string {
	tags := metadata.KnownTags()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	return strings.Join(names, ", ")
}

func (f *showFlagSet) resolve(resolver config.Resolver) (showConfig, error) {
	tagName := strings.TrimSpace(f.tag.Value(resolver))
	if tagName == "" {
		return showConfig{}, fmt.Errorf("%s is required", flagTag)
	}

	segments, err := f.segments.Value(resolver)
	if err != nil {
		return showConfig{}, err
	}

	index, err := f.index.Value(resolver)
	if err != nil {
		return showConfig{}, err
	}
	indexSet := f.index.Set(resolver)

	semver, err := f.semver.Value(resolver)
	if err != nil {
		return showConfig{}, err
	}

	if semver && (segments || indexSet) {
		return showConfig{}, fmt.Errorf("--%s cannot be combined with --%s or --%s", flagSemver, flagSegments, flagIndex)
	}

	return showConfig{
		tag:      metadata.ParseTag(tagName),
		segments: segments,
		index:    index,
		indexSet: indexSet,
		semver:   semver,
	}, nil
}

func showView(cfg showConfig, record metadata.Record) (render.Texter, error) {
	switch {
	case cfg.semver:
		v, err := record.Semver()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.tag, err)
		}
		view := render.Semver{
			Tag:     cfg.tag.String(),
			Version: v.String(),
			Major:   v.Major,
			Minor:   v.Minor,
			Patch:   v.Patch,
			Build:   v.Build,
		}
		for _, pre := range v.Pre {
			view.Prerelease = append(view.Prerelease, pre.String())
		}
		return view, nil
	case cfg.indexSet:
		segment, err := record.Segment(cfg.index)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.tag, err)
		}
		return render.Segment{Tag: cfg.tag.String(), Index: cfg.index, Segment: segment}, nil
	default:
		view := render.NewRecord(cfg.tag, record)
		view.SegmentsOnly = cfg.segments
		return view, nil
	}
}

func newListCommand(rootFlags *rootFlagSet, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every embedded metadata record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtime, cleanup, err := buildRuntime(cmd, rootFlags, d)
			if err != nil {
				return err
			}
			defer cleanup()

			if runtime.table.Len() == 0 {
				runtime.logger.Warn("no metadata embedded in this binary")
			}
			if err := render.Write(cmd.OutOrStdout(), runtime.format, render.NewList(runtime.table)); err != nil {
				return fmt.Errorf("writing metadata list: %w", err)
			}
			return nil
		},
	}
}

func newSplitCommand(rootFlags *rootFlagSet, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "split FRAGMENT...",
		Short: "Concatenate version fragments and print their segments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, cleanup, err := buildRuntime(cmd, rootFlags, d)
			if err != nil {
				return err
			}
			defer cleanup()

			record := metadata.New(args...)
			runtime.logger.Debug("split version", zap.Strings("fragments", args), zap.Int("segments", record.Len()))

			view := render.NewRecord("", record)
			view.SegmentsOnly = true
			if err := render.Write(cmd.OutOrStdout(), runtime.format, view); err != nil {
				return fmt.Errorf("writing segments: %w", err)
			}
			return nil
		},
	}
}
