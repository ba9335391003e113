package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchbynttdata/launch-extended-version/internal/config"
	"github.com/launchbynttdata/launch-extended-version/internal/logging"
	"github.com/launchbynttdata/launch-extended-version/internal/render"
	"github.com/launchbynttdata/launch-extended-version/internal/version"
	"github.com/launchbynttdata/launch-extended-version/metadata"
)

const (
	envLogLevel     = "XVER_LOG_LEVEL"
	envOutput       = "XVER_OUTPUT"
	envTag          = "XVER_TAG"
	envSegments     = "XVER_SEGMENTS"
	envSegmentIndex = "XVER_SEGMENT_INDEX"
	envSemver       = "XVER_SEMVER"
)

const (
	commandName  = "xver"
	flagLogLevel = "log-level"
	flagOutput   = "output"
	flagTag      = "tag"
	flagSegments = "segments"
	flagIndex    = "index"
	flagSemver   = "semver"
)

// ErrNotEmbedded is returned when the requested tag was not stamped into the binary.
var ErrNotEmbedded = errors.New("metadata not embedded")

// Execute runs the CLI root command with the provided context.
func Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return newRootCommand(defaultDeps()).ExecuteContext(ctx)
}

// deps are the process-wide inputs of every command. Tests swap them out.
type deps struct {
	table  func() metadata.Table
	build  func() version.Info
	lookup config.LookupFunc
}

func defaultDeps() deps {
	return deps{
		table: metadata.Default,
		build: version.Current,
	}
}

type rootFlagSet struct {
	logLevel *stringFlag
	output   *stringFlag
}

type runtimeConfig struct {
	resolver config.Resolver
	logger   *zap.Logger
	format   render.Format
	table    metadata.Table
}

func newRootCommand(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:           commandName,
		Short:         "Inspect build-time version metadata",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = d.build().Version
	cmd.SetVersionTemplate(commandName + " {{.Version}}\n")

	flags := bindRootFlags(cmd)
	cmd.AddCommand(
		newShowCommand(flags, d),
		newListCommand(flags, d),
		newSplitCommand(flags, d),
		newVersionCommand(flags, d),
	)

	return cmd
}

func newVersionCommand(rootFlags *rootFlagSet, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtime, cleanup, err := buildRuntime(cmd, rootFlags, d)
			if err != nil {
				return err
			}
			defer cleanup()

			info := d.build()
			view := render.Build{
				Name:      commandName,
				Version:   info.Version,
				BuildDate: info.BuildDate,
				Revision:  info.Revision,
			}
			if err := render.Write(cmd.OutOrStdout(), runtime.format, view); err != nil {
				return fmt.Errorf("writing version info: %w", err)
			}
			return nil
		},
	}
}

func bindRootFlags(cmd *cobra.Command) *rootFlagSet {
	fs := cmd.PersistentFlags()
	return &rootFlagSet{
		logLevel: bindStringFlag(fs, flagLogLevel, flagLogLevel, "", envLogLevel, logging.LevelTerse, "Log verbosity (quiet, terse or verbose)"),
		output:   bindStringFlag(fs, flagOutput, flagOutput, "o", envOutput, string(render.FormatText), "Output format (text, json or yaml)"),
	}
}

func buildRuntime(cmd *cobra.Command, flags *rootFlagSet, d deps) (runtimeConfig, func(), error) {
	nopResolver := config.NewResolver(zap.NewNop()).WithLookup(d.lookup)
	logLevel := flags.logLevel.Value(nopResolver)

	logger, err := logging.NewWriter(logLevel, cmd.ErrOrStderr())
	if err != nil {
		return runtimeConfig{}, nil, fmt.Errorf("configuring logger: %w", err)
	}

	resolver := config.NewResolver(logger).WithLookup(d.lookup)
	_ = flags.logLevel.Value(resolver)

	format, err := render.ParseFormat(flags.output.Value(resolver))
	if err != nil {
		return runtimeConfig{}, nil, err
	}

	cleanup := func() {
		_ = logger.Sync()
	}

	return runtimeConfig{
		resolver: resolver,
		logger:   logger,
		format:   format,
		table:    d.table(),
	}, cleanup, nil
}
