package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/launchbynttdata/launch-extended-version/internal/cli"
	"github.com/launchbynttdata/launch-extended-version/internal/logging"
	"github.com/launchbynttdata/launch-extended-version/metadata"
)

// embeddedMetadata is consulted ahead of linker-stamped values.
//
//go:embed metadata.yaml
var embeddedMetadata []byte

func main() {
	if err := run(); err != nil {
		logger, logErr := logging.New(logging.LevelTerse)
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "xver: %v\n", err)
			os.Exit(1)
		}
		logger.Error("xver failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	entries, err := metadata.ParseYAML(embeddedMetadata)
	if err != nil {
		return fmt.Errorf("reading embedded metadata: %w", err)
	}
	if err := metadata.Configure(entries); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}
