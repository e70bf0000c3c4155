// Package main is the entry point for the gomkd CLI.
package main

import (
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yaklabco/gomkd/internal/cli"
	"github.com/yaklabco/gomkd/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := logging.Default()

	// Match GOMAXPROCS to the container CPU quota before the render pool is sized.
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Debugf)); err != nil {
		logger.Warn("could not set GOMAXPROCS", logging.FieldError, err)
	}

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Render failures have already been summarized.
		if !cli.Silent(err) {
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
