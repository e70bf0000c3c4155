// Package cli provides the Cobra command structure for gomkd.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomkd/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// generator is the GENERATOR meta content for pages built by this binary.
func (b BuildInfo) generator() string {
	if b.Version == "" || b.Version == "dev" {
		return "gomkd"
	}
	return "gomkd " + b.Version
}

// NewRootCommand creates the root gomkd command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var noConfig bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomkd",
		Short: "A discount-compatible Markdown to HTML compiler",
		Long: `gomkd compiles Markdown into HTML.

It follows the discount dialect: smartypants typography, pseudo-protocol
links, sized images, footnotes, tables, definition and alpha lists, div
quotes, pandoc headers and user-defined raw passthrough delimiters. Output
can be UTF-8, Latin-1 or plain ASCII, as a body fragment or a full page.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore all config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand(info))
	rootCmd.AddCommand(newPageCommand(info))
	rootCmd.AddCommand(newFlagsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
