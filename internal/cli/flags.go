package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomkd/internal/configloader"
	"github.com/yaklabco/gomkd/internal/logging"
	"github.com/yaklabco/gomkd/pkg/flags"
)

type flagsFlags struct {
	format string
}

const formatJSON = "json"

// flagInfo represents a render flag in JSON output.
type flagInfo struct {
	Name string `json:"name"`
	Set  bool   `json:"set"`
}

func newFlagsCommand() *cobra.Command {
	opts := &flagsFlags{}

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "List render flag names",
		Long: `List the render flag names accepted by --enable, --disable and the
GOMKD_FLAGS environment variable, and whether the resolved configuration
sets each one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlags(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")

	return cmd
}

func runFlags(cmd *cobra.Command, opts *flagsFlags) error {
	if opts.format != "text" && opts.format != formatJSON {
		return usageError("invalid format %q: must be text or json", opts.format)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	noConfig, _ := cmd.Flags().GetBool("no-config")

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		NoConfig:     noConfig,
	})
	if err != nil {
		return withExitCode(ExitUsage, err)
	}

	current, err := result.Config.Flags()
	if err != nil {
		return withExitCode(ExitUsage, err)
	}

	infos := make([]flagInfo, 0, len(flags.Names()))
	for _, name := range flags.Names() {
		bit, err := flags.Parse(name)
		if err != nil {
			continue
		}
		infos = append(infos, flagInfo{Name: name, Set: current.Has(bit)})
	}

	if opts.format == formatJSON {
		return outputFlagsJSON(cmd.OutOrStdout(), infos)
	}

	logger := logging.NewWriter(cmd.OutOrStdout(), "info")
	for _, info := range infos {
		state := "-"
		if info.Set {
			state = "set"
		}
		logger.Info(info.Name, "state", state)
	}
	return nil
}

// outputFlagsJSON outputs the flags as a JSON array.
func outputFlagsJSON(w io.Writer, infos []flagInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding flags: %w", err)
	}
	return nil
}
