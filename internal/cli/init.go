package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomkd/internal/configloader"
	"github.com/yaklabco/gomkd/internal/logging"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomkd configuration file",
		Long: `Create a new .gomkd.yml configuration file in the current directory.
Every setting is listed with its default, commented out where the default
applies, so the file documents what can be changed.

Examples:
  gomkd init                      Create .gomkd.yml
  gomkd init --force              Replace an existing .gomkd.yml
  gomkd init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	replaced, err := configloader.WriteTemplate(cmd.Context(), configloader.InitOptions{
		Path:  flags.output,
		Force: flags.force,
		Out:   cmd.OutOrStdout(),
	})
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	if replaced {
		logger.Warn("overwrote existing file", logging.FieldPath, flags.output)
	} else {
		logger.Info("created configuration file", logging.FieldPath, flags.output)
	}
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'gomkd flags' to see the render flag names")

	return nil
}
