package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/nix-install-pkgs/internal/app"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "nix-install-pkgs",
	Short: "Install nix packages into an ephemeral profile for a CI job",
	Long: `nix-install-pkgs installs packages, or the result of a Nix expression,
into a temporary nix profile and puts its bin directory on the PATH of the
job.

A job runs "install" one or more times and "cleanup" once at the end:
  - install reuses the profile created earlier in the same job
  - cleanup removes the profile directory
  - plan shows the install commands without running them

Inputs come from INPUT_* variables set by the CI runner, a TOML config
file or flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if logging.Verbose {
			app.Default.Debug = true
		}
	},
}

// Execute runs the root command and prints any error for the job log.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/nix-install-pkgs/config.toml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
