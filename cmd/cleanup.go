package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/nix-install-pkgs/internal/app"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove the job's nix profile",
	Long: `Remove the temporary directory holding the job's nix profile.

Does nothing when no profile was installed. Safe to run more than once.`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	a := app.Default

	err := cleanup(cmd)
	if err != nil {
		a.Platform.Fail("Cleanup failed: " + err.Error())
	}
	return err
}

func cleanup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cleaner, err := app.Default.Cleaner(cfg.Settings)
	if err != nil {
		return err
	}

	removed, err := cleaner.Run()
	if err != nil {
		return err
	}
	if removed == "" {
		logInfo("No nix profile to clean up")
	}
	return nil
}
