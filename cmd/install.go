package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/nix-install-pkgs/internal/app"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install packages into the job's nix profile",
	Long: `Install packages and/or the result of a Nix expression into the job's
ephemeral nix profile, then add its bin directory to the PATH.

Bare package names that are not flakes are looked up in nixpkgs. The
expression sees pkgs, nixpkgs, repoFlake and inputsFromFlake.`,
	Example: `  nix-install-pkgs install --packages "hello, nixpkgs#jq"
  nix-install-pkgs install --expr "[ pkgs.ripgrep pkgs.fd ]"
  nix-install-pkgs install --packages agenix --inputs-from github:ryantm/agenix`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	addInputFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	a := app.Default

	err := install(cmd)
	if err != nil {
		a.Platform.Fail("Workflow run failed: " + err.Error())
	}
	return err
}

func install(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	installer, err := app.Default.Installer(cfg.Settings)
	if err != nil {
		return err
	}

	res, err := installer.Run(cmd.Context(), cfg.Inputs)
	if err != nil {
		return err
	}

	if res.Reused {
		logging.Debug("added to existing profile", "profile", res.ProfileDir)
	}
	logInfo("Added %s to PATH", res.BinDir)
	return nil
}
