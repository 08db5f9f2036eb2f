package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/nix-install-pkgs/internal/app"
	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the install commands without running them",
	Long: `Resolve inputs the way install does and print the nix profile install
commands it would run. Nothing is installed and no state is written.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

var planFormat string

func init() {
	addInputFlags(planCmd)
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "yaml", "Output format: yaml or json")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if planFormat != "yaml" && planFormat != "json" {
		return errors.ConfigError(fmt.Sprintf("unknown format %q, want yaml or json", planFormat), nil)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	installer, err := app.Default.Installer(cfg.Settings)
	if err != nil {
		return err
	}

	plan, err := installer.Plan(cmd.Context(), cfg.Inputs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if planFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return enc.Close()
}
