package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/nix-install-pkgs/internal/config"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
)

// Helper aliases for user-facing output (delegates to logging package)
var logInfo = logging.UserInfo

// inputFlags are the flags overriding step inputs, by config key.
var inputFlags = map[string]string{
	"packages":    "inputs.packages",
	"expr":        "inputs.expr",
	"inputs-from": "inputs.inputs-from",
	"nix-args":    "inputs.nix-args",
}

// addInputFlags registers the step input flags on cmd.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("packages", "p", "", "Comma-separated flake references to install")
	cmd.Flags().StringP("expr", "e", "", "Nix expression producing a derivation or list of derivations")
	cmd.Flags().String("inputs-from", "", "Flake reference whose inputs are used for lookups")
	cmd.Flags().String("nix-args", "", "Extra arguments for nix profile install")
}

// loadConfig merges config layers with the flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := make(map[string]string)
	for name, key := range inputFlags {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			flags[key] = f.Value.String()
		}
	}

	return config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Flags:      flags,
	})
}
