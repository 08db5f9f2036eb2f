package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
	"github.com/firefly-engineering/nix-install-pkgs/internal/logging"
)

const (
	AppName = "nix-install-pkgs"

	// InputEnvPrefix is the prefix CI runners use for step inputs.
	InputEnvPrefix = "INPUT_"

	// SettingsEnvPrefix is the prefix for tool settings.
	SettingsEnvPrefix = "NIX_INSTALL_PKGS_"

	DefaultConfigFileName = "config.toml"
	DefaultNixBinary      = "nix"
)

// Config is the merged configuration.
type Config struct {
	Inputs   Inputs   `koanf:"inputs"`
	Settings Settings `koanf:"settings"`
}

// Inputs are the step inputs.
type Inputs struct {
	// Packages is a comma-separated list of flake references.
	Packages string `koanf:"packages"`

	// Expr is a Nix expression evaluating to a derivation or list of
	// derivations, with pkgs, nixpkgs and repoFlake in scope.
	Expr string `koanf:"expr"`

	// InputsFrom is a flake reference whose inputs are used for lookups.
	InputsFrom string `koanf:"inputs-from"`

	// NixArgs are extra shell-quoted arguments for nix profile install.
	NixArgs string `koanf:"nix-args"`
}

// Settings tune the tool itself.
type Settings struct {
	NixBinary string `koanf:"nix-binary"`
	StateFile string `koanf:"state-file"`
	RunID     string `koanf:"run-id"`
}

// LoadOptions controls Load.
type LoadOptions struct {
	// ConfigFile is an explicit config file. When set it must exist.
	ConfigFile string

	// Flags holds flag values keyed by koanf path ("inputs.packages").
	// Only flags the user actually set should be present.
	Flags map[string]string
}

// DefaultConfigFile returns the per-user config file location.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFileName)
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"inputs.packages":     "",
		"inputs.expr":         "",
		"inputs.inputs-from":  "",
		"inputs.nix-args":     "",
		"settings.nix-binary": DefaultNixBinary,
		"settings.state-file": "",
		"settings.run-id":     "",
	}
}

// inputKey maps INPUT_INPUTS-FROM to inputs.inputs-from.
func inputKey(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, InputEnvPrefix))
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" {
		return ""
	}
	return "inputs." + name
}

// settingKey maps NIX_INSTALL_PKGS_NIX_BINARY to settings.nix-binary.
func settingKey(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, SettingsEnvPrefix))
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" {
		return ""
	}
	return "settings." + name
}

// Load merges all configuration layers.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.ConfigError("failed to load defaults", err)
	}

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if _, err := os.Stat(path); err == nil {
		logging.Debug("loading config file", "path", path)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to load config from %s", path), err)
		}
	} else if explicit {
		return nil, errors.ConfigError(fmt.Sprintf("config file %s not found", path), err)
	}

	if err := k.Load(env.Provider(InputEnvPrefix, ".", inputKey), nil); err != nil {
		return nil, errors.ConfigError("failed to load step inputs", err)
	}
	if err := k.Load(env.Provider(SettingsEnvPrefix, ".", settingKey), nil); err != nil {
		return nil, errors.ConfigError("failed to load settings from environment", err)
	}

	if len(opts.Flags) > 0 {
		flags := make(map[string]interface{}, len(opts.Flags))
		for key, value := range opts.Flags {
			flags[key] = value
		}
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.ConfigError("failed to load flags", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.ConfigError("failed to unmarshal configuration", err)
	}

	if cfg.Settings.NixBinary == "" {
		cfg.Settings.NixBinary = DefaultNixBinary
	}

	return &cfg, nil
}

// Validate checks that something was requested.
func (i *Inputs) Validate() error {
	if len(i.PackageList()) == 0 && !i.HasExpr() {
		return errors.ConfigError("Neither the packages nor the expr input is given", nil)
	}
	return nil
}

// PackageList splits Packages on commas, trimming blanks and dropping
// empty entries.
func (i *Inputs) PackageList() []string {
	var pkgs []string
	for _, p := range strings.Split(i.Packages, ",") {
		if p = strings.TrimSpace(p); p != "" {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs
}

// HasExpr reports whether an expression was given.
func (i *Inputs) HasExpr() bool {
	return strings.TrimSpace(i.Expr) != ""
}

// ExtraArgs splits NixArgs with shell quoting rules.
func (i *Inputs) ExtraArgs() ([]string, error) {
	if strings.TrimSpace(i.NixArgs) == "" {
		return nil, nil
	}
	args, err := shellquote.Split(i.NixArgs)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid nix-args %q", i.NixArgs), err)
	}
	return args, nil
}
