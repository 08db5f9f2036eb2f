// Package config loads the inputs and settings of nix-install-pkgs.
//
// # Layers
//
// Values are merged in order, later layers winning:
//
//  1. Built-in defaults.
//  2. An optional TOML file, by default
//     $XDG_CONFIG_HOME/nix-install-pkgs/config.toml.
//  3. CI step inputs from INPUT_* environment variables
//     (INPUT_INPUTS-FROM sets inputs.inputs-from).
//  4. Settings from NIX_INSTALL_PKGS_* environment variables
//     (NIX_INSTALL_PKGS_NIX_BINARY sets settings.nix-binary).
//  5. Command-line flags.
//
// # File format
//
//	[inputs]
//	packages = "hello, nixpkgs#jq"
//	inputs-from = "github:NixOS/nixpkgs/nixos-unstable"
//	nix-args = "--option substituters 'https://cache.nixos.org'"
//
//	[settings]
//	nix-binary = "nix"
package config
