// Package generator builds the arguments for `nix profile install`.
//
// Two install forms are produced:
//
// Package form: each package reference is qualified (bare names become
// nixpkgs#name) and passed as an installable, optionally preceded by
// --inputs-from <locked url>.
//
//	args, err := b.PackageArgs(ctx, []string{"hello", "nixpkgs#jq"}, "")
//	// ["nixpkgs#hello", "nixpkgs#jq"]
//
// Expression form: a Nix expression is generated that binds the repository
// flake, the inputs-from flake, a pinned nixpkgs and a pkgs set imported for
// the host platform, then evaluates the caller's expression in that scope:
//
//	let
//	  repoFlake = builtins.getFlake("file:///nix/store/...-source?narHash=...");
//	  inputsFromFlake = { };
//	  nixpkgs = builtins.getFlake("file:///nix/store/...-source?narHash=...");
//	  pkgs = (import nixpkgs { system = "x86_64-linux"; });
//	in pkgs.hello
//
// The caller's expression is inserted verbatim. It is trusted input.
package generator
