// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// Recorded `nix flake metadata --json` outputs are embedded using go:embed:
//
//	fixtures/repo_flake_metadata.json
//	fixtures/nixpkgs_flake_metadata.json
//	fixtures/inputs_from_flake_metadata.json
//
// # Canned nix
//
// NewNixRunner returns a system.MockRunner answering the resolution calls
// the installer makes, so tests can run the whole install flow without nix:
//
//	runner := testutil.NewNixRunner(t)
//	runner.AddResponse("nix flake metadata hello", system.ExecResult{
//	    ExitCode: 1,
//	    Stderr:   testutil.StderrCannotFind("hello"),
//	})
package testutil
