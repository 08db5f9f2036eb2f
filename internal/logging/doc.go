// Package logging provides logging utilities for nix-install-pkgs.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for the job log
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("probing flake reference", "ref", ref)
//	logging.Warn("no repository flake", "path", ".")
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Prefixing %q with %q", ref, "nixpkgs#")
//	logging.UserSuccess("Installed packages into %s", dir)
//	logging.UserWarning("No repository flake found")
//	logging.UserError("Cleanup failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// Indicators are colored with lipgloss only when the destination is a
// terminal. CI job logs get plain text.
package logging
