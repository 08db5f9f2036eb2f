// Package errors provides typed errors with exit codes for nix-install-pkgs.
//
// # Error Types
//
// ActionError is the base error type that wraps an error with an exit code:
//
//	type ActionError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess          = 0  // Success
//	ExitGeneralError     = 1  // General/unknown errors
//	ExitConfigError      = 2  // Neither packages nor expr given, bad config file
//	ExitInvalidReference = 3  // Malformed package or flake reference
//	ExitResolutionError  = 4  // Locked URL could not be resolved for a required reference
//	ExitEvaluationError  = 5  // nix eval failed or returned unparsable output
//	ExitProcessError     = 6  // External command could not run
//	ExitInstallError     = 7  // nix profile install exited non-zero
//	ExitCleanupError     = 8  // Profile directory could not be removed
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.ConfigError("Neither the packages nor the expr input is given", nil)
//	errors.InvalidReference("wurzel:pfropf", stderr)
//	errors.InstallFailed("packages", err)
//	errors.CleanupFailed("/tmp/nix-profile-123", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
