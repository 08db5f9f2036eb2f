package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for nix-install-pkgs
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitConfigError      = 2
	ExitInvalidReference = 3
	ExitResolutionError  = 4
	ExitEvaluationError  = 5
	ExitProcessError     = 6
	ExitInstallError     = 7
	ExitCleanupError     = 8
)

// ActionError is the base error type for nix-install-pkgs
type ActionError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ActionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ActionError) ExitCode() int {
	return e.Code
}

// New creates a new ActionError
func New(code int, message string) *ActionError {
	return &ActionError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an ActionError
func Wrap(code int, message string, cause error) *ActionError {
	return &ActionError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for unusable inputs or configuration
func ConfigError(message string, cause error) *ActionError {
	return Wrap(ExitConfigError, message, cause)
}

// InvalidReference returns an error for a malformed package or flake reference.
// The raw stderr of the probe is kept in the message.
func InvalidReference(ref, stderr string) *ActionError {
	return New(ExitInvalidReference, fmt.Sprintf("Given flake reference %q is invalid: %s", ref, strings.TrimSpace(stderr)))
}

// ResolutionFailed returns an error when a required locked URL cannot be resolved
func ResolutionFailed(ref string, cause error) *ActionError {
	return Wrap(ExitResolutionError, fmt.Sprintf("failed to resolve locked URL for %q", ref), cause)
}

// EvaluationFailed returns an error for a failed or unparsable nix eval
func EvaluationFailed(expr string, cause error) *ActionError {
	return Wrap(ExitEvaluationError, fmt.Sprintf("failed to evaluate %s", expr), cause)
}

// ProcessFailed returns an error when an external command could not run or exited non-zero
func ProcessFailed(command string, cause error) *ActionError {
	return Wrap(ExitProcessError, fmt.Sprintf("command %q failed", command), cause)
}

// InstallFailed returns an error for a failed profile installation
func InstallFailed(what string, cause error) *ActionError {
	return Wrap(ExitInstallError, fmt.Sprintf("installing %s into profile failed", what), cause)
}

// CleanupFailed returns an error when the profile directory cannot be removed
func CleanupFailed(path string, cause error) *ActionError {
	return Wrap(ExitCleanupError, fmt.Sprintf("failed to remove %s", path), cause)
}

// StateClearFailed returns an error when the profile directory was removed
// but its recorded location could not be cleared
func StateClearFailed(path string, cause error) *ActionError {
	return Wrap(ExitCleanupError, fmt.Sprintf("removed %s but clearing the recorded profile failed", path), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.ExitCode()
	}
	return ExitGeneralError
}

// HasCode reports whether err carries an ActionError with the given code.
func HasCode(err error, code int) bool {
	var actionErr *ActionError
	return errors.As(err, &actionErr) && actionErr.Code == code
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
