package cli

import (
	"errors"
	"fmt"
)

// ExitError represents a command failure with a specific exit code.
//
// Cobra RunE functions return it instead of calling os.Exit so tests can
// assert on exit codes without terminating the process. [RunWithConfig]
// extracts the code with [IsExitError]; only [Execute] calls os.Exit.
type ExitError struct {
	// Code is the exit code to return to the shell.
	// Convention: 0 = success, 1 = workflow or usage failure.
	Code int
}

// Error returns "exit status N", matching os/exec.ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError checks if err is or wraps an [ExitError] and extracts its code.
//
// Returns (0, false) for nil or non-ExitError errors.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
