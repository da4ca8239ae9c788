package cli

import "fmt"

// Exit codes for the relog CLI.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntimeError indicates a command failed during execution
	ExitRuntimeError = 1

	// ExitFormatError indicates the changelog text failed to parse
	ExitFormatError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitAborted indicates the user cancelled an interactive flow
	ExitAborted = 4
)

// ExitError carries a specific process exit code up to main.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error signalling the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}
