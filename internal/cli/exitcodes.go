package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Item not found, archive entry not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Unparseable dates or times.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty titles, rejected stage transitions, unknown stages.
	ExitValidation = 5

	// ExitConflict indicates the board changed under the command.
	// Use for: Stale writes and planned-date decisions the caller must make.
	ExitConflict = 6
)

// CommandError carries the process exit code for a failed command. The message
// has already been reported through the OutputFormatter.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error onto the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ExitError
}
