// Package output owns everything devlog says to the user: the JSON and
// human printers, the style palette, and the exit-code error type the
// whole CLI threads its failures through.
package output

import "errors"

// Process exit codes. Agents and hook scripts branch on these, so they
// are part of the CLI contract.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError carries the exit code a failure should terminate with.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string { return e.Message }

// Unwrap exposes the cause to the errors package.
func (e *ExitError) Unwrap() error { return e.Cause }

// NewUserError marks a failure the user can fix: bad arguments, a task
// that does not exist, malformed input.
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemError marks an environment failure: file I/O, a git subprocess.
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause is NewSystemError with a wrapped cause for
// errors.Is/errors.As chains.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError marks a refusal to clobber existing state, such as an
// init over a journal that is already there.
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// GetExitCode maps an error to the process exit status. nil is success;
// an error that never went through this package counts as a user error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
