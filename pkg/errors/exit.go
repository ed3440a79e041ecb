package errors

import (
	"errors"
	"fmt"
)

// ExitError carries a process exit code for failures that have already
// been reported (or are intentionally silent, as in quiet mode).
type ExitError struct {
	Code int
}

// Error implements the error interface
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit returns an error that maps to the given process exit code
func Exit(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error to the CLI exit-code contract:
// 0 for nil, the carried code for ExitError, 2 when no candidate
// documents were found, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if IsCode(err, ErrNoCandidates) {
		return 2
	}
	return 1
}
