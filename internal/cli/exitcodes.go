package cli

import (
	"errors"
	"fmt"
)

// Exit codes for gomkd.
const (
	// ExitSuccess indicates every input rendered.
	ExitSuccess = 0

	// ExitRenderErrors indicates a batch run finished but some files failed.
	ExitRenderErrors = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 64

	// ExitIOError indicates an input could not be read or output written.
	ExitIOError = 74
)

// ErrRenderFailures is returned when a batch run could not render every file.
var ErrRenderFailures = errors.New("some files failed to render")

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func usageError(format string, args ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by the root command to a process exit
// code. Errors without an explicit code are usage errors, matching what
// cobra returns for bad flags and arguments.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitUsage
}

// Silent reports whether err only signals an exit code and has already
// been reported to the user.
func Silent(err error) bool {
	return errors.Is(err, ErrRenderFailures)
}
