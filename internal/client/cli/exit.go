package cli

import (
	"errors"
	"strconv"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/client/client"
)

const (
	ExitAccepted         = 0
	ExitRejected         = 2
	ExitAlreadyExists    = 3
	ExitTransportFailure = 4
	ExitUsage            = 64
)

// exitError carries a process exit code out of a cobra RunE. err may be nil
// when the outcome was already reported on stdout.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return "exit status " + strconv.Itoa(e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: ExitUsage, err: err}
}

func exitWith(code int, err error) error {
	if code == ExitAccepted && err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func statusExitCode(s client.Status) int {
	switch s {
	case client.StatusAccepted:
		return ExitAccepted
	case client.StatusAlreadyExists:
		return ExitAlreadyExists
	case client.StatusRejected:
		return ExitRejected
	}
	return ExitTransportFailure
}

// exitCode maps an Execute error to a process exit code. Errors that did not
// come from a RunE (unknown flags, missing required flags) are usage errors.
func exitCode(err error) int {
	if err == nil {
		return ExitAccepted
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsage
}
