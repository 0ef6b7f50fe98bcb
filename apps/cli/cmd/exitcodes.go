package cmd

import (
	"errors"
	"strconv"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
)

// Exit codes for the rdiff CLI
const (
	// ExitSuccess indicates the command completed and, with --exit-code, the
	// responses matched
	ExitSuccess = 0

	// ExitDifferences indicates the responses differ (only with --exit-code)
	ExitDifferences = 1

	// ExitConfigError indicates an invalid profile file, settings file or profile
	ExitConfigError = 2

	// ExitProfileNotFound indicates the requested profile does not exist
	ExitProfileNotFound = 3

	// ExitNetworkError indicates a transport failure or an unreadable response
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries an explicit exit code. A nil err exits silently.
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

func configError(err error) error {
	return &exitError{code: ExitConfigError, err: err}
}

func usageError(err error) error {
	return &exitError{code: ExitUsageError, err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		notFound  *errdefs.ProfileNotFoundError
		override  *errdefs.InvalidOverrideError
		transport *errdefs.TransportError
		decode    *errdefs.BodyDecodeError
		explicit  *exitError
	)
	switch {
	case errors.As(err, &notFound):
		return ExitProfileNotFound
	case errors.As(err, &override):
		return ExitUsageError
	case errors.As(err, &transport), errors.As(err, &decode):
		return ExitNetworkError
	case errors.As(err, &explicit):
		return explicit.code
	default:
		return ExitConfigError
	}
}
