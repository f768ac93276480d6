// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a malformed request or a broken cross-field
	// invariant. No remote call is attempted after it is raised.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the caller has no cached platform credential
	// or no linked remote ad account.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested entity does not exist locally or
	// is not owned by the caller.
	ErrNotFound = errors.New("not found")
)

// Validationf wraps ErrValidation with a human-readable reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// RemoteError is returned when a call to the advertising platform fails.
// Message carries the platform's own error message when the response body
// contained one, otherwise a generic description of the transport failure.
type RemoteError struct {
	Message string
	Code    int
	Cause   error
}

func (e *RemoteError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("remote platform: %s (code %d)", e.Message, e.Code)
	}
	return "remote platform: " + e.Message
}

func (e *RemoteError) Unwrap() error { return e.Cause }

// IsRemote reports whether err originated from the remote platform.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
