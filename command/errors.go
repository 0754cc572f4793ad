package command

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand signals that a subcommand token matched no declared
// name or alias.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError marks a parse or validation failure the user can fix by
// correcting the command line. Callers typically print usage and exit
// non-zero when they see one.
type UsageError struct {
	wrapped error
}

func (e *UsageError) Error() string {
	if e.wrapped == nil {
		return "usage error"
	}
	return "usage error: " + e.wrapped.Error()
}

// Is matches any other UsageError, so errors.Is(err, new(UsageError)) works
// without an exported sentinel value.
func (e *UsageError) Is(err error) bool {
	_, ok := err.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.wrapped
}

// NewUsageError builds a [UsageError] through [fmt.Errorf], so %w wrapping
// carries inner errors like [ErrUnknownCommand].
func NewUsageError(format string, args ...any) error {
	return &UsageError{wrapped: fmt.Errorf(format, args...)}
}
