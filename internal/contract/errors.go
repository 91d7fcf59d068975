package contract

import (
	"errors"
	"fmt"
)

// ErrNoProviders is returned when no provider token is configured.
var ErrNoProviders = errors.New("no provider configured")

// ConnectionError reports an authentication or transport failure for a provider.
// It only aborts that provider's contribution to a run.
type ConnectionError struct {
	Provider string
	Err      error
}

// NewConnectionError wraps err for provider.
func NewConnectionError(provider string, err error) *ConnectionError {
	return &ConnectionError{Provider: provider, Err: err}
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection error: %v", e.Provider, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err wraps a *ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
