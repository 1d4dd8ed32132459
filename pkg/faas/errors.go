package faas

import (
	"errors"
	"fmt"
)

// ProtocolError reports a response body that is not valid JSON on a status
// that is expected to carry JSON.
type ProtocolError struct {
	StatusCode int
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("invalid JSON in response with status %d: %v", e.StatusCode, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsProtocolError checks if the error is a protocol error.
func IsProtocolError(err error) bool {
	protoErr := &ProtocolError{}

	return errors.As(err, &protoErr)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrAPIEndpointRequired   = errors.New("API endpoint is required")
	ErrWorkspaceNameRequired = errors.New("workspace name is required")
	ErrFunctionNameRequired  = errors.New("function name is required")
	ErrPackagePathRequired   = errors.New("package path is required")
	ErrRunRequestRequired    = errors.New("run request is required")
	ErrCreateRequestRequired = errors.New("workspace create request is required")
	ErrTooManyRedirects      = errors.New("too many redirects")
	ErrMissingLocation       = errors.New("redirect response has no Location header")
	ErrEmptyBody             = errors.New("response body is empty")
	ErrNoCredentials         = errors.New("no credentials found for workspace")
)
