package faas

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Result is the outcome of a classified API call. It is either a *Success or
// a *Failure.
type Result interface {
	// StatusCode returns the HTTP status of the (final) response.
	StatusCode() int
	// ErrorMessages returns the ordered, human-readable error messages.
	ErrorMessages() []string
	// Failed reports whether the call is considered failed, which is the
	// case whenever ErrorMessages is non-empty.
	Failed() bool

	result()
}

// Success is returned for every status the classifier does not map to an error.
// Errors holds the soft errors reported in the body's "errors" field.
type Success struct {
	Body    any
	Raw     []byte
	Headers http.Header
	Errors  []string
	Code    int
}

// StatusCode implements Result.
func (s *Success) StatusCode() int { return s.Code }

// ErrorMessages implements Result.
func (s *Success) ErrorMessages() []string { return s.Errors }

// Failed implements Result.
func (s *Success) Failed() bool { return len(s.Errors) > 0 }

func (s *Success) result() {}

// Decode unmarshals the raw body into v.
func (s *Success) Decode(v any) error {
	if len(s.Raw) == 0 {
		return ErrEmptyBody
	}

	err := json.Unmarshal(s.Raw, v)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

// Failure is returned for the error statuses known to the classifier.
type Failure struct {
	Messages []string
	Code     int
}

// StatusCode implements Result.
func (f *Failure) StatusCode() int { return f.Code }

// ErrorMessages implements Result.
func (f *Failure) ErrorMessages() []string { return f.Messages }

// Failed implements Result.
func (f *Failure) Failed() bool { return len(f.Messages) > 0 }

func (f *Failure) result() {}

// Error implements the error interface so a Failure can be returned where an
// error is expected.
func (f *Failure) Error() string {
	if len(f.Messages) == 0 {
		return fmt.Sprintf("request failed with status %d", f.Code)
	}

	if len(f.Messages) == 1 {
		return f.Messages[0]
	}

	return fmt.Sprintf("%s (and %d more)", f.Messages[0], len(f.Messages)-1)
}

// AsFailure returns the result as a *Failure, or nil for any other variant.
func AsFailure(result Result) *Failure {
	failure, ok := result.(*Failure)
	if !ok {
		return nil
	}

	return failure
}

// AsSuccess returns the result as a *Success, or nil for any other variant.
func AsSuccess(result Result) *Success {
	success, ok := result.(*Success)
	if !ok {
		return nil
	}

	return success
}
