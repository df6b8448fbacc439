// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrFetch           = errors.New("fetch failed")
	ErrNoPhone         = errors.New("no phone number found")
	ErrRender          = errors.New("render failed")
	ErrBrowserNotFound = errors.New("chrome browser not found")
	ErrInvalidURL      = errors.New("invalid URL")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeFetch      ErrorCode = "FETCH"
	ErrCodeStatus     ErrorCode = "HTTP_STATUS"
	ErrCodeNoPhone    ErrorCode = "NO_PHONE"
	ErrCodeRender     ErrorCode = "RENDER"
	ErrCodeValidation ErrorCode = "VALIDATION"
)

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// FetchError reports a non-success HTTP response
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %s", e.URL, e.Status)
}

// Is lets errors.Is(err, ErrFetch) match status failures
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// GetStatusCode returns the HTTP status code of the failed response
func (e *FetchError) GetStatusCode() int {
	return e.StatusCode
}
