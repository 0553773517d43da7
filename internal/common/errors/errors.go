// internal/common/errors/errors.go

// Package errors provides the standardized error taxonomy for the lookup
// pipeline. Every error is converted to an absent value at the boundary of
// the stage that detected it; nothing here is retryable.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Network errors: transport failure, timeout, unexpected status.
	ErrCodeNetworkFailure   ErrorCode = "NETWORK_FAILURE"
	ErrCodeRequestTimeout   ErrorCode = "REQUEST_TIMEOUT"
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"

	// Parse errors: malformed JSON, missing expected fields, malformed
	// percentage strings.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeMissingField      ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidPercent    ErrorCode = "INVALID_PERCENT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkFailure,
		Message:   "network request failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError marks a request that exceeded the per-call deadline.
func NewTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestTimeout,
		Message:   "request timed out",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusError marks a non-2xx response where the caller required 2xx.
func NewStatusError(status int, url string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpectedStatus,
		Message:   fmt.Sprintf("unexpected status %d", status),
		Details:   url,
		Retryable: false,
		Metadata:  map[string]interface{}{"status": status},
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError marks a response body that could not be decoded.
func NewParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "failed to parse response",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingFieldError marks a well-formed response lacking an expected field.
func NewMissingFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingField,
		Message:   fmt.Sprintf("expected field %q missing from response", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsNetwork reports whether err is a transport-level failure (including
// timeouts and unexpected statuses).
func IsNetwork(err error) bool {
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return false
	}
	switch stdErr.Code {
	case ErrCodeNetworkFailure, ErrCodeRequestTimeout, ErrCodeUnexpectedStatus:
		return true
	}
	return false
}

// IsParse reports whether err is a response-shape failure.
func IsParse(err error) bool {
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return false
	}
	switch stdErr.Code {
	case ErrCodeMalformedResponse, ErrCodeMissingField, ErrCodeInvalidPercent:
		return true
	}
	return false
}

// IsTimeout reports whether err is specifically a deadline failure.
func IsTimeout(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == ErrCodeRequestTimeout
}
