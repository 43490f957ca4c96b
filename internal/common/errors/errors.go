// Package errors provides the standardized error taxonomy for the tracker.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeNetwork           ErrorCode = "NETWORK_ERROR"
	ErrCodeUpstreamTimeout   ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeParse             ErrorCode = "PARSE_ERROR"
	ErrCodeGeographyNotFound ErrorCode = "GEOGRAPHY_NOT_FOUND"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewNetworkError creates an error for an unreachable or failing upstream.
func NewNetworkError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   "Upstream open-data endpoint request failed",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamStatusError creates an error for a non-success upstream status.
func NewUpstreamStatusError(endpoint string, status int) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   "Upstream open-data endpoint returned a non-success status",
		Details:   fmt.Sprintf("endpoint: %s, status: %d", endpoint, status),
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamTimeoutError creates an error for an upstream fetch timeout.
func NewUpstreamTimeoutError(endpoint string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamTimeout,
		Message:   "Upstream open-data endpoint timed out",
		Details:   fmt.Sprintf("endpoint: %s", endpoint),
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates an error for a malformed upstream payload.
func NewParseError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParse,
		Message:   "Upstream payload is not valid license JSON",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Timestamp: time.Now().UTC(),
	}
}

// NewGeographyNotFoundError creates an error for an unrecognized county or borough.
func NewGeographyNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeographyNotFound,
		Message:   fmt.Sprintf("Unknown county or borough: %s", name),
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates an error for malformed request parameters.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Invalid request parameters",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf returns the error code of err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	return Normalize(err).Code
}

// HTTPStatus maps an error code to the response status the API layer uses.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeGeographyNotFound, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNetwork, ErrCodeParse:
		return http.StatusBadGateway
	case ErrCodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
