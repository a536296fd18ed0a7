// Package errors provides standardized error handling for the assistant core.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyMessage     ErrorCode = "EMPTY_MESSAGE"
	ErrCodeNoProcedures     ErrorCode = "NO_PROCEDURES_REQUESTED"
	ErrCodeUnknownLocation  ErrorCode = "UNKNOWN_LOCATION"
	ErrCodeUnknownInsurance ErrorCode = "UNKNOWN_INSURANCE"

	ErrCodeCatalogLoadFailed     ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogInvalid        ErrorCode = "CATALOG_VALIDATION_FAILED"
	ErrCodeSessionStoreFailed    ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeSessionNotFound       ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeCompletionTimeout     ErrorCode = "COMPLETION_TIMEOUT"
	ErrCodeCompletionFailed      ErrorCode = "COMPLETION_FAILED"
	ErrCodeRedisConnectionFailed ErrorCode = "REDIS_CONNECTION_FAILED"
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

// ==========================
// 2. Error Constructors
// ==========================

// NewEmptyMessageError creates a non-retryable input error.
func NewEmptyMessageError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyMessage,
		Message:   "Message cannot be empty",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoProceduresError flags a comparison request without procedures.
func NewNoProceduresError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoProcedures,
		Message:   "No procedures were requested for comparison",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownLocationError creates a non-retryable catalog miss.
func NewUnknownLocationError(location string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownLocation,
		Message:   "No catalog data for location",
		Details:   fmt.Sprintf("location: %s", location),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownInsuranceError creates a non-retryable plan miss.
func NewUnknownInsuranceError(carrier string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownInsurance,
		Message:   "Insurance plan not found",
		Details:   fmt.Sprintf("carrier: %s", carrier),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadFailedError creates a retryable catalog load error.
func NewCatalogLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Failed to load catalog data",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvalidError creates a non-retryable schema validation error.
func NewCatalogInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "Catalog data failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError creates a retryable session persistence error.
func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Failed to persist conversation context",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError flags a lookup of a session with no recorded turns.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "No conversation found for session",
		Details:   fmt.Sprintf("session: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRedisConnectionFailedError creates a retryable connection error.
func NewRedisConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRedisConnectionFailed,
		Message:   "Failed to connect to Redis",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionTimeoutError creates a retryable completion timeout error.
func NewCompletionTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionTimeout,
		Message:   "Completion API timeout",
		Details:   "API call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionFailedError creates a retryable completion error.
func NewCompletionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionFailed,
		Message:   "Completion API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeSessionStoreFailed,
		ErrCodeRedisConnectionFailed,
		ErrCodeCompletionFailed:
		return 3

	case ErrCodeCompletionTimeout:
		return 1

	default:
		return 0 // Input and catalog-miss errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "REDIS"):
		return "SESSION"
	case strings.Contains(codeStr, "COMPLETION"):
		return "AI"
	case strings.Contains(codeStr, "UNKNOWN"):
		return "LOOKUP"
	default:
		return "INPUT"
	}
}
