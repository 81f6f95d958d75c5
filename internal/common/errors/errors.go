// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeModelNotAvailable    ErrorCode = "MODEL_NOT_AVAILABLE"
	ErrCodeArtifactLoadFailed   ErrorCode = "ARTIFACT_LOAD_FAILED"
	ErrCodeArtifactInconsistent ErrorCode = "ARTIFACT_INCONSISTENT"

	ErrCodePredictionFailed ErrorCode = "PREDICTION_FAILED"
	ErrCodeNotCertifiable   ErrorCode = "NOT_CERTIFIABLE"

	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeInvalidSectionType ErrorCode = "INVALID_SECTION_TYPE"

	ErrCodeGenAITimeout      ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIUnavailable  ErrorCode = "GENAI_UNAVAILABLE"
	ErrCodeGenAIEmptyResult  ErrorCode = "GENAI_EMPTY_RESULT"
	ErrCodeGenAICallFailed   ErrorCode = "GENAI_CALL_FAILED"
	ErrCodeAuditInsertFailed ErrorCode = "AUDIT_INSERT_FAILED"
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

// NewModelNotAvailableError signals the degraded app-wide state after a
// failed artifact load.
func NewModelNotAvailableError(reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelNotAvailable,
		Message:   "Model not available",
		Details:   reason,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArtifactLoadError wraps a failure while reading the artifact bundle.
func NewArtifactLoadError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactLoadFailed,
		Message:   "Failed to load model artifact",
		Details:   fmt.Sprintf("%s: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArtifactInconsistentError flags a bundle whose pieces disagree.
func NewArtifactInconsistentError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactInconsistent,
		Message:   "Model artifact bundle is inconsistent",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPredictionError wraps an inference failure.
func NewPredictionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePredictionFailed,
		Message:   "Prediction error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError is returned when a session id is unknown or expired.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   sessionID,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError wraps a session backend failure.
func NewSessionStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError reports a malformed request body.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSectionTypeError reports an unknown narrative section.
func NewInvalidSectionTypeError(sectionType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSectionType,
		Message:   "Invalid section requested",
		Details:   sectionType,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAITimeoutError is a retryable text-generation timeout.
func NewGenAITimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Text generation timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAICallError wraps any other text-generation failure.
func NewGenAICallError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAICallFailed,
		Message:   "Text generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
