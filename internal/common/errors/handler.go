// internal/common/errors/handler.go
package errors

import (
	"time"
)

// Envelope is the JSON error body returned by every endpoint. The API keeps
// HTTP 200 for business failures and reports them through success:false, so
// the front-end only ever parses one shape.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandler converts arbitrary errors into response envelopes.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Envelope normalizes err and produces the JSON body for the response.
func (h *ErrorHandler) Envelope(err error) Envelope {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"code":      string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	return Envelope{
		Success: false,
		Error:   stdErr.Message,
		Code:    string(stdErr.Code),
	}
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
