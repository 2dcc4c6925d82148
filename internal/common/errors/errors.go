// Package errors provides standardized error handling for the report writer.
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
	ErrCodeTemplateNotFound       ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeUnknownField           ErrorCode = "UNKNOWN_FIELD"
	ErrCodeInvalidFieldValue      ErrorCode = "INVALID_FIELD_VALUE"
	ErrCodeFormValidationFailed   ErrorCode = "FORM_VALIDATION_FAILED"
	ErrCodeGenerationPrecondition ErrorCode = "GENERATION_PRECONDITION"
	ErrCodeGenerationInProgress   ErrorCode = "GENERATION_IN_PROGRESS"
	ErrCodeGenerationTimeout      ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeGenerationFailed       ErrorCode = "GENERATION_FAILED"
	ErrCodeNoReport               ErrorCode = "NO_REPORT"
	ErrCodeClipboardFailed        ErrorCode = "CLIPBOARD_FAILED"
	ErrCodeSessionNotFound        ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	ErrCodeAuditInsertFailed      ErrorCode = "AUDIT_INSERT_FAILED"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
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

// Is matches any StandardError with the same code, so package-level values can
// serve as sentinels for errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// WithMetadata attaches a key to the error's metadata and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateNotFoundError creates a non-retryable unknown template error.
func NewTemplateNotFoundError(templateID string) *StandardError {
	return newError(ErrCodeTemplateNotFound, "Unknown report template", fmt.Sprintf("template: %s", templateID), false)
}

// NewUnknownFieldError is returned when a form is asked to set a field it does not declare.
func NewUnknownFieldError(templateID, field string) *StandardError {
	return newError(ErrCodeUnknownField, "Field is not part of this template",
		fmt.Sprintf("template: %s, field: %s", templateID, field), false)
}

// NewInvalidFieldValueError is returned for a choice value outside the field's options.
func NewInvalidFieldValueError(field, value string) *StandardError {
	return newError(ErrCodeInvalidFieldValue, "Value is not an allowed option",
		fmt.Sprintf("field: %s, value: %s", field, value), false)
}

// NewFormValidationFailedError carries the per-field messages in Metadata["fields"].
func NewFormValidationFailedError(fields map[string]string) *StandardError {
	e := newError(ErrCodeFormValidationFailed, "Form has missing or invalid fields", "", false)
	return e.WithMetadata("fields", fields)
}

// NewGenerationPreconditionError is returned when generation is requested before a template and form exist.
func NewGenerationPreconditionError(details string) *StandardError {
	return newError(ErrCodeGenerationPrecondition, "Please select a template and fill in the form", details, false)
}

// NewGenerationInProgressError rejects a second generation while one is running.
func NewGenerationInProgressError() *StandardError {
	return newError(ErrCodeGenerationInProgress, "A report is already being generated", "", true)
}

// NewGenerationTimeoutError creates a retryable generation timeout error.
func NewGenerationTimeoutError(timeout time.Duration) *StandardError {
	return newError(ErrCodeGenerationTimeout, "Report generation timed out",
		fmt.Sprintf("timeout: %s", timeout), true)
}

// NewGenerationFailedError creates a retryable generation backend error.
func NewGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeGenerationFailed, "Report generation failed", err.Error(), true)
}

// NewNoReportError is returned when copying before a report exists.
func NewNoReportError() *StandardError {
	return newError(ErrCodeNoReport, "No report has been generated yet", "", false)
}

// NewClipboardFailedError wraps a clipboard write failure.
func NewClipboardFailedError(err error) *StandardError {
	return newError(ErrCodeClipboardFailed, "Could not copy report", err.Error(), true)
}

// NewSessionNotFoundError creates a non-retryable missing session error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Session not found", fmt.Sprintf("session: %s", sessionID), false)
}

// NewInvalidRequestError creates a non-retryable malformed request error.
func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request", details, false)
}

// NewAuditInsertFailedError creates a retryable audit insert error.
func NewAuditInsertFailedError(err error) *StandardError {
	return newError(ErrCodeAuditInsertFailed, "Audit insert failed", err.Error(), true)
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}
