// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
	"net/http"
)

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsStandardError reports whether err already carries an application code.
func IsStandardError(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr)
}

// HTTPStatus maps an error code to the status the API answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeTemplateNotFound, ErrCodeUnknownField, ErrCodeInvalidFieldValue, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeGenerationInProgress, ErrCodeNoReport:
		return http.StatusConflict
	case ErrCodeFormValidationFailed, ErrCodeGenerationPrecondition:
		return http.StatusUnprocessableEntity
	case ErrCodeGenerationTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeGenerationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups codes for metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeTemplateNotFound, ErrCodeUnknownField, ErrCodeInvalidFieldValue,
		ErrCodeFormValidationFailed, ErrCodeInvalidRequest:
		return "validation"
	case ErrCodeGenerationPrecondition, ErrCodeGenerationInProgress, ErrCodeNoReport, ErrCodeSessionNotFound:
		return "state"
	case ErrCodeGenerationTimeout, ErrCodeGenerationFailed:
		return "generator"
	case ErrCodeClipboardFailed, ErrCodeAuditInsertFailed:
		return "infrastructure"
	default:
		return "internal"
	}
}
