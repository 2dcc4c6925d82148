// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	orig := NewNoReportError()
	wrapped := fmt.Errorf("copy: %w", orig)
	assert.Same(t, orig, Normalize(wrapped))

	plain := Normalize(fmt.Errorf("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := NewNoReportError()
	err := fmt.Errorf("copy: %w", NewNoReportError())

	assert.True(t, stderrors.Is(err, sentinel))
	assert.False(t, stderrors.Is(err, NewGenerationInProgressError()))
	assert.False(t, stderrors.Is(err, stderrors.New("NO_REPORT")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeTemplateNotFound, http.StatusBadRequest},
		{ErrCodeInvalidFieldValue, http.StatusBadRequest},
		{ErrCodeSessionNotFound, http.StatusNotFound},
		{ErrCodeGenerationInProgress, http.StatusConflict},
		{ErrCodeGenerationPrecondition, http.StatusUnprocessableEntity},
		{ErrCodeGenerationTimeout, http.StatusGatewayTimeout},
		{ErrCodeGenerationFailed, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestConstructors(t *testing.T) {
	timeout := NewGenerationTimeoutError(2 * time.Minute)
	assert.True(t, timeout.Retryable)
	assert.Contains(t, timeout.Details, "2m0s")

	v := NewFormValidationFailedError(map[string]string{"clientName": "Client Name is required"})
	assert.False(t, v.Retryable)
	assert.Equal(t, map[string]string{"clientName": "Client Name is required"}, v.Metadata["fields"])
	assert.Equal(t, "validation", GetErrorCategory(v.Code))
	assert.Equal(t, "StandardError[FORM_VALIDATION_FAILED]: Form has missing or invalid fields", v.Error())
}
