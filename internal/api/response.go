// internal/api/response.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"report-writer/internal/common/errors"
	"report-writer/internal/common/metrics"
)

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err as an error envelope with the status its code maps to.
func RespondError(c *gin.Context, err error) {
	se := errors.Normalize(err)
	body := APIError{
		Code:    string(se.Code),
		Message: se.Message,
		Details: se.Details,
	}
	if fields, ok := se.Metadata["fields"].(map[string]string); ok {
		body.Fields = fields
	}
	metrics.APIErrors.WithLabelValues(string(se.Code), errors.GetErrorCategory(se.Code)).Inc()
	c.AbortWithStatusJSON(errors.HTTPStatus(se.Code), ErrorEnvelope{Error: body})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// bindJSON decodes the body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, errors.NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}
