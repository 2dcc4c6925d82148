// internal/api/generate.go
package api

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"report-writer/internal/common/errors"
	"report-writer/internal/common/logger"
	"report-writer/internal/report/generator"
)

// GenerateHandler serves the generation backend contract: a wire request in,
// {report} out.
type GenerateHandler struct {
	generator generator.Generator
	timeout   time.Duration
	logger    logger.Logger
}

func NewGenerateHandler(gen generator.Generator, timeout time.Duration, log logger.Logger) *GenerateHandler {
	return &GenerateHandler{generator: gen, timeout: timeout, logger: log}
}

// POST /api/generate-report
func (h *GenerateHandler) GenerateReport(c *gin.Context) {
	req, ok := bindWireRequest(c)
	if !ok {
		return
	}
	req.RequestID = c.GetHeader("X-Request-ID")
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.generator.Generate(ctx, req)
	if err != nil {
		h.logger.Error("report generation failed", map[string]interface{}{
			"templateId": string(req.TemplateID),
			"requestId":  req.RequestID,
			"error":      err,
		})
		RespondError(c, generationError(err, h.timeout))
		return
	}
	RespondOK(c, generator.Result{Report: res.Report})
}

// generationError converts a generator failure to a StandardError whose message
// is the most useful one available.
func generationError(err error, timeout time.Duration) *errors.StandardError {
	var se *errors.StandardError
	if stderrors.Is(err, generator.ErrGenerationTimeout) {
		se = errors.NewGenerationTimeoutError(timeout)
	} else {
		se = errors.NewGenerationFailedError(err)
	}
	if msg := generator.Message(err); msg != "" {
		se.Message = msg
	}
	return se
}
