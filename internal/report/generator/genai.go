// internal/report/generator/genai.go
package generator

import (
	"context"
	"fmt"
	"strings"

	apphttp "report-writer/internal/common/http"
	"report-writer/internal/common/logger"
	"report-writer/internal/report/prompt"
)

const BackendGenAI = "genai"

type GenAIConfig struct {
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float64
}

// GenAIClient assembles the prompt locally and asks a text generation API to
// write the report.
type GenAIClient struct {
	config *GenAIConfig
	client *apphttp.Client
	logger logger.Logger
}

func NewGenAIClient(config *GenAIConfig, client *apphttp.Client, log logger.Logger) *GenAIClient {
	if client == nil {
		client = apphttp.NewClient(0)
	}
	return &GenAIClient{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{"backend": BackendGenAI}),
	}
}

type genAIRequest struct {
	Prompt      string                 `json:"prompt"`
	Context     map[string]interface{} `json:"context"`
	MaxTokens   int                    `json:"max_tokens"`
	Temperature float64                `json:"temperature"`
}

type genAIResponse struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

func (c *GenAIClient) Generate(ctx context.Context, req Request) (Result, error) {
	body := genAIRequest{
		Prompt: prompt.Assemble(req.Fields, req.Notes),
		Context: map[string]interface{}{
			"template":  string(req.TemplateID),
			"requestId": req.RequestID,
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.config.APIKey
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/api/ai/generate"
	resp, err := c.client.PostJSON(ctx, url, headers, body)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, contextError(ctx, err)
		}
		return Result{}, unreachable(err)
	}
	if !resp.OK() {
		return Result{}, failed(resp.StatusCode, backendMessage(resp.Body))
	}

	var apiResponse genAIResponse
	if err := resp.Decode(&apiResponse); err != nil {
		return Result{}, &GenerationError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: decode error: %v", ErrGenerationFailed, err),
		}
	}
	if strings.TrimSpace(apiResponse.Text) == "" {
		return Result{}, failed(resp.StatusCode, "The generator returned an empty report.")
	}

	c.logger.Info("report synthesised", map[string]interface{}{
		"template":     string(req.TemplateID),
		"requestId":    req.RequestID,
		"promptLength": len(body.Prompt),
		"confidence":   apiResponse.Confidence,
	})
	return Result{Report: apiResponse.Text}, nil
}
