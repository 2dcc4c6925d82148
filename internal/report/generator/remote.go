// internal/report/generator/remote.go
package generator

import (
	"context"
	"fmt"
	"strings"

	apphttp "report-writer/internal/common/http"
	"report-writer/internal/common/logger"
)

const BackendRemote = "remote"

type RemoteConfig struct {
	Endpoint string
	APIKey   string
}

// RemoteClient posts the wire request to the report generation endpoint.
type RemoteClient struct {
	config *RemoteConfig
	client *apphttp.Client
	logger logger.Logger
}

// NewRemoteClient builds a client whose deadline comes from the caller's context.
func NewRemoteClient(config *RemoteConfig, client *apphttp.Client, log logger.Logger) *RemoteClient {
	if client == nil {
		client = apphttp.NewClient(0)
	}
	return &RemoteClient{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{"backend": BackendRemote}),
	}
}

func (c *RemoteClient) Generate(ctx context.Context, req Request) (Result, error) {
	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.config.APIKey
	}

	resp, err := c.client.PostJSON(ctx, c.config.Endpoint, headers, req.Wire())
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, contextError(ctx, err)
		}
		return Result{}, unreachable(err)
	}

	if !resp.OK() {
		msg := backendMessage(resp.Body)
		c.logger.Warn("generation endpoint returned an error status", map[string]interface{}{
			"status":     resp.StatusCode,
			"requestId":  req.RequestID,
			"hasMessage": msg != "",
		})
		return Result{}, failed(resp.StatusCode, msg)
	}

	var body WireResponse
	if err := resp.Decode(&body); err != nil {
		return Result{}, &GenerationError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: decode error: %v", ErrGenerationFailed, err),
		}
	}
	if len(body.Error) > 0 && string(body.Error) != "null" {
		return Result{}, failed(resp.StatusCode, backendMessage(resp.Body))
	}
	if strings.TrimSpace(body.Report) == "" {
		return Result{}, failed(resp.StatusCode, "")
	}

	c.logger.Info("report generated", map[string]interface{}{
		"requestId":    req.RequestID,
		"reportLength": len(body.Report),
	})
	return Result{Report: body.Report}, nil
}
