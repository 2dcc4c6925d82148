// internal/common/observability/tracing_test.go
package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-writer/internal/common/config"
	"report-writer/internal/common/logger"
)

func TestNewTracingDisabled(t *testing.T) {
	tr, err := NewTracing(context.Background(), config.AppConfig{Name: "report-writer"},
		config.TracingConfig{Enabled: false}, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Nil(t, tr.provider)
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNewTracingStdout(t *testing.T) {
	tr, err := NewTracing(context.Background(), config.AppConfig{Name: "report-writer", Version: "test"},
		config.TracingConfig{Enabled: true, Exporter: config.TraceExporterStdout, SampleRatio: 1},
		logger.NewTestLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tr.provider)
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNilSafety(t *testing.T) {
	var tr *Tracing
	assert.NoError(t, tr.Shutdown(context.Background()))

	var o *Observability
	o.RecordRequest(context.Background(), "GET", "/health", 200, 0)
	assert.NoError(t, o.Shutdown(context.Background()))
}
