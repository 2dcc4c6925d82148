// internal/app/app_test.go
package app

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-writer/internal/common/config"
	"report-writer/internal/common/logger"
	"report-writer/internal/report/generator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Helpers
// ==========================

func testConfig(t *testing.T, endpoint string) *config.Config {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Generator.Mode = config.GeneratorModeRemote
	cfg.Generator.Endpoint = endpoint
	cfg.Generator.Timeout = 5000
	cfg.Database.Redis.Address = mr.Addr()
	cfg.Clipboard.Backend = config.ClipboardRedis
	cfg.Notifications.Backend = config.NotifierRedis
	cfg.Tracing.Enabled = false
	cfg.Audit.Enabled = false
	return cfg
}

func do(t *testing.T, h http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

// ==========================
// End to end
// ==========================

func TestSessionFlowOverHTTP(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var wire generator.WireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wire))
		assert.Equal(t, "rcd-test", wire.Template)
		assert.Equal(t, "Kitchen board", wire.FormData["rcdLocation"])
		assert.Equal(t, "tripped at 18ms", wire.AdditionalNotes)
		_, _ = w.Write([]byte(`{"report":"RCD TEST REPORT"}`))
	}))
	defer backend.Close()

	ctx := context.Background()
	a, err := New(ctx, testConfig(t, backend.URL), logger.NewTestLogger(t))
	require.NoError(t, err)
	defer a.Close(ctx)

	code, body := do(t, a.Router, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, code)
	id := body["session"].(map[string]any)["id"].(string)
	require.NotEmpty(t, id)

	code, _ = do(t, a.Router, http.MethodPut, "/api/sessions/"+id+"/template", map[string]string{"template": "rcd-test"})
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, a.Router, http.MethodPatch, "/api/sessions/"+id+"/fields", map[string]any{
		"fields": map[string]string{"rcdLocation": "Kitchen board"},
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, a.Router, http.MethodPut, "/api/sessions/"+id+"/notes", map[string]string{"notes": "tripped at 18ms"})
	require.Equal(t, http.StatusOK, code)

	code, body = do(t, a.Router, http.MethodPost, "/api/sessions/"+id+"/generate", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "RCD TEST REPORT", body["report"])
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	code, _ = do(t, a.Router, http.MethodGet, "/api/sessions/"+id+"/clipboard", nil)
	assert.Equal(t, http.StatusConflict, code, "nothing copied yet")

	code, body = do(t, a.Router, http.MethodPost, "/api/sessions/"+id+"/copy", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["session"].(map[string]any)["copied"])

	code, body = do(t, a.Router, http.MethodGet, "/api/sessions/"+id+"/clipboard", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "RCD TEST REPORT", body["text"])

	code, _ = do(t, a.Router, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = do(t, a.Router, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReadinessReportsRedis(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t, "http://127.0.0.1:0"), logger.NewTestLogger(t))
	require.NoError(t, err)
	defer a.Close(ctx)

	code, body := do(t, a.Router, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "ok", body["checks"].(map[string]any)["redis"])
}

func TestGenerateEndpointOnlyWithGenAI(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, "http://127.0.0.1:0")
	cfg.APIs.GenAI.BaseURL = ""

	a, err := New(ctx, cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer a.Close(ctx)

	code, _ := do(t, a.Router, http.MethodPost, "/api/generate-report", map[string]any{"template": "eicr"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBuildGenerator(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		wantBackend string
	}{
		{name: "remote", mode: config.GeneratorModeRemote, wantBackend: generator.BackendRemote},
		{name: "genai", mode: config.GeneratorModeGenAI, wantBackend: generator.BackendGenAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Generator.Mode = tt.mode
			gen, backend := BuildGenerator(cfg, logger.NewNoOpLogger())
			assert.NotNil(t, gen)
			assert.Equal(t, tt.wantBackend, backend)
		})
	}
}

func TestNewFailsWhenRedisUnreachable(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:0")
	cfg.Database.Redis.Address = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := New(ctx, cfg, logger.NewNoOpLogger())
	require.Error(t, err)
}

// ==========================
// Retry
// ==========================

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		retries   int
		wantErr   bool
		wantCalls int
	}{
		{name: "first try", failures: 0, retries: 3, wantCalls: 1},
		{name: "succeeds after failures", failures: 2, retries: 3, wantCalls: 3},
		{name: "gives up", failures: 5, retries: 3, wantErr: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retryWithBackoff(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return stderrors.New("connection refused")
				}
				return nil
			}, tt.retries, time.Millisecond, logger.NewNoOpLogger(), "test op")

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "test op failed after 3 attempts")
				assert.Contains(t, err.Error(), "connection refused")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRetryWithBackoffStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retryWithBackoff(ctx, func() error {
		calls++
		return stderrors.New("down")
	}, 5, time.Hour, logger.NewNoOpLogger(), "test op")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
