//go:build e2e

// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-writer/internal/app"
	"report-writer/internal/common/config"
	"report-writer/internal/common/database"
	"report-writer/internal/common/logger"
	"report-writer/internal/report/notify"
)

// These tests run against real Redis and PostgreSQL:
//
//	E2E_REDIS_ADDR=localhost:6379 E2E_POSTGRES_HOST=localhost go test -tags e2e ./test/e2e/...

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func e2eConfig(t *testing.T, generatorURL string) *config.Config {
	t.Helper()
	if os.Getenv("E2E_REDIS_ADDR") == "" || os.Getenv("E2E_POSTGRES_HOST") == "" {
		t.Skip("E2E_REDIS_ADDR and E2E_POSTGRES_HOST must be set")
	}
	port, err := strconv.Atoi(getEnv("E2E_POSTGRES_PORT", "5432"))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Generator.Mode = config.GeneratorModeRemote
	cfg.Generator.Endpoint = generatorURL
	cfg.Database.Redis.Address = os.Getenv("E2E_REDIS_ADDR")
	cfg.Database.Postgres = config.PostgresConfig{
		Host:           os.Getenv("E2E_POSTGRES_HOST"),
		Port:           port,
		Database:       getEnv("E2E_POSTGRES_DB", "report_writer"),
		User:           getEnv("E2E_POSTGRES_USER", "postgres"),
		Password:       getEnv("E2E_POSTGRES_PASSWORD", "postgres"),
		MaxConnections: 5,
		MaxIdle:        1,
		SSLMode:        "disable",
	}
	cfg.Audit.Enabled = true
	cfg.Audit.Table = fmt.Sprintf("e2e_attempts_%d", time.Now().UnixNano())
	cfg.Notifications.Backend = config.NotifierRedis
	cfg.Notifications.ChannelPrefix = "e2e:notifications"
	cfg.Clipboard.Backend = config.ClipboardRedis
	cfg.Clipboard.KeyPrefix = "e2e:clipboard"
	return cfg
}

func call(t *testing.T, base, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, base+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestReportLifecycle(t *testing.T) {
	attempts := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model overloaded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"report":"EV CHARGER INSTALLATION REPORT"}`))
	}))
	defer backend.Close()

	ctx := context.Background()
	cfg := e2eConfig(t, backend.URL)
	log := logger.NewTestLogger(t)

	a, err := app.New(ctx, cfg, log)
	require.NoError(t, err)
	defer a.Close(ctx)

	db, err := database.NewPostgres(ctx, cfg.Database.Postgres)
	require.NoError(t, err)
	defer db.Close()
	defer db.ExecContext(ctx, "DROP TABLE IF EXISTS "+cfg.Audit.Table)

	rdb, err := database.NewRedis(ctx, cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()

	server := httptest.NewServer(a.Router)
	defer server.Close()

	code, body := call(t, server.URL, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, code)
	id := body["session"].(map[string]any)["id"].(string)

	sub := rdb.Subscribe(ctx, cfg.Notifications.ChannelPrefix+":"+id)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	code, _ = call(t, server.URL, http.MethodPut, "/api/sessions/"+id+"/template", map[string]string{"template": "ev-charger"})
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, server.URL, http.MethodPut, "/api/sessions/"+id+"/notes", map[string]string{"notes": "tethered unit"})
	require.Equal(t, http.StatusOK, code)

	t.Run("backend failure surfaces its message", func(t *testing.T) {
		code, body := call(t, server.URL, http.MethodPost, "/api/sessions/"+id+"/generate", nil)
		assert.Equal(t, http.StatusBadGateway, code)
		assert.Equal(t, "Model overloaded", body["error"].(map[string]any)["message"])

		n := receive(t, sub)
		assert.Equal(t, notify.LevelError, n.Level)
	})

	t.Run("retry succeeds and copies", func(t *testing.T) {
		code, body := call(t, server.URL, http.MethodPost, "/api/sessions/"+id+"/generate", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "EV CHARGER INSTALLATION REPORT", body["report"])
		assert.Equal(t, notify.LevelSuccess, receive(t, sub).Level)

		code, _ = call(t, server.URL, http.MethodPost, "/api/sessions/"+id+"/copy", nil)
		require.Equal(t, http.StatusOK, code)

		text, err := rdb.Get(ctx, cfg.Clipboard.KeyPrefix+":"+id).Result()
		require.NoError(t, err)
		assert.Equal(t, "EV CHARGER INSTALLATION REPORT", text)
	})

	t.Run("attempts are audited", func(t *testing.T) {
		rows, err := db.QueryContext(ctx,
			"SELECT status, COALESCE(error_code, ''), has_notes FROM "+cfg.Audit.Table+" WHERE session_id = $1 ORDER BY started_at", id)
		require.NoError(t, err)
		defer rows.Close()

		type row struct {
			status, code string
			notes        bool
		}
		var got []row
		for rows.Next() {
			var r row
			require.NoError(t, rows.Scan(&r.status, &r.code, &r.notes))
			got = append(got, r)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []row{
			{status: "failed", code: "GENERATION_FAILED", notes: true},
			{status: "succeeded", notes: true},
		}, got)
	})

	code, body = call(t, server.URL, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
}

func receive(t *testing.T, sub *redis.PubSub) notify.Notification {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var n notify.Notification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &n))
	return n
}
