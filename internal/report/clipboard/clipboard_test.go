// internal/report/clipboard/clipboard_test.go
package clipboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisWriteRead(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()

	cb := NewRedis(client, Key("report-writer:clipboard", "s-1"), time.Hour)

	_, err := cb.Read(ctx)
	assert.True(t, errors.Is(err, ErrEmpty))

	report := "EICR REPORT\n\nSection 1: ...\n  indented line  "
	require.NoError(t, cb.Write(ctx, report))

	got, err := cb.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, report, got, "copied verbatim")

	assert.True(t, mr.Exists("report-writer:clipboard:s-1"))
	assert.Equal(t, time.Hour, mr.TTL("report-writer:clipboard:s-1"))
}

func TestRedisExpiry(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()

	cb := NewRedis(client, "k", time.Minute)
	require.NoError(t, cb.Write(ctx, "text"))

	mr.FastForward(2 * time.Minute)
	_, err := cb.Read(ctx)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestRedisClear(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()

	cb := NewRedis(client, "k", 0)
	require.NoError(t, cb.Write(ctx, "text"))
	require.NoError(t, cb.Clear(ctx))

	_, err := cb.Read(ctx)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestRedisWriteFailure(t *testing.T) {
	_, client := setupRedis(t)
	require.NoError(t, client.Close())

	err := NewRedis(client, "k", 0).Write(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard write")
}
