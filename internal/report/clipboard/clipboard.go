// internal/report/clipboard/clipboard.go
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	sysclip "github.com/atotto/clipboard"
	"github.com/redis/go-redis/v9"
)

// ErrEmpty is returned by Read when nothing has been copied.
var ErrEmpty = errors.New("clipboard is empty")

// Writer places text on a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// Reader returns what was last copied.
type Reader interface {
	Read(ctx context.Context) (string, error)
}

// System uses the host's clipboard. It needs xclip/xsel/wl-clipboard on Linux.
type System struct{}

func (System) Write(ctx context.Context, text string) error {
	if sysclip.Unsupported {
		return errors.New("system clipboard is not available on this host")
	}
	return sysclip.WriteAll(text)
}

func (System) Read(ctx context.Context) (string, error) {
	if sysclip.Unsupported {
		return "", errors.New("system clipboard is not available on this host")
	}
	return sysclip.ReadAll()
}

// Redis keeps a per-session clipboard under one key so a remote UI can fetch
// the copied text.
type Redis struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl}
}

// Key builds the clipboard key of a session.
func Key(prefix, sessionID string) string {
	return prefix + ":" + sessionID
}

func (r *Redis) Write(ctx context.Context, text string) error {
	if err := r.client.Set(ctx, r.key, text, r.ttl).Err(); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

func (r *Redis) Read(ctx context.Context) (string, error) {
	text, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrEmpty
	}
	if err != nil {
		return "", fmt.Errorf("clipboard read: %w", err)
	}
	return text, nil
}

// Clear drops the session's clipboard entry.
func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
