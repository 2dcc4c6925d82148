// internal/report/notify/redis.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"report-writer/internal/common/metrics"
)

const BackendRedis = "redis"

// RedisNotifier publishes notifications as JSON on a per-session channel so a
// UI can subscribe to them.
type RedisNotifier struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisNotifier(client redis.UniversalClient, channelPrefix string) *RedisNotifier {
	return &RedisNotifier{client: client, prefix: channelPrefix}
}

// Channel is where notifications for sessionID are published.
func (r *RedisNotifier) Channel(sessionID string) string {
	if sessionID == "" {
		return r.prefix
	}
	return r.prefix + ":" + sessionID
}

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := r.client.Publish(ctx, r.Channel(n.SessionID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	metrics.NotificationsSent.WithLabelValues(BackendRedis, string(n.Level)).Inc()
	return nil
}
