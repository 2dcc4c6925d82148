// internal/report/notify/log.go
package notify

import (
	"context"

	"report-writer/internal/common/logger"
	"report-writer/internal/common/metrics"
)

const BackendLog = "log"

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log.With(map[string]interface{}{"component": "notifier"})}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	fields := map[string]interface{}{
		"sessionId": n.SessionID,
		"title":     n.Title,
		"message":   n.Message,
		"blocking":  n.Blocking,
	}
	switch n.Level {
	case LevelError:
		l.logger.Error("notification", fields)
	case LevelWarning:
		l.logger.Warn("notification", fields)
	default:
		l.logger.Info("notification", fields)
	}
	metrics.NotificationsSent.WithLabelValues(BackendLog, string(n.Level)).Inc()
	return nil
}
