// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportGenerationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_generations_completed_total",
			Help: "Total number of reports generated successfully",
		},
		[]string{"template", "backend"},
	)

	ReportGenerationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_generations_failed_total",
			Help: "Total number of report generation attempts that failed",
		},
		[]string{"template", "backend", "error_code"},
	)

	ReportGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_generation_duration_seconds",
			Help:    "Duration of report generation calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"template", "backend"},
	)

	ReportGenerationsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "report_generations_active",
			Help: "Number of generation calls currently in flight",
		},
		[]string{"backend"},
	)

	GenerationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_generations_rejected_total",
			Help: "Generate actions refused before any outbound call",
		},
		[]string{"reason"},
	)

	APIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_api_errors_total",
			Help: "Error responses by code and category",
		},
		[]string{"code", "category"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "report_sessions_active",
			Help: "Number of report writing sessions held in memory",
		},
	)

	ClipboardCopies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_clipboard_copies_total",
			Help: "Copy-to-clipboard actions by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_notifications_total",
			Help: "User notifications emitted by level",
		},
		[]string{"backend", "level"},
	)
)
