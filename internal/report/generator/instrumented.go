// internal/report/generator/instrumented.go
package generator

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"report-writer/internal/common/metrics"
)

const tracerName = "report-writer/generator"

// Instrumented records prometheus metrics and a span around another Generator.
type Instrumented struct {
	next    Generator
	backend string
}

func Instrument(next Generator, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

func (g *Instrumented) Generate(ctx context.Context, req Request) (Result, error) {
	template := string(req.TemplateID)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "report.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("report.template", template),
			attribute.String("report.backend", g.backend),
			attribute.String("report.request_id", req.RequestID),
		),
	)
	defer span.End()

	active := metrics.ReportGenerationsActive.WithLabelValues(g.backend)
	active.Inc()
	defer active.Dec()

	start := time.Now()
	res, err := g.next.Generate(ctx, req)
	metrics.ReportGenerationDuration.WithLabelValues(template, g.backend).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrorCode(err))
		metrics.ReportGenerationsFailed.WithLabelValues(template, g.backend, ErrorCode(err)).Inc()
		return res, err
	}
	metrics.ReportGenerationsCompleted.WithLabelValues(template, g.backend).Inc()
	span.SetAttributes(attribute.Int("report.length", len(res.Report)))
	return res, nil
}

// ErrorCode names the sentinel behind err for labels and audit rows.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrGenerationTimeout):
		return ErrGenerationTimeout.Error()
	case errors.Is(err, ErrGenerationFailed):
		return ErrGenerationFailed.Error()
	default:
		return "UNKNOWN"
	}
}
