package otelmetrics

import (
	"context"
	"time"

	"notification-dispatch-service/internal/dispatch/core/domain"
	"notification-dispatch-service/internal/dispatch/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for dispatch metrics.
const meterName = "notification-dispatch-service/internal/dispatch"

// Recorder records per-dispatch metrics.
//
// Instruments:
//   - dispatch.email.duration (Float64Histogram): dispatch time in seconds,
//     with attributes: bundle, application, outcome
//   - dispatch.email.attempts (Int64Counter): total dispatch attempts,
//     with the same attributes
type Recorder struct {
	duration metric.Float64Histogram
	attempts metric.Int64Counter
}

// NewRecorder uses the global OTel MeterProvider. If no MeterProvider is
// configured, noop instruments are used and recording is a pass-through.
func NewRecorder() *Recorder {
	return NewRecorderWithMeter(otel.Meter(meterName))
}

// NewRecorderWithMeter allows injecting a specific meter for testing.
func NewRecorderWithMeter(meter metric.Meter) *Recorder {
	duration, dErr := meter.Float64Histogram(
		"dispatch.email.duration",
		metric.WithDescription("Duration of one notification dispatch in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	attempts, aErr := meter.Int64Counter(
		"dispatch.email.attempts",
		metric.WithDescription("Total number of notification dispatch attempts"),
		metric.WithUnit("{dispatch}"),
	)
	_ = aErr

	return &Recorder{duration: duration, attempts: attempts}
}

var _ ports.DispatchMetricsPort = (*Recorder)(nil)

// RecordDispatch is safe for concurrent use; OTel instruments synchronize
// internally.
func (r *Recorder) RecordDispatch(ctx context.Context, elapsed time.Duration, bundle, application string, outcome domain.Outcome) {
	attrs := metric.WithAttributes(
		attribute.String("bundle", bundle),
		attribute.String("application", application),
		attribute.String("outcome", string(outcome)),
	)

	r.duration.Record(ctx, elapsed.Seconds(), attrs)
	r.attempts.Add(ctx, 1, attrs)
}
