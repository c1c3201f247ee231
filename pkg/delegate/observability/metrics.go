package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records delegate metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegister records one registration.
	RecordRegister(ctx context.Context, name string)

	// RecordRemove records a removal by handle and how many entries it dropped.
	RecordRemove(ctx context.Context, name string, removed int)

	// RecordNotify records a notification and its duration. entries is the
	// count registered when the notification started; it is recorded as
	// fan-out only when no callback panicked.
	RecordNotify(ctx context.Context, name string, entries int, duration time.Duration, panicked bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations metric.Int64Counter
	removals      metric.Int64Counter
	notifications metric.Int64Counter
	panics        metric.Int64Counter
	fanout        metric.Int64Histogram
	latency       metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("delegate")

	registrations, err := meter.Int64Counter("delegate.registrations",
		metric.WithDescription("Number of registered callbacks"),
	)
	if err != nil {
		return nil, err
	}

	removals, err := meter.Int64Counter("delegate.removals",
		metric.WithDescription("Number of callbacks removed by handle"),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter("delegate.notifications",
		metric.WithDescription("Number of NotifyAll calls"),
	)
	if err != nil {
		return nil, err
	}

	panics, err := meter.Int64Counter("delegate.notify.panics",
		metric.WithDescription("Number of notifications cut short by a panicking callback"),
	)
	if err != nil {
		return nil, err
	}

	fanout, err := meter.Int64Histogram("delegate.notify.fanout",
		metric.WithDescription("Entries registered at notification start, for notifications that completed"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("delegate.notify.latency_ms",
		metric.WithDescription("Notification latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations: registrations,
		removals:      removals,
		notifications: notifications,
		panics:        panics,
		fanout:        fanout,
		latency:       latency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRegister records a registration.
func (m *otelMetrics) RecordRegister(ctx context.Context, name string) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("delegate", name)))
}

// RecordRemove records a removal.
func (m *otelMetrics) RecordRemove(ctx context.Context, name string, removed int) {
	m.removals.Add(ctx, int64(removed), metric.WithAttributes(attribute.String("delegate", name)))
}

// RecordNotify records a notification.
func (m *otelMetrics) RecordNotify(ctx context.Context, name string, entries int, duration time.Duration, panicked bool) {
	attrs := metric.WithAttributes(attribute.String("delegate", name))

	m.notifications.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if panicked {
		m.panics.Add(ctx, 1, attrs)
		return
	}
	m.fanout.Record(ctx, int64(entries), attrs)
}
