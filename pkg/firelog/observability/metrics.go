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

// MetricsRecorder records delivery-pipeline metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordPosted records an event accepted by PostEvent.
	RecordPosted(ctx context.Context, eventName string)

	// RecordQueueDrop records an event dropped because the queue was full.
	RecordQueueDrop(ctx context.Context, eventName string)

	// RecordDelivery records a delivery attempt with its duration and
	// error status.
	RecordDelivery(ctx context.Context, stream string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	posted          metric.Int64Counter
	queueDrops      metric.Int64Counter
	deliveries      metric.Int64Counter
	deliveryErrors  metric.Int64Counter
	deliveryLatency metric.Float64Histogram
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
	meter := otel.Meter("firelog")

	posted, err := meter.Int64Counter("firelog.events.posted",
		metric.WithDescription("Number of events accepted by PostEvent"),
	)
	if err != nil {
		return nil, err
	}

	queueDrops, err := meter.Int64Counter("firelog.queue.drops",
		metric.WithDescription("Number of events dropped because the queue was full"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter("firelog.deliveries",
		metric.WithDescription("Number of delivery attempts"),
	)
	if err != nil {
		return nil, err
	}

	deliveryErrors, err := meter.Int64Counter("firelog.delivery.errors",
		metric.WithDescription("Number of failed deliveries (records discarded)"),
	)
	if err != nil {
		return nil, err
	}

	deliveryLatency, err := meter.Float64Histogram("firelog.delivery.latency_ms",
		metric.WithDescription("Delivery latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		posted:          posted,
		queueDrops:      queueDrops,
		deliveries:      deliveries,
		deliveryErrors:  deliveryErrors,
		deliveryLatency: deliveryLatency,
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

// RecordPosted records an accepted event.
func (m *otelMetrics) RecordPosted(ctx context.Context, eventName string) {
	m.posted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_name", eventName),
	))
}

// RecordQueueDrop records a dropped event.
func (m *otelMetrics) RecordQueueDrop(ctx context.Context, eventName string) {
	m.queueDrops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_name", eventName),
	))
}

// RecordDelivery records a delivery attempt.
func (m *otelMetrics) RecordDelivery(ctx context.Context, stream string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("stream", stream),
	}

	m.deliveries.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.deliveryLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.deliveryErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
