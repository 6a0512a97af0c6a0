// Package observability provides structured logging, metrics, and tracing
// for the delivery pipeline.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Nothing in this package retries, blocks, or surfaces errors to producers;
// it only observes.
package observability

import (
	"log/slog"
)

// LogWorkerStart logs the delivery worker starting.
func LogWorkerStart(logger *slog.Logger, stream string) {
	if logger == nil {
		return
	}
	logger.Debug("delivery worker starting",
		slog.String("stream", stream),
	)
}

// LogWorkerStop logs the delivery worker halting after a drain.
func LogWorkerStop(logger *slog.Logger, stream string) {
	if logger == nil {
		return
	}
	logger.Debug("delivery worker stopped",
		slog.String("stream", stream),
	)
}

// LogQueueDrop logs an event dropped because the queue was at capacity.
// Drops are a deliberate availability-over-durability tradeoff, so this is
// a warning, not an error.
func LogQueueDrop(logger *slog.Logger, eventName string, queueLen, maxSize int) {
	if logger == nil {
		return
	}
	logger.Warn("event dropped, queue at capacity",
		slog.String("event_name", eventName),
		slog.Int("queue_len", queueLen),
		slog.Int("max_size", maxSize),
	)
}

// LogDeliveryError logs a failed delivery. The record has been discarded.
func LogDeliveryError(logger *slog.Logger, stream string, err error) {
	if logger == nil {
		return
	}
	logger.Error("delivery failed, record discarded",
		slog.String("stream", stream),
		slog.String("error", err.Error()),
	)
}

// LogDelivered logs a successful delivery.
func LogDelivered(logger *slog.Logger, stream string, sizeBytes int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("record delivered",
		slog.String("stream", stream),
		slog.Int("size_bytes", sizeBytes),
		slog.Float64("duration_ms", durationMs),
	)
}
