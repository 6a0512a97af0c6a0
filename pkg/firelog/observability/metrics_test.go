package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a reader plus
// a cleanup function.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// counterValue sums the data points of an Int64 counter.
func counterValue(m *metricdata.Metrics) int64 {
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		return -1
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordPostedAndDrops(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	recorder.RecordPosted(ctx, "signup")
	recorder.RecordPosted(ctx, "signup")
	recorder.RecordQueueDrop(ctx, "signup")

	rm := collectMetrics(t, reader)

	posted := findMetric(rm, "firelog.events.posted")
	require.NotNil(t, posted)
	assert.Equal(t, int64(2), counterValue(posted))

	drops := findMetric(rm, "firelog.queue.drops")
	require.NotNil(t, drops)
	assert.Equal(t, int64(1), counterValue(drops))
}

func TestRecordDelivery(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	recorder.RecordDelivery(ctx, "events", 12*time.Millisecond, nil)
	recorder.RecordDelivery(ctx, "events", 30*time.Millisecond, errors.New("throttled"))

	rm := collectMetrics(t, reader)

	deliveries := findMetric(rm, "firelog.deliveries")
	require.NotNil(t, deliveries)
	assert.Equal(t, int64(2), counterValue(deliveries))

	failures := findMetric(rm, "firelog.delivery.errors")
	require.NotNil(t, failures)
	assert.Equal(t, int64(1), counterValue(failures))

	latency := findMetric(rm, "firelog.delivery.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestNoopMetrics(t *testing.T) {
	// Must not panic and must satisfy the interface.
	var recorder MetricsRecorder = NoopMetrics{}
	recorder.RecordPosted(context.Background(), "x")
	recorder.RecordQueueDrop(context.Background(), "x")
	recorder.RecordDelivery(context.Background(), "s", time.Second, errors.New("ignored"))
}

func TestNoopSpanManager(t *testing.T) {
	var spans SpanManager = NoopSpanManager{}

	ctx, span := spans.StartDeliverySpan(context.Background(), "s", "pk")
	assert.NotNil(t, ctx)
	spans.EndSpanWithError(span, errors.New("ignored"))
	spans.EndSpanWithError(span, nil)
}
