package firelog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/firelog/firelog/pkg/firelog/backend"
	"github.com/firelog/firelog/pkg/firelog/observability"
)

// Worker is the single background goroutine that drains the queue and
// performs the blocking backend calls. Producers never touch the network.
//
// The worker absorbs every delivery failure: the record is logged, counted,
// and discarded. No retry, no dead-letter, and one failed delivery never
// blocks the next.
type Worker struct {
	queue   *queue
	backend func() backend.Backend // evaluated per job so the handle stays swappable
	stream  string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func newWorker(q *queue, backendFn func() backend.Backend, stream string, logger *slog.Logger,
	metrics observability.MetricsRecorder, spans observability.SpanManager) *Worker {
	return &Worker{
		queue:   q,
		backend: backendFn,
		stream:  stream,
		logger:  logger,
		metrics: metrics,
		spans:   spans,
		done:    make(chan struct{}),
	}
}

// Start launches the background goroutine. Safe to call repeatedly; the
// client calls it lazily on first enqueue.
func (w *Worker) Start() {
	w.startOnce.Do(func() {
		observability.LogWorkerStart(w.logger, w.stream)
		go w.run()
	})
}

// Stop closes the queue, delivers everything currently queued, and blocks
// the caller until the worker has halted. Use it to guarantee flush before
// process exit. Events posted after Stop are dropped.
func (w *Worker) Stop() {
	// A worker that never ran still owes the drain.
	w.Start()
	w.stopOnce.Do(w.queue.close)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)

	for {
		job, ok := w.queue.pop()
		if !ok {
			observability.LogWorkerStop(w.logger, w.stream)
			return
		}
		w.deliver(job)
	}
}

// deliver performs one backend call. A panicking backend must not take the
// loop down, so it is treated like any other failed delivery.
func (w *Worker) deliver(job DeliveryJob) {
	defer func() {
		if r := recover(); r != nil {
			observability.LogDeliveryError(w.logger, job.StreamName,
				&DeliveryError{Stream: job.StreamName, Err: fmt.Errorf("backend panic: %v", r)})
		}
	}()

	ctx, span := w.spans.StartDeliverySpan(context.Background(), job.StreamName, job.PartitionKey)

	start := time.Now()
	err := w.backend().Deliver(ctx, job.StreamName, job.Data, job.PartitionKey)
	elapsed := time.Since(start)

	w.metrics.RecordDelivery(ctx, job.StreamName, elapsed, err)
	w.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogDeliveryError(w.logger, job.StreamName,
			&DeliveryError{Stream: job.StreamName, Err: err})
		return
	}
	observability.LogDelivered(w.logger, job.StreamName, len(job.Data),
		float64(elapsed.Microseconds())/1000.0)
}
