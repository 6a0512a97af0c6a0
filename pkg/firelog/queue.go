package firelog

import "sync"

// DefaultMaxQueueSize bounds the queue when no size function is configured.
const DefaultMaxQueueSize = 1000

// DeliveryJob is the unit handed from producers to the worker. The queue
// owns it until dequeued; the worker owns it for the duration of delivery.
type DeliveryJob struct {
	// StreamName is the destination stream, resolved from configuration
	// at enqueue time.
	StreamName string

	// PartitionKey routes the record within the backend.
	PartitionKey string

	// Data is the encoded wire payload.
	Data []byte

	// EventName is carried for diagnostics only; it is not re-encoded.
	EventName string
}

// queue is a bounded FIFO shared by many producers and one consumer.
//
// Producers never block and never fail: when the queue is at capacity,
// offer rejects the job and the caller drops it. Capacity comes from a
// function so it can be swapped at runtime.
type queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	jobs    []DeliveryJob
	maxSize func() int
	closed  bool
}

func newQueue(maxSize func() int) *queue {
	q := &queue{maxSize: maxSize}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// offer appends the job unless the queue is at capacity or closed.
// Reports whether the job was accepted. Never blocks.
func (q *queue) offer(job DeliveryJob) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || len(q.jobs) >= q.capacity() {
		return false
	}
	q.jobs = append(q.jobs, job)
	q.cond.Signal()
	return true
}

// pop blocks cooperatively until a job is available, then dequeues exactly
// one. After close, remaining jobs are still returned; once drained, pop
// reports false.
func (q *queue) pop() (DeliveryJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.jobs) == 0 {
		return DeliveryJob{}, false
	}

	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// close stops accepting new jobs and wakes the consumer. Queued jobs stay
// poppable so the worker can drain them.
func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// capacity evaluates the size function. Callers must hold q.mu.
func (q *queue) capacity() int {
	if q.maxSize == nil {
		return DefaultMaxQueueSize
	}
	if n := q.maxSize(); n > 0 {
		return n
	}
	return DefaultMaxQueueSize
}

// setMaxSize swaps the capacity function. Takes effect on the next offer.
func (q *queue) setMaxSize(fn func() int) {
	q.mu.Lock()
	q.maxSize = fn
	q.mu.Unlock()
}
