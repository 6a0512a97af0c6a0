package firelog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/firelog/firelog/pkg/firelog/backend"
	"github.com/firelog/firelog/pkg/firelog/config"
	"github.com/firelog/firelog/pkg/firelog/event"
	"github.com/firelog/firelog/pkg/firelog/observability"
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	cfg     config.Config
	backend backend.Backend
	store   *ContextStore
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	maxSize func() int
}

// WithConfig supplies the raw configuration (see the config package for
// recognized keys).
func WithConfig(cfg config.Config) Option {
	return func(o *clientOptions) { o.cfg = cfg }
}

// WithBackend injects a stream backend, bypassing default Kinesis
// construction. Any Backend implementation works: a fake for tests, the
// SQLite sink for local capture.
func WithBackend(b backend.Backend) Option {
	return func(o *clientOptions) { o.backend = b }
}

// WithContextStore uses the given ambient context store instead of the
// process-wide one. Mostly useful for test isolation.
func WithContextStore(s *ContextStore) Option {
	return func(o *clientOptions) { o.store = s }
}

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithMetrics sets the metrics recorder. Defaults to the OTel recorder
// against the global meter provider.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// WithSpanManager sets the trace span manager. Defaults to no-op.
func WithSpanManager(s observability.SpanManager) Option {
	return func(o *clientOptions) { o.spans = s }
}

// WithMaxQueueSize sets the queue capacity function. The function is
// evaluated on every enqueue, so capacity can be reconfigured at runtime.
func WithMaxQueueSize(fn func() int) Option {
	return func(o *clientOptions) { o.maxSize = fn }
}

// Client is the public entry point of the delivery pipeline. It accepts
// PostEvent calls, merges ambient context, serializes, and enqueues; the
// background worker does everything that can block.
type Client struct {
	stream  string
	awsCfg  config.AWS
	store   *ContextStore
	queue   *queue
	worker  *Worker
	logger  *slog.Logger
	metrics observability.MetricsRecorder

	mu          sync.RWMutex
	backend     backend.Backend // injected or swapped-in override, nil means default
	defaultOnce sync.Once
	defaultBkd  backend.Backend
}

// New constructs a Client. The stream_name configuration key is required;
// its absence is the one synchronous configuration failure. The default
// Kinesis backend is built lazily from the resolved AWS descriptor on first
// delivery, unless a backend is injected.
func New(opts ...Option) (*Client, error) {
	o := clientOptions{
		store:   processContext,
		logger:  slog.Default(),
		metrics: observability.NewMetricsRecorder(),
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = processContext
	}
	if o.metrics == nil {
		// WithMetrics(nil) disables metrics entirely.
		o.metrics = observability.NoopMetrics{}
	}
	if o.spans == nil {
		o.spans = observability.NoopSpanManager{}
	}

	stream := o.cfg.StreamName()
	if stream == "" {
		return nil, &ConfigurationError{Field: config.KeyStreamName, Message: "required"}
	}

	c := &Client{
		stream:  stream,
		awsCfg:  config.ResolveAWS(o.cfg),
		store:   o.store,
		logger:  o.logger,
		metrics: o.metrics,
		backend: o.backend,
	}
	c.queue = newQueue(o.maxSize)
	c.worker = newWorker(c.queue, c.currentBackend, stream, o.logger, o.metrics, o.spans)
	return c, nil
}

// PostOption configures a single PostEvent call.
type PostOption func(*postOptions)

type postOptions struct {
	t            time.Time
	extra        map[string]any
	partitionKey string
}

// WithTime sets the event time (default: time.Now()).
func WithTime(t time.Time) PostOption {
	return func(o *postOptions) { o.t = t }
}

// WithContext merges per-call context into the event's attributes.
// Per-call keys win over ambient context keys of the same name.
func WithContext(extra map[string]any) PostOption {
	return func(o *postOptions) { o.extra = extra }
}

// WithPartitionKey sets the backend routing key
// (default: a random UUID per event).
func WithPartitionKey(key string) PostOption {
	return func(o *postOptions) { o.partitionKey = key }
}

// PostEvent builds, serializes, and enqueues one event for asynchronous
// delivery. It never blocks on network I/O and never surfaces delivery
// failures; the only caller-visible error is a payload that cannot be
// serialized. When the queue is at capacity the event is dropped, logged,
// and PostEvent still returns nil.
func (c *Client) PostEvent(name string, payload map[string]any, opts ...PostOption) error {
	po := postOptions{t: time.Now()}
	for _, opt := range opts {
		opt(&po)
	}
	if po.partitionKey == "" {
		po.partitionKey = uuid.NewString()
	}

	evt := event.New(name, payload, po.t, c.store.Snapshot(), po.extra)
	data, err := event.Encode(evt)
	if err != nil {
		return &SerializationError{Err: err}
	}

	ctx := context.Background()
	c.metrics.RecordPosted(ctx, name)

	job := DeliveryJob{
		StreamName:   c.stream,
		PartitionKey: po.partitionKey,
		Data:         data,
		EventName:    name,
	}
	if !c.queue.offer(job) {
		observability.LogQueueDrop(c.logger, name, c.queue.len(), c.queueCapacity())
		c.metrics.RecordQueueDrop(ctx, name)
		return nil
	}

	// Lazy start: the worker spins up on the first accepted event.
	c.worker.Start()
	return nil
}

// Worker returns the background worker that owns delivery. Call its Stop
// method to flush and halt the pipeline.
func (c *Client) Worker() *Worker {
	return c.worker
}

// Context returns the ambient context store this client merges into every
// event.
func (c *Client) Context() *ContextStore {
	return c.store
}

// SetBackend swaps the stream backend. Passing nil restores the default
// backend. Intended for controlled setup phases (tests, operational
// override), not for reconfiguration under live traffic.
func (c *Client) SetBackend(b backend.Backend) {
	c.mu.Lock()
	c.backend = b
	c.mu.Unlock()
}

// SetMaxQueueSize swaps the queue capacity function. Takes effect on the
// next PostEvent.
func (c *Client) SetMaxQueueSize(fn func() int) {
	c.queue.setMaxSize(fn)
}

// AWSConfig returns the backend-connection descriptor resolved at
// construction.
func (c *Client) AWSConfig() config.AWS {
	return c.awsCfg
}

// currentBackend returns the injected backend if set, building the default
// Kinesis backend on first use otherwise.
func (c *Client) currentBackend() backend.Backend {
	c.mu.RLock()
	b := c.backend
	c.mu.RUnlock()
	if b != nil {
		return b
	}

	c.defaultOnce.Do(func() {
		c.defaultBkd = backend.NewKinesis(c.awsCfg)
	})
	return c.defaultBkd
}

func (c *Client) queueCapacity() int {
	c.queue.mu.Lock()
	defer c.queue.mu.Unlock()
	return c.queue.capacity()
}
