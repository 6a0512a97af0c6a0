package firelog

import (
	"sync"

	"github.com/firelog/firelog/pkg/firelog/backend"
	"github.com/firelog/firelog/pkg/firelog/config"
)

// The process-wide default client preserves the ambient contract - set
// context once, every event carries it - behind an explicit lifecycle:
// Configure at process start, Reset between tests.

// processContext is the process-wide ambient context, shared by all
// producers. Clients use it unless WithContextStore overrides.
var processContext = NewContextStore()

var (
	globalMu     sync.Mutex
	globalClient *Client
)

// Configure builds the process-wide default client from cfg. Replaces any
// existing default client without flushing it; call DefaultWorker().Stop()
// first if queued events matter.
func Configure(cfg config.Config, opts ...Option) error {
	c, err := New(append([]Option{WithConfig(cfg)}, opts...)...)
	if err != nil {
		return err
	}

	globalMu.Lock()
	globalClient = c
	globalMu.Unlock()
	return nil
}

// Default returns the process-wide client, or nil before Configure.
func Default() *Client {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalClient
}

// Reset discards the default client and clears the process-wide ambient
// context. Test isolation hook; it does not flush the discarded client.
func Reset() {
	globalMu.Lock()
	globalClient = nil
	globalMu.Unlock()
	processContext.Clear()
}

// PostEvent posts on the default client.
// Returns a ConfigurationError when Configure has not been called.
func PostEvent(name string, payload map[string]any, opts ...PostOption) error {
	c := Default()
	if c == nil {
		return &ConfigurationError{Field: "client", Message: "firelog.Configure has not been called"}
	}
	return c.PostEvent(name, payload, opts...)
}

// SetContext merges partial into the process-wide ambient context.
// Works before Configure; every subsequently posted event carries it.
func SetContext(partial map[string]any) {
	processContext.Set(partial)
}

// ClearContext resets the process-wide ambient context to empty.
func ClearContext() {
	processContext.Clear()
}

// SetStreamClient swaps the default client's backend. Nil restores the
// default Kinesis backend. No-op before Configure.
func SetStreamClient(b backend.Backend) {
	if c := Default(); c != nil {
		c.SetBackend(b)
	}
}

// SetMaxQueueSize swaps the default client's queue capacity function.
// No-op before Configure.
func SetMaxQueueSize(fn func() int) {
	if c := Default(); c != nil {
		c.SetMaxQueueSize(fn)
	}
}

// DefaultWorker returns the default client's worker, or nil before
// Configure. Call Stop on it to flush before process exit.
func DefaultWorker() *Worker {
	if c := Default(); c != nil {
		return c.Worker()
	}
	return nil
}
