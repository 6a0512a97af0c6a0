package backend

import (
	"context"
	"sync"
)

// Record is one captured delivery.
type Record struct {
	Stream       string
	PartitionKey string
	Data         []byte
}

// Memory is an in-process Backend that captures delivered records.
// Suitable for tests and local development.
type Memory struct {
	mu      sync.Mutex
	records []Record
	fail    error
}

// NewMemory creates an empty capture backend.
func NewMemory() *Memory {
	return &Memory{}
}

// Deliver implements Backend. Records the call unless a failure has been
// injected with FailWith.
func (m *Memory) Deliver(ctx context.Context, stream string, data []byte, partitionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	m.records = append(m.records, Record{
		Stream:       stream,
		PartitionKey: partitionKey,
		Data:         buf,
	})
	return nil
}

// Records returns a copy of everything delivered so far, in delivery order.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// FailWith makes subsequent Deliver calls return err.
// Passing nil restores normal capture.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}
