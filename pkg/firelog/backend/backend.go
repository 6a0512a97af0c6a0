// Package backend defines the stream-backend abstraction and its
// implementations.
//
// A Backend performs the actual network (or local) write for one record.
// The delivery worker is the only caller; producers never touch a Backend
// directly. Any conforming implementation may be substituted for the
// default Kinesis backend.
package backend

import "context"

// Backend writes one encoded record to a named stream.
//
// Deliver is synchronous. Timeouts are the implementation's responsibility;
// the worker does not cancel a delivery mid-call. Returned errors are
// classified by the caller as non-fatal: the record is logged and discarded.
type Backend interface {
	Deliver(ctx context.Context, stream string, data []byte, partitionKey string) error
}

// Func adapts a function to the Backend interface.
type Func func(ctx context.Context, stream string, data []byte, partitionKey string) error

// Deliver implements Backend.
func (f Func) Deliver(ctx context.Context, stream string, data []byte, partitionKey string) error {
	return f(ctx, stream, data, partitionKey)
}
