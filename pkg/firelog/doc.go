// Package firelog asynchronously ships structured event records to a
// durable streaming backend, decoupling event producers from network
// latency and backend availability.
//
// # Pipeline
//
// PostEvent merges the ambient context into the event's attributes,
// serializes it to the wire payload, and places a delivery job on a bounded
// in-process queue. A single background worker drains the queue and performs
// the blocking PutRecord calls. Producers never block on network I/O.
//
//	cfg, _ := config.FromFile("firelog.yaml")
//	client, err := firelog.New(firelog.WithConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.Context().Set(map[string]any{"user_id": 123})
//	client.PostEvent("order.placed", map[string]any{"total": 42.5})
//
//	// Flush everything still queued before exit.
//	client.Worker().Stop()
//
// A process-wide default client is available behind Configure / PostEvent /
// SetContext for applications that prefer the ambient style; Reset provides
// test isolation.
//
// # Delivery contract
//
// The pipeline trades durability for availability, deliberately:
//
//   - When the queue is at capacity, new events are dropped (logged and
//     counted), and PostEvent still returns nil.
//   - When a delivery fails, the record is dropped. No retry, no
//     dead-letter; the failure is logged and counted and the worker moves
//     on.
//   - Worker.Stop is the one blocking operation: it delivers everything
//     currently queued, then halts.
//
// At-least-once or exactly-once delivery, cross-restart persistence, and
// batching are out of scope.
//
// # Backends
//
// The default backend issues one Kinesis PutRecord per event. Any
// implementation of backend.Backend can be substituted - per client with
// WithBackend, or process-wide with SetStreamClient - including the SQLite
// sink for local capture and backend.Memory for tests.
package firelog
