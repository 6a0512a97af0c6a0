// Package event defines the structured record shipped to a stream backend
// and its canonical wire encoding.
//
// An Event carries attributes (metadata: the event name, the event time, and
// any ambient or per-call context) and a body (the caller's payload). Events
// are immutable once constructed - context mutations after construction do
// not affect them.
package event

import (
	"time"
)

// Reserved attribute keys. They are always present on an event and win over
// context keys of the same name.
const (
	AttrEventName = "event_name"
	AttrEventTime = "event_time"
)

// TimeFormat is ISO-8601 UTC with millisecond fractional seconds, the wire
// representation of the event_time attribute.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Event is a structured record of something that happened.
type Event struct {
	// Name is the event type (e.g., "user.signed_up").
	Name string

	// Time is when the event occurred, normalized to UTC.
	Time time.Time

	// Attributes is the merged metadata map. Always includes the
	// event_name and event_time keys.
	Attributes map[string]any

	// Body is the caller's payload.
	Body map[string]any
}

// New builds an Event, merging ambient and per-call context into the
// attributes. Merge precedence, lowest to highest: ambient context,
// per-call context, reserved keys.
func New(name string, body map[string]any, t time.Time, ambient, extra map[string]any) Event {
	attrs := make(map[string]any, len(ambient)+len(extra)+2)
	for k, v := range ambient {
		attrs[k] = v
	}
	for k, v := range extra {
		attrs[k] = v
	}
	attrs[AttrEventName] = name
	attrs[AttrEventTime] = FormatTime(t)

	return Event{
		Name:       name,
		Time:       t.UTC(),
		Attributes: attrs,
		Body:       body,
	}
}

// FormatTime renders t as the wire event_time string.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
