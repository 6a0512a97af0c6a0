package event

import (
	"encoding/json"
	"fmt"
)

// Payload is the wire shape of an event: a JSON object with top-level
// "attributes" and "body" keys.
type Payload struct {
	Attributes map[string]any `json:"attributes"`
	Body       map[string]any `json:"body"`
}

// Encode serializes the event into its wire payload.
// Fails only when the body is not representable as JSON.
func Encode(evt Event) ([]byte, error) {
	body := evt.Body
	if body == nil {
		body = map[string]any{}
	}

	data, err := json.Marshal(Payload{
		Attributes: evt.Attributes,
		Body:       body,
	})
	if err != nil {
		return nil, fmt.Errorf("encode event %q: %w", evt.Name, err)
	}
	return data, nil
}

// Decode parses wire bytes back into a payload. Round-trips with Encode:
// attributes and body come back equal, attribute ordering aside.
func Decode(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("decode event payload: %w", err)
	}
	return p, nil
}
