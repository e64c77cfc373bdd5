// Package eventstream provides the durable, ordered notification stream
// produced by the token ledger. Events are appended per stream with an
// optimistic version check and read back in append order; external
// observers (indexers, UIs) consume the stream, and the ledger can be
// rebuilt from it by replay (see the journal package).
package eventstream

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is a single durable notification record.
type Event struct {
	// ID is a unique event identifier.
	ID string `json:"id"`

	// Stream is the stream this event belongs to.
	Stream string `json:"stream"`

	// Type is the event type name.
	Type string `json:"type"`

	// Version is the zero-based position within the stream, assigned on
	// append.
	Version int `json:"version"`

	// Data is the JSON-encoded event payload.
	Data json.RawMessage `json:"data,omitempty"`

	// CreatedAt is when the event was recorded.
	CreatedAt time.Time `json:"createdAt"`
}

// NewEvent creates an event with a fresh ID and a JSON-encoded payload.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Data:      raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}
