// Package events publishes game events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SubjectPrefix namespaces every subject this process publishes.
const SubjectPrefix = "dipbot."

// Event is one published game event.
type Event struct {
	// Type is the dotted event name, e.g. "turn.ended".
	Type string
	// InvocationID identifies the command that produced the event.
	InvocationID string
	// Payload is encoded as JSON.
	Payload any
}

// Envelope is the wire form of an Event.
type Envelope struct {
	Type         string          `json:"type"`
	InvocationID string          `json:"invocation_id,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// Publisher emits events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Subject returns the broker subject for an event type.
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

// Encode builds the JSON envelope for event.
func Encode(event Event, now time.Time) ([]byte, error) {
	if event.Type == "" {
		return nil, fmt.Errorf("event type is required")
	}
	env := Envelope{
		Type:         event.Type,
		InvocationID: event.InvocationID,
		OccurredAt:   now.UTC(),
	}
	if event.Payload != nil {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", event.Type, err)
		}
		env.Payload = payload
	}
	return json.Marshal(env)
}

// Noop discards every event.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Noop) Close() error { return nil }
