package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoHandlers is returned when an event is emitted for a type nobody
// subscribed to.
var ErrNoHandlers = errors.New("no handlers registered for event type")

// Event is a request for background work, published by one component and
// handled by another without either importing the other.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type selects the handlers that receive the event
	Type string `json:"type"`

	// Key correlates the event with the entity that raised it, e.g. a session id
	Key string `json:"key"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with the specified type, key and payload.
func NewEvent(eventType, key string, payload any) (*Event, error) {
	if eventType == "" {
		return nil, errors.New("event type cannot be empty")
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Key:       key,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler processes events of the types it was subscribed to.
//
// Handlers run synchronously inside EmitEvent and receive the emitter's
// context, so a handler that defers work must carry that context along if the
// work should stop when the publisher cancels it.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a plain function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter publishes events without knowledge of their handlers.
type EventEmitter interface {
	// EmitEvent delivers the event to every handler subscribed to its type.
	EmitEvent(ctx context.Context, event *Event) error
}
