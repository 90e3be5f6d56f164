// Package events defines the outbound progress-sync events emitted after a
// successful local commit, and the emitter used to fan them out. Delivery
// is best-effort: a failing handler can never roll back or block the local
// transaction that produced the event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Progress sync event kinds.
const (
	KindProfileUpdated      = "profile_updated"
	KindWordProgressUpdated = "word_progress_updated"
	KindActivityUpdated     = "daily_activity_updated"
)

// ProgressSyncEvent describes one committed progress change, for mirroring
// to an external sync backend.
type ProgressSyncEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// UserID identifies the learner whose progress changed
	UserID uuid.UUID `json:"user_id"`

	// Kind indicates which entity changed
	Kind string `json:"kind"`

	// Payload contains the changed entity serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProgressSyncEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProgressSyncEvent creates a new ProgressSyncEvent for the given user,
// kind and payload.
func NewProgressSyncEvent(userID uuid.UUID, kind string, payload interface{}) (*ProgressSyncEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProgressSyncEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ProgressSyncEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the progress service to publish sync events without direct
// knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ProgressSyncEvent) error
}
