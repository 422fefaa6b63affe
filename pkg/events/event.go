package events

import (
	"time"

	"ai-resumebuilder-be/internal/entity"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "created").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Artifact lifecycle event types, published on the ARTIFACTS stream.
const (
	ArtifactCreated   = "created"
	ArtifactVersioned = "versioned"
)

// NewArtifactEvent builds the outward-facing event for an artifact write.
func NewArtifactEvent(eventType string, a *entity.Artifact) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"artifact_id":     a.Id.String(),
			"conversation_id": a.ConversationId.String(),
			"user_id":         a.UserId.String(),
			"type":            a.Type,
			"title":           a.Title,
			"version":         a.Version,
		},
		OccurredAt: time.Now(),
	}
}
