package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single turn entry in a conversation.
// ResumeSnapshot carries the document payload attached to an assistant
// reply so older versions can be previewed again ("time travel").
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string // "user", "assistant", "system"
	Chat           string
	ResumeSnapshot []byte // serialized document payload, nil when the turn was chat-only
	CreatedAt      time.Time
}
