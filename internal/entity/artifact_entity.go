package entity

import (
	"time"

	"github.com/google/uuid"
)

// Artifact is any persisted generated output: a resume document payload,
// an exported PDF, or a code snippet. Version starts at 1 and strictly
// increases on every content update to the same id.
type Artifact struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ConversationId uuid.UUID
	Type           string // "resume", "pdf", "code"
	Title          string
	Code           string // serialized document payload or snippet body
	Metadata       map[string]interface{}
	Version        int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
