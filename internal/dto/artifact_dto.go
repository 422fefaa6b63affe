package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type GetAllArtifactsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ShowArtifactResponse struct {
	Id        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Code      json.RawMessage        `json:"code,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Version   int                    `json:"version"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt *time.Time             `json:"updated_at"`
}

type ResumeHistoryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Version   int        `json:"version"`
	Title     string     `json:"title"`
	Template  string     `json:"template,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Changes   string     `json:"changes,omitempty"`
}

// PublishProfileFactsMessage is the watermill payload for async profile
// upserts.
type PublishProfileFactsMessage struct {
	ConversationId    uuid.UUID `json:"conversation_id"`
	Name              string    `json:"name,omitempty"`
	Title             string    `json:"title,omitempty"`
	Contact           string    `json:"contact,omitempty"`
	PreferredTemplate string    `json:"preferred_template,omitempty"`
	TargetRole        string    `json:"target_role,omitempty"`
}
