package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllConversationsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetConversationHistoryResponse struct {
	Id             uuid.UUID              `json:"id"`
	Role           string                 `json:"role"`
	Chat           string                 `json:"chat"`
	ResumeSnapshot map[string]interface{} `json:"resume_snapshot,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type DeleteConversationRequest struct {
	Id uuid.UUID `json:"id" validate:"required"`
}
