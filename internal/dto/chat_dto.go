package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Message        string    `json:"message" validate:"required,min=1"`
}

type SendChatResponse struct {
	Reply     string                  `json:"reply"`
	AgentType string                  `json:"agent_type"`
	Reasoning string                  `json:"reasoning,omitempty"`
	Artifacts []*ChatArtifactResponse `json:"artifacts"`
}

// ChatArtifactResponse is the artifact view embedded in chat replies; Code
// stays raw JSON so clients render it without a second parse.
type ChatArtifactResponse struct {
	Id       uuid.UUID              `json:"id"`
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Version  int                    `json:"version"`
	Code     json.RawMessage        `json:"code,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// StreamChatRequest is accepted both as a POST body and as query params on
// the SSE endpoint (EventSource cannot send bodies).
type StreamChatRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Message        string    `json:"message" validate:"required,min=1"`
}
