package store

import (
	"time"

	"ai-resumebuilder-be/internal/entity"

	"github.com/google/uuid"
)

// RecentInput is one entry of the bounded window of raw user utterances
// kept on the context for prompt grounding.
type RecentInput struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Context is the assembled per-conversation state consumed and produced by
// the orchestration pipeline. It lives in the in-memory cache between
// turns; the store is only re-read after an explicit invalidate.
type Context struct {
	ConversationId uuid.UUID          `json:"conversation_id"`
	History        []*entity.Message  `json:"history"`
	Artifacts      []*entity.Artifact `json:"artifacts"`

	// CurrentResume is the single document the next edit/design/optimize
	// turn targets. ResumeVersions is newest-first, deduplicated by id.
	CurrentResume  *entity.Artifact   `json:"current_resume"`
	ResumeVersions []*entity.Artifact `json:"resume_versions"`

	Profile      *entity.UserProfile `json:"profile"`
	RecentInputs []RecentInput       `json:"recent_inputs"`

	LastActivity  time.Time `json:"last_activity"`
	LastAgentType string    `json:"last_agent_type"`
}

// RecentInputWindow bounds Context.RecentInputs.
const RecentInputWindow = 10
