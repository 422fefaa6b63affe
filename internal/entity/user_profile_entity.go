package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile holds facts inferred from tool parameters and user phrasing,
// persisted per conversation. Fields are merge-upserted: an empty value
// never overwrites a previously stored one.
type UserProfile struct {
	ConversationId    uuid.UUID
	Name              string
	Title             string
	Contact           string
	PreferredTemplate string
	TargetRole        string
	UpdatedAt         *time.Time
}
