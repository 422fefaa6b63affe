package contract

import (
	"context"

	"ai-resumebuilder-be/internal/entity"

	"github.com/google/uuid"
)

type UserProfileRepository interface {
	// Upsert merges the given profile into the stored row for its
	// conversation. Empty fields never overwrite stored values.
	Upsert(ctx context.Context, profile *entity.UserProfile) error
	FindByConversationId(ctx context.Context, conversationId uuid.UUID) (*entity.UserProfile, error)
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
}
