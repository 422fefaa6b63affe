package implementation

import (
	"context"
	"errors"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/mapper"
	"ai-resumebuilder-be/internal/model"
	"ai-resumebuilder-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArtifactMapper
}

func NewUserProfileRepository(db *gorm.DB) contract.UserProfileRepository {
	return &UserProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewArtifactMapper(),
	}
}

// Upsert merges non-empty fields into the existing row. Read-then-write is
// fine here: the profile consumer is the single writer per conversation.
func (r *UserProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	var current model.UserProfile
	err := r.db.WithContext(ctx).Where("conversation_id = ?", profile.ConversationId).First(&current).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := r.mapper.UserProfileToModel(profile)
		return r.db.WithContext(ctx).Create(m).Error
	}

	merged := mergeProfile(&current, profile)
	return r.db.WithContext(ctx).Save(merged).Error
}

func (r *UserProfileRepositoryImpl) FindByConversationId(ctx context.Context, conversationId uuid.UUID) (*entity.UserProfile, error) {
	var m model.UserProfile
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserProfileToEntity(&m), nil
}

func (r *UserProfileRepositoryImpl) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("conversation_id = ?", conversationId).Delete(&model.UserProfile{}).Error
}

func mergeProfile(current *model.UserProfile, update *entity.UserProfile) *model.UserProfile {
	if update.Name != "" {
		current.Name = update.Name
	}
	if update.Title != "" {
		current.Title = update.Title
	}
	if update.Contact != "" {
		current.Contact = update.Contact
	}
	if update.PreferredTemplate != "" {
		current.PreferredTemplate = update.PreferredTemplate
	}
	if update.TargetRole != "" {
		current.TargetRole = update.TargetRole
	}
	return current
}
