package mapper

import (
	"encoding/json"
	"time"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/model"

	"gorm.io/datatypes"
)

type ArtifactMapper struct{}

func NewArtifactMapper() *ArtifactMapper {
	return &ArtifactMapper{}
}

func (m *ArtifactMapper) ArtifactToEntity(a *model.Artifact) *entity.Artifact {
	if a == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		// Invalid stored metadata degrades to nil rather than failing the read
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Artifact{
		Id:             a.Id,
		UserId:         a.UserId,
		ConversationId: a.ConversationId,
		Type:           a.Type,
		Title:          a.Title,
		Code:           a.Code,
		Metadata:       metadata,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ArtifactMapper) ArtifactToModel(a *entity.Artifact) *model.Artifact {
	if a == nil {
		return nil
	}

	var metadata datatypes.JSON
	if a.Metadata != nil {
		if raw, err := json.Marshal(a.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Artifact{
		Id:             a.Id,
		UserId:         a.UserId,
		ConversationId: a.ConversationId,
		Type:           a.Type,
		Title:          a.Title,
		Code:           a.Code,
		Metadata:       metadata,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

// Profile Mappers

func (m *ArtifactMapper) UserProfileToEntity(p *model.UserProfile) *entity.UserProfile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserProfile{
		ConversationId:    p.ConversationId,
		Name:              p.Name,
		Title:             p.Title,
		Contact:           p.Contact,
		PreferredTemplate: p.PreferredTemplate,
		TargetRole:        p.TargetRole,
		UpdatedAt:         updatedAt,
	}
}

func (m *ArtifactMapper) UserProfileToModel(p *entity.UserProfile) *model.UserProfile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.UserProfile{
		ConversationId:    p.ConversationId,
		Name:              p.Name,
		Title:             p.Title,
		Contact:           p.Contact,
		PreferredTemplate: p.PreferredTemplate,
		TargetRole:        p.TargetRole,
		UpdatedAt:         updatedAt,
	}
}
