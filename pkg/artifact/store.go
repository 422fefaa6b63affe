package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/contract"
	"ai-resumebuilder-be/internal/repository/specification"
	"ai-resumebuilder-be/pkg/resume"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("artifact not found")

// Artifact types.
const (
	TypeResume = "resume"
	TypePDF    = "pdf"
	TypeCode   = "code"
)

// Store owns artifact lifecycle: creation at version 1, strictly increasing
// versions on update, and document writes. ApplyDocument is the single
// mutation point for resume documents; both the tool path and the streaming
// path go through it.
type Store struct {
	artifacts contract.ArtifactRepository
	sanitizer resume.Sanitizer
}

func NewStore(artifacts contract.ArtifactRepository, sanitizer resume.Sanitizer) *Store {
	return &Store{
		artifacts: artifacts,
		sanitizer: sanitizer,
	}
}

// CreateInput is the payload for a new artifact.
type CreateInput struct {
	UserId         uuid.UUID
	ConversationId uuid.UUID
	Type           string
	Title          string
	Code           string
	Metadata       map[string]interface{}
}

func (s *Store) Create(ctx context.Context, in *CreateInput) (*entity.Artifact, error) {
	a := &entity.Artifact{
		UserId:         in.UserId,
		ConversationId: in.ConversationId,
		Type:           in.Type,
		Title:          in.Title,
		Code:           in.Code,
		Metadata:       in.Metadata,
		Version:        1,
	}
	if err := s.artifacts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}
	return a, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*entity.Artifact, error) {
	a, err := s.artifacts.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Store) ListByConversation(ctx context.Context, userId, conversationId uuid.UUID) ([]*entity.Artifact, error) {
	return s.artifacts.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.artifacts.Delete(ctx, id)
}

// UpdateContent replaces the payload and bumps the version. Metadata is a
// shallow merge over the stored map.
func (s *Store) UpdateContent(ctx context.Context, id uuid.UUID, code string, metadata map[string]interface{}) (*entity.Artifact, error) {
	current, err := s.artifacts.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}

	current.Code = code
	current.Metadata = mergeMetadata(current.Metadata, metadata)
	current.Version++
	now := time.Now()
	current.UpdatedAt = &now

	if err := s.artifacts.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update artifact: %w", err)
	}
	return current, nil
}

// CurrentResume returns the resume the next edit targets, or nil when the
// conversation has none yet.
func (s *Store) CurrentResume(ctx context.Context, userId, conversationId uuid.UUID) (*entity.Artifact, error) {
	candidates, err := s.artifacts.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByConversationID{ConversationID: conversationId},
		specification.ByArtifactType{Type: TypeResume},
	)
	if err != nil {
		return nil, err
	}
	return SelectCurrent(candidates), nil
}

// SelectCurrent picks the most recently updated resume; equal timestamps
// break on the higher version.
func SelectCurrent(candidates []*entity.Artifact) *entity.Artifact {
	var best *entity.Artifact
	for _, c := range candidates {
		if best == nil || lastTouched(c).After(lastTouched(best)) {
			best = c
			continue
		}
		if lastTouched(c).Equal(lastTouched(best)) && c.Version > best.Version {
			best = c
		}
	}
	return best
}

func lastTouched(a *entity.Artifact) time.Time {
	if a.UpdatedAt != nil {
		return *a.UpdatedAt
	}
	return a.CreatedAt
}

// ApplyDocument sanitizes a document definition and writes it to the
// conversation's current resume, creating one at version 1 when none exists.
// The returned bool reports whether a new artifact was created.
func (s *Store) ApplyDocument(ctx context.Context, userId, conversationId uuid.UUID, title string, doc json.RawMessage, metadata map[string]interface{}) (*entity.Artifact, bool, error) {
	clean, err := s.sanitizer.Sanitize(doc)
	if err != nil {
		return nil, false, fmt.Errorf("sanitize document: %w", err)
	}

	current, err := s.CurrentResume(ctx, userId, conversationId)
	if err != nil {
		return nil, false, err
	}

	if current == nil {
		if title == "" {
			title = "Resume"
		}
		created, err := s.Create(ctx, &CreateInput{
			UserId:         userId,
			ConversationId: conversationId,
			Type:           TypeResume,
			Title:          title,
			Code:           string(clean),
			Metadata:       metadata,
		})
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	}

	updated, err := s.UpdateContent(ctx, current.Id, string(clean), metadata)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

func mergeMetadata(current, update map[string]interface{}) map[string]interface{} {
	if update == nil {
		return current
	}
	merged := make(map[string]interface{}, len(current)+len(update))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}
