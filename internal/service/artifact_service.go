package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-resumebuilder-be/internal/dto"
	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/specification"
	"ai-resumebuilder-be/internal/repository/unitofwork"
	"ai-resumebuilder-be/pkg/artifact"
	"ai-resumebuilder-be/pkg/contextmgr"
	"ai-resumebuilder-be/pkg/renderer"

	"github.com/google/uuid"
)

type IArtifactService interface {
	GetAll(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetAllArtifactsResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowArtifactResponse, error)
	ResumeHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.ResumeHistoryResponse, error)
	Download(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*renderer.RenderedDocument, string, error)
}

type artifactService struct {
	uowFactory     unitofwork.RepositoryFactory
	store          *artifact.Store
	contextManager *contextmgr.Manager
	renderer       renderer.Renderer
}

func NewArtifactService(
	uowFactory unitofwork.RepositoryFactory,
	store *artifact.Store,
	contextManager *contextmgr.Manager,
	rend renderer.Renderer,
) IArtifactService {
	return &artifactService{
		uowFactory:     uowFactory,
		store:          store,
		contextManager: contextManager,
		renderer:       rend,
	}
}

func (as *artifactService) GetAll(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetAllArtifactsResponse, error) {
	artifacts, err := as.store.ListByConversation(ctx, userId, conversationId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllArtifactsResponse, 0, len(artifacts))
	for _, a := range artifacts {
		response = append(response, &dto.GetAllArtifactsResponse{
			Id:        a.Id,
			Type:      a.Type,
			Title:     a.Title,
			Version:   a.Version,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		})
	}
	return response, nil
}

func (as *artifactService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowArtifactResponse, error) {
	a, err := as.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowArtifactResponse{
		Id:        a.Id,
		Type:      a.Type,
		Title:     a.Title,
		Metadata:  a.Metadata,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if json.Valid([]byte(a.Code)) {
		res.Code = json.RawMessage(a.Code)
	} else if a.Code != "" {
		raw, _ := json.Marshal(a.Code)
		res.Code = raw
	}
	return res, nil
}

func (as *artifactService) ResumeHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.ResumeHistoryResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found or access denied")
	}

	versions, err := as.contextManager.ResumeHistory(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ResumeHistoryResponse, 0, len(versions))
	for _, v := range versions {
		response = append(response, &dto.ResumeHistoryResponse{
			Id:        v.Id,
			Version:   v.Version,
			Title:     v.Title,
			Template:  v.Template,
			UpdatedAt: v.UpdatedAt,
			Changes:   v.Changes,
		})
	}
	return response, nil
}

// Download re-renders the stored document payload and hands the bytes back
// for the controller to stream. Works for both resume and pdf artifacts.
func (as *artifactService) Download(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*renderer.RenderedDocument, string, error) {
	a, err := as.findOwned(ctx, userId, id)
	if err != nil {
		return nil, "", err
	}

	if !json.Valid([]byte(a.Code)) {
		return nil, "", fmt.Errorf("artifact %s has no renderable document payload", id)
	}

	rendered, err := as.renderer.Render(ctx, json.RawMessage(a.Code))
	if err != nil {
		return nil, "", fmt.Errorf("render artifact: %w", err)
	}

	filename := fmt.Sprintf("%s-v%d.pdf", a.Title, a.Version)
	return rendered, filename, nil
}

func (as *artifactService) findOwned(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Artifact, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)
	a, err := uow.ArtifactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("artifact not found or access denied")
	}
	return a, nil
}
