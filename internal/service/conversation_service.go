package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-resumebuilder-be/internal/constant"
	"ai-resumebuilder-be/internal/dto"
	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/specification"
	"ai-resumebuilder-be/internal/repository/unitofwork"
	"ai-resumebuilder-be/pkg/contextmgr"

	"github.com/google/uuid"
)

type IConversationService interface {
	Create(ctx context.Context, userId uuid.UUID) (*dto.CreateConversationResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetConversationHistoryResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error
}

type conversationService struct {
	uowFactory     unitofwork.RepositoryFactory
	contextManager *contextmgr.Manager
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	contextManager *contextmgr.Manager,
) IConversationService {
	return &conversationService{
		uowFactory:     uowFactory,
		contextManager: contextManager,
	}
}

// Create opens a conversation seeded with the assistant's welcome message.
func (cs *conversationService) Create(ctx context.Context, userId uuid.UUID) (*dto.CreateConversationResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	conversation := entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultConversationTitle,
		CreatedAt: now,
	}

	welcome := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleAssistant,
		Chat:           constant.WelcomeMessage,
		CreatedAt:      now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, &welcome); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateConversationResponse{Id: conversation.Id}, nil
}

func (cs *conversationService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllConversationsResponse, 0, len(conversations))
	for _, c := range conversations {
		response = append(response, &dto.GetAllConversationsResponse{
			Id:        c.Id,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return response, nil
}

func (cs *conversationService) GetHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetConversationHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

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

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetConversationHistoryResponse, 0, len(messages))
	for _, m := range messages {
		item := &dto.GetConversationHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Chat:      m.Chat,
			CreatedAt: m.CreatedAt,
		}
		if len(m.ResumeSnapshot) > 0 {
			var snapshot map[string]interface{}
			if err := json.Unmarshal(m.ResumeSnapshot, &snapshot); err == nil {
				item.ResumeSnapshot = snapshot
			}
		}
		response = append(response, item)
	}

	return response, nil
}

// Delete removes the conversation and everything hanging off it, then drops
// the cached context so a recreated id starts clean.
func (cs *conversationService) Delete(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ArtifactRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.UserProfileRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.contextManager.Clear(conversationId)
	return nil
}
