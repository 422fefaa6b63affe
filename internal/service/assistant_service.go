package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-resumebuilder-be/internal/constant"
	"ai-resumebuilder-be/internal/dto"
	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/specification"
	"ai-resumebuilder-be/internal/repository/unitofwork"
	"ai-resumebuilder-be/pkg/agent"
	"ai-resumebuilder-be/pkg/artifact"
	"ai-resumebuilder-be/pkg/contextmgr"
	"ai-resumebuilder-be/pkg/events"
	"ai-resumebuilder-be/pkg/llm"
	pktNats "ai-resumebuilder-be/pkg/nats"
	"ai-resumebuilder-be/pkg/stream"
	"ai-resumebuilder-be/pkg/tools"

	"github.com/google/uuid"
)

// StreamEmitter delivers one named SSE event to the client. Returning an
// error aborts the stream (client went away).
type StreamEmitter func(event string, data interface{}) error

type IAssistantService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	StreamChat(ctx context.Context, userId uuid.UUID, req *dto.StreamChatRequest, emit StreamEmitter) error
}

// assistantService runs chat turns. The non-streaming path goes through the
// orchestrator pipeline; the streaming path talks to the provider directly
// and folds any emitted document back through the same artifact store.
type assistantService struct {
	uowFactory     unitofwork.RepositoryFactory
	orchestrator   *agent.Orchestrator
	streamProvider llm.StreamingProvider
	classifier     agent.Classifier
	store          *artifact.Store
	contextManager *contextmgr.Manager
	natsPublisher  *pktNats.Publisher
	llmLogger      *log.Logger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *agent.Orchestrator,
	streamProvider llm.StreamingProvider,
	classifier agent.Classifier,
	store *artifact.Store,
	contextManager *contextmgr.Manager,
	natsPublisher *pktNats.Publisher,
) IAssistantService {
	return &assistantService{
		uowFactory:     uowFactory,
		orchestrator:   orchestrator,
		streamProvider: streamProvider,
		classifier:     classifier,
		store:          store,
		contextManager: contextManager,
		natsPublisher:  natsPublisher,
		llmLogger:      initAssistantLogger(),
	}
}

func initAssistantLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_assistant.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-ASSISTANT] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (as *assistantService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if err := as.recordUserMessage(ctx, userId, req.ConversationId, req.Message); err != nil {
		return nil, err
	}

	as.llmLogger.Printf("[TURN] conversation=%s input=%q", req.ConversationId, req.Message)

	result, err := as.orchestrator.ProcessRequest(ctx,
		agent.SessionContext{UserId: userId, ConversationId: req.ConversationId},
		req.Message,
	)
	if err != nil {
		// The turn failed; the error text becomes the assistant reply so
		// the conversation record shows what happened.
		as.llmLogger.Printf("[TURN] failed: %v", err)
		reply := err.Error()
		if persistErr := as.recordAssistantMessage(ctx, req.ConversationId, reply, nil); persistErr != nil {
			return nil, persistErr
		}
		return &dto.SendChatResponse{
			Reply:     reply,
			Artifacts: []*dto.ChatArtifactResponse{},
		}, nil
	}

	reply := result.Reasoning
	if reply == "" {
		reply = "Done. Your resume is updated."
	}

	var snapshot []byte
	artifactViews := make([]*dto.ChatArtifactResponse, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		artifactViews = append(artifactViews, chatArtifactView(a))
		if a.Type == artifact.TypeResume {
			snapshot = []byte(a.Code)
		}
	}

	if err := as.recordAssistantMessage(ctx, req.ConversationId, reply, snapshot); err != nil {
		return nil, err
	}

	as.publishArtifactEvents(ctx, result.Artifacts)

	return &dto.SendChatResponse{
		Reply:     reply,
		AgentType: result.AgentType,
		Reasoning: result.Reasoning,
		Artifacts: artifactViews,
	}, nil
}

// StreamChat runs one turn against the streaming provider, emitting the
// visible text as it stabilizes and the document payload once extracted.
func (as *assistantService) StreamChat(ctx context.Context, userId uuid.UUID, req *dto.StreamChatRequest, emit StreamEmitter) error {
	if err := as.recordUserMessage(ctx, userId, req.ConversationId, req.Message); err != nil {
		return err
	}

	convContext, err := as.contextManager.Get(ctx, req.ConversationId)
	if err != nil {
		return err
	}
	agentType := as.classifier.Classify(req.Message, convContext)
	as.llmLogger.Printf("[STREAM] conversation=%s agent=%s input=%q", req.ConversationId, agentType, req.Message)

	prompt := agent.StreamingPrompt(req.Message, convContext)
	chunks, errCh, err := as.streamProvider.ChatStream(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return as.failStream(ctx, req.ConversationId, emit, err)
	}

	acc := stream.NewAccumulator()
	for chunk := range chunks {
		acc.Feed(chunk)
		if err := emit("delta", map[string]string{"text": acc.VisibleText()}); err != nil {
			as.llmLogger.Printf("[STREAM] client disconnected: %v", err)
			return nil
		}
	}
	select {
	case streamErr := <-errCh:
		if streamErr != nil {
			return as.failStream(ctx, req.ConversationId, emit, streamErr)
		}
	default:
	}

	visible := acc.VisibleText()
	if visible == "" {
		visible = "Here is your updated resume."
	}

	var snapshot []byte
	if doc := stream.ExtractDocument(acc.Full()); doc != nil {
		a, createdNew, err := as.store.ApplyDocument(ctx, userId, req.ConversationId, "", doc,
			map[string]interface{}{"source": "stream"})
		if err != nil {
			return as.failStream(ctx, req.ConversationId, emit, fmt.Errorf("store document: %w", err))
		}
		snapshot = []byte(a.Code)
		as.llmLogger.Printf("[STREAM] document applied: artifact=%s version=%d created=%t", a.Id, a.Version, createdNew)

		if err := emit("artifact", chatArtifactView(a)); err != nil {
			return nil
		}
		as.publishArtifactEvents(ctx, []*entity.Artifact{a})

		if _, err := as.contextManager.Update(ctx, req.ConversationId, &agent.ContextUpdate{
			UserInput: req.Message,
			AgentType: agentType,
			ToolResults: []agent.ToolResult{{
				Call:     agent.ToolCall{Name: tools.ToolStoreArtifact},
				Success:  true,
				Artifact: a,
			}},
			Timestamp: time.Now(),
		}); err != nil {
			as.llmLogger.Printf("[STREAM] context update failed: %v", err)
		}
	}

	if err := as.recordAssistantMessage(ctx, req.ConversationId, visible, snapshot); err != nil {
		return err
	}

	return emit("done", map[string]string{"agent_type": agentType})
}

// failStream records the failure as the assistant reply and tells the
// client, without tearing the SSE connection down abruptly.
func (as *assistantService) failStream(ctx context.Context, conversationId uuid.UUID, emit StreamEmitter, cause error) error {
	as.llmLogger.Printf("[STREAM] failed: %v", cause)
	reply := fmt.Sprintf("Generation failed: %v", cause)
	if err := as.recordAssistantMessage(ctx, conversationId, reply, nil); err != nil {
		return err
	}
	return emit("error", map[string]string{"message": reply})
}

// recordUserMessage verifies ownership, persists the utterance, bumps the
// conversation's activity, and promotes the title on the first real user
// message.
func (as *assistantService) recordUserMessage(ctx context.Context, userId, conversationId uuid.UUID, message string) error {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("conversation not found or access denied")
	}

	now := time.Now()
	userMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Role:           constant.MessageRoleUser,
		Chat:           message,
		CreatedAt:      now,
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, &userMessage); err != nil {
		return err
	}

	if conversation.Title == constant.DefaultConversationTitle {
		conversation.Title = promoteTitle(message)
	}
	conversation.UpdatedAt = &now
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return err
	}

	return uow.Commit()
}

func (as *assistantService) recordAssistantMessage(ctx context.Context, conversationId uuid.UUID, chat string, snapshot []byte) error {
	uow := as.uowFactory.NewUnitOfWork(ctx)
	return uow.MessageRepository().Create(ctx, &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Role:           constant.MessageRoleAssistant,
		Chat:           chat,
		ResumeSnapshot: snapshot,
		CreatedAt:      time.Now(),
	})
}

// publishArtifactEvents emits outward events for every artifact the turn
// touched. Best-effort: a down event bus never fails a turn.
func (as *assistantService) publishArtifactEvents(ctx context.Context, artifacts []*entity.Artifact) {
	if as.natsPublisher == nil {
		return
	}
	for _, a := range artifacts {
		eventType := events.ArtifactVersioned
		if a.Version == 1 {
			eventType = events.ArtifactCreated
		}
		if err := as.natsPublisher.Publish(ctx, events.NewArtifactEvent(eventType, a)); err != nil {
			as.llmLogger.Printf("[EVENTS] failed to publish %s for artifact %s: %v", eventType, a.Id, err)
		}
	}
}

func promoteTitle(message string) string {
	if len(message) <= constant.ConversationTitleMaxLen {
		return message
	}
	return message[:constant.ConversationTitleMaxLen] + "..."
}

func chatArtifactView(a *entity.Artifact) *dto.ChatArtifactResponse {
	view := &dto.ChatArtifactResponse{
		Id:       a.Id,
		Type:     a.Type,
		Title:    a.Title,
		Version:  a.Version,
		Metadata: a.Metadata,
	}
	if json.Valid([]byte(a.Code)) {
		view.Code = json.RawMessage(a.Code)
	}
	return view
}
