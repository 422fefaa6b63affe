package contextmgr

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-resumebuilder-be/internal/constant"
	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/memory"
	"ai-resumebuilder-be/internal/repository/specification"
	"ai-resumebuilder-be/internal/repository/unitofwork"
	"ai-resumebuilder-be/pkg/agent"
	"ai-resumebuilder-be/pkg/artifact"
	"ai-resumebuilder-be/pkg/store"

	"github.com/google/uuid"
)

// ProfileFacts is what the manager learns about the user in one turn. It is
// published, not written: a consumer merge-upserts it off the request path.
type ProfileFacts struct {
	ConversationId    uuid.UUID `json:"conversation_id"`
	Name              string    `json:"name,omitempty"`
	Title             string    `json:"title,omitempty"`
	Contact           string    `json:"contact,omitempty"`
	PreferredTemplate string    `json:"preferred_template,omitempty"`
	TargetRole        string    `json:"target_role,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (f *ProfileFacts) Empty() bool {
	return f.Name == "" && f.Title == "" && f.Contact == "" &&
		f.PreferredTemplate == "" && f.TargetRole == ""
}

// ProfileSink receives extracted profile facts for async persistence.
type ProfileSink interface {
	PublishProfileFacts(ctx context.Context, facts *ProfileFacts) error
}

// Manager assembles, caches, and folds updates into per-conversation
// context. Reads are cache-aside over the repositories; a failed load
// degrades to an empty context instead of failing the turn.
type Manager struct {
	cache       *memory.ContextRepository
	uowFactory  unitofwork.RepositoryFactory
	profileSink ProfileSink
	logger      *log.Logger
}

var _ agent.ContextManager = &Manager{}

func NewManager(
	cache *memory.ContextRepository,
	uowFactory unitofwork.RepositoryFactory,
	profileSink ProfileSink,
	logger *log.Logger,
) *Manager {
	return &Manager{
		cache:       cache,
		uowFactory:  uowFactory,
		profileSink: profileSink,
		logger:      logger,
	}
}

func (m *Manager) Get(ctx context.Context, conversationId uuid.UUID) (*store.Context, error) {
	if cached, found := m.cache.Get(conversationId.String()); found {
		return cached, nil
	}

	loaded, err := m.load(ctx, conversationId)
	if err != nil {
		m.logger.Printf("[CONTEXT] load failed for %s, using empty context: %v", conversationId, err)
		return emptyContext(conversationId), nil
	}

	m.cache.Save(loaded)
	return loaded, nil
}

func (m *Manager) load(ctx context.Context, conversationId uuid.UUID) (*store.Context, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	artifacts, err := uow.ArtifactRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	profile, err := uow.UserProfileRepository().FindByConversationId(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	resumes := filterResumes(artifacts)

	return &store.Context{
		ConversationId: conversationId,
		History:        messages,
		Artifacts:      artifacts,
		CurrentResume:  artifact.SelectCurrent(resumes),
		ResumeVersions: resumes,
		Profile:        profile,
		RecentInputs:   extractUserInputs(messages),
		LastActivity:   time.Now(),
	}, nil
}

// Update folds one completed turn into the cached context and publishes any
// profile facts the turn revealed. The store itself is not re-read; tool
// results carry the authoritative artifact states.
func (m *Manager) Update(ctx context.Context, conversationId uuid.UUID, update *agent.ContextUpdate) (*store.Context, error) {
	convContext, err := m.Get(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	convContext.History = append(convContext.History, turnMarker(conversationId, update))
	convContext.LastActivity = update.Timestamp
	convContext.LastAgentType = update.AgentType

	for _, result := range update.ToolResults {
		if !result.Success || result.Artifact == nil {
			continue
		}
		convContext.Artifacts = append(convContext.Artifacts, result.Artifact)

		if result.Artifact.Type == artifact.TypeResume {
			convContext.CurrentResume = result.Artifact
			convContext.ResumeVersions = prependVersion(convContext.ResumeVersions, result.Artifact)
		}
	}

	if update.UserInput != "" {
		convContext.RecentInputs = append(convContext.RecentInputs, store.RecentInput{
			Text:      update.UserInput,
			Timestamp: update.Timestamp,
		})
		if len(convContext.RecentInputs) > store.RecentInputWindow {
			convContext.RecentInputs = convContext.RecentInputs[len(convContext.RecentInputs)-store.RecentInputWindow:]
		}
	}

	if facts := ExtractProfileFacts(conversationId, update); facts != nil {
		if err := m.profileSink.PublishProfileFacts(ctx, facts); err != nil {
			// Profile persistence is best-effort, the turn still counts.
			m.logger.Printf("[CONTEXT] failed to publish profile facts: %v", err)
		}
	}

	m.cache.Save(convContext)
	return convContext, nil
}

// Clear drops the cached context so the next read hits the store.
func (m *Manager) Clear(conversationId uuid.UUID) {
	m.cache.Delete(conversationId.String())
}

// ResumeVersionInfo is one entry of the version history view.
type ResumeVersionInfo struct {
	Id        uuid.UUID  `json:"id"`
	Version   int        `json:"version"`
	Title     string     `json:"title"`
	Template  string     `json:"template,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Changes   string     `json:"changes,omitempty"`
}

// ResumeHistory lists the known resume versions, newest first.
func (m *Manager) ResumeHistory(ctx context.Context, conversationId uuid.UUID) ([]ResumeVersionInfo, error) {
	convContext, err := m.Get(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	history := make([]ResumeVersionInfo, 0, len(convContext.ResumeVersions))
	for _, r := range convContext.ResumeVersions {
		info := ResumeVersionInfo{
			Id:        r.Id,
			Version:   r.Version,
			Title:     r.Title,
			UpdatedAt: r.UpdatedAt,
		}
		if t, ok := r.Metadata["template"].(string); ok {
			info.Template = t
		}
		if c, ok := r.Metadata["lastUpdate"].(string); ok {
			info.Changes = c
		}
		history = append(history, info)
	}
	return history, nil
}

func emptyContext(conversationId uuid.UUID) *store.Context {
	return &store.Context{
		ConversationId: conversationId,
		History:        []*entity.Message{},
		Artifacts:      []*entity.Artifact{},
		ResumeVersions: []*entity.Artifact{},
		RecentInputs:   []store.RecentInput{},
		LastActivity:   time.Now(),
	}
}

func filterResumes(artifacts []*entity.Artifact) []*entity.Artifact {
	resumes := make([]*entity.Artifact, 0)
	for _, a := range artifacts {
		if a.Type == artifact.TypeResume {
			resumes = append(resumes, a)
		}
	}
	return resumes
}

// extractUserInputs keeps the last few raw user utterances for prompt
// grounding.
func extractUserInputs(messages []*entity.Message) []store.RecentInput {
	inputs := make([]store.RecentInput, 0)
	for _, msg := range messages {
		if msg.Role != constant.MessageRoleUser {
			continue
		}
		inputs = append(inputs, store.RecentInput{
			Text:      msg.Chat,
			Timestamp: msg.CreatedAt,
		})
	}
	if len(inputs) > store.RecentInputWindow {
		inputs = inputs[len(inputs)-store.RecentInputWindow:]
	}
	return inputs
}

// prependVersion puts the newest state first, dropping any older entry for
// the same artifact id.
func prependVersion(versions []*entity.Artifact, newest *entity.Artifact) []*entity.Artifact {
	out := make([]*entity.Artifact, 0, len(versions)+1)
	out = append(out, newest)
	for _, v := range versions {
		if v.Id != newest.Id {
			out = append(out, v)
		}
	}
	return out
}

// turnMarker is the synthetic history entry recording that a pipeline turn
// happened, without duplicating the full tool payloads.
func turnMarker(conversationId uuid.UUID, update *agent.ContextUpdate) *entity.Message {
	summary := map[string]interface{}{
		"user_input": update.UserInput,
		"agent_type": update.AgentType,
		"tool_count": len(update.ToolResults),
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		raw = []byte("{}")
	}
	return &entity.Message{
		ConversationId: conversationId,
		Role:           constant.MessageRoleSystem,
		Chat:           string(raw),
		CreatedAt:      update.Timestamp,
	}
}
