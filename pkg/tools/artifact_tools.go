package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-resumebuilder-be/pkg/agent"
	"ai-resumebuilder-be/pkg/artifact"

	"github.com/google/uuid"
)

// ArtifactTools exposes raw artifact operations for agents that manage
// outputs directly instead of going through the resume tools.
type ArtifactTools struct {
	store *artifact.Store
}

func NewArtifactTools(store *artifact.Store) *ArtifactTools {
	return &ArtifactTools{store: store}
}

func (t *ArtifactTools) RegisterAll(e *Executor) {
	e.Register(ToolStoreArtifact, t.StoreArtifact)
	e.Register(ToolVersionArtifact, t.VersionArtifact)
	e.Register(ToolRenderArtifact, t.RenderArtifact)
}

func (t *ArtifactTools) StoreArtifact(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error) {
	var p struct {
		Type     string                 `json:"type"`
		Title    string                 `json:"title"`
		Code     string                 `json:"code"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("decode store_artifact parameters: %w", err)
	}

	if p.Type == "" {
		p.Type = artifact.TypeCode
	}
	if p.Title == "" {
		p.Title = "Generated Artifact"
	}

	a, err := t.store.Create(ctx, &artifact.CreateInput{
		UserId:         session.UserId,
		ConversationId: session.ConversationId,
		Type:           p.Type,
		Title:          p.Title,
		Code:           p.Code,
		Metadata:       p.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &Output{Artifact: a}, nil
}

func (t *ArtifactTools) VersionArtifact(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error) {
	var p struct {
		ArtifactId uuid.UUID              `json:"artifactId"`
		Code       string                 `json:"code"`
		Metadata   map[string]interface{} `json:"metadata"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("decode version_artifact parameters: %w", err)
	}

	if p.Code == "" {
		// Version bump without a payload change keeps the stored code.
		current, err := t.store.Get(ctx, p.ArtifactId)
		if err != nil {
			return nil, err
		}
		p.Code = current.Code
	}

	a, err := t.store.UpdateContent(ctx, p.ArtifactId, p.Code, p.Metadata)
	if err != nil {
		return nil, err
	}

	return &Output{Artifact: a}, nil
}

func (t *ArtifactTools) RenderArtifact(ctx context.Context, params json.RawMessage, _ agent.SessionContext) (*Output, error) {
	var p struct {
		ArtifactId uuid.UUID `json:"artifactId"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("decode render_artifact parameters: %w", err)
	}

	a, err := t.store.Get(ctx, p.ArtifactId)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	switch a.Type {
	case artifact.TypePDF:
		data = map[string]interface{}{"type": "pdf", "locator": a.Metadata["locator"]}
	case artifact.TypeCode:
		data = map[string]interface{}{"type": "code", "code": a.Code}
	default:
		data = map[string]interface{}{"type": "text", "content": a.Code}
	}

	return &Output{Artifact: a, Data: data}, nil
}
