package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/pkg/store"

	"github.com/google/uuid"
)

type stubAgent struct {
	agentType string
	intent    *Intent
	err       error
}

func (s *stubAgent) Type() string { return s.agentType }

func (s *stubAgent) Process(_ context.Context, _ string, _ *store.Context) (*Intent, error) {
	return s.intent, s.err
}

type stubClassifier struct {
	agentType string
}

func (s *stubClassifier) Classify(_ string, _ *store.Context) string { return s.agentType }

type stubExecutor struct {
	results []ToolResult
	calls   []ToolCall
}

func (s *stubExecutor) ExecuteBatch(_ context.Context, calls []ToolCall, _ SessionContext) []ToolResult {
	s.calls = calls
	return s.results
}

type stubContextManager struct {
	context   *store.Context
	getErr    error
	updateErr error
	update    *ContextUpdate
}

func (s *stubContextManager) Get(_ context.Context, _ uuid.UUID) (*store.Context, error) {
	return s.context, s.getErr
}

func (s *stubContextManager) Update(_ context.Context, _ uuid.UUID, update *ContextUpdate) (*store.Context, error) {
	s.update = update
	return s.context, s.updateErr
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestProcessRequestHappyPath(t *testing.T) {
	resumeArtifact := &entity.Artifact{Id: uuid.New(), Type: "resume"}
	executor := &stubExecutor{
		results: []ToolResult{
			{Success: true, Artifact: resumeArtifact},
			{Success: false, Error: "boom"},
		},
	}
	contexts := &stubContextManager{context: &store.Context{}}

	o := NewOrchestrator(
		[]Agent{&stubAgent{
			agentType: TypeEditor,
			intent: &Intent{
				Tools:     []ToolCall{{Name: "update_resume_section"}},
				Reasoning: "tweak experience",
			},
		}},
		&stubClassifier{agentType: TypeEditor},
		executor,
		contexts,
		discardLogger(),
	)

	result, err := o.ProcessRequest(context.Background(), SessionContext{}, "change my title")
	if err != nil {
		t.Fatalf("ProcessRequest error: %v", err)
	}

	if result.AgentType != TypeEditor {
		t.Errorf("AgentType = %s, want editor", result.AgentType)
	}
	if result.Reasoning != "tweak experience" {
		t.Errorf("Reasoning = %q", result.Reasoning)
	}
	if len(result.ToolResults) != 2 {
		t.Errorf("ToolResults = %d, want 2", len(result.ToolResults))
	}
	if len(result.Artifacts) != 1 || result.Artifacts[0] != resumeArtifact {
		t.Errorf("Artifacts should hold only the successful artifact, got %v", result.Artifacts)
	}
	if len(executor.calls) != 1 || executor.calls[0].Name != "update_resume_section" {
		t.Errorf("executor received wrong calls: %v", executor.calls)
	}
	if contexts.update == nil || contexts.update.AgentType != TypeEditor || contexts.update.UserInput != "change my title" {
		t.Errorf("context update missing or wrong: %+v", contexts.update)
	}
}

func TestProcessRequestWrapsErrors(t *testing.T) {
	tests := []struct {
		name string
		o    *Orchestrator
	}{
		{
			name: "context load failure",
			o: NewOrchestrator(
				[]Agent{&stubAgent{agentType: TypeCreator, intent: &Intent{}}},
				&stubClassifier{agentType: TypeCreator},
				&stubExecutor{},
				&stubContextManager{getErr: errors.New("db down")},
				discardLogger(),
			),
		},
		{
			name: "agent failure",
			o: NewOrchestrator(
				[]Agent{&stubAgent{agentType: TypeCreator, err: errors.New("llm timeout")}},
				&stubClassifier{agentType: TypeCreator},
				&stubExecutor{},
				&stubContextManager{context: &store.Context{}},
				discardLogger(),
			),
		},
		{
			name: "unregistered agent type",
			o: NewOrchestrator(
				nil,
				&stubClassifier{agentType: TypeDesigner},
				&stubExecutor{},
				&stubContextManager{context: &store.Context{}},
				discardLogger(),
			),
		},
		{
			name: "context update failure",
			o: NewOrchestrator(
				[]Agent{&stubAgent{agentType: TypeCreator, intent: &Intent{}}},
				&stubClassifier{agentType: TypeCreator},
				&stubExecutor{},
				&stubContextManager{context: &store.Context{}, updateErr: errors.New("cache write")},
				discardLogger(),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.o.ProcessRequest(context.Background(), SessionContext{}, "hello")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "orchestration failed: ") {
				t.Errorf("error not wrapped as orchestration failure: %v", err)
			}
		})
	}
}

func TestProcessRequestToolFailuresDoNotFailTurn(t *testing.T) {
	executor := &stubExecutor{
		results: []ToolResult{
			{Success: false, Error: "Unknown tool: explode"},
		},
	}

	o := NewOrchestrator(
		[]Agent{&stubAgent{agentType: TypeCreator, intent: &Intent{Tools: []ToolCall{{Name: "explode"}}}}},
		&stubClassifier{agentType: TypeCreator},
		executor,
		&stubContextManager{context: &store.Context{}},
		discardLogger(),
	)

	result, err := o.ProcessRequest(context.Background(), SessionContext{}, "hi")
	if err != nil {
		t.Fatalf("tool failure must not fail the turn: %v", err)
	}
	if len(result.ToolResults) != 1 || result.ToolResults[0].Success {
		t.Errorf("failed result should be passed through: %+v", result.ToolResults)
	}
	if len(result.Artifacts) != 0 {
		t.Errorf("no artifacts expected, got %d", len(result.Artifacts))
	}
}
