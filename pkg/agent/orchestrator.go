package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-resumebuilder-be/internal/entity"
)

// Orchestrator is the pipeline head: classify, delegate to the specialist,
// run the requested tools, fold the turn back into the context.
type Orchestrator struct {
	agents     map[string]Agent
	classifier Classifier
	executor   ToolExecutor
	contexts   ContextManager
	logger     *log.Logger
}

func NewOrchestrator(
	agents []Agent,
	classifier Classifier,
	executor ToolExecutor,
	contexts ContextManager,
	logger *log.Logger,
) *Orchestrator {
	byType := make(map[string]Agent, len(agents))
	for _, a := range agents {
		byType[a.Type()] = a
	}
	return &Orchestrator{
		agents:     byType,
		classifier: classifier,
		executor:   executor,
		contexts:   contexts,
		logger:     logger,
	}
}

// ProcessRequest runs one full turn. Any failure surfaces as a single
// wrapped orchestration error; per-tool failures do not fail the turn.
func (o *Orchestrator) ProcessRequest(ctx context.Context, session SessionContext, userInput string) (*Result, error) {
	convContext, err := o.contexts.Get(ctx, session.ConversationId)
	if err != nil {
		return nil, fmt.Errorf("orchestration failed: %w", err)
	}

	agentType := o.classifier.Classify(userInput, convContext)
	specialist, ok := o.agents[agentType]
	if !ok {
		return nil, fmt.Errorf("orchestration failed: no agent registered for type %q", agentType)
	}
	o.logger.Printf("[ORCHESTRATOR] routed input to %s agent", agentType)

	intent, err := specialist.Process(ctx, userInput, convContext)
	if err != nil {
		return nil, fmt.Errorf("orchestration failed: %w", err)
	}

	toolResults := o.executor.ExecuteBatch(ctx, intent.Tools, session)

	if _, err := o.contexts.Update(ctx, session.ConversationId, &ContextUpdate{
		UserInput:   userInput,
		AgentType:   agentType,
		ToolResults: toolResults,
		Timestamp:   time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("orchestration failed: %w", err)
	}

	return &Result{
		AgentType:   agentType,
		Reasoning:   intent.Reasoning,
		ToolResults: toolResults,
		Artifacts:   collectArtifacts(toolResults),
	}, nil
}

// Capabilities describes each registered agent, keyed by type.
func (o *Orchestrator) Capabilities() map[string]string {
	return map[string]string{
		TypeCreator:   "Creates new resumes from scratch",
		TypeEditor:    "Edits and modifies existing resume content",
		TypeDesigner:  "Changes layout, templates, and visual design",
		TypeOptimizer: "Optimizes for ATS and improves content quality",
	}
}

func collectArtifacts(results []ToolResult) []*entity.Artifact {
	artifacts := make([]*entity.Artifact, 0)
	for _, r := range results {
		if r.Success && r.Artifact != nil {
			artifacts = append(artifacts, r.Artifact)
		}
	}
	return artifacts
}
