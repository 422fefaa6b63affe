package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/pkg/agent"
)

// Tool names the agents may request.
const (
	ToolCreateResumeStructure = "create_resume_structure"
	ToolUpdateResumeSection   = "update_resume_section"
	ToolApplyTemplate         = "apply_template"
	ToolOptimizeKeywords      = "optimize_keywords"
	ToolGeneratePdf           = "generate_pdf"
	ToolStoreArtifact         = "store_artifact"
	ToolVersionArtifact       = "version_artifact"
	ToolRenderArtifact        = "render_artifact"
)

// Output is what a handler returns on success.
type Output struct {
	Artifact *entity.Artifact
	Data     map[string]interface{}
}

// Handler executes one tool call.
type Handler func(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error)

// Executor dispatches tool calls by name. Batches run sequentially in call
// order; one failing call never aborts the rest.
type Executor struct {
	handlers map[string]Handler
	logger   *log.Logger
}

func NewExecutor(logger *log.Logger) *Executor {
	return &Executor{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

func (e *Executor) Register(name string, handler Handler) {
	e.handlers[name] = handler
}

// ExecuteBatch returns exactly one result per call, in order.
func (e *Executor) ExecuteBatch(ctx context.Context, calls []agent.ToolCall, session agent.SessionContext) []agent.ToolResult {
	results := make([]agent.ToolResult, 0, len(calls))

	for _, call := range calls {
		handler, ok := e.handlers[call.Name]
		if !ok {
			e.logger.Printf("[TOOLS] unknown tool requested: %s", call.Name)
			results = append(results, agent.ToolResult{
				Call:  call,
				Error: fmt.Sprintf("unknown tool: %s", call.Name),
			})
			continue
		}

		output, err := handler(ctx, call.Parameters, session)
		if err != nil {
			e.logger.Printf("[TOOLS] %s failed: %v", call.Name, err)
			results = append(results, agent.ToolResult{
				Call:  call,
				Error: err.Error(),
			})
			continue
		}

		results = append(results, agent.ToolResult{
			Call:     call,
			Success:  true,
			Artifact: output.Artifact,
			Data:     output.Data,
		})
	}

	return results
}
