package agent

import (
	"context"
	"encoding/json"
	"time"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/pkg/store"

	"github.com/google/uuid"
)

// Agent types routable by the classifier.
const (
	TypeCreator   = "creator"
	TypeEditor    = "editor"
	TypeDesigner  = "designer"
	TypeOptimizer = "optimizer"
)

// ToolCall is one tool invocation requested by an agent. Parameters stay raw
// until the executor decodes them against the tool's own schema.
type ToolCall struct {
	Name       string          `json:"name"`
	Parameters json.RawMessage `json:"parameters"`
}

// Intent is the parsed agent response: which tools to run and why.
type Intent struct {
	Tools     []ToolCall `json:"tools"`
	Reasoning string     `json:"reasoning"`
}

// SessionContext identifies the caller for a pipeline run.
type SessionContext struct {
	UserId         uuid.UUID
	ConversationId uuid.UUID
}

// ToolResult is the outcome of one tool call. Exactly one of the error or
// payload sides is meaningful, flagged by Success.
type ToolResult struct {
	Call     ToolCall
	Success  bool
	Error    string
	Artifact *entity.Artifact
	Data     map[string]interface{}
}

// ContextUpdate carries one completed turn into the context manager.
type ContextUpdate struct {
	UserInput   string
	AgentType   string
	ToolResults []ToolResult
	Timestamp   time.Time
}

// Result is the orchestrator's answer for one request.
type Result struct {
	AgentType   string
	Reasoning   string
	ToolResults []ToolResult
	Artifacts   []*entity.Artifact
}

// Agent turns a user input plus conversation context into an Intent.
type Agent interface {
	Type() string
	Process(ctx context.Context, userInput string, convContext *store.Context) (*Intent, error)
}

// ToolExecutor runs a batch of tool calls. Implementations must return one
// result per call, in order, isolating per-call failures.
type ToolExecutor interface {
	ExecuteBatch(ctx context.Context, calls []ToolCall, session SessionContext) []ToolResult
}

// ContextManager supplies and persists per-conversation context.
type ContextManager interface {
	Get(ctx context.Context, conversationId uuid.UUID) (*store.Context, error)
	Update(ctx context.Context, conversationId uuid.UUID, update *ContextUpdate) (*store.Context, error)
}
