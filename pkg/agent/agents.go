package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ai-resumebuilder-be/pkg/llm"
	"ai-resumebuilder-be/pkg/store"
)

// resumeTextLimit bounds how much of the current document is inlined into a
// prompt; anything longer gets truncated, not rejected.
const resumeTextLimit = 9000

type promptFunc func(userInput string, convContext *store.Context) string

// llmAgent is the shared shape of the four specialists: one prompt template
// over one provider, parsed leniently.
type llmAgent struct {
	agentType string
	provider  llm.LLMProvider
	prompt    promptFunc
	logger    *log.Logger
}

func (a *llmAgent) Type() string {
	return a.agentType
}

func (a *llmAgent) Process(ctx context.Context, userInput string, convContext *store.Context) (*Intent, error) {
	prompt := a.prompt(userInput, convContext)

	raw, err := a.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s agent: %w", a.agentType, err)
	}

	intent := ParseIntent(raw)
	a.logger.Printf("[AGENT] %s produced %d tool call(s): %s", a.agentType, len(intent.Tools), intent.Reasoning)
	return intent, nil
}

func NewCreatorAgent(provider llm.LLMProvider, logger *log.Logger) Agent {
	return &llmAgent{
		agentType: TypeCreator,
		provider:  provider,
		logger:    logger,
		prompt: func(userInput string, convContext *store.Context) string {
			return fmt.Sprintf(`You are a resume creation specialist. Create a new resume based on user input.

User Input: "%s"
Context: %s

Return a JSON object with tool calls:
{
  "tools": [
    {
      "name": "create_resume_structure",
      "parameters": {
        "personalInfo": {...},
        "sections": [...],
        "template": "modern"
      }
    }
  ],
  "reasoning": "Why these tools are needed"
}`, userInput, contextSummary(convContext))
		},
	}
}

func NewEditorAgent(provider llm.LLMProvider, logger *log.Logger) Agent {
	return &llmAgent{
		agentType: TypeEditor,
		provider:  provider,
		logger:    logger,
		prompt: func(userInput string, convContext *store.Context) string {
			return fmt.Sprintf(`You are a resume editing specialist. Edit existing resume based on user request.

User Input: "%s"
Current Resume: %s
Context: %s

Return JSON with tool calls for specific edits:
{
  "tools": [
    {
      "name": "update_resume_section",
      "parameters": {
        "section": "experience",
        "updates": {...}
      }
    }
  ],
  "reasoning": "What changes are being made"
}`, userInput, currentResumeJSON(convContext), contextSummary(convContext))
		},
	}
}

func NewDesignerAgent(provider llm.LLMProvider, logger *log.Logger) Agent {
	return &llmAgent{
		agentType: TypeDesigner,
		provider:  provider,
		logger:    logger,
		prompt: func(userInput string, convContext *store.Context) string {
			return fmt.Sprintf(`You are a resume design specialist. Change layout, styling, and formatting.

User Input: "%s"
Current Resume: %s

Return JSON with design tool calls:
{
  "tools": [
    {
      "name": "apply_template",
      "parameters": {
        "template": "professional",
        "colorScheme": "blue",
        "layout": "two-column"
      }
    }
  ],
  "reasoning": "Design changes being applied"
}`, userInput, currentResumeJSON(convContext))
		},
	}
}

func NewOptimizerAgent(provider llm.LLMProvider, logger *log.Logger) Agent {
	return &llmAgent{
		agentType: TypeOptimizer,
		provider:  provider,
		logger:    logger,
		prompt: func(userInput string, convContext *store.Context) string {
			return fmt.Sprintf(`You are a resume optimization specialist. Improve ATS compatibility and content quality.

User Input: "%s"
Current Resume: %s

Return JSON with optimization tool calls:
{
  "tools": [
    {
      "name": "optimize_keywords",
      "parameters": {
        "targetRole": "software engineer",
        "keywords": [...]
      }
    }
  ],
  "reasoning": "Optimizations being applied"
}`, userInput, currentResumeJSON(convContext))
		},
	}
}

// StreamingPrompt drives the direct streaming path: a conversational reply
// first, then the full document definition behind the artifact marker so
// the client can show text while the payload is still arriving.
func StreamingPrompt(userInput string, convContext *store.Context) string {
	return fmt.Sprintf(`You are an AI resume assistant. Help the user build and refine their resume.

User Input: "%s"
Current Resume: %s
Context: %s

Reply to the user conversationally first. If the request changes the resume,
append the complete updated pdfmake document definition after a marker line:

<your reply to the user>
:::ARTIFACT:::
{ ...full document definition JSON... }

Emit the marker and JSON only when the document actually changes.`,
		userInput, currentResumeJSON(convContext), contextSummary(convContext))
}

// currentResumeJSON inlines the current document, truncated to the prompt
// budget.
func currentResumeJSON(convContext *store.Context) string {
	if convContext == nil || convContext.CurrentResume == nil {
		return "null"
	}
	code := convContext.CurrentResume.Code
	if len(code) > resumeTextLimit {
		code = code[:resumeTextLimit]
	}
	return code
}

// contextSummary is a compact JSON view of the conversation state. The full
// context is too large (and too circular) to inline verbatim.
func contextSummary(convContext *store.Context) string {
	if convContext == nil {
		return "{}"
	}

	summary := map[string]interface{}{
		"message_count":   len(convContext.History),
		"artifact_count":  len(convContext.Artifacts),
		"resume_versions": len(convContext.ResumeVersions),
		"recent_inputs":   convContext.RecentInputs,
		"last_agent_type": convContext.LastAgentType,
	}
	if convContext.Profile != nil {
		summary["profile"] = map[string]string{
			"name":               convContext.Profile.Name,
			"title":              convContext.Profile.Title,
			"preferred_template": convContext.Profile.PreferredTemplate,
			"target_role":        convContext.Profile.TargetRole,
		}
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
