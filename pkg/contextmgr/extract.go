package contextmgr

import (
	"encoding/json"
	"strings"

	"ai-resumebuilder-be/pkg/agent"
	"ai-resumebuilder-be/pkg/resume"
	"ai-resumebuilder-be/pkg/tools"

	"github.com/google/uuid"
)

// ExtractProfileFacts mines a completed turn for durable user facts:
// identity from a successful create_resume_structure call, preferences from
// keyword patterns in the raw input. Returns nil when the turn revealed
// nothing.
func ExtractProfileFacts(conversationId uuid.UUID, update *agent.ContextUpdate) *ProfileFacts {
	facts := &ProfileFacts{
		ConversationId: conversationId,
		UpdatedAt:      update.Timestamp,
	}

	for _, result := range update.ToolResults {
		if !result.Success || result.Call.Name != tools.ToolCreateResumeStructure {
			continue
		}

		var params struct {
			PersonalInfo *resume.PersonalInfo `json:"personalInfo"`
		}
		if err := json.Unmarshal(result.Call.Parameters, &params); err != nil || params.PersonalInfo == nil {
			continue
		}

		facts.Name = params.PersonalInfo.Name
		facts.Title = params.PersonalInfo.Title
		if c := params.PersonalInfo.Contact; c != nil {
			facts.Contact = formatContact(c)
		}
	}

	input := strings.ToLower(update.UserInput)

	// Checked in fixed order; the last matching keyword wins.
	for _, template := range []string{resume.TemplateProfessional, resume.TemplateCreative, resume.TemplateModern} {
		if strings.Contains(input, template) {
			facts.PreferredTemplate = template
		}
	}
	for _, role := range []string{"software engineer", "product manager", "data analyst"} {
		if strings.Contains(input, role) {
			facts.TargetRole = role
		}
	}

	if facts.Empty() {
		return nil
	}
	return facts
}

func formatContact(c *resume.ContactInfo) string {
	parts := make([]string, 0, 2)
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	return strings.Join(parts, " | ")
}
