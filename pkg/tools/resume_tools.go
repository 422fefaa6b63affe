package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai-resumebuilder-be/pkg/agent"
	"ai-resumebuilder-be/pkg/artifact"
	"ai-resumebuilder-be/pkg/renderer"
	"ai-resumebuilder-be/pkg/resume"
)

var (
	ErrNoResumeToUpdate   = errors.New("no resume found to update")
	ErrNoResumeToRedesign = errors.New("no resume found to redesign")
	ErrNoResumeToOptimize = errors.New("no resume found to optimize")
)

// ResumeTools implements the resume-shaping tools. Every document write goes
// through the artifact store's ApplyDocument so versioning and sanitization
// stay in one place.
type ResumeTools struct {
	store    *artifact.Store
	renderer renderer.Renderer
}

func NewResumeTools(store *artifact.Store, rend renderer.Renderer) *ResumeTools {
	return &ResumeTools{
		store:    store,
		renderer: rend,
	}
}

// RegisterAll binds the resume tools onto an executor.
func (t *ResumeTools) RegisterAll(e *Executor) {
	e.Register(ToolCreateResumeStructure, t.CreateResumeStructure)
	e.Register(ToolUpdateResumeSection, t.UpdateResumeSection)
	e.Register(ToolApplyTemplate, t.ApplyTemplate)
	e.Register(ToolOptimizeKeywords, t.OptimizeKeywords)
	e.Register(ToolGeneratePdf, t.GeneratePdf)
}

func (t *ResumeTools) CreateResumeStructure(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error) {
	var structure resume.StructureParams
	if err := json.Unmarshal(params, &structure); err != nil {
		return nil, fmt.Errorf("decode create_resume_structure parameters: %w", err)
	}

	doc := resume.BuildDocument(&structure)
	code, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	name := "Resume"
	if structure.PersonalInfo != nil && structure.PersonalInfo.Name != "" {
		name = structure.PersonalInfo.Name
	}
	template := structure.Template
	if template == "" {
		template = "Modern"
	}
	title := fmt.Sprintf("%s - %s", name, template)

	a, _, err := t.store.ApplyDocument(ctx, session.UserId, session.ConversationId, title, code,
		map[string]interface{}{"template": structure.Template})
	if err != nil {
		return nil, err
	}

	return &Output{
		Artifact: a,
		Data:     map[string]interface{}{"resumeData": json.RawMessage(a.Code)},
	}, nil
}

func (t *ResumeTools) UpdateResumeSection(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error) {
	var p struct {
		Section string                 `json:"section"`
		Updates map[string]interface{} `json:"updates"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("decode update_resume_section parameters: %w", err)
	}

	doc, err := t.currentDocument(ctx, session, ErrNoResumeToUpdate)
	if err != nil {
		return nil, err
	}

	applySectionUpdates(doc, p.Section, p.Updates)

	return t.apply(ctx, session, doc, map[string]interface{}{"lastUpdate": p.Section})
}

func (t *ResumeTools) ApplyTemplate(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error) {
	var p struct {
		Template    string `json:"template"`
		ColorScheme string `json:"colorScheme"`
		Layout      string `json:"layout"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("decode apply_template parameters: %w", err)
	}

	doc, err := t.currentDocument(ctx, session, ErrNoResumeToRedesign)
	if err != nil {
		return nil, err
	}

	styles := resume.TemplateStyles(p.Template)
	if p.ColorScheme != "" {
		resume.ApplyColorScheme(styles, p.ColorScheme)
	}
	doc["styles"] = styles

	if p.Layout != "" {
		if content, ok := doc["content"].([]interface{}); ok {
			tmp := &resume.DocDefinition{Content: content}
			resume.ApplyLayout(tmp, p.Layout)
			doc["content"] = tmp.Content
		}
	}

	return t.apply(ctx, session, doc, map[string]interface{}{
		"template":    p.Template,
		"colorScheme": p.ColorScheme,
		"layout":      p.Layout,
	})
}

func (t *ResumeTools) OptimizeKeywords(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error) {
	var p struct {
		TargetRole string   `json:"targetRole"`
		Keywords   []string `json:"keywords"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("decode optimize_keywords parameters: %w", err)
	}

	doc, err := t.currentDocument(ctx, session, ErrNoResumeToOptimize)
	if err != nil {
		return nil, err
	}

	if content, ok := doc["content"].([]interface{}); ok {
		tmp := &resume.DocDefinition{Content: content}
		resume.EnhanceWithKeywords(tmp, p.Keywords, p.TargetRole)
		doc["content"] = tmp.Content
	}

	return t.apply(ctx, session, doc, map[string]interface{}{
		"optimizedFor": p.TargetRole,
		"keywords":     p.Keywords,
	})
}

func (t *ResumeTools) GeneratePdf(ctx context.Context, params json.RawMessage, session agent.SessionContext) (*Output, error) {
	var p struct {
		ResumeData json.RawMessage `json:"resumeData"`
		ResumeCode string          `json:"resumeCode"`
		Title      string          `json:"title"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("decode generate_pdf parameters: %w", err)
	}

	docJSON := p.ResumeData
	if docJSON == nil && p.ResumeCode != "" {
		docJSON = json.RawMessage(p.ResumeCode)
	}
	if docJSON == nil {
		current, err := t.store.CurrentResume(ctx, session.UserId, session.ConversationId)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrNoResumeToUpdate
		}
		docJSON = json.RawMessage(current.Code)
	}

	rendered, err := t.renderer.Render(ctx, docJSON)
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}

	title := p.Title
	if title == "" {
		title = "Generated PDF"
	}

	a, err := t.store.Create(ctx, &artifact.CreateInput{
		UserId:         session.UserId,
		ConversationId: session.ConversationId,
		Type:           artifact.TypePDF,
		Title:          title,
		Code:           string(docJSON),
		Metadata: map[string]interface{}{
			"locator":  rendered.Locator,
			"size":     rendered.Size(),
			"mimeType": rendered.ContentType,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Output{
		Artifact: a,
		Data: map[string]interface{}{
			"locator": rendered.Locator,
			"size":    rendered.Size(),
		},
	}, nil
}

// currentDocument loads and decodes the conversation's current resume.
func (t *ResumeTools) currentDocument(ctx context.Context, session agent.SessionContext, missing error) (map[string]interface{}, error) {
	current, err := t.store.CurrentResume(ctx, session.UserId, session.ConversationId)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, missing
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(current.Code), &doc); err != nil {
		return nil, fmt.Errorf("decode stored resume: %w", err)
	}
	return doc, nil
}

func (t *ResumeTools) apply(ctx context.Context, session agent.SessionContext, doc map[string]interface{}, metadata map[string]interface{}) (*Output, error) {
	code, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	a, _, err := t.store.ApplyDocument(ctx, session.UserId, session.ConversationId, "", code, metadata)
	if err != nil {
		return nil, err
	}

	return &Output{
		Artifact: a,
		Data:     map[string]interface{}{"resumeData": json.RawMessage(a.Code)},
	}, nil
}

// applySectionUpdates merges update attributes into the block following the
// matching section header. Unmatched sections leave the document untouched.
func applySectionUpdates(doc map[string]interface{}, section string, updates map[string]interface{}) {
	if section == "" || len(updates) == 0 {
		return
	}
	content, ok := doc["content"].([]interface{})
	if !ok {
		return
	}

	target := strings.ToUpper(section)
	for i, block := range content {
		m, ok := block.(map[string]interface{})
		if !ok || m["style"] != "sectionHeader" {
			continue
		}
		text, _ := m["text"].(string)
		if !strings.Contains(strings.ToUpper(text), target) {
			continue
		}
		if i+1 < len(content) {
			if next, ok := content[i+1].(map[string]interface{}); ok {
				for k, v := range updates {
					next[k] = v
				}
			}
		}
		return
	}
}
