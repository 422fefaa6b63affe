package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/specification"
	"ai-resumebuilder-be/pkg/agent"
	"ai-resumebuilder-be/pkg/artifact"
	"ai-resumebuilder-be/pkg/renderer"
	"ai-resumebuilder-be/pkg/resume"

	"github.com/google/uuid"
)

type memArtifactRepo struct {
	rows []*entity.Artifact
}

func (f *memArtifactRepo) Create(_ context.Context, a *entity.Artifact) error {
	a.Id = uuid.New()
	a.CreatedAt = time.Now()
	f.rows = append(f.rows, a)
	return nil
}

func (f *memArtifactRepo) Update(_ context.Context, a *entity.Artifact) error {
	for i, row := range f.rows {
		if row.Id == a.Id {
			f.rows[i] = a
			return nil
		}
	}
	return errors.New("not found")
}

func (f *memArtifactRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func (f *memArtifactRepo) DeleteByConversationId(_ context.Context, _ uuid.UUID) error { return nil }

func (f *memArtifactRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Artifact, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, row := range f.rows {
				if row.Id == byID.ID {
					copied := *row
					return &copied, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *memArtifactRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Artifact, error) {
	out := make([]*entity.Artifact, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *memArtifactRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(f.rows)), nil
}

type stubRenderer struct {
	rendered *renderer.RenderedDocument
	err      error
	lastDoc  json.RawMessage
}

func (s *stubRenderer) Render(_ context.Context, doc json.RawMessage) (*renderer.RenderedDocument, error) {
	s.lastDoc = doc
	return s.rendered, s.err
}

func newToolsUnderTest() (*ResumeTools, *artifact.Store, *stubRenderer) {
	store := artifact.NewStore(&memArtifactRepo{}, resume.NewDefaultSanitizer())
	rend := &stubRenderer{rendered: &renderer.RenderedDocument{
		Data:        []byte("%PDF-1.7"),
		ContentType: "application/pdf",
		Locator:     "doc-123",
	}}
	return NewResumeTools(store, rend), store, rend
}

func session() agent.SessionContext {
	return agent.SessionContext{UserId: uuid.New(), ConversationId: uuid.New()}
}

func TestCreateResumeStructure(t *testing.T) {
	tools, _, _ := newToolsUnderTest()
	s := session()

	params := json.RawMessage(`{
		"template": "professional",
		"personalInfo": {"name": "Jane Doe", "title": "Engineer"},
		"sections": [{"title": "Skills", "type": "skills", "content": "Go"}]
	}`)

	out, err := tools.CreateResumeStructure(context.Background(), params, s)
	if err != nil {
		t.Fatalf("CreateResumeStructure error: %v", err)
	}

	if out.Artifact == nil {
		t.Fatal("expected an artifact")
	}
	if out.Artifact.Title != "Jane Doe - professional" {
		t.Errorf("title = %q", out.Artifact.Title)
	}
	if out.Artifact.Version != 1 {
		t.Errorf("version = %d, want 1", out.Artifact.Version)
	}
	if out.Artifact.Type != artifact.TypeResume {
		t.Errorf("type = %s", out.Artifact.Type)
	}
	if !strings.Contains(out.Artifact.Code, "#1e40af") {
		t.Error("professional accent color missing from stored document")
	}
}

func TestCreateResumeStructureDefaultTitle(t *testing.T) {
	tools, _, _ := newToolsUnderTest()

	out, err := tools.CreateResumeStructure(context.Background(), json.RawMessage(`{}`), session())
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if out.Artifact.Title != "Resume - Modern" {
		t.Errorf("title = %q, want Resume - Modern", out.Artifact.Title)
	}
}

func TestUpdateResumeSectionRequiresResume(t *testing.T) {
	tools, _, _ := newToolsUnderTest()

	_, err := tools.UpdateResumeSection(context.Background(),
		json.RawMessage(`{"section":"experience","updates":{"text":"x"}}`), session())
	if !errors.Is(err, ErrNoResumeToUpdate) {
		t.Errorf("err = %v, want ErrNoResumeToUpdate", err)
	}
}

func TestUpdateResumeSectionVersionsArtifact(t *testing.T) {
	tools, _, _ := newToolsUnderTest()
	s := session()
	ctx := context.Background()

	_, err := tools.CreateResumeStructure(ctx, json.RawMessage(`{
		"sections": [{"title": "Skills", "type": "skills", "content": "Go"}]
	}`), s)
	if err != nil {
		t.Fatalf("seed error: %v", err)
	}

	out, err := tools.UpdateResumeSection(ctx,
		json.RawMessage(`{"section":"skills","updates":{"text":"Go, SQL, Kubernetes"}}`), s)
	if err != nil {
		t.Fatalf("UpdateResumeSection error: %v", err)
	}

	if out.Artifact.Version != 2 {
		t.Errorf("version = %d, want 2", out.Artifact.Version)
	}
	if out.Artifact.Metadata["lastUpdate"] != "skills" {
		t.Errorf("metadata lastUpdate = %v", out.Artifact.Metadata["lastUpdate"])
	}
	if !strings.Contains(out.Artifact.Code, "Kubernetes") {
		t.Error("section update not applied to stored document")
	}
}

func TestApplyTemplate(t *testing.T) {
	tools, _, _ := newToolsUnderTest()
	s := session()
	ctx := context.Background()

	if _, err := tools.CreateResumeStructure(ctx, json.RawMessage(`{
		"personalInfo": {"name": "Jane"},
		"sections": [
			{"title": "Skills", "type": "skills", "content": "Go"},
			{"title": "Summary", "type": "summary", "content": "..."}
		]
	}`), s); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	out, err := tools.ApplyTemplate(ctx,
		json.RawMessage(`{"template":"creative","colorScheme":"green","layout":"two-column"}`), s)
	if err != nil {
		t.Fatalf("ApplyTemplate error: %v", err)
	}

	if out.Artifact.Version != 2 {
		t.Errorf("version = %d, want 2", out.Artifact.Version)
	}
	// green scheme overrides the creative accent
	if !strings.Contains(out.Artifact.Code, "#059669") {
		t.Error("color scheme not applied")
	}
	if !strings.Contains(out.Artifact.Code, "columns") {
		t.Error("two-column layout not applied")
	}
	if out.Artifact.Metadata["template"] != "creative" {
		t.Errorf("metadata template = %v", out.Artifact.Metadata["template"])
	}
}

func TestApplyTemplateRequiresResume(t *testing.T) {
	tools, _, _ := newToolsUnderTest()

	_, err := tools.ApplyTemplate(context.Background(), json.RawMessage(`{"template":"modern"}`), session())
	if !errors.Is(err, ErrNoResumeToRedesign) {
		t.Errorf("err = %v, want ErrNoResumeToRedesign", err)
	}
}

func TestOptimizeKeywords(t *testing.T) {
	tools, _, _ := newToolsUnderTest()
	s := session()
	ctx := context.Background()

	if _, err := tools.CreateResumeStructure(ctx, json.RawMessage(`{
		"sections": [{"title": "Skills", "type": "skills", "content": "Go"}]
	}`), s); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	out, err := tools.OptimizeKeywords(ctx,
		json.RawMessage(`{"targetRole":"software engineer","keywords":["Terraform","gRPC"]}`), s)
	if err != nil {
		t.Fatalf("OptimizeKeywords error: %v", err)
	}

	if !strings.Contains(out.Artifact.Code, "Terraform") {
		t.Error("keywords not folded into document")
	}
	if out.Artifact.Metadata["optimizedFor"] != "software engineer" {
		t.Errorf("metadata optimizedFor = %v", out.Artifact.Metadata["optimizedFor"])
	}
}

func TestOptimizeKeywordsRequiresResume(t *testing.T) {
	tools, _, _ := newToolsUnderTest()

	_, err := tools.OptimizeKeywords(context.Background(), json.RawMessage(`{"keywords":["x"]}`), session())
	if !errors.Is(err, ErrNoResumeToOptimize) {
		t.Errorf("err = %v, want ErrNoResumeToOptimize", err)
	}
}

func TestGeneratePdfFromCurrentResume(t *testing.T) {
	tools, _, rend := newToolsUnderTest()
	s := session()
	ctx := context.Background()

	if _, err := tools.CreateResumeStructure(ctx, json.RawMessage(`{
		"sections": [{"title": "Skills", "type": "skills", "content": "Go"}]
	}`), s); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	out, err := tools.GeneratePdf(ctx, json.RawMessage(`{"title":"My PDF"}`), s)
	if err != nil {
		t.Fatalf("GeneratePdf error: %v", err)
	}

	if out.Artifact.Type != artifact.TypePDF {
		t.Errorf("type = %s, want pdf", out.Artifact.Type)
	}
	if out.Artifact.Title != "My PDF" {
		t.Errorf("title = %q", out.Artifact.Title)
	}
	if out.Artifact.Metadata["locator"] != "doc-123" {
		t.Errorf("metadata locator = %v", out.Artifact.Metadata["locator"])
	}
	if rend.lastDoc == nil {
		t.Error("renderer never received the document")
	}
}

func TestGeneratePdfRendererFailure(t *testing.T) {
	tools, _, rend := newToolsUnderTest()
	rend.rendered = nil
	rend.err = errors.New("render service down")

	_, err := tools.GeneratePdf(context.Background(),
		json.RawMessage(`{"resumeData":{"content":[]}}`), session())
	if err == nil || !strings.Contains(err.Error(), "render service down") {
		t.Errorf("err = %v", err)
	}
}

func TestApplySectionUpdates(t *testing.T) {
	doc := map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{"text": "SKILLS", "style": "sectionHeader"},
			map[string]interface{}{"text": "Go", "style": "skills"},
		},
	}

	applySectionUpdates(doc, "skills", map[string]interface{}{"text": "Go, Rust"})

	block := doc["content"].([]interface{})[1].(map[string]interface{})
	if block["text"] != "Go, Rust" {
		t.Errorf("text = %v", block["text"])
	}

	// Unknown section leaves the document untouched.
	applySectionUpdates(doc, "education", map[string]interface{}{"text": "nope"})
	if block["text"] != "Go, Rust" {
		t.Error("unknown section must not mutate other blocks")
	}
}
