package artifact

import (
	"context"
	"strings"
	"testing"
	"time"

	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/specification"
	"ai-resumebuilder-be/pkg/resume"

	"github.com/google/uuid"
)

// fakeArtifactRepository keeps artifacts in a slice. Specifications are
// ignored; tests seed only rows that would match.
type fakeArtifactRepository struct {
	rows []*entity.Artifact
}

func (f *fakeArtifactRepository) Create(_ context.Context, a *entity.Artifact) error {
	a.Id = uuid.New()
	a.CreatedAt = time.Now()
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeArtifactRepository) Update(_ context.Context, a *entity.Artifact) error {
	for i, row := range f.rows {
		if row.Id == a.Id {
			f.rows[i] = a
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeArtifactRepository) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range f.rows {
		if row.Id == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeArtifactRepository) DeleteByConversationId(_ context.Context, conversationId uuid.UUID) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.ConversationId != conversationId {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeArtifactRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Artifact, error) {
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

func (f *fakeArtifactRepository) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Artifact, error) {
	out := make([]*entity.Artifact, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeArtifactRepository) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(f.rows)), nil
}

func newTestStore() (*Store, *fakeArtifactRepository) {
	repo := &fakeArtifactRepository{}
	return NewStore(repo, resume.NewDefaultSanitizer()), repo
}

func TestCreateStartsAtVersionOne(t *testing.T) {
	store, _ := newTestStore()

	a, err := store.Create(context.Background(), &CreateInput{
		UserId:         uuid.New(),
		ConversationId: uuid.New(),
		Type:           TypeResume,
		Title:          "My Resume",
		Code:           `{"content":[]}`,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if a.Version != 1 {
		t.Errorf("Version = %d, want 1", a.Version)
	}
	if a.Id == uuid.Nil {
		t.Error("id should be assigned")
	}
}

func TestUpdateContentBumpsVersionAndMergesMetadata(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	a, _ := store.Create(ctx, &CreateInput{
		Type: TypeResume, Title: "R", Code: `{"content":[]}`,
		Metadata: map[string]interface{}{"template": "modern", "colorScheme": "blue"},
	})

	updated, err := store.UpdateContent(ctx, a.Id, `{"content":[{"text":"x"}]}`,
		map[string]interface{}{"colorScheme": "red", "lastUpdate": "experience"})
	if err != nil {
		t.Fatalf("UpdateContent error: %v", err)
	}

	if updated.Version != 2 {
		t.Errorf("Version = %d, want 2", updated.Version)
	}
	if updated.Metadata["template"] != "modern" {
		t.Errorf("untouched metadata key lost: %v", updated.Metadata)
	}
	if updated.Metadata["colorScheme"] != "red" {
		t.Errorf("updated metadata key not applied: %v", updated.Metadata)
	}
	if updated.UpdatedAt == nil {
		t.Error("UpdatedAt should be set")
	}

	again, err := store.UpdateContent(ctx, a.Id, `{"content":[]}`, nil)
	if err != nil {
		t.Fatalf("second UpdateContent error: %v", err)
	}
	if again.Version != 3 {
		t.Errorf("Version = %d, want 3", again.Version)
	}
}

func TestUpdateContentMissingArtifact(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.UpdateContent(context.Background(), uuid.New(), "{}", nil)
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSelectCurrent(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	later := base.Add(time.Hour)

	at := func(ts time.Time, version int) *entity.Artifact {
		return &entity.Artifact{Id: uuid.New(), CreatedAt: base, UpdatedAt: &ts, Version: version}
	}

	tests := []struct {
		name       string
		candidates []*entity.Artifact
		wantIdx    int
	}{
		{"none", nil, -1},
		{"single", []*entity.Artifact{at(base, 1)}, 0},
		{"latest updated wins", []*entity.Artifact{at(base, 5), at(later, 1)}, 1},
		{"tie breaks on version", []*entity.Artifact{at(base, 2), at(base, 7), at(base, 3)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectCurrent(tt.candidates)
			if tt.wantIdx < 0 {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if got != tt.candidates[tt.wantIdx] {
				t.Errorf("selected wrong candidate")
			}
		})
	}
}

func TestSelectCurrentFallsBackToCreatedAt(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	neverUpdated := &entity.Artifact{Id: uuid.New(), CreatedAt: base.Add(time.Hour), Version: 1}
	updatedEarlier := &entity.Artifact{Id: uuid.New(), CreatedAt: base, UpdatedAt: &base, Version: 4}

	got := SelectCurrent([]*entity.Artifact{updatedEarlier, neverUpdated})
	if got != neverUpdated {
		t.Error("artifact without UpdatedAt should rank by CreatedAt")
	}
}

func TestApplyDocumentCreatesThenVersions(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	userId, convId := uuid.New(), uuid.New()

	doc := []byte(`{"pageSize":"LETTER","content":[{"text":"EXPERIENCE"}]}`)

	first, created, err := store.ApplyDocument(ctx, userId, convId, "Jane - Modern", doc, map[string]interface{}{"template": "modern"})
	if err != nil {
		t.Fatalf("ApplyDocument error: %v", err)
	}
	if !created {
		t.Error("first apply should create")
	}
	if first.Version != 1 {
		t.Errorf("Version = %d, want 1", first.Version)
	}

	second, created, err := store.ApplyDocument(ctx, userId, convId, "", doc, nil)
	if err != nil {
		t.Fatalf("second ApplyDocument error: %v", err)
	}
	if created {
		t.Error("second apply should update, not create")
	}
	if second.Id != first.Id {
		t.Error("second apply should target the same artifact")
	}
	if second.Version != 2 {
		t.Errorf("Version = %d, want 2", second.Version)
	}
}

func TestApplyDocumentSanitizes(t *testing.T) {
	store, _ := newTestStore()

	a, _, err := store.ApplyDocument(context.Background(), uuid.New(), uuid.New(), "R",
		[]byte(`{"pageSize":"LETTER","content":[]}`), nil)
	if err != nil {
		t.Fatalf("ApplyDocument error: %v", err)
	}

	if want := `"pageSize":"A4"`; !strings.Contains(a.Code, want) {
		t.Errorf("stored code should be sanitized, got %s", a.Code)
	}
}

func TestApplyDocumentRejectsInvalidJSON(t *testing.T) {
	store, _ := newTestStore()

	_, _, err := store.ApplyDocument(context.Background(), uuid.New(), uuid.New(), "R", []byte(`{broken`), nil)
	if err == nil {
		t.Error("expected sanitize error for invalid JSON")
	}
}
