package resume

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSanitizeEnforcesPageDefaults(t *testing.T) {
	s := NewDefaultSanitizer()

	raw := []byte(`{"pageSize":"LETTER","content":[{"text":"hello"}]}`)
	out, err := s.Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize error: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc["pageSize"] != "A4" {
		t.Errorf("pageSize = %v, want A4", doc["pageSize"])
	}

	margins, ok := doc["pageMargins"].([]interface{})
	if !ok || len(margins) != 4 {
		t.Fatalf("pageMargins = %v, want 4 values", doc["pageMargins"])
	}
	for i, m := range margins {
		if m.(float64) != 36 {
			t.Errorf("pageMargins[%d] = %v, want 36", i, m)
		}
	}
}

func TestSanitizeKeepsExistingMargins(t *testing.T) {
	s := NewDefaultSanitizer()

	out, err := s.Sanitize([]byte(`{"pageMargins":[10,20,10,20],"content":[]}`))
	if err != nil {
		t.Fatalf("Sanitize error: %v", err)
	}

	var doc map[string]interface{}
	_ = json.Unmarshal(out, &doc)
	margins := doc["pageMargins"].([]interface{})
	if margins[1].(float64) != 20 {
		t.Errorf("existing margins were overwritten: %v", margins)
	}
}

func TestSanitizeStripsPageBreaks(t *testing.T) {
	s := NewDefaultSanitizer()

	out, err := s.Sanitize([]byte(`{"pageBreakBefore":"function","content":[]}`))
	if err != nil {
		t.Fatalf("Sanitize error: %v", err)
	}

	var doc map[string]interface{}
	_ = json.Unmarshal(out, &doc)
	if _, ok := doc["pageBreakBefore"]; ok {
		t.Error("pageBreakBefore should be removed")
	}
}

func TestSanitizeCollapsesDuplicateResumes(t *testing.T) {
	s := NewDefaultSanitizer()

	// Two blocks that each span several resume sections: a stacked
	// duplicate of the whole resume.
	raw := []byte(`{"content":[
		{"stack":[{"text":"WORK EXPERIENCE"},{"text":"EDUCATION"},{"text":"SKILLS"}]},
		{"text":"decorative divider"},
		{"stack":[{"text":"EXPERIENCE"},{"text":"EDUCATION"}]}
	]}`)

	out, err := s.Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize error: %v", err)
	}

	var doc map[string]interface{}
	_ = json.Unmarshal(out, &doc)
	content := doc["content"].([]interface{})
	if len(content) != 1 {
		t.Fatalf("content length = %d, want 1", len(content))
	}
	first := content[0].(map[string]interface{})
	stack := first["stack"].([]interface{})
	if len(stack) != 3 {
		t.Errorf("kept block should be the first full resume, got %v", first)
	}
}

func TestSanitizeKeepsSingleResumeBlockIntact(t *testing.T) {
	s := NewDefaultSanitizer()

	// Ordinary built document: one header per section. None of these
	// blocks is a nested duplicate, so nothing is dropped.
	raw := []byte(`{"content":[
		{"text":"Jane Doe"},
		{"text":"EXPERIENCE"},
		{"text":"SKILLS"},
		{"text":"footer note"}
	]}`)

	out, err := s.Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize error: %v", err)
	}

	var doc map[string]interface{}
	_ = json.Unmarshal(out, &doc)
	content := doc["content"].([]interface{})
	if len(content) != 4 {
		t.Errorf("content length = %d, want 4 (section headers are not nested resumes)", len(content))
	}
}

func TestSanitizePreservesUnknownKeys(t *testing.T) {
	s := NewDefaultSanitizer()

	out, err := s.Sanitize([]byte(`{"content":[],"footer":{"text":"page"},"images":{"logo":"data:..."}}`))
	if err != nil {
		t.Fatalf("Sanitize error: %v", err)
	}

	var doc map[string]interface{}
	_ = json.Unmarshal(out, &doc)
	if _, ok := doc["footer"]; !ok {
		t.Error("footer was dropped")
	}
	if _, ok := doc["images"]; !ok {
		t.Error("images was dropped")
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	s := NewDefaultSanitizer()

	raw := []byte(`{"pageSize":"LETTER","pageBreakBefore":true,"content":[
		{"stack":[{"text":"EXPERIENCE"},{"text":"EDUCATION"}]},
		{"stack":[{"text":"SKILLS"},{"text":"PROJECTS"}]}
	]}`)

	once, err := s.Sanitize(raw)
	if err != nil {
		t.Fatalf("first Sanitize error: %v", err)
	}
	twice, err := s.Sanitize(once)
	if err != nil {
		t.Fatalf("second Sanitize error: %v", err)
	}

	if !bytes.Equal(once, twice) {
		t.Errorf("sanitize is not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestSanitizeInvalidJSON(t *testing.T) {
	s := NewDefaultSanitizer()
	if _, err := s.Sanitize([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
