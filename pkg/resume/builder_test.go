package resume

import (
	"strings"
	"testing"
)

func TestBuildDocumentDefaults(t *testing.T) {
	doc := BuildDocument(&StructureParams{})

	if doc.PageSize != "A4" {
		t.Errorf("PageSize = %q, want A4", doc.PageSize)
	}
	if len(doc.PageMargins) != 4 {
		t.Fatalf("PageMargins length = %d, want 4", len(doc.PageMargins))
	}
	if doc.DefaultStyle["font"] != "Helvetica" {
		t.Errorf("default font = %v, want Helvetica", doc.DefaultStyle["font"])
	}
	if doc.Styles["header"].Color != "#2563eb" {
		t.Errorf("default template should be modern, got header color %s", doc.Styles["header"].Color)
	}
}

func TestBuildDocumentHeader(t *testing.T) {
	doc := BuildDocument(&StructureParams{
		PersonalInfo: &PersonalInfo{
			Name:    "Jane Doe",
			Title:   "Staff Engineer",
			Contact: &ContactInfo{Phone: "555-0100", Email: "jane@example.com"},
		},
	})

	if len(doc.Content) != 3 {
		t.Fatalf("content length = %d, want 3 (name, title, contact)", len(doc.Content))
	}

	name := doc.Content[0].(map[string]interface{})
	if name["text"] != "Jane Doe" || name["style"] != "header" {
		t.Errorf("unexpected name block: %v", name)
	}

	contact := doc.Content[2].(map[string]interface{})
	if _, ok := contact["columns"]; !ok {
		t.Errorf("contact block should use columns: %v", contact)
	}
}

func TestBuildDocumentHeaderPlaceholders(t *testing.T) {
	doc := BuildDocument(&StructureParams{PersonalInfo: &PersonalInfo{}})

	name := doc.Content[0].(map[string]interface{})
	if name["text"] != "Your Name" {
		t.Errorf("empty name should fall back to placeholder, got %v", name["text"])
	}
}

func TestBuildSectionContent(t *testing.T) {
	tests := []struct {
		name       string
		section    Section
		wantBlocks int
		wantStyle  string
	}{
		{
			name: "experience flattens per item",
			section: Section{
				Type: "experience",
				Items: []ExperienceItem{
					{Title: "Engineer", Duration: "2020-2024", Bullets: []string{"shipped"}},
					{Title: "Intern", Duration: "2019"},
				},
			},
			wantBlocks: 6,
			wantStyle:  "jobTitle",
		},
		{
			name:       "skills is a single block",
			section:    Section{Type: "skills", Content: "Go, SQL"},
			wantBlocks: 1,
			wantStyle:  "skills",
		},
		{
			name:       "unknown type renders as normal text",
			section:    Section{Type: "summary", Content: "A summary."},
			wantBlocks: 1,
			wantStyle:  "normal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := buildSectionContent(&tt.section)
			if len(blocks) != tt.wantBlocks {
				t.Fatalf("blocks = %d, want %d", len(blocks), tt.wantBlocks)
			}
			first := blocks[0].(map[string]interface{})
			if first["style"] != tt.wantStyle {
				t.Errorf("first block style = %v, want %s", first["style"], tt.wantStyle)
			}
		})
	}
}

func TestSectionTitlesUppercased(t *testing.T) {
	doc := BuildDocument(&StructureParams{
		Sections: []Section{{Title: "Work Experience", Type: "experience"}},
	})

	header := doc.Content[0].(map[string]interface{})
	if header["text"] != "WORK EXPERIENCE" {
		t.Errorf("section header = %v, want WORK EXPERIENCE", header["text"])
	}
}

func TestTemplateStyles(t *testing.T) {
	tests := []struct {
		template  string
		wantColor string
	}{
		{TemplateModern, "#2563eb"},
		{TemplateProfessional, "#1e40af"},
		{TemplateCreative, "#7c3aed"},
		{"unheard-of", "#2563eb"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			styles := TemplateStyles(tt.template)
			if styles["header"].Color != tt.wantColor {
				t.Errorf("header color = %s, want %s", styles["header"].Color, tt.wantColor)
			}
			if styles["sectionHeader"].Color != tt.wantColor {
				t.Errorf("sectionHeader color = %s, want %s", styles["sectionHeader"].Color, tt.wantColor)
			}
			if styles["contact"].Color != "" {
				t.Errorf("contact should not carry the accent color")
			}
		})
	}
}

func TestApplyColorScheme(t *testing.T) {
	tests := []struct {
		scheme    string
		wantColor string
	}{
		{"blue", "#2563eb"},
		{"green", "#059669"},
		{"purple", "#7c3aed"},
		{"red", "#dc2626"},
		{"neon", "#2563eb"}, // unknown falls back to blue
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			styles := TemplateStyles(TemplateProfessional)
			ApplyColorScheme(styles, tt.scheme)
			if styles["header"].Color != tt.wantColor {
				t.Errorf("header color = %s, want %s", styles["header"].Color, tt.wantColor)
			}
		})
	}
}

func TestApplyLayoutTwoColumn(t *testing.T) {
	doc := BuildDocument(&StructureParams{
		PersonalInfo: &PersonalInfo{Name: "Jane"},
		Sections: []Section{
			{Title: "Skills", Type: "skills", Content: "Go"},
			{Title: "Summary", Type: "summary", Content: "..."},
		},
	})

	before := len(doc.Content)
	ApplyLayout(doc, "two-column")
	if len(doc.Content) >= before {
		t.Fatalf("two-column layout should collapse body blocks, got %d blocks", len(doc.Content))
	}

	last := doc.Content[len(doc.Content)-1].(map[string]interface{})
	cols, ok := last["columns"].([]interface{})
	if !ok || len(cols) != 2 {
		t.Errorf("last block should hold two columns: %v", last)
	}
}

func TestApplyLayoutSingleColumnNoop(t *testing.T) {
	doc := BuildDocument(&StructureParams{
		PersonalInfo: &PersonalInfo{Name: "Jane"},
		Sections:     []Section{{Title: "Skills", Type: "skills", Content: "Go"}},
	})

	before := len(doc.Content)
	ApplyLayout(doc, "single")
	if len(doc.Content) != before {
		t.Errorf("single layout should leave content alone")
	}
}

func TestEnhanceWithKeywords(t *testing.T) {
	doc := BuildDocument(&StructureParams{
		Sections: []Section{{Title: "Skills", Type: "skills", Content: "Go, SQL"}},
	})

	EnhanceWithKeywords(doc, []string{"Kubernetes", "sql"}, "platform engineer")

	skills := doc.Content[1].(map[string]interface{})
	text := skills["text"].(string)
	if !strings.Contains(text, "Kubernetes") {
		t.Errorf("missing keyword should be appended, got %q", text)
	}
	if strings.Count(strings.ToLower(text), "sql") != 1 {
		t.Errorf("present keyword should not be duplicated, got %q", text)
	}
}

func TestEnhanceWithKeywordsAddsSkillsSection(t *testing.T) {
	doc := BuildDocument(&StructureParams{
		Sections: []Section{{Title: "Summary", Type: "summary", Content: "..."}},
	})

	before := len(doc.Content)
	EnhanceWithKeywords(doc, []string{"Go"}, "backend engineer")
	if len(doc.Content) != before+2 {
		t.Fatalf("expected a new header+skills block pair, got %d blocks", len(doc.Content))
	}

	header := doc.Content[before].(map[string]interface{})
	if header["text"] != "SKILLS - BACKEND ENGINEER" {
		t.Errorf("new section header = %v", header["text"])
	}
}
