package resume

import (
	"strings"
)

// BuildDocument assembles a pdfmake document from structured resume input.
// Missing template falls back to modern.
func BuildDocument(params *StructureParams) *DocDefinition {
	template := params.Template
	if template == "" {
		template = TemplateModern
	}

	return &DocDefinition{
		PageSize:     "A4",
		PageMargins:  []float64{40, 60, 40, 60},
		Content:      buildContent(params),
		Styles:       TemplateStyles(template),
		DefaultStyle: map[string]interface{}{"font": "Helvetica"},
	}
}

func buildContent(params *StructureParams) []interface{} {
	content := make([]interface{}, 0)

	if info := params.PersonalInfo; info != nil {
		name := info.Name
		if name == "" {
			name = "Your Name"
		}
		title := info.Title
		if title == "" {
			title = "Professional Title"
		}

		content = append(content,
			map[string]interface{}{"text": name, "style": "header", "alignment": "center"},
			map[string]interface{}{"text": title, "style": "subheader", "alignment": "center", "margin": []float64{0, 0, 0, 20}},
		)

		if info.Contact != nil {
			content = append(content, map[string]interface{}{
				"columns": []interface{}{
					map[string]interface{}{"text": info.Contact.Phone, "style": "contact"},
					map[string]interface{}{"text": info.Contact.Email, "style": "contact", "alignment": "right"},
				},
				"margin": []float64{0, 0, 0, 20},
			})
		}
	}

	for _, section := range params.Sections {
		content = append(content, map[string]interface{}{
			"text":  strings.ToUpper(section.Title),
			"style": "sectionHeader",
		})
		content = append(content, buildSectionContent(&section)...)
	}

	return content
}

func buildSectionContent(section *Section) []interface{} {
	switch section.Type {
	case "experience":
		blocks := make([]interface{}, 0, len(section.Items)*3)
		for _, item := range section.Items {
			bullets := item.Bullets
			if bullets == nil {
				bullets = []string{}
			}
			blocks = append(blocks,
				map[string]interface{}{"text": item.Title, "style": "jobTitle", "margin": []float64{0, 10, 0, 5}},
				map[string]interface{}{"text": item.Duration, "style": "duration", "margin": []float64{0, 0, 0, 10}},
				map[string]interface{}{"ul": bullets, "style": "bulletPoints"},
			)
		}
		return blocks

	case "skills":
		return []interface{}{
			map[string]interface{}{"text": section.Content, "style": "skills"},
		}

	default:
		return []interface{}{
			map[string]interface{}{"text": section.Content, "style": "normal"},
		}
	}
}

// TemplateStyles returns the style table for a template. Unknown templates
// get the modern accent.
func TemplateStyles(template string) map[string]*Style {
	styles := map[string]*Style{
		"header":        {FontSize: 24, Bold: true},
		"subheader":     {FontSize: 16, Italics: true},
		"contact":       {FontSize: 10},
		"sectionHeader": {FontSize: 14, Bold: true, Margin: []float64{0, 15, 0, 8}},
		"jobTitle":      {FontSize: 12, Bold: true},
		"duration":      {FontSize: 10, Italics: true},
		"bulletPoints":  {FontSize: 11, Margin: []float64{20, 0, 0, 0}},
		"skills":        {FontSize: 11},
	}

	accent := templateAccent(template)
	styles["header"].Color = accent
	styles["sectionHeader"].Color = accent
	return styles
}

func templateAccent(template string) string {
	switch template {
	case TemplateProfessional:
		return "#1e40af"
	case TemplateCreative:
		return "#7c3aed"
	default:
		return "#2563eb"
	}
}

var schemeColors = map[string]string{
	"blue":   "#2563eb",
	"green":  "#059669",
	"purple": "#7c3aed",
	"red":    "#dc2626",
}

// ApplyColorScheme recolors the header and section headers. Unknown schemes
// fall back to blue.
func ApplyColorScheme(styles map[string]*Style, colorScheme string) {
	color, ok := schemeColors[colorScheme]
	if !ok {
		color = schemeColors["blue"]
	}
	if s, ok := styles["header"]; ok {
		s.Color = color
	}
	if s, ok := styles["sectionHeader"]; ok {
		s.Color = color
	}
}

// ApplyLayout restructures the body. "two-column" splits the blocks after
// the name/title header into two balanced columns; anything else stays a
// single column.
func ApplyLayout(doc *DocDefinition, layout string) {
	if layout != "two-column" || len(doc.Content) < 4 {
		return
	}

	header := doc.Content[:2]
	rest := doc.Content[2:]
	half := (len(rest) + 1) / 2

	columns := map[string]interface{}{
		"columns": []interface{}{
			map[string]interface{}{"stack": rest[:half], "width": "*"},
			map[string]interface{}{"stack": rest[half:], "width": "*"},
		},
		"columnGap": 18,
	}

	doc.Content = append(append(make([]interface{}, 0, 3), header...), columns)
}

// EnhanceWithKeywords folds missing keywords into the skills block so ATS
// scans pick them up. A document without a skills block gets one appended.
func EnhanceWithKeywords(doc *DocDefinition, keywords []string, targetRole string) {
	if len(keywords) == 0 {
		return
	}

	for _, block := range doc.Content {
		m, ok := block.(map[string]interface{})
		if !ok || m["style"] != "skills" {
			continue
		}
		text, _ := m["text"].(string)
		m["text"] = mergeKeywords(text, keywords)
		return
	}

	title := "SKILLS"
	if targetRole != "" {
		title = "SKILLS - " + strings.ToUpper(targetRole)
	}
	doc.Content = append(doc.Content,
		map[string]interface{}{"text": title, "style": "sectionHeader"},
		map[string]interface{}{"text": strings.Join(keywords, ", "), "style": "skills"},
	)
}

func mergeKeywords(text string, keywords []string) string {
	lower := strings.ToLower(text)
	merged := text
	for _, keyword := range keywords {
		if keyword == "" || strings.Contains(lower, strings.ToLower(keyword)) {
			continue
		}
		if merged == "" {
			merged = keyword
		} else {
			merged += ", " + keyword
		}
		lower = strings.ToLower(merged)
	}
	return merged
}
