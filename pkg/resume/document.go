package resume

// Template names recognized by the style tables.
const (
	TemplateModern       = "modern"
	TemplateProfessional = "professional"
	TemplateCreative     = "creative"
)

// Style is a pdfmake style entry. Only the attributes the builder emits are
// modeled; model-generated documents keep arbitrary styles as raw JSON and
// never pass through this type.
type Style struct {
	FontSize float64   `json:"fontSize,omitempty"`
	Bold     bool      `json:"bold,omitempty"`
	Italics  bool      `json:"italics,omitempty"`
	Color    string    `json:"color,omitempty"`
	Margin   []float64 `json:"margin,omitempty"`
}

// DocDefinition is a pdfmake document definition as produced by the builder.
// Content blocks are kept loosely typed: pdfmake accepts heterogeneous block
// shapes and the renderer consumes them as-is.
type DocDefinition struct {
	PageSize     string                 `json:"pageSize"`
	PageMargins  []float64              `json:"pageMargins,omitempty"`
	Content      []interface{}          `json:"content"`
	Styles       map[string]*Style      `json:"styles,omitempty"`
	DefaultStyle map[string]interface{} `json:"defaultStyle,omitempty"`
}

// ContactInfo holds the header contact line.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// PersonalInfo is the resume header block.
type PersonalInfo struct {
	Name    string       `json:"name"`
	Title   string       `json:"title"`
	Contact *ContactInfo `json:"contact,omitempty"`
}

// ExperienceItem is one entry of an experience section.
type ExperienceItem struct {
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets,omitempty"`
}

// Section is one titled block of the resume body.
type Section struct {
	Title   string           `json:"title"`
	Type    string           `json:"type"`
	Content string           `json:"content,omitempty"`
	Items   []ExperienceItem `json:"items,omitempty"`
}

// StructureParams is the full input to BuildDocument.
type StructureParams struct {
	Template     string        `json:"template,omitempty"`
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`
	Sections     []Section     `json:"sections,omitempty"`
}
