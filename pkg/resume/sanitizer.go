package resume

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sanitizer normalizes a model-produced document definition before it is
// stored or rendered. Implementations must be idempotent: sanitizing an
// already-sanitized document is a no-op.
type Sanitizer interface {
	Sanitize(raw []byte) ([]byte, error)
}

// DefaultSanitizer enforces the single-page resume contract:
//   - pageSize is always A4, pageMargins default to [36,36,36,36]
//   - explicit page-break directives are dropped
//   - if more than one content block looks like a full resume, only the
//     first survives (prevents stacked duplicate resumes)
//
// It operates on raw JSON so unknown keys the model emitted pass through
// untouched.
type DefaultSanitizer struct{}

func NewDefaultSanitizer() *DefaultSanitizer {
	return &DefaultSanitizer{}
}

func (s *DefaultSanitizer) Sanitize(raw []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document definition: %w", err)
	}

	doc["pageSize"] = "A4"
	if _, ok := doc["pageMargins"]; !ok {
		doc["pageMargins"] = []interface{}{36.0, 36.0, 36.0, 36.0}
	}
	delete(doc, "pageBreakBefore")

	if content, ok := doc["content"].([]interface{}); ok {
		doc["content"] = collapseResumeBlocks(content)
	}

	return json.Marshal(doc)
}

func collapseResumeBlocks(content []interface{}) []interface{} {
	resumeBlocks := make([]interface{}, 0)
	for _, block := range content {
		if looksLikeResumeBlock(block) {
			resumeBlocks = append(resumeBlocks, block)
		}
	}
	if len(resumeBlocks) > 1 {
		return resumeBlocks[:1]
	}
	return content
}

var resumeKeywords = []string{"experience", "education", "skills", "projects"}

// A block counts as a full resume only when it spans at least two resume
// sections. A lone section header ("SKILLS") is a normal part of a built
// document, not a nested duplicate.
func looksLikeResumeBlock(block interface{}) bool {
	if block == nil {
		return false
	}
	raw, err := json.Marshal(block)
	if err != nil {
		return false
	}
	s := strings.ToLower(string(raw))

	hits := 0
	for _, keyword := range resumeKeywords {
		if strings.Contains(s, keyword) {
			hits++
		}
	}
	return hits >= 2
}
