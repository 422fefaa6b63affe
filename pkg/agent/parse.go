package agent

import (
	"encoding/json"
	"strings"
)

// ParseIntent extracts the tool-call JSON from a raw model response. The
// model is asked for bare JSON but routinely wraps it in prose or fences, so
// the widest {...} span is taken. Parsing never fails upward: an
// unrecoverable response degrades to an empty intent so the turn continues
// as a no-tool answer.
func ParseIntent(text string) *Intent {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return &Intent{Tools: []ToolCall{}, Reasoning: "Failed to parse"}
	}

	var intent Intent
	if err := json.Unmarshal([]byte(text[start:end+1]), &intent); err != nil {
		return &Intent{Tools: []ToolCall{}, Reasoning: "Parse error"}
	}

	if intent.Tools == nil {
		intent.Tools = []ToolCall{}
	}
	return &intent
}
