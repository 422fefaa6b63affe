package agent

import (
	"encoding/json"
	"testing"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantTools     int
		wantReasoning string
	}{
		{
			name:          "bare json",
			text:          `{"tools":[{"name":"create_resume_structure","parameters":{"template":"modern"}}],"reasoning":"new resume"}`,
			wantTools:     1,
			wantReasoning: "new resume",
		},
		{
			name:          "json wrapped in prose",
			text:          "Sure, here is the plan:\n{\"tools\":[],\"reasoning\":\"nothing to do\"}\nLet me know!",
			wantTools:     0,
			wantReasoning: "nothing to do",
		},
		{
			name:          "json in code fence",
			text:          "```json\n{\"tools\":[{\"name\":\"apply_template\",\"parameters\":{}}],\"reasoning\":\"restyle\"}\n```",
			wantTools:     1,
			wantReasoning: "restyle",
		},
		{
			name:          "no braces at all",
			text:          "I cannot help with that.",
			wantTools:     0,
			wantReasoning: "Failed to parse",
		},
		{
			name:          "broken json",
			text:          `{"tools": [{"name": "x", parameters}]}`,
			wantTools:     0,
			wantReasoning: "Parse error",
		},
		{
			name:          "empty string",
			text:          "",
			wantTools:     0,
			wantReasoning: "Failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ParseIntent(tt.text)
			if intent.Tools == nil {
				t.Fatal("Tools must never be nil")
			}
			if len(intent.Tools) != tt.wantTools {
				t.Errorf("tools = %d, want %d", len(intent.Tools), tt.wantTools)
			}
			if intent.Reasoning != tt.wantReasoning {
				t.Errorf("reasoning = %q, want %q", intent.Reasoning, tt.wantReasoning)
			}
		})
	}
}

func TestParseIntentParameterPassthrough(t *testing.T) {
	intent := ParseIntent(`{"tools":[{"name":"optimize_keywords","parameters":{"targetRole":"data analyst","keywords":["sql"]}}],"reasoning":"r"}`)

	if len(intent.Tools) != 1 {
		t.Fatalf("tools = %d, want 1", len(intent.Tools))
	}

	var params struct {
		TargetRole string   `json:"targetRole"`
		Keywords   []string `json:"keywords"`
	}
	if err := json.Unmarshal(intent.Tools[0].Parameters, &params); err != nil {
		t.Fatalf("parameters should round-trip: %v", err)
	}
	if params.TargetRole != "data analyst" || len(params.Keywords) != 1 {
		t.Errorf("unexpected params: %+v", params)
	}
}
