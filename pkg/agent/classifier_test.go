package agent

import (
	"testing"
)

func TestKeywordClassifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"design request", "give it a cleaner design", TypeDesigner},
		{"template request", "use the professional template", TypeDesigner},
		{"layout request", "switch to a two-column layout", TypeDesigner},
		{"color request", "make the headers a different color", TypeDesigner},
		{"style request", "I want a bolder style", TypeDesigner},
		{"edit request", "edit my summary paragraph", TypeEditor},
		{"change request", "change my job title", TypeEditor},
		{"update request", "update the experience section", TypeEditor},
		{"fix request", "fix the typo in my email", TypeEditor},
		{"optimize request", "optimize this for recruiters", TypeOptimizer},
		{"ats request", "will this pass an ATS scan?", TypeOptimizer},
		{"keywords request", "add keywords for cloud roles", TypeOptimizer},
		{"improve request", "improve the wording", TypeOptimizer},
		{"creation request", "make me a resume for a barista job", TypeCreator},
		{"unclear request", "hello there", TypeCreator},
		{"empty input", "", TypeCreator},

		// Order is part of the contract: design keywords outrank edit
		// keywords even when both appear.
		{"design beats edit", "change the template color", TypeDesigner},
		{"edit beats optimize", "change it to improve readability", TypeEditor},
		{"case insensitive", "USE THE CREATIVE TEMPLATE", TypeDesigner},
	}

	c := NewKeywordClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.input, nil); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeywordClassifierDeterministic(t *testing.T) {
	c := NewKeywordClassifier()
	input := "update the design and optimize keywords"

	first := c.Classify(input, nil)
	for i := 0; i < 100; i++ {
		if got := c.Classify(input, nil); got != first {
			t.Fatalf("classification flapped: %s then %s", first, got)
		}
	}
	if first != TypeDesigner {
		t.Errorf("mixed-keyword input = %s, want designer (highest priority group)", first)
	}
}
