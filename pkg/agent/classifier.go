package agent

import (
	"strings"

	"ai-resumebuilder-be/pkg/store"
)

// Classifier picks the agent type for a user input. Implementations must be
// deterministic: the same input and context always route the same way.
type Classifier interface {
	Classify(userInput string, convContext *store.Context) string
}

// KeywordClassifier routes on ordered keyword groups. Order matters and is
// part of the contract: design wins over edit, edit over optimize, and
// anything unmatched falls through to the creator.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var classifierRules = []struct {
	agentType string
	keywords  []string
}{
	{TypeDesigner, []string{"design", "template", "layout", "color", "style"}},
	{TypeEditor, []string{"edit", "change", "update", "modify", "fix"}},
	{TypeOptimizer, []string{"optimize", "ats", "keywords", "improve"}},
}

func (c *KeywordClassifier) Classify(userInput string, _ *store.Context) string {
	input := strings.ToLower(userInput)

	for _, rule := range classifierRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(input, keyword) {
				return rule.agentType
			}
		}
	}

	return TypeCreator
}
