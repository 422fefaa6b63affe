package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"ai-resumebuilder-be/pkg/llm"
	"ai-resumebuilder-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
)

// Exercises the Ollama provider against a locally running daemon. Gated so
// CI without Ollama skips cleanly.
func TestOllamaProvider(t *testing.T) {
	if os.Getenv("OLLAMA_INTEGRATION") != "true" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_TEST_MODEL")
	if model == "" {
		model = "llama3"
	}

	provider := ollama.NewOllamaProvider(baseURL, model)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	t.Run("Generate", func(t *testing.T) {
		out, err := provider.Generate(ctx, "Reply with the single word: pong", llm.WithTemperature(0))
		assert.NoError(t, err)
		assert.NotEmpty(t, out)
		t.Logf("Generate output: %q", out)
	})

	t.Run("ChatStream", func(t *testing.T) {
		chunks, errCh, err := provider.ChatStream(ctx, []llm.Message{
			{Role: "user", Content: "Count from 1 to 5, digits only."},
		})
		assert.NoError(t, err)

		var sb strings.Builder
		for chunk := range chunks {
			sb.WriteString(chunk)
		}
		select {
		case streamErr := <-errCh:
			assert.NoError(t, streamErr)
		default:
		}
		assert.NotEmpty(t, sb.String())
		t.Logf("Streamed output: %q", sb.String())
	})
}
