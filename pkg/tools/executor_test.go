package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"

	"ai-resumebuilder-be/pkg/agent"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestExecuteBatchResultPerCall(t *testing.T) {
	e := NewExecutor(testLogger())
	e.Register("ok", func(_ context.Context, _ json.RawMessage, _ agent.SessionContext) (*Output, error) {
		return &Output{Data: map[string]interface{}{"done": true}}, nil
	})
	e.Register("boom", func(_ context.Context, _ json.RawMessage, _ agent.SessionContext) (*Output, error) {
		return nil, errors.New("tool exploded")
	})

	calls := []agent.ToolCall{
		{Name: "ok"},
		{Name: "boom"},
		{Name: "ok"},
	}

	results := e.ExecuteBatch(context.Background(), calls, agent.SessionContext{})
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3 (one per call)", len(results))
	}

	if !results[0].Success || !results[2].Success {
		t.Error("calls around a failure must still succeed")
	}
	if results[1].Success || results[1].Error != "tool exploded" {
		t.Errorf("middle failure not isolated: %+v", results[1])
	}
	for i, r := range results {
		if r.Call.Name != calls[i].Name {
			t.Errorf("result %d echoes wrong call: %s", i, r.Call.Name)
		}
	}
}

func TestExecuteBatchUnknownTool(t *testing.T) {
	e := NewExecutor(testLogger())

	results := e.ExecuteBatch(context.Background(), []agent.ToolCall{{Name: "teleport"}}, agent.SessionContext{})
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Success {
		t.Error("unknown tool must fail")
	}
	if results[0].Error != "unknown tool: teleport" {
		t.Errorf("error = %q", results[0].Error)
	}
}

func TestExecuteBatchEmpty(t *testing.T) {
	e := NewExecutor(testLogger())

	results := e.ExecuteBatch(context.Background(), nil, agent.SessionContext{})
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestExecuteBatchSequentialOrder(t *testing.T) {
	e := NewExecutor(testLogger())
	var order []string
	e.Register("first", func(_ context.Context, _ json.RawMessage, _ agent.SessionContext) (*Output, error) {
		order = append(order, "first")
		return &Output{}, nil
	})
	e.Register("second", func(_ context.Context, _ json.RawMessage, _ agent.SessionContext) (*Output, error) {
		order = append(order, "second")
		return &Output{}, nil
	})

	e.ExecuteBatch(context.Background(), []agent.ToolCall{{Name: "first"}, {Name: "second"}, {Name: "first"}}, agent.SessionContext{})
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "first" {
		t.Errorf("execution order = %v", order)
	}
}
