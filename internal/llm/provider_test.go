package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func hintSchema() *Schema {
	return &Schema{
		Name:        "test-hint",
		Description: "A short hint",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"hint": map[string]any{"type": "string", "minLength": 1},
			},
			"required":             []string{"hint"},
			"additionalProperties": false,
		},
	}
}

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{Prompt: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"a":1}` {
		t.Fatalf("got %s", first.Content)
	}
	if first.Usage.Total() != 15 {
		t.Fatalf("expected 15 total tokens, got %d", first.Usage.Total())
	}
	if first.StopReason != StopEnd {
		t.Fatalf("expected stop reason end, got %q", first.StopReason)
	}

	second, err := mock.Generate(context.Background(), Request{Prompt: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"b":2}` {
		t.Fatalf("got %s", second.Content)
	}

	calls := mock.Calls()
	if len(calls) != 2 || calls[1].Prompt != "second" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"tip":"x"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: hintSchema()})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestFinish_TruncatedStructuredOutput(t *testing.T) {
	_, err := finish(Request{Schema: hintSchema()}, json.RawMessage(`{"hint":"Cou`), Usage{}, "m", StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}

	resp, err := finish(Request{}, json.RawMessage(`free text`), Usage{}, "m", StopMaxTokens)
	if err != nil {
		t.Fatalf("free text should pass through, got %v", err)
	}
	if resp.StopReason != StopMaxTokens {
		t.Fatalf("expected max_tokens, got %q", resp.StopReason)
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	ctx := WithPurpose(context.Background(), "hint")
	if got := PurposeFrom(ctx); got != "hint" {
		t.Fatalf("expected hint, got %q", got)
	}
}

func TestLookupCost(t *testing.T) {
	c, ok := LookupCost("gpt-4o-mini")
	if !ok {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	if _, ok := LookupCost("nope"); ok {
		t.Fatal("unexpected pricing for unknown model")
	}
}
