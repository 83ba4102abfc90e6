package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/mathjourney/internal/store"
)

type recordingJournal struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingJournal) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.events = append(r.events, d)
	return r.err
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestLogging_RecordsSuccess(t *testing.T) {
	j := &recordingJournal{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"hint":"Say the days in order."}`),
		Usage:   Usage{InputTokens: 20, OutputTokens: 8},
	})
	p := WithLogging(mock, ProviderMock, j, quietLogger())

	ctx := WithPurpose(context.Background(), "hint")
	if _, err := p.Generate(ctx, Request{System: "coach", Prompt: "after Saturday?", Schema: hintSchema()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(j.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(j.events))
	}
	e := j.events[0]
	if e.Provider != "mock" || e.Model != "mock" || e.Purpose != "hint" || !e.Success {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.InputTokens != 20 || e.OutputTokens != 8 {
		t.Fatalf("unexpected tokens %+v", e)
	}
	for _, want := range []string{"[system]\ncoach", "[user]\nafter Saturday?", "[schema: test-hint]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"hint":"Say the days in order."}` {
		t.Errorf("response body = %s", e.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	j := &recordingJournal{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("offline")}})
	p := WithLogging(mock, ProviderMock, j, quietLogger())

	if _, err := p.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error")
	}
	e := j.events[0]
	if e.Success || !strings.Contains(e.ErrorMessage, "offline") || e.Purpose != "unknown" {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestLogging_JournalFailureIgnored(t *testing.T) {
	j := &recordingJournal{err: errors.New("db locked")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, j, quietLogger())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("journal failure leaked: %v", err)
	}
}
