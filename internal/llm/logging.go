package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mathjourney/internal/store"
)

// RequestJournal stores one row per provider call. store.EventRepo
// satisfies it.
type RequestJournal interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every call, successful or not, to a journal.
type LoggingProvider struct {
	inner    Provider
	provider string
	journal  RequestJournal
	logger   *slog.Logger
	now      func() time.Time
}

// WithLogging wraps p. provider is the configured provider name.
func WithLogging(p Provider, provider string, j RequestJournal, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: provider, journal: j, logger: logger, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   l.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A canceled caller should still leave a trace of the attempt.
	if jerr := l.journal.AppendLLMRequest(context.WithoutCancel(ctx), data); jerr != nil {
		l.logger.Warn("llm request not journaled", "purpose", data.Purpose, "error", jerr)
	}
	l.logger.Debug("llm request",
		"provider", l.provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
		"success", data.Success)
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// describeRequest renders req as readable text for the journal.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
