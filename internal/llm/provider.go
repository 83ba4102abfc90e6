// Package llm talks to hosted language models for short structured
// completions such as coaching hints.
package llm

import (
	"context"
	"encoding/json"
)

// Provider produces one completion per call.
type Provider interface {
	// Generate sends req and returns the model's output. When req.Schema
	// is set the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model identifier.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema asks the provider for JSON output in this shape. Nil means
	// free text, returned as-is in Response.Content.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Schema names a JSON Schema the output must satisfy.
type Schema struct {
	Name        string // kebab-case, used as the tool or format name
	Description string
	Definition  map[string]any
}

// StopReason says why generation ended, normalized across providers.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a provider's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish turns raw provider output into a Response. Truncated or
// off-schema structured output is an error.
func finish(req Request, content json.RawMessage, usage Usage, model string, stop StopReason) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a short alias to a provider model id. Unknown names
// pass through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
