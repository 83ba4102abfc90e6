package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderNone {
		t.Fatalf("expected none, got %q", cfg.Provider)
	}
	if cfg.Timeout != 10*time.Second || cfg.Retry.MaxAttempts != 2 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Anthropic.Model != "claude-haiku" || cfg.OpenRouter.BaseURL != "https://openrouter.ai/api/v1" {
		t.Fatalf("unexpected model defaults %+v", cfg)
	}
}

func TestLoadConfig_Explicit(t *testing.T) {
	cfg, err := LoadConfig(map[string]string{
		"MATHJOURNEY_LLM_PROVIDER":      "anthropic",
		"MATHJOURNEY_ANTHROPIC_API_KEY": "sk-test",
		"MATHJOURNEY_ANTHROPIC_MODEL":   "claude-sonnet",
		"GEMINI_API_KEY":                "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-test" || cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Gemini.APIKey != "" {
		t.Fatal("discovery should not run with an explicit provider")
	}
}

func TestLoadConfig_Discovery(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want string
	}{
		{map[string]string{"OPENAI_API_KEY": "a", "ANTHROPIC_API_KEY": "b"}, ProviderOpenAI},
		{map[string]string{"ANTHROPIC_API_KEY": "b", "OPENROUTER_API_KEY": "c"}, ProviderAnthropic},
		{map[string]string{"OPENROUTER_API_KEY": "c"}, ProviderOpenRouter},
		{map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "a"}, ProviderGemini},
	}
	for _, tt := range tests {
		cfg, err := LoadConfig(tt.env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != tt.want {
			t.Errorf("env %v: provider = %q, want %q", tt.env, cfg.Provider, tt.want)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("discovered config invalid: %v", err)
		}
	}
}

func TestLoadConfig_MissingKey(t *testing.T) {
	if _, err := LoadConfig(map[string]string{"MATHJOURNEY_LLM_PROVIDER": "openai"}); err == nil {
		t.Fatal("expected missing key error")
	}
	if _, err := LoadConfig(map[string]string{"MATHJOURNEY_LLM_PROVIDER": "bard"}); err == nil {
		t.Fatal("expected unknown provider error")
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()
	if _, err := NewProvider(ctx, Config{Provider: ProviderNone}, nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewProvider(ctx, Config{Provider: "bard"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	p, err := NewProvider(ctx, Config{Provider: ProviderMock, Retry: RetryConfig{MaxAttempts: 1}}, &recordingJournal{}, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
