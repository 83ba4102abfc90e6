package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → provider, so each attempt is journaled.
// ProviderNone yields ErrNotConfigured. A nil journal skips logging.
func NewProvider(ctx context.Context, cfg Config, j RequestJournal, logger *slog.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	case ProviderNone, "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	if j != nil {
		base = WithLogging(base, cfg.Provider, j, logger)
	}
	return WithRetry(base, cfg.Retry), nil
}
