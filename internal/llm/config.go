package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
	ProviderNone       = "none"
)

// Config selects and configures the hint provider.
type Config struct {
	// Provider is one of the Provider* names. Empty means discover from
	// the vendors' own API key variables.
	Provider string        `env:"MATHJOURNEY_LLM_PROVIDER"`
	Timeout  time.Duration `env:"MATHJOURNEY_LLM_TIMEOUT" envDefault:"10s"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

type AnthropicConfig struct {
	APIKey string `env:"MATHJOURNEY_ANTHROPIC_API_KEY"`
	Model  string `env:"MATHJOURNEY_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"MATHJOURNEY_OPENAI_API_KEY"`
	Model   string `env:"MATHJOURNEY_OPENAI_MODEL"    envDefault:"gpt-4o-mini"`
	BaseURL string `env:"MATHJOURNEY_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"MATHJOURNEY_GEMINI_API_KEY"`
	Model  string `env:"MATHJOURNEY_GEMINI_MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"MATHJOURNEY_OPENROUTER_API_KEY"`
	Model   string `env:"MATHJOURNEY_OPENROUTER_MODEL"    envDefault:"google/gemini-2.0-flash-001"`
	BaseURL string `env:"MATHJOURNEY_OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
}

// RetryConfig controls backoff for transient failures. A hint that is
// late is useless, so the defaults are short.
type RetryConfig struct {
	MaxAttempts int           `env:"MATHJOURNEY_LLM_MAX_ATTEMPTS" envDefault:"2"`
	InitialWait time.Duration `env:"MATHJOURNEY_LLM_INITIAL_WAIT" envDefault:"500ms"`
	MaxWait     time.Duration `env:"MATHJOURNEY_LLM_MAX_WAIT"     envDefault:"3s"`
	Multiplier  float64       `env:"MATHJOURNEY_LLM_BACKOFF"      envDefault:"2"`
}

// discovery lists the vendor key variables probed, in order, when no
// provider is set.
var discovery = []struct {
	provider string
	envVar   string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// LoadConfig parses environ, or the process environment when environ is
// nil. Without MATHJOURNEY_LLM_PROVIDER the first vendor key found picks
// the provider; with none found the provider is ProviderNone.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse llm env: %w", err)
	}
	if cfg.Provider != "" {
		return cfg, cfg.Validate()
	}

	lookup := environ
	if lookup == nil {
		lookup = env.ToMap(os.Environ())
	}
	cfg.Provider = ProviderNone
	for _, d := range discovery {
		key := lookup[d.envVar]
		if key == "" {
			continue
		}
		cfg.Provider = d.provider
		cfg.setKey(key)
		break
	}
	return cfg, cfg.Validate()
}

func (c *Config) setKey(key string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderGemini:
		c.Gemini.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	}
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var key, envVar string
	switch c.Provider {
	case ProviderAnthropic:
		key, envVar = c.Anthropic.APIKey, "MATHJOURNEY_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, envVar = c.OpenAI.APIKey, "MATHJOURNEY_OPENAI_API_KEY"
	case ProviderGemini:
		key, envVar = c.Gemini.APIKey, "MATHJOURNEY_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, envVar = c.OpenRouter.APIKey, "MATHJOURNEY_OPENROUTER_API_KEY"
	case ProviderMock, ProviderNone:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	return nil
}
