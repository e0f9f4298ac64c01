package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/capmaster/internal/store"
)

// NewProvider builds the configured provider wrapped with logging and
// retry middleware (caller sees retry outermost). The mock provider is
// returned bare so tests observe exact call counts.
func NewProvider(ctx context.Context, cfg Config, log store.RequestLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, log)
	return WithRetry(logged, cfg.Retry), nil
}
