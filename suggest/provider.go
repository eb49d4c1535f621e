package suggest

import "context"

// DefaultIdeaCount is how many ideas a provider returns unless overridden.
const DefaultIdeaCount = 3

// Provider defines the interface for post idea generation backends.
type Provider interface {
	// Name returns the provider identifier (e.g., "gemini", "openai").
	Name() string

	// GenerateIdeas produces ready-to-post idea texts for a topic. The topic
	// is assumed to be non-empty; callers validate before dispatch.
	GenerateIdeas(ctx context.Context, topic string, opts ...GenerateOption) ([]string, error)
}

// GenerateOption configures a generation request.
type GenerateOption func(*generateConfig)

// WithIdeaCount sets how many ideas to request.
func WithIdeaCount(count int) GenerateOption {
	return func(c *generateConfig) {
		c.count = count
	}
}

type generateConfig struct {
	count int
}

// GenerateConfig represents applied generate options in a provider-friendly form.
type GenerateConfig struct {
	Count int
}

// ApplyGenerateOptions applies GenerateOption values and returns a normalized config.
func ApplyGenerateOptions(opts ...GenerateOption) GenerateConfig {
	cfg := generateConfig{count: DefaultIdeaCount}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.count <= 0 {
		cfg.count = DefaultIdeaCount
	}

	return GenerateConfig{
		Count: cfg.count,
	}
}
