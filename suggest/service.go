package suggest

import (
	"context"
	"errors"
	"strings"
)

// Malformed-payload codes providers report through ProviderError.Code.
const (
	CodeInvalidResponse = "invalid_response"
	CodeMissingIdeas    = "missing_ideas"
)

// Service fronts one or more idea generation providers. Topics are validated
// here so providers never see an empty prompt, and provider failures are
// normalized into the package error taxonomy.
type Service struct {
	providers       map[string]Provider
	defaultProvider string
}

// Option configures the service.
type Option func(*Service)

// WithProvider registers a provider. The first registered provider becomes
// the default unless WithDefaultProvider overrides it.
func WithProvider(provider Provider) Option {
	return func(s *Service) {
		if provider == nil {
			return
		}
		s.providers[provider.Name()] = provider
		if s.defaultProvider == "" {
			s.defaultProvider = provider.Name()
		}
	}
}

// WithDefaultProvider selects which registered provider handles requests
// that do not name one.
func WithDefaultProvider(name string) Option {
	return func(s *Service) {
		s.defaultProvider = name
	}
}

// New creates a suggestion service.
func New(opts ...Option) *Service {
	s := &Service{
		providers: make(map[string]Provider),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Provider returns a registered provider by name, or the default when name
// is empty.
func (s *Service) Provider(name string) (Provider, error) {
	if name == "" {
		name = s.defaultProvider
	}

	provider, ok := s.providers[name]
	if !ok {
		return nil, ErrProviderNotFound.Clone().WithMetadata(map[string]any{
			"provider": name,
		})
	}

	return provider, nil
}

// SuggestIdeas generates post ideas for a topic using the default provider.
// An empty or whitespace-only topic is rejected before any provider call.
func (s *Service) SuggestIdeas(ctx context.Context, topic string, opts ...GenerateOption) ([]string, error) {
	return s.SuggestIdeasWith(ctx, "", topic, opts...)
}

// SuggestIdeasWith is SuggestIdeas against a named provider.
func (s *Service) SuggestIdeasWith(ctx context.Context, providerName, topic string, opts ...GenerateOption) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	provider, err := s.Provider(providerName)
	if err != nil {
		return nil, err
	}

	ideas, err := provider.GenerateIdeas(ctx, topic, opts...)
	if err != nil {
		base := ErrGenerationFailed
		var perr *ProviderError
		if errors.As(err, &perr) && perr != nil {
			switch perr.Code {
			case CodeInvalidResponse, CodeMissingIdeas:
				base = ErrMalformedResponse
			}
		}
		return nil, normalizeProviderError(base, provider.Name(), err)
	}

	if len(ideas) == 0 {
		return nil, normalizeProviderError(ErrMalformedResponse, provider.Name(), nil)
	}

	return ideas, nil
}
