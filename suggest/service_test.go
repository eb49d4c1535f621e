package suggest_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-feed/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name   string
	ideas  []string
	err    error
	calls  int
	topics []string
}

func (s *stubProvider) Name() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}

func (s *stubProvider) GenerateIdeas(ctx context.Context, topic string, opts ...suggest.GenerateOption) ([]string, error) {
	s.calls++
	s.topics = append(s.topics, topic)
	if s.err != nil {
		return nil, s.err
	}
	return s.ideas, nil
}

func TestSuggestIdeas(t *testing.T) {
	provider := &stubProvider{ideas: []string{"idea one", "idea two", "idea three"}}
	svc := suggest.New(suggest.WithProvider(provider))

	ideas, err := svc.SuggestIdeas(context.Background(), "golang")
	require.NoError(t, err)

	// Provider order is preserved.
	assert.Equal(t, []string{"idea one", "idea two", "idea three"}, ideas)
	assert.Equal(t, []string{"golang"}, provider.topics)
}

func TestSuggestIdeasTrimsTopic(t *testing.T) {
	provider := &stubProvider{ideas: []string{"one"}}
	svc := suggest.New(suggest.WithProvider(provider))

	_, err := svc.SuggestIdeas(context.Background(), "  mountain biking  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"mountain biking"}, provider.topics)
}

func TestSuggestIdeasEmptyTopic(t *testing.T) {
	provider := &stubProvider{ideas: []string{"one"}}
	svc := suggest.New(suggest.WithProvider(provider))

	for _, topic := range []string{"", "   ", "\n\t"} {
		ideas, err := svc.SuggestIdeas(context.Background(), topic)
		require.Error(t, err)
		assert.Nil(t, ideas)

		var rich *goerrors.Error
		require.ErrorAs(t, err, &rich)
		assert.Equal(t, suggest.TextCodeEmptyTopic, rich.TextCode)
	}

	// The provider must never see an empty topic.
	assert.Zero(t, provider.calls)
}

func TestSuggestIdeasProviderNotFound(t *testing.T) {
	svc := suggest.New()

	_, err := svc.SuggestIdeas(context.Background(), "golang")
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, suggest.TextCodeProviderNotFound, rich.TextCode)
}

func TestSuggestIdeasWithNamedProvider(t *testing.T) {
	first := &stubProvider{name: "first", ideas: []string{"from first"}}
	second := &stubProvider{name: "second", ideas: []string{"from second"}}

	svc := suggest.New(
		suggest.WithProvider(first),
		suggest.WithProvider(second),
		suggest.WithDefaultProvider("first"),
	)

	ideas, err := svc.SuggestIdeas(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, []string{"from first"}, ideas)

	ideas, err = svc.SuggestIdeasWith(context.Background(), "second", "golang")
	require.NoError(t, err)
	assert.Equal(t, []string{"from second"}, ideas)

	_, err = svc.SuggestIdeasWith(context.Background(), "third", "golang")
	assert.Error(t, err)
}

func TestSuggestIdeasNormalizesFailures(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
		wantCode string
	}{
		{
			name: "transport failure",
			provider: &stubProvider{err: &suggest.ProviderError{
				Provider:  "stub",
				Operation: "generate",
				Status:    500,
			}},
			wantCode: suggest.TextCodeGenerationFailed,
		},
		{
			name: "undecodable payload",
			provider: &stubProvider{err: &suggest.ProviderError{
				Provider:  "stub",
				Operation: "generate",
				Code:      suggest.CodeInvalidResponse,
			}},
			wantCode: suggest.TextCodeMalformedResponse,
		},
		{
			name: "payload without ideas",
			provider: &stubProvider{err: &suggest.ProviderError{
				Provider:  "stub",
				Operation: "generate",
				Code:      suggest.CodeMissingIdeas,
			}},
			wantCode: suggest.TextCodeMalformedResponse,
		},
		{
			name:     "empty idea list",
			provider: &stubProvider{ideas: []string{}},
			wantCode: suggest.TextCodeMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := suggest.New(suggest.WithProvider(tt.provider))

			_, err := svc.SuggestIdeas(context.Background(), "golang")
			require.Error(t, err)

			var rich *goerrors.Error
			require.ErrorAs(t, err, &rich)
			assert.Equal(t, tt.wantCode, rich.TextCode)
		})
	}
}

func TestApplyGenerateOptions(t *testing.T) {
	cfg := suggest.ApplyGenerateOptions()
	assert.Equal(t, suggest.DefaultIdeaCount, cfg.Count)

	cfg = suggest.ApplyGenerateOptions(suggest.WithIdeaCount(5))
	assert.Equal(t, 5, cfg.Count)

	cfg = suggest.ApplyGenerateOptions(suggest.WithIdeaCount(-1))
	assert.Equal(t, suggest.DefaultIdeaCount, cfg.Count)
}
