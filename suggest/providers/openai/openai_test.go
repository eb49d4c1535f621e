package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-feed/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionResponse(t *testing.T, ideas []string) map[string]any {
	t.Helper()

	content, err := json.Marshal(map[string]any{"ideas": ideas})
	require.NoError(t, err)

	return map[string]any{
		"choices": []map[string]any{
			{
				"message": map[string]any{
					"role":    "assistant",
					"content": string(content),
				},
			},
		},
	}
}

func TestGenerateIdeas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer api-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "mountain biking")
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(t, []string{"ride at dawn", "trail tips", "gear check"}))
	}))
	defer server.Close()

	provider := New(Config{
		APIKey:     "api-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	ideas, err := provider.GenerateIdeas(context.Background(), "mountain biking")
	require.NoError(t, err)
	assert.Equal(t, []string{"ride at dawn", "trail tips", "gear check"}, ideas)
}

func TestGenerateIdeasAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "invalid api key",
				"type":    "invalid_request_error",
				"code":    "invalid_api_key",
			},
		})
	}))
	defer server.Close()

	provider := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})

	_, err := provider.GenerateIdeas(context.Background(), "anything")
	require.Error(t, err)

	var perr *suggest.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "openai", perr.Provider)
	assert.Equal(t, http.StatusUnauthorized, perr.Status)
	assert.Equal(t, "invalid_api_key", perr.Code)
	assert.Equal(t, "invalid api key", perr.Description)
}

func TestGenerateIdeasMalformedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "not json"}},
			},
		})
	}))
	defer server.Close()

	provider := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})

	_, err := provider.GenerateIdeas(context.Background(), "anything")
	require.Error(t, err)

	var perr *suggest.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, suggest.CodeInvalidResponse, perr.Code)
}

func TestGenerateIdeasNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	provider := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})

	_, err := provider.GenerateIdeas(context.Background(), "anything")
	require.Error(t, err)

	var perr *suggest.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, suggest.CodeMissingIdeas, perr.Code)
}
