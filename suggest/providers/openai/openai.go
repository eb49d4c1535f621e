package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-feed/suggest"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Config holds OpenAI API configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string

	HTTPClient *http.Client
}

// Provider implements suggest.Provider against the chat completions API.
type Provider struct {
	config     Config
	httpClient *http.Client
}

// New creates a new OpenAI provider.
func New(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Provider{
		config:     cfg,
		httpClient: client,
	}
}

// Name implements suggest.Provider.
func (p *Provider) Name() string {
	return "openai"
}

// GenerateIdeas implements suggest.Provider. JSON mode plus a system prompt
// pins the response to an {"ideas": [...]} object.
func (p *Provider) GenerateIdeas(ctx context.Context, topic string, opts ...suggest.GenerateOption) ([]string, error) {
	cfg := suggest.ApplyGenerateOptions(opts...)

	payload := chatCompletionRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: `You write short social posts. Respond only with a JSON object of the form {"ideas": ["..."]}.`,
			},
			{
				Role: "user",
				Content: fmt.Sprintf(
					"Generate %d distinct, short, and engaging post ideas about %q. Each idea must be a complete post under 280 characters. Do not number the ideas.",
					cfg.Count, topic,
				),
			},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, providerError("chat_completion", 0, "", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providerError("chat_completion", resp.StatusCode, "", "", err)
	}

	if resp.StatusCode != http.StatusOK {
		code, description := parseOpenAIError(raw)
		return nil, providerError("chat_completion", resp.StatusCode, code, description, nil)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, providerError("chat_completion", resp.StatusCode, suggest.CodeInvalidResponse, "failed to decode completion response", err)
	}

	text := completion.firstContent()
	if text == "" {
		return nil, providerError("chat_completion", resp.StatusCode, suggest.CodeMissingIdeas, "completion carries no message content", nil)
	}

	var ideas ideasPayload
	if err := json.Unmarshal([]byte(text), &ideas); err != nil {
		return nil, providerError("chat_completion", resp.StatusCode, suggest.CodeInvalidResponse, "message content is not an idea payload", err)
	}

	out := make([]string, 0, len(ideas.Ideas))
	for _, idea := range ideas.Ideas {
		if trimmed := strings.TrimSpace(idea); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	if len(out) == 0 {
		return nil, providerError("chat_completion", resp.StatusCode, suggest.CodeMissingIdeas, "idea payload is empty", nil)
	}

	if len(out) > cfg.Count {
		out = out[:cfg.Count]
	}

	return out, nil
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (r chatCompletionResponse) firstContent() string {
	for _, choice := range r.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text
		}
	}
	return ""
}

type ideasPayload struct {
	Ideas []string `json:"ideas"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

func parseOpenAIError(body []byte) (string, string) {
	var api openAIErrorResponse
	if err := json.Unmarshal(body, &api); err == nil && (api.Error.Message != "" || api.Error.Code != "" || api.Error.Type != "") {
		code := api.Error.Code
		if code == "" {
			code = api.Error.Type
		}
		return code, api.Error.Message
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "openai request failed"
	}

	return "", msg
}

func providerError(operation string, status int, code, description string, err error) *suggest.ProviderError {
	return &suggest.ProviderError{
		Provider:    "openai",
		Operation:   operation,
		Status:      status,
		Code:        code,
		Description: description,
		Err:         err,
	}
}
