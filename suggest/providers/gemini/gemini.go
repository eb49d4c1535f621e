package gemini

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
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
)

// Config holds Gemini API configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string

	HTTPClient *http.Client
}

// Provider implements suggest.Provider against the Gemini generateContent API.
type Provider struct {
	config     Config
	httpClient *http.Client
}

// New creates a new Gemini provider.
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
	return "gemini"
}

// GenerateIdeas implements suggest.Provider. Structured output is requested
// through a response schema so the model always answers with an idea array.
func (p *Provider) GenerateIdeas(ctx context.Context, topic string, opts ...suggest.GenerateOption) ([]string, error) {
	cfg := suggest.ApplyGenerateOptions(opts...)

	payload := generateContentRequest{
		Contents: []content{{
			Parts: []part{{Text: ideaPrompt(topic, cfg.Count)}},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"ideas": {
						Type:        "ARRAY",
						Description: "A list of ready-to-post idea texts.",
						Items:       &schema{Type: "STRING"},
					},
				},
				Required: []string{"ideas"},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.config.BaseURL, p.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, providerError("generate_content", 0, "", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providerError("generate_content", resp.StatusCode, "", "", err)
	}

	if resp.StatusCode != http.StatusOK {
		code, description := parseGeminiError(raw)
		return nil, providerError("generate_content", resp.StatusCode, code, description, nil)
	}

	var generated generateContentResponse
	if err := json.Unmarshal(raw, &generated); err != nil {
		return nil, providerError("generate_content", resp.StatusCode, suggest.CodeInvalidResponse, "failed to decode generate response", err)
	}

	text := generated.firstText()
	if text == "" {
		return nil, providerError("generate_content", resp.StatusCode, suggest.CodeMissingIdeas, "response carries no candidate text", nil)
	}

	var ideas ideasPayload
	if err := json.Unmarshal([]byte(text), &ideas); err != nil {
		return nil, providerError("generate_content", resp.StatusCode, suggest.CodeInvalidResponse, "candidate text is not an idea payload", err)
	}

	out := make([]string, 0, len(ideas.Ideas))
	for _, idea := range ideas.Ideas {
		if trimmed := strings.TrimSpace(idea); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	if len(out) == 0 {
		return nil, providerError("generate_content", resp.StatusCode, suggest.CodeMissingIdeas, "idea payload is empty", nil)
	}

	if len(out) > cfg.Count {
		out = out[:cfg.Count]
	}

	return out, nil
}

func ideaPrompt(topic string, count int) string {
	return fmt.Sprintf(
		"Generate %d distinct, short, and engaging post ideas about %q. Each idea must be a complete post under 280 characters. Do not number the ideas.",
		count, topic,
	)
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateContentResponse) firstText() string {
	for _, candidate := range r.Candidates {
		for _, p := range candidate.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text
			}
		}
	}
	return ""
}

type ideasPayload struct {
	Ideas []string `json:"ideas"`
}

type geminiAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func parseGeminiError(body []byte) (string, string) {
	var api geminiAPIError
	if err := json.Unmarshal(body, &api); err == nil && (api.Error.Message != "" || api.Error.Status != "") {
		code := api.Error.Status
		if code == "" && api.Error.Code != 0 {
			code = fmt.Sprintf("%d", api.Error.Code)
		}
		return code, api.Error.Message
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "gemini request failed"
	}

	return "", msg
}

func providerError(operation string, status int, code, description string, err error) *suggest.ProviderError {
	return &suggest.ProviderError{
		Provider:    "gemini",
		Operation:   operation,
		Status:      status,
		Code:        code,
		Description: description,
		Err:         err,
	}
}
