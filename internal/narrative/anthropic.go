package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marketingdigest/internal/domain"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"

	generationModel = "claude-sonnet-4-6"
	maxTokens       = 4096

	generateClientTimeout = 120 * time.Second

	errorBodyLimit = 1024
)

// Generator produces the digest HTML fragment with one Anthropic Messages API
// call. The fragment contract (no document-level tags, four <h2> sections, a
// fixed inline-tag allow-list) is conveyed via the prompt only; the response
// is trusted as-is.
type Generator struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{
		apiKey:   strings.TrimSpace(apiKey),
		endpoint: anthropicEndpoint,
		client:   &http.Client{Timeout: generateClientTimeout},
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends one generation request and returns the first content block's
// text. Any failure here is fatal to the run.
func (g *Generator) Generate(
	ctx context.Context,
	articles []domain.Article,
	insight string,
) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("API key is empty")
	}

	body, err := json.Marshal(messagesRequest{
		Model:     generationModel,
		MaxTokens: maxTokens,
		Messages: []message{
			{Role: "user", Content: BuildPrompt(articles, insight)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		return "", fmt.Errorf("do request: unexpected status %d: %s", resp.StatusCode, string(b))
	}

	var decoded messagesResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(decoded.Content) == 0 {
		return "", errors.New("response has no content blocks")
	}

	fragment := strings.TrimSpace(decoded.Content[0].Text)
	if fragment == "" {
		return "", errors.New("response fragment is empty")
	}

	return fragment, nil
}
