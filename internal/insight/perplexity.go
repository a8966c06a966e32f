package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	perplexityBaseURL = "https://api.perplexity.ai"
	perplexityModel   = "llama-3.1-sonar-large-128k-online"

	fetchTimeout = 45 * time.Second

	trendsQuery = "What are the most important marketing news, trends, viral ads " +
		"and campaigns from the past 7 days? Include specific brand names, " +
		"campaign names and explain why they matter. Be specific and thorough."
)

// Fetcher asks the Perplexity API for recent marketing highlights. Perplexity
// speaks the OpenAI chat-completions wire format, so the OpenAI client is
// pointed at its base URL.
type Fetcher struct {
	client openai.Client
}

func NewFetcher(apiKey string, opts ...option.RequestOption) *Fetcher {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(perplexityBaseURL),
		// The request is attempted exactly once per run; the client's
		// built-in retries are disabled.
		option.WithMaxRetries(0),
	}, opts...)

	return &Fetcher{
		client: openai.NewClient(opts...),
	}
}

// Fetch performs a single bounded request for the fixed trends query.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	resp, err := f.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: perplexityModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(trendsQuery),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("response has no choices (model = %s)", perplexityModel)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("response content is empty (model = %s)", perplexityModel)
	}

	return content, nil
}
