package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// DefaultTimeout bounds a single completion request. The session engine
// imposes no timeout of its own; this is the transport-level limit.
const DefaultTimeout = 60 * time.Second

// OpenAI implements Client against the OpenAI chat completions API.
type OpenAI struct {
	client  *openai.Client
	timeout time.Duration
}

// NewOpenAI creates a client for the given key. baseURL overrides the
// default API endpoint when non-empty.
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		timeout: DefaultTimeout,
	}
}

// Complete implements Client. It requests a JSON-object response so
// replies arrive in the structured {"output", "code"} form, and returns
// the first choice's content.
func (c *OpenAI) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		msgs[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: msgs,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
