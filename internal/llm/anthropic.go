package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lumenjournal/insights/internal/privacy"
	"github.com/sirupsen/logrus"
)

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// AnthropicClient calls the Anthropic messages API. User-role message content
// is passed through PII masking before leaving the process; entry text must
// never reach the API unmasked.
type AnthropicClient struct {
	client *resty.Client
	apiKey string
	model  string
}

var _ TextGenerator = (*AnthropicClient)(nil)

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Temp      float64            `json:"temperature"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnthropicClient creates a client for the given API key and model.
func NewAnthropicClient(apiKey, model string, timeout time.Duration) *AnthropicClient {
	return &AnthropicClient{
		client: resty.New().SetTimeout(timeout),
		apiKey: apiKey,
		model:  model,
	}
}

// Complete sends the conversation and returns the first text block of the
// response. Empty responses are an error: callers always need text back.
func (c *AnthropicClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1024
	}
	if opts.System == "" {
		opts.System = "You are a helpful, empathetic, and privacy-conscious AI assistant."
	}

	reqMessages := make([]anthropicMessage, 0, len(messages))
	for _, msg := range messages {
		content := msg.Content
		if msg.Role == "user" {
			content = privacy.Mask(content)
		}
		reqMessages = append(reqMessages, anthropicMessage{Role: msg.Role, Content: content})
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", c.apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetBody(anthropicRequest{
			Model:     c.model,
			MaxTokens: opts.MaxTokens,
			Temp:      opts.Temperature,
			System:    opts.System,
			Messages:  reqMessages,
		}).
		Post(anthropicEndpoint)

	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	if resp.StatusCode() != 200 {
		logrus.Debugf("Anthropic API returned status %d: %s", resp.StatusCode(), resp.Body())
		return "", fmt.Errorf("anthropic API returned status %d", resp.StatusCode())
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("anthropic API error: %s", apiResp.Error.Message)
	}

	for _, block := range apiResp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in anthropic response")
}
