package llm

import (
	"context"
	"encoding/json"

	"github.com/jralston/devlog/internal/output"
)

// The chat-completions wire format. OpenAI defined it and local servers
// (LM Studio, Ollama) copy it, so one codec serves both providers.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// completeChat sends a chat-completions request and extracts the first
// choice. Shared by the openai and local providers.
func (c *Client) completeChat(ctx context.Context, url string, headers map[string]string, model string, req Request) (string, error) {
	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	respBody, err := c.doRequest(ctx, url, chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}, headers)
	if err != nil {
		return "", err
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", output.NewSystemErrorWithCause("failed to parse response", err)
	}
	if result.Error != nil {
		return "", output.NewSystemError("API error: " + result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", output.NewSystemError("empty response from API")
	}
	return result.Choices[0].Message.Content, nil
}

func (c *Client) completeOpenAI(ctx context.Context, req Request) (*Response, error) {
	content, err := c.completeChat(ctx, "https://api.openai.com/v1/chat/completions",
		map[string]string{"Authorization": "Bearer " + c.apiKey}, c.model, req)
	if err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: c.model}, nil
}
