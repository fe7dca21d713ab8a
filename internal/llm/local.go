package llm

import (
	"context"
)

// completeLocal talks to an OpenAI-compatible server on localhost.
// No API key is sent; local servers ignore authentication.
func (c *Client) completeLocal(ctx context.Context, req Request) (*Response, error) {
	// An empty model string lets the server use whatever it has loaded.
	model := c.model
	if model == "default" || model == "local" {
		model = ""
	}

	content, err := c.completeChat(ctx, LocalServerURL()+"/chat/completions", nil, model, req)
	if err != nil {
		return nil, err
	}

	responseModel := c.model
	if responseModel == "" || responseModel == "default" {
		responseModel = "local"
	}
	return &Response{Content: content, Model: responseModel}, nil
}
