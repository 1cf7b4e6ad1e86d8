package groqclient

import (
	"context"

	"github.com/voyagent/voyagent/src/aisdk"
)

var _ aisdk.ModelClient = (*ModelClient)(nil)

// ModelClient represents a client bound to a specific model
type ModelClient struct {
	client *Client
	model  string
}

// CreateChatCompletion creates a chat completion with the bound model
func (mc *ModelClient) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	req.Model = mc.model
	return mc.client.createChatCompletion(ctx, req)
}

// ModelID returns the bound model identifier
func (mc *ModelClient) ModelID() string {
	return mc.model
}
