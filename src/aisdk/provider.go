package aisdk

import (
	"context"
)

// ModelClient represents a client bound to a specific chat model.
type ModelClient interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
	ModelID() string
}
