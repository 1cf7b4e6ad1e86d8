package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voyagent/voyagent/src/aisdk"
)

// Agent binds a model client to a toolbox and a system prompt.
type Agent struct {
	SystemPrompt string
	Model        aisdk.ModelClient
	Toolbox      *DefaultToolbox
	Logger       *slog.Logger
}

// SendMessage sends the conversation (optionally extended with message) to the
// model and returns the assistant's reply.
func (a *Agent) SendMessage(ctx context.Context, conversation *aisdk.Conversation, message *aisdk.Message) (*aisdk.Message, error) {
	messages := make([]*aisdk.Message, 0, len(conversation.Messages)+2)
	if a.SystemPrompt != "" {
		messages = append(messages, &aisdk.Message{Role: "system", Content: a.SystemPrompt})
	}
	messages = append(messages, conversation.Messages...)
	if message != nil {
		messages = append(messages, message)
	}

	var chatTools []*aisdk.ChatTool
	if a.Toolbox != nil {
		chatTools = ToChatTools(a.Toolbox.Tools())
	}

	ccr := &aisdk.ChatCompletionRequest{
		Messages: messages,
		Tools:    chatTools,
	}
	response, err := a.Model.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &response.Choices[0].Message, nil
}
