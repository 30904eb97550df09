package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"brandchat/internal/ai/component"
	"brandchat/internal/config"
	appmodel "brandchat/internal/model"
)

// Client sends a transcript plus the brand system prompt to the upstream
// provider and returns the generated reply. Stateless; single attempt per
// call, no retries.
type Client struct {
	chatModel    model.ChatModel
	systemPrompt string
}

// NewClient creates the upstream client for the configured provider.
func NewClient(ctx context.Context, cfg *config.AIConfig, systemPrompt string) (*Client, error) {
	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Client{
		chatModel:    chatModel,
		systemPrompt: systemPrompt,
	}, nil
}

// Complete generates a reply for the transcript. The system prompt is
// prepended on every call and never persisted with the conversation.
func (c *Client) Complete(ctx context.Context, history []appmodel.Message) (string, error) {
	messages := make([]*schema.Message, 0, len(history)+1)
	messages = append(messages, &schema.Message{
		Role:    schema.System,
		Content: c.systemPrompt,
	})
	for _, msg := range history {
		messages = append(messages, &schema.Message{
			Role:    schema.RoleType(msg.Role),
			Content: msg.Content,
		})
	}

	response, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("upstream completion failed: %w", err)
	}

	if response.Content == "" {
		return "", fmt.Errorf("empty response from chat model")
	}

	return response.Content, nil
}
