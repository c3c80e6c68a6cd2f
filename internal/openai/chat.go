package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the model the assistant answers with.
const DefaultChatModel = openai.GPT4oMini

// ChatAPI defines the interface for chat completion calls.
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatClient generates assistant replies from a finished prompt. It
// owns nothing about retrieval or grounding: the prompt it receives is
// already complete.
type ChatClient struct {
	api   ChatAPI
	model string
}

// ChatConfig holds chat client configuration.
type ChatConfig struct {
	APIKey string
	Model  string
}

// NewChatClient creates a chat client using defaults.
func NewChatClient(apiKey string) *ChatClient {
	return NewChatClientWithConfig(ChatConfig{APIKey: apiKey})
}

// NewChatClientWithConfig creates a chat client with explicit configuration.
func NewChatClientWithConfig(cfg ChatConfig) *ChatClient {
	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatClient{
		api:   openai.NewClient(cfg.APIKey),
		model: model,
	}
}

// Complete sends the prompt and returns the model's reply text.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyText
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
