// Package client adapts eino chat models (OpenAI, Anthropic, Gemini) to the
// generate.Generator capability used by the scan pipeline.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// ModelOptions selects the provider model and bounds its output.
type ModelOptions struct {
	Model        string
	MaxNewTokens int
}

// ChatClient wraps one eino chat model behind the Generator contract.
type ChatClient struct {
	model model.BaseChatModel
}

func (c *ChatClient) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	out, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	if out == nil || len(out.Content) == 0 {
		return "", fmt.Errorf("no content in model response")
	}
	return strings.TrimSpace(out.Content), nil
}

func NewOpenAIClient(ctx context.Context, apiKey string, opts ModelOptions) (*ChatClient, error) {
	maxTokens := opts.MaxNewTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:    apiKey,
		Model:     opts.Model,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai chat model: %w", err)
	}
	return &ChatClient{model: chatModel}, nil
}

func NewClaudeClient(ctx context.Context, apiKey string, opts ModelOptions) (*ChatClient, error) {
	chatModel, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    apiKey,
		Model:     opts.Model,
		MaxTokens: opts.MaxNewTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create claude chat model: %w", err)
	}
	return &ChatClient{model: chatModel}, nil
}

func NewGeminiClient(ctx context.Context, apiKey string, opts ModelOptions) (*ChatClient, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: genaiClient,
		Model:  opts.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini chat model: %w", err)
	}
	return &ChatClient{model: chatModel}, nil
}
