package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/taskbot-api/internal/config"
)

var (
	ErrEmptyAIResponse = errors.New("AI service returned an empty response")
	ErrUnknownProvider = errors.New("unknown AI provider")
)

// TextGenerator sends a single prompt to a generative model and returns its text reply.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewTextGenerator builds the generator for the configured provider.
// It returns a nil generator and no error when the provider has no API key.
func NewTextGenerator(ctx context.Context, cfg config.AIConfig) (TextGenerator, error) {
	if cfg.APIKey() == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case "gemini":
		generator, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return generator, nil
	case "openai":
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// OpenAIGenerator implements TextGenerator with the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates an OpenAIGenerator for model.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Generate sends prompt as a single user message.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyAIResponse
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyAIResponse
	}

	return content, nil
}
