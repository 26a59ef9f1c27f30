// Package openai adapts the official OpenAI SDK to the domain.ModelProvider
// capability. The adapter is deliberately single-turn: the scoring pipeline
// sends one prompt per call and needs only the completion text and token
// count back.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

const providerName = "openai"

// Provider implements the domain.ModelProvider interface for OpenAI.
type Provider struct {
	client openai.Client
	model  string
	name   string
}

// NewProvider creates a new OpenAI provider bound to a single model.
func NewProvider(config Config, model string) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	if model == "" {
		return nil, errors.New("model name is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(config.MaxRetries),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		model:  model,
		name:   providerName,
	}, nil
}

// Generate sends a single-turn chat completion request.
func (p *Provider) Generate(ctx context.Context, prompt string) (*domain.Completion, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("total_tokens", int(resp.Usage.TotalTokens)),
	)

	return &domain.Completion{
		Text:       text,
		TokenCount: int(resp.Usage.TotalTokens),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}
