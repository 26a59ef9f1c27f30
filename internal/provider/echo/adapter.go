// Package echo provides a model provider that echoes the prompt back.
// It implements the domain.ModelProvider interface without making external
// API calls, giving deterministic responses for development runs.
package echo

import (
	"context"
	"errors"
	"strings"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

const providerName = "echo"

// Provider implements the domain.ModelProvider interface for local testing.
type Provider struct {
	name string
}

// NewProvider creates a new echo provider.
// No configuration is required as this provider operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{name: providerName}
}

// Generate echoes the prompt back with a word-based token count.
func (p *Provider) Generate(ctx context.Context, prompt string) (*domain.Completion, error) {
	if prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("echoing prompt", observability.Int("prompt_length", len(prompt)))

	return &domain.Completion{
		Text:       prompt,
		TokenCount: len(strings.Fields(prompt)),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}
