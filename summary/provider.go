package summary

import (
	"context"
	"errors"
)

// Provider generates a summary from transcript text.
type Provider interface {
	Prepare() error
	GenerateFromInput(ctx context.Context, input string) (string, error)
	String() string
}

var ErrFailedPreparation = errors.New("provider has failed to prepare")

// PromptProvider supplies the fixed instruction pair sent with every
// generation request.
type PromptProvider interface {
	SystemPrompt() string
	UserPrompt() string
	String() string
}

// Fixed generation parameters. Output is stochastic at this temperature,
// so the same transcript may summarize differently across calls.
const (
	summaryMaxTokens   = 200
	summaryTemperature = 0.7
)

// NewProvider selects a completion backend by name.
func NewProvider(name string, promptProvider PromptProvider) Provider {
	if name == "openai" {
		return NewOpenAIProvider(promptProvider)
	}
	if name == "claude" {
		return &AnthropicProvider{promptProvider: promptProvider}
	}
	return nil
}
