package summary

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicProvider struct {
	promptProvider PromptProvider
	client         *anthropic.Client
}

func (p *AnthropicProvider) Prepare() error {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return ErrFailedPreparation
	}

	p.client = anthropic.NewClient(option.WithAPIKey(apiKey))
	return nil
}

func (p *AnthropicProvider) GenerateFromInput(ctx context.Context, input string) (string, error) {
	if p.client == nil {
		return "", errors.New("client not initialized, call Prepare() first")
	}

	if input == "" {
		return "", errors.New("empty input provided")
	}

	msg := anthropic.MessageNewParams{
		Model:       anthropic.F(anthropic.ModelClaude3_5HaikuLatest),
		MaxTokens:   anthropic.Int(summaryMaxTokens),
		Temperature: anthropic.F(float64(summaryTemperature)),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(p.promptProvider.SystemPrompt()),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(p.promptProvider.UserPrompt(), input))),
		}),
	}

	resp, err := p.client.Messages.New(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %v", err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("received empty response from API")
	}

	return resp.Content[0].Text, nil
}

func (p *AnthropicProvider) String() string {
	return fmt.Sprintf("anthropic-%s", p.promptProvider.String())
}
