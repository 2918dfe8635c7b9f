package summary

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

type OpenAIProvider struct {
	promptProvider PromptProvider
	model          string
	baseURL        string
	client         *openai.Client
}

// OpenAIOption configures the OpenAI provider.
type OpenAIOption func(*OpenAIProvider)

// WithOpenAIModel overrides the completion model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.model = model
	}
}

// WithOpenAIBaseURL points the client at a different API origin, e.g. a
// compatible proxy or a local test server.
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.baseURL = baseURL
	}
}

func NewOpenAIProvider(promptProvider PromptProvider, options ...OpenAIOption) *OpenAIProvider {
	p := &OpenAIProvider{
		promptProvider: promptProvider,
		model:          defaultOpenAIModel,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *OpenAIProvider) Prepare() error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return ErrFailedPreparation
	}

	config := openai.DefaultConfig(apiKey)
	if p.baseURL != "" {
		config.BaseURL = p.baseURL
	}
	p.client = openai.NewClientWithConfig(config)
	return nil
}

func (p *OpenAIProvider) GenerateFromInput(ctx context.Context, input string) (string, error) {
	if p.client == nil {
		return "", errors.New("client not initialized, call Prepare() first")
	}

	if input == "" {
		return "", errors.New("empty input provided")
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: p.promptProvider.SystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(p.promptProvider.UserPrompt(), input),
			},
		},
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no summary generated")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) String() string {
	return fmt.Sprintf("openai-%s", p.promptProvider.String())
}
