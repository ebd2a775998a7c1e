package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider calls the Claude API through the official SDK.
type AnthropicProvider struct {
	Model string // e.g. "claude-sonnet-4-5-20250929"
}

var _ Provider = (*AnthropicProvider)(nil)

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("ANTHROPIC_API_KEY not set")}
	}

	model := p.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	messages := make([]anthropic.MessageParam, 0, len(req.History)+1)
	for _, m := range req.History {
		switch m.Role {
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Question)))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokensOrDefault(req)),
		Messages:  messages,
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	message, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("claude API call failed: %v", err)}
	}
	if len(message.Content) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("empty response from Claude API")}
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}
	return responseText, nil
}
