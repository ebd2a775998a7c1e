package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google's Gemini models.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.0-flash-exp"
}

var _ Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) Name() string { return "gemini" }

// Complete sends a generateContent request to the Gemini API using the
// official GenAI SDK.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("GEMINI_API_KEY environment variable not set")}
	}

	model := p.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("failed to create GenAI client: %w", err)}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: req.System},
			},
		}
	}

	// History and question become alternating content turns.
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Question}},
	})

	result, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("gemini generation failed: %w", err)}
	}

	text := result.Text()
	if text == "" {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("empty response from Gemini")}
	}
	return text, nil
}
