package llm

import "fmt"

// NewProvider maps a configured provider name to an instance. Model may be
// empty; each provider then uses its own default.
func NewProvider(name, model string) (Provider, error) {
	switch name {
	case "anthropic":
		return &AnthropicProvider{Model: model}, nil
	case "openai":
		return &OpenAIProvider{Model: model}, nil
	case "gemini":
		return &GeminiProvider{Model: model}, nil
	case "ollama":
		return &OllamaProvider{Model: model}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
