package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// OpenAIProvider calls the OpenAI chat completions endpoint over plain HTTP.
type OpenAIProvider struct {
	Model   string // e.g. "gpt-4o"
	BaseURL string // override for tests; defaults to api.openai.com
}

var _ Provider = (*OpenAIProvider)(nil)

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Stream      bool            `json:"stream"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_API_KEY_MISSING: Please set OPENAI_API_KEY env var")}
	}

	model := p.Model
	if model == "" {
		model = "gpt-4o"
	}

	url := p.BaseURL
	if url == "" {
		url = "https://api.openai.com"
	}
	url += "/v1/chat/completions"

	messages := []openAIMessage{}
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.History {
		messages = append(messages, openAIMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Question})

	reqBody := openAIRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokensOrDefault(req),
		Temperature: 0.3,
		Stream:      false,
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_MARSHAL_ERROR: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_REQ_CREATE_ERROR: %v", err)}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	res, err := client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_API_CALL_ERROR: %v", err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_READ_BODY_ERROR: %v", err)}
	}

	if res.StatusCode != 200 {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_API_ERROR: status=%d body=%s", res.StatusCode, string(body))}
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_UNMARSHAL_ERROR: %v", err)}
	}

	if len(response.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OPENAI_NO_CHOICES: %s", string(body))}
	}

	return response.Choices[0].Message.Content, nil
}
