package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// OllamaProvider talks to a local Ollama server. It is the last resort in the
// fallback chain: no API key, but the daemon must be running.
type OllamaProvider struct {
	BaseURL string // defaults to OLLAMA_URL env or http://localhost:11434
	Model   string // defaults to OLLAMA_MODEL env or "llama2"
}

var _ Provider = (*OllamaProvider)(nil)

type ollamaRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Complete(ctx context.Context, req Request) (string, error) {
	baseURL := p.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	model := p.Model
	if model == "" {
		model = os.Getenv("OLLAMA_MODEL")
	}
	if model == "" {
		model = "llama2"
	}

	// Ollama's generate endpoint takes one flat prompt, so the system prompt
	// and history are folded into it.
	var sb strings.Builder
	if req.System != "" {
		sb.WriteString("System: " + req.System + "\n\n")
	}
	for _, m := range req.History {
		switch m.Role {
		case "assistant":
			sb.WriteString("Assistant: " + m.Content + "\n\n")
		default:
			sb.WriteString("User: " + m.Content + "\n\n")
		}
	}
	sb.WriteString("User: " + req.Question + "\n\nAssistant:")

	reqBody := ollamaRequest{
		Model:  model,
		Prompt: sb.String(),
		Stream: false,
		Options: map[string]interface{}{
			"num_predict": maxTokensOrDefault(req),
			"temperature": 0.3,
		},
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OLLAMA_MARSHAL_ERROR: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/api/generate", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OLLAMA_REQ_CREATE_ERROR: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OLLAMA_API_CALL_ERROR: %v", err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OLLAMA_READ_BODY_ERROR: %v", err)}
	}

	if res.StatusCode != 200 {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OLLAMA_API_ERROR: status=%d", res.StatusCode)}
	}

	var response ollamaResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("OLLAMA_UNMARSHAL_ERROR: %v", err)}
	}

	return strings.TrimSpace(response.Response), nil
}
