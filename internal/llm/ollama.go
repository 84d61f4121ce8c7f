package llm

import (
	"context"
	"net/http"
	"strings"
)

// Defaults for a local Ollama server.
const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3.2"
)

// Ollama implements Client against a local /api/chat endpoint (Llama, Qwen, ...). No key needed.
type Ollama struct {
	baseURL string
	client  *http.Client
}

// NewOllama returns a Client for the server at baseURL, or DefaultOllamaBaseURL when empty.
func NewOllama(baseURL string) *Ollama {
	u := strings.TrimSuffix(baseURL, "/")
	if u == "" {
		u = DefaultOllamaBaseURL
	}
	return &Ollama{baseURL: u, client: httpClient}
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaChatResponse struct {
	Message message `json:"message"`
}

// Complete sends one non-streamed chat turn. An empty model uses DefaultOllamaModel.
func (c *Ollama) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if model == "" {
		model = DefaultOllamaModel
	}
	in := ollamaChatRequest{
		Model:    model,
		Messages: chat(systemPrompt, userMessage),
		Options:  ollamaOptions{Temperature: Temperature},
	}
	var out ollamaChatResponse
	if err := postJSON(ctx, c.client, "ollama", c.baseURL+"/api/chat", nil, in, &out); err != nil {
		return "", err
	}
	return out.Message.Content, nil
}
