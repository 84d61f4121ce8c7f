package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// Chat completion endpoints of the OpenAI-compatible providers.
const (
	OpenAIURL = "https://api.openai.com/v1/chat/completions"
	GroqURL   = "https://api.groq.com/openai/v1/chat/completions"
	CursorURL = "https://api.cursor.com/v1/chat/completions"
)

// Auth selects how the API key is sent.
type Auth int

const (
	// AuthBearer sends "Authorization: Bearer KEY".
	AuthBearer Auth = iota
	// AuthBasic sends the key as the Basic auth user name with an empty password.
	AuthBasic
)

// OpenAI implements Client against any Chat Completions endpoint with the OpenAI request shape.
type OpenAI struct {
	name   string
	url    string
	apiKey string
	auth   Auth
	client *http.Client
}

// NewOpenAI returns a Client for the OpenAI API.
func NewOpenAI(apiKey string) *OpenAI {
	return NewCompatible("openai", OpenAIURL, apiKey, AuthBearer)
}

// NewGroq returns a Client for Groq's OpenAI-compatible API.
func NewGroq(apiKey string) *OpenAI {
	return NewCompatible("groq", GroqURL, apiKey, AuthBearer)
}

// NewCursor returns a Client for the Cursor API, which uses Basic auth.
func NewCursor(apiKey string) *OpenAI {
	return NewCompatible("cursor", CursorURL, apiKey, AuthBasic)
}

// NewCompatible returns a Client posting to url. name prefixes error messages.
func NewCompatible(name, url, apiKey string, auth Auth) *OpenAI {
	return &OpenAI{
		name:   name,
		url:    strings.TrimSuffix(url, "/"),
		apiKey: apiKey,
		auth:   auth,
		client: httpClient,
	}
}

// Name returns the provider name.
func (c *OpenAI) Name() string {
	return c.name
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends system and user messages and returns the first choice.
func (c *OpenAI) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: API key not set", c.name)
	}
	header := http.Header{}
	switch c.auth {
	case AuthBasic:
		header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.apiKey+":")))
	default:
		header.Set("Authorization", "Bearer "+c.apiKey)
	}
	in := openAIRequest{Model: model, Messages: chat(systemPrompt, userMessage), Temperature: Temperature}
	var out openAIResponse
	if err := postJSON(ctx, c.client, c.name, c.url, header, in, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}
	return out.Choices[0].Message.Content, nil
}
