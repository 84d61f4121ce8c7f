package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Temperature is sent with every request so the same sentence maps to the same actions.
const Temperature = 0.2

var httpClient = &http.Client{Timeout: 60 * time.Second}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func chat(systemPrompt, userMessage string) []message {
	return []message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}
}

// postJSON posts in to url and decodes a 200 reply into out. Errors are prefixed with name.
func postJSON(ctx context.Context, c *http.Client, name, url string, header http.Header, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", name, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
