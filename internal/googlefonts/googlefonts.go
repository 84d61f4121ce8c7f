package googlefonts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPI lists the open-licensed families of the google/fonts repository.
	DefaultAPI = "https://api.github.com/repos/google/fonts/contents/ofl"
	// DefaultRawPrefix is the only host font files are fetched from.
	DefaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Client finds font files of a Google Fonts family. Only URLs under RawPrefix are returned.
type Client struct {
	API       string
	RawPrefix string
	HTTP      *http.Client
}

// New returns a client for the public google/fonts repository.
func New() *Client {
	return &Client{
		API:       DefaultAPI,
		RawPrefix: DefaultRawPrefix,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

// NormalizeFamily converts a display name to the folder names used in google/fonts ofl.
// e.g. "Inter" -> "inter", "Open Sans" -> "opensans", then "open-sans".
func NormalizeFamily(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// FolderURL returns the download URL of a TTF or OTF file in the given folder.
// Prefers a file whose name does not contain "Italic".
func (c *Client) FolderURL(ctx context.Context, folder string) (downloadURL string, err error) {
	u := strings.TrimSuffix(c.API, "/") + "/" + url.PathEscape(folder)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("font %q not found on Google Fonts", folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	var fallback string
	for _, f := range files {
		if f.Type != "file" || f.DownloadURL == "" {
			continue
		}
		lower := strings.ToLower(f.Name)
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if !strings.HasPrefix(f.DownloadURL, c.RawPrefix) {
			continue
		}
		if strings.Contains(lower, "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("no .ttf/.otf file found for %q on Google Fonts", folder)
}

// FamilyURL tries the NormalizeFamily variants of name and returns the first download URL found.
func (c *Client) FamilyURL(ctx context.Context, name string) (downloadURL string, err error) {
	candidates := NormalizeFamily(name)
	if len(candidates) == 0 {
		return "", fmt.Errorf("invalid font name")
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := c.FolderURL(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}
