package googlefonts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFamily(t *testing.T) {
	assert.Equal(t, []string{"inter"}, NormalizeFamily(" Inter "))
	assert.Equal(t, []string{"opensans", "open-sans"}, NormalizeFamily("Open Sans"))
	assert.Nil(t, NormalizeFamily("  "))
}

func testClient(t *testing.T, folders map[string][]githubFile) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		files, ok := folders[r.URL.Path[len("/ofl/"):]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(files))
	}))
	t.Cleanup(srv.Close)
	return &Client{API: srv.URL + "/ofl", RawPrefix: "https://raw.example/", HTTP: srv.Client()}
}

func TestFamilyURLPrefersUprightFiles(t *testing.T) {
	c := testClient(t, map[string][]githubFile{
		"open-sans": {
			{Name: "OFL.txt", Type: "file", DownloadURL: "https://raw.example/OFL.txt"},
			{Name: "OpenSans-Italic.ttf", Type: "file", DownloadURL: "https://raw.example/OpenSans-Italic.ttf"},
			{Name: "Evil.ttf", Type: "file", DownloadURL: "https://elsewhere.example/Evil.ttf"},
			{Name: "OpenSans.ttf", Type: "file", DownloadURL: "https://raw.example/OpenSans.ttf"},
		},
		"lobster": {
			{Name: "Lobster-Italic.ttf", Type: "file", DownloadURL: "https://raw.example/Lobster-Italic.ttf"},
		},
	})
	ctx := context.Background()

	u, err := c.FamilyURL(ctx, "Open Sans")
	require.NoError(t, err)
	assert.Equal(t, "https://raw.example/OpenSans.ttf", u)

	u, err = c.FamilyURL(ctx, "Lobster")
	require.NoError(t, err)
	assert.Equal(t, "https://raw.example/Lobster-Italic.ttf", u)

	_, err = c.FamilyURL(ctx, "Comic")
	assert.EqualError(t, err, `font "comic" not found on Google Fonts`)

	_, err = c.FamilyURL(ctx, "")
	assert.EqualError(t, err, "invalid font name")
}
