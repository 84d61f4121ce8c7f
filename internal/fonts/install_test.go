package fonts

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"silly-billy/internal/googlefonts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func testInstaller(t *testing.T) *Installer {
	t.Helper()
	archiveBody := zipBytes(t, map[string]string{
		"Bubbly/Bubbly-Bold.ttf":    "bold",
		"Bubbly/Bubbly-Regular.ttf": "regular",
		"OFL.txt":                   "license",
	})
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/ofl/comicneue", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"name":"ComicNeue-Regular.ttf","type":"file","download_url":"%s/raw/ComicNeue-Regular.ttf"}]`, srv.URL)
	})
	mux.HandleFunc("/raw/ComicNeue-Regular.ttf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "font/ttf")
		w.Write([]byte("comic"))
	})
	mux.HandleFunc("/files/Bubbly.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archiveBody)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &Installer{
		Fonts: &googlefonts.Client{API: srv.URL + "/ofl", RawPrefix: srv.URL + "/raw/", HTTP: srv.Client()},
		HTTP:  srv.Client(),
		Dir:   t.TempDir(),
	}
}

func TestInstallGoogleFamily(t *testing.T) {
	in := testInstaller(t)

	path, err := in.Install(context.Background(), "Comic Neue")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(in.Dir, "ComicNeue", "ComicNeue-Regular.ttf"), path)

	full, err := Resolve([]string{in.Dir}, "Comic Neue")
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(path), filepath.ToSlash(full))
}

func TestInstallZipURL(t *testing.T) {
	in := testInstaller(t)
	srvURL := in.Fonts.RawPrefix[:len(in.Fonts.RawPrefix)-len("/raw/")]

	path, err := in.Install(context.Background(), srvURL+"/files/Bubbly.zip")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(in.Dir, "Bubbly", "Bubbly", "Bubbly-Regular.ttf"), path)
	assert.NoFileExists(t, filepath.Join(in.Dir, "Bubbly", "Bubbly.zip"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "regular", string(data))
}

func TestInstallErrors(t *testing.T) {
	in := testInstaller(t)

	_, err := in.Install(context.Background(), " ")
	assert.EqualError(t, err, "install: missing font name")

	_, err = in.Install(context.Background(), "Wingdings")
	assert.ErrorContains(t, err, "not found on Google Fonts")
}

func TestFamilyFromURL(t *testing.T) {
	assert.Equal(t, "Inter", FamilyFromURL("https://example.com/a/Inter.zip?dl=1"))
	assert.Equal(t, "downloaded", FamilyFromURL("https://example.com/"))
}
