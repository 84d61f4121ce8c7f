package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fontDir(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("font"), 0644))
	}
	return dir
}

func TestScanDirOnlyFonts(t *testing.T) {
	dir := fontDir(t, "Inter/Inter-Bold.ttf", "Inter/OFL.txt", "Mono.OTF")
	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Inter/Inter-Bold.ttf", "Mono.OTF"}, list)
}

func TestScanDirMissing(t *testing.T) {
	list, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFindFontInPrefersRegular(t *testing.T) {
	dir := fontDir(t, "Inter/Inter-Bold.ttf", "Inter/Inter-Regular.ttf")
	rel, full, err := FindFontIn([]string{dir}, "inter")
	require.NoError(t, err)
	assert.Equal(t, "Inter/Inter-Regular.ttf", rel)
	assert.Equal(t, dir+"/Inter/Inter-Regular.ttf", full)

	_, _, err = FindFontIn([]string{dir}, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveFallsBackToFamily(t *testing.T) {
	dir := fontDir(t, "Google_Sans_Code/GoogleSansCode-Regular.ttf")

	full, err := Resolve([]string{dir}, "assets/fonts/SansGoogle.ttf")
	require.NoError(t, err)
	assert.Equal(t, dir+"/Google_Sans_Code/GoogleSansCode-Regular.ttf", full)

	_, err = Resolve([]string{dir}, "Comic")
	assert.ErrorContains(t, err, `font "Comic" not found`)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchCandidates(t *testing.T) {
	assert.Equal(t, []string{"Inter/Inter-Regular.ttf", "Inter", "Inter/Inter", "Inter/Inter-Regular"}, SearchCandidates("Inter/Inter-Regular.ttf"))
}
