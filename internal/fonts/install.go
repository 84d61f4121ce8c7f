package fonts

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"silly-billy/internal/archive"
	"silly-billy/internal/download"
	"silly-billy/internal/googlefonts"
)

// Installer fetches fonts that are not on disk yet into Dir.
type Installer struct {
	Fonts *googlefonts.Client
	HTTP  *http.Client
	Dir   string
}

// NewInstaller returns an installer that writes into the first of BaseDirs.
func NewInstaller() *Installer {
	return &Installer{Fonts: googlefonts.New(), Dir: BaseDirs()[0]}
}

// Install downloads a Google Fonts family by name, or a .ttf/.otf/.zip file when nameOrURL is an
// http(s) URL, into Dir/<family>. Zips are extracted. Returns the full path of the font to load.
func (in *Installer) Install(ctx context.Context, nameOrURL string) (string, error) {
	nameOrURL = strings.TrimSpace(nameOrURL)
	if nameOrURL == "" {
		return "", fmt.Errorf("install: missing font name")
	}
	src, family := nameOrURL, ""
	if isURL(nameOrURL) {
		family = FamilyFromURL(nameOrURL)
	} else {
		u, err := in.Fonts.FamilyURL(ctx, nameOrURL)
		if err != nil {
			return "", fmt.Errorf("install: %w", err)
		}
		src, family = u, strings.ReplaceAll(nameOrURL, " ", "")
	}
	dest := filepath.Join(in.Dir, family)
	saved, err := download.Download(ctx, in.HTTP, src, dest)
	if err != nil {
		return "", fmt.Errorf("install: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(saved), ".zip") {
		return saved, nil
	}
	if _, err := archive.Unzip(saved, dest); err != nil {
		return "", fmt.Errorf("install: %w", err)
	}
	_ = os.Remove(saved)
	rels, err := archive.FindFontFilesInDir(dest, in.Dir)
	if err != nil {
		return "", fmt.Errorf("install: %w", err)
	}
	if len(rels) == 0 {
		return "", fmt.Errorf("install: no .ttf/.otf in %s", filepath.Base(saved))
	}
	return filepath.Join(in.Dir, filepath.FromSlash(rels[0])), nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FamilyFromURL names the install folder (and the saved preference) after the last path segment without its extension.
func FamilyFromURL(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	base := u[strings.LastIndex(u, "/")+1:]
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return "downloaded"
	}
	return base
}
