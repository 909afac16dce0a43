// Package fontcache downloads remote font files and keeps them on disk so
// repeated renders do not refetch them.
package fontcache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/yearpaper/internal/util/http"
)

// Options configures caching behaviour.
type Options struct {
	// Dir is where fonts are cached.
	// If empty, defaults to the user cache directory (see DefaultDir).
	Dir string

	// Refresh refetches the font even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "yearpaper", "fonts"), nil
	}
	return filepath.Join(cacheDir, "yearpaper", "fonts"), nil
}

// filename maps a URL to a stable cache file name, keeping a font extension.
func filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := strings.ToLower(filepath.Ext(url))
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	switch ext {
	case ".ttf", ".otf", ".ttc":
	default:
		ext = ".ttf"
	}

	return fmt.Sprintf("%x%s", hash[:16], ext)
}

// Fetch returns the font at url, reading it from the cache when present and
// storing it there after a download. A cache that cannot be written does not
// fail the fetch.
func Fetch(ctx context.Context, url string, opts Options) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			dir = ""
		}
	}

	var path string
	if dir != "" {
		path = filepath.Join(dir, filename(url))
		if !opts.Refresh {
			if data, err := os.ReadFile(path); err == nil { // #nosec G304 - Path derived from cache dir and URL hash
				return data, nil
			}
		}
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download font: %w", err)
	}

	if path != "" {
		_ = store(path, data)
	}
	return data, nil
}

func store(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return err
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return err
	}
	return os.Rename(tmp, path)
}
