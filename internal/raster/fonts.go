package raster

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/jmylchreest/yearpaper/internal/util/fontcache"
)

// Fonts selects the typeface used for each weight class.
// Black text is drawn with the Bold face.
type Fonts struct {
	Regular *opentype.Font
	Bold    *opentype.Font
}

var goFonts = sync.OnceValues(func() (Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return Fonts{}, fmt.Errorf("failed to parse Go Regular: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return Fonts{}, fmt.Errorf("failed to parse Go Bold: %w", err)
	}
	return Fonts{Regular: regular, Bold: bold}, nil
})

// DefaultFonts returns the embedded Go font family.
func DefaultFonts() (Fonts, error) {
	return goFonts()
}

// LoadFont reads a TrueType or OpenType font from a local path or an HTTP(S)
// URL. Downloaded fonts are kept in the cache described by cache.
func LoadFont(ctx context.Context, source string, cache fontcache.Options) (*opentype.Font, error) {
	if source == "" {
		return nil, fmt.Errorf("font source cannot be empty")
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fontcache.Fetch(ctx, source, cache)
		if err != nil {
			return nil, err
		}
	} else {
		data, err = os.ReadFile(source) // #nosec G304 - User-specified font path, intended to be read
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", source, err)
	}
	return f, nil
}
