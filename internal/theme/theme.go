// Package theme defines the fixed wallpaper colour themes.
package theme

import (
	"slices"
	"strings"

	"github.com/jmylchreest/yearpaper/internal/colour"
)

// Name identifies a theme.
type Name string

// Available themes.
const (
	Dark     Name = "dark"
	Light    Name = "light"
	Midnight Name = "midnight"
	Sunset   Name = "sunset"
)

// Default is substituted for any unrecognised theme name.
const Default = Dark

// Palette is the colour triple a wallpaper is drawn with. Colours are hex strings.
type Palette struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent     string `json:"accent"`
}

var palettes = map[Name]Palette{
	Dark:     {Background: "#000000", Foreground: "#ffffff", Accent: "#3b82f6"},
	Light:    {Background: "#ffffff", Foreground: "#000000", Accent: "#ef4444"},
	Midnight: {Background: "#1e1b4b", Foreground: "#e2e8f0", Accent: "#818cf8"},
	Sunset:   {Background: "#4c0519", Foreground: "#ffe4e6", Accent: "#fb7185"},
}

// order is the display order used by Names.
var order = []Name{Dark, Light, Midnight, Sunset}

// Names returns every theme name in display order.
func Names() []Name {
	return slices.Clone(order)
}

// Parse normalises s to a known theme name. The boolean is false when s was
// not recognised and Default was substituted.
func Parse(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := palettes[n]; ok {
		return n, true
	}
	return Default, false
}

// Resolve returns the palette for name, falling back to the dark palette.
func Resolve(name Name) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[Default]
}

// EffectiveAccent returns custom when it is set, otherwise the palette accent.
// An empty custom string means no override.
func EffectiveAccent(p Palette, custom string) string {
	if custom != "" {
		return custom
	}
	return p.Accent
}

// RGB is a Palette with parsed colours.
type RGB struct {
	Background colour.RGB
	Foreground colour.RGB
	Accent     colour.RGB
}

// Parsed converts the palette's hex strings. Catalogue palettes always parse.
func (p Palette) Parsed() (RGB, error) {
	bg, err := colour.ParseHex(p.Background)
	if err != nil {
		return RGB{}, err
	}
	fg, err := colour.ParseHex(p.Foreground)
	if err != nil {
		return RGB{}, err
	}
	accent, err := colour.ParseHex(p.Accent)
	if err != nil {
		return RGB{}, err
	}
	return RGB{Background: bg, Foreground: fg, Accent: accent}, nil
}
