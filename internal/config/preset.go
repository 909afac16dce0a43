package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/yearpaper/internal/theme"
	"github.com/jmylchreest/yearpaper/internal/widget"
)

// Preset is a wallpaper kept in a YAML file for reuse from the command line.
// Zero-valued fields leave the existing choice alone.
type Preset struct {
	Theme  string `yaml:"theme"`
	Widget string `yaml:"widget"`
	Label  string `yaml:"name"`
	Color  string `yaml:"color"`
	Device string `yaml:"device"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DecodePreset reads a preset, rejecting unknown keys. An empty document is
// an empty preset.
func DecodePreset(r io.Reader) (Preset, error) {
	var p Preset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Preset{}, fmt.Errorf("failed to decode preset: %w", err)
	}
	return p, nil
}

// ReadPreset decodes the preset file at path.
func ReadPreset(path string) (Preset, error) {
	f, err := os.Open(path) // #nosec G304 - User-specified preset path, intended to be read
	if err != nil {
		return Preset{}, fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()
	return DecodePreset(f)
}

// Apply overlays the preset's non-empty wallpaper fields onto w.
func (p Preset) Apply(w Wallpaper) Wallpaper {
	if p.Theme != "" {
		w.Theme = theme.Name(p.Theme)
	}
	if p.Widget != "" {
		w.Widget = widget.Kind(p.Widget)
	}
	if p.Label != "" {
		w.Label = p.Label
	}
	if p.Color != "" {
		w.CustomColor = p.Color
	}
	return w
}
