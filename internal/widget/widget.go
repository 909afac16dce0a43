// Package widget renders year progress as one of several interchangeable
// visual styles. Every renderer is a pure function of its Input.
package widget

import (
	"strings"

	"github.com/jmylchreest/yearpaper/internal/colour"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/progress"
	"github.com/jmylchreest/yearpaper/internal/scene"
)

// Kind selects a widget renderer.
type Kind string

// Available widget kinds.
const (
	Ring    Kind = "ring"
	DotGrid Kind = "dotgrid"
	Numeric Kind = "numeric"
)

// Default is substituted for any unrecognised kind.
const Default = Ring

// aliases accepts the names used by older shared links.
var aliases = map[string]Kind{
	"donut": Ring,
	"dots":  DotGrid,
	"text":  Numeric,
}

// Input is everything a renderer needs.
type Input struct {
	Facts  progress.Facts
	Accent colour.RGB
	Muted  colour.RGB
	Style  device.StyleParams
}

// RenderFunc builds the scene subtree for one widget.
type RenderFunc func(Input) scene.Node

var renderers = map[Kind]RenderFunc{
	Ring:    renderRing,
	DotGrid: renderDotGrid,
	Numeric: renderNumeric,
}

// Kinds returns the canonical widget kinds.
func Kinds() []Kind {
	return []Kind{Ring, DotGrid, Numeric}
}

// ParseKind normalises s to a canonical kind, accepting legacy aliases.
// The boolean is false when s was not recognised and Default was substituted.
func ParseKind(s string) (Kind, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := renderers[Kind(key)]; ok {
		return Kind(key), true
	}
	if k, ok := aliases[key]; ok {
		return k, true
	}
	return Default, false
}

// Render draws in with the renderer for kind, using the ring for unknown kinds.
func Render(kind Kind, in Input) scene.Node {
	fn, ok := renderers[kind]
	if !ok {
		fn = renderers[Default]
	}
	return fn(in)
}
