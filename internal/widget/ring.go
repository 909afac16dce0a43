package widget

import (
	"strconv"

	"github.com/jmylchreest/yearpaper/internal/scene"
)

const (
	ringScale        = 0.80
	ringTrackOpacity = 0.1
)

// renderRing draws a donut whose arc covers the completed share of the year,
// with the calendar year in the middle.
func renderRing(in Input) scene.Node {
	size := in.Style.WidgetSize * ringScale

	track := &scene.Arc{
		Diameter: size,
		Stroke:   in.Style.RingStroke,
		Sweep:    1,
		Color:    in.Muted,
		Opacity:  ringTrackOpacity,
	}
	arc := &scene.Arc{
		Diameter: size,
		Stroke:   in.Style.RingStroke,
		Sweep:    in.Facts.Fraction(),
		Color:    in.Accent,
		Opacity:  1,
		Round:    true,
	}
	label := &scene.Text{
		Content: strconv.Itoa(in.Facts.Year),
		Size:    in.Style.WidgetTextSize,
		Weight:  scene.WeightBold,
		Color:   in.Muted,
		Opacity: 1,
	}

	return &scene.Layer{
		Width:    size,
		Height:   size,
		Children: []scene.Node{track, arc, label},
	}
}
