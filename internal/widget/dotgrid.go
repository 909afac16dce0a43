package widget

import (
	"github.com/jmylchreest/yearpaper/internal/progress"
	"github.com/jmylchreest/yearpaper/internal/scene"
)

const remainingDotOpacity = 0.15

// Cells reports, for each day of the year in order, whether it has passed.
// Index i is passed iff i < DayOfYear.
func Cells(f progress.Facts) []bool {
	if f.TotalDays <= 0 {
		return nil
	}
	cells := make([]bool, f.TotalDays)
	for i := range cells {
		cells[i] = i < f.DayOfYear
	}
	return cells
}

// renderDotGrid draws one dot per day of the year, row-major.
func renderDotGrid(in Input) scene.Node {
	cells := Cells(in.Facts)
	dots := make([]scene.Node, len(cells))
	for i, passed := range cells {
		dot := &scene.Dot{
			Diameter: in.Style.DotSize,
			Color:    in.Muted,
			Opacity:  remainingDotOpacity,
		}
		if passed {
			dot.Color = in.Accent
			dot.Opacity = 1
		}
		dots[i] = dot
	}

	return &scene.Wrap{
		Width:    in.Style.WidgetSize,
		Gap:      in.Style.DotGap,
		Children: dots,
	}
}
