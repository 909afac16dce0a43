package widget

import (
	"strconv"

	"github.com/jmylchreest/yearpaper/internal/scene"
)

// Caption is printed beneath the day count.
const Caption = "DAYS LEFT"

const (
	numericTopOffset  = 0.25
	numericCaptionGap = 20
)

// renderNumeric prints the number of days left in the year.
func renderNumeric(in Input) scene.Node {
	return &scene.Column{
		Align: scene.AlignCenter,
		Children: []scene.Node{
			&scene.Spacer{Height: in.Style.WidgetSize * numericTopOffset},
			&scene.Text{
				Content:    strconv.Itoa(in.Facts.DaysRemaining),
				Size:       in.Style.WidgetTextSize,
				Weight:     scene.WeightBlack,
				Color:      in.Accent,
				Opacity:    1,
				LineHeight: 1,
			},
			&scene.Spacer{Height: numericCaptionGap},
			&scene.Text{
				Content: Caption,
				Size:    in.Style.WidgetLabelSize,
				Color:   in.Muted,
				Opacity: 1,
			},
		},
	}
}
