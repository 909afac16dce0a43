// Package device holds the catalogue of supported screen resolutions and the
// style parameters used to lay out a wallpaper on each of them.
package device

import (
	"fmt"
	"slices"
)

// StyleParams are the pixel sizes a wallpaper layout is built from.
type StyleParams struct {
	HeaderSize      float64 `json:"headerSize"`
	SubHeaderSize   float64 `json:"subHeaderSize"`
	StatSize        float64 `json:"statSize"`
	WidgetSize      float64 `json:"widgetSize"`
	WidgetTextSize  float64 `json:"widgetTextSize"`
	WidgetLabelSize float64 `json:"widgetLabelSize"`
	RingStroke      float64 `json:"ringStroke"`
	DotSize         float64 `json:"dotSize"`
	DotGap          float64 `json:"dotGap"`
}

// Resolution is a screen size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String returns the resolution as "WxH".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Profile is a named device with the style for its resolution.
type Profile struct {
	Resolution

	Name  string      `json:"name"`
	Style StyleParams `json:"style"`
}

type tier struct {
	res   Resolution
	style StyleParams
}

// tiers is ordered smallest first; tiers[0] is the lookup fallback.
var tiers = [...]tier{
	{
		res: Resolution{Width: 1080, Height: 2340},
		style: StyleParams{
			HeaderSize: 65, SubHeaderSize: 30, StatSize: 46,
			WidgetSize: 750, WidgetTextSize: 120, WidgetLabelSize: 48,
			RingStroke: 40, DotSize: 30, DotGap: 18,
		},
	},
	{
		res: Resolution{Width: 1179, Height: 2556},
		style: StyleParams{
			HeaderSize: 71, SubHeaderSize: 32, StatSize: 50,
			WidgetSize: 790, WidgetTextSize: 130, WidgetLabelSize: 52,
			RingStroke: 44, DotSize: 30, DotGap: 20,
		},
	},
	{
		res: Resolution{Width: 1206, Height: 2622},
		style: StyleParams{
			HeaderSize: 72, SubHeaderSize: 34, StatSize: 52,
			WidgetSize: 870, WidgetTextSize: 145, WidgetLabelSize: 57,
			RingStroke: 48, DotSize: 33, DotGap: 22,
		},
	},
	{
		res: Resolution{Width: 1290, Height: 2796},
		style: StyleParams{
			HeaderSize: 77, SubHeaderSize: 36, StatSize: 54,
			WidgetSize: 870, WidgetTextSize: 145, WidgetLabelSize: 57,
			RingStroke: 48, DotSize: 33, DotGap: 22,
		},
	},
	{
		res: Resolution{Width: 1320, Height: 2868},
		style: StyleParams{
			HeaderSize: 79, SubHeaderSize: 37, StatSize: 55,
			WidgetSize: 980, WidgetTextSize: 155, WidgetLabelSize: 60,
			RingStroke: 48, DotSize: 37, DotGap: 25,
		},
	},
}

// models lists named devices in display order. Several names share a tier.
var models = [...]struct {
	name string
	res  Resolution
}{
	{"iPhone 17 Pro Max", Resolution{1320, 2868}},
	{"iPhone 17 Pro", Resolution{1206, 2622}},
	{"iPhone 17", Resolution{1179, 2556}},
	{"iPhone 16 Pro Max", Resolution{1320, 2868}},
	{"iPhone 16 Pro", Resolution{1206, 2622}},
	{"iPhone 15 Plus / 15 Pro Max / 16 Plus", Resolution{1290, 2796}},
	{"iPhone 15 / 15 Pro / 16", Resolution{1179, 2556}},
	{"iPhone 13 Pro Max / 14 Plus / 14 Pro Max", Resolution{1290, 2796}},
	{"iPhone 13 / 13 Pro / 14 / 14 Pro", Resolution{1179, 2556}},
	{"iPhone 13 mini", Resolution{1080, 2340}},
}

// DefaultModel is the device preselected by interactive clients.
const DefaultModel = "iPhone 16 Pro Max"

// FallbackStyle is used by the composer when the requested resolution is not
// a catalogued device. It matches a 1080p-wide screen.
var FallbackStyle = StyleParams{
	HeaderSize: 65, SubHeaderSize: 28, StatSize: 42,
	WidgetSize: 680, WidgetTextSize: 120, WidgetLabelSize: 48,
	RingStroke: 40, DotSize: 25, DotGap: 18,
}

// ResolveStyle returns the style for an exact resolution match, or the
// smallest tier's style when the resolution is unknown. It never fails.
func ResolveStyle(width, height int) StyleParams {
	if style, ok := lookupTier(width, height); ok {
		return style
	}
	return tiers[0].style
}

func lookupTier(width, height int) (StyleParams, bool) {
	for _, t := range tiers {
		if t.res.Width == width && t.res.Height == height {
			return t.style, true
		}
	}
	return StyleParams{}, false
}

// Resolutions returns the supported resolution tiers, smallest first.
func Resolutions() []Resolution {
	out := make([]Resolution, len(tiers))
	for i, t := range tiers {
		out[i] = t.res
	}
	return out
}

// Models returns every named device profile in display order.
func Models() []Profile {
	out := make([]Profile, 0, len(models))
	for _, m := range models {
		out = append(out, Profile{
			Name:       m.name,
			Resolution: m.res,
			Style:      ResolveStyle(m.res.Width, m.res.Height),
		})
	}
	return out
}

// ByName looks up a named device.
func ByName(name string) (Profile, bool) {
	all := Models()
	i := slices.IndexFunc(all, func(p Profile) bool { return p.Name == name })
	if i < 0 {
		return Profile{}, false
	}
	return all[i], true
}

// Find returns the first named device with exactly the given resolution.
func Find(width, height int) (Profile, bool) {
	all := Models()
	i := slices.IndexFunc(all, func(p Profile) bool {
		return p.Width == width && p.Height == height
	})
	if i < 0 {
		return Profile{}, false
	}
	return all[i], true
}
