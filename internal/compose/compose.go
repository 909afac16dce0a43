// Package compose assembles a full wallpaper frame: header, progress widget,
// statistics and timestamp.
package compose

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/yearpaper/internal/colour"
	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/progress"
	"github.com/jmylchreest/yearpaper/internal/scene"
	"github.com/jmylchreest/yearpaper/internal/theme"
	"github.com/jmylchreest/yearpaper/internal/widget"
)

// Layout constants in pixels unless noted.
const (
	headerLineHeight = 1.1
	headerMinHeight  = 100
	headerPadding    = 40
	leadSpace        = 0.25 // Share of the content height above the header.
	widgetPadding    = 20
	statCaptionGap   = 8
	statCaptionAlpha = 0.6
	statGutter       = 50
	footerGap        = 90
	timestampSize    = 32
	timestampOpacity = 0.9
)

// Wallpaper text.
const (
	CaptionPassed     = "Passed"
	CaptionRemaining  = "Remaining"
	GeneratedAtFormat = "generated at - %s"
)

// Padding is the frame padding around all content.
var Padding = scene.Insets{Top: 160, Right: 20, Bottom: 80, Left: 20}

// Composer builds frames. It has no mutable state; a single Composer can
// serve concurrent renders.
type Composer struct {
	calc   *progress.Calculator
	logger hclog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithClock replaces time.Now, mainly for reproducible renders.
func WithClock(clock func() time.Time) Option {
	return func(c *Composer) {
		c.calc = progress.NewCalculator(clock)
	}
}

// WithLogger sets the logger used for fallback notices.
func WithLogger(l hclog.Logger) Option {
	return func(c *Composer) {
		c.logger = l
	}
}

// New creates a Composer.
func New(opts ...Option) *Composer {
	c := &Composer{
		calc:   progress.NewCalculator(nil),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the frame for cfg at the target resolution, sampling the
// clock once.
func (c *Composer) Compose(cfg config.Wallpaper, target device.Resolution) (*scene.Frame, error) {
	return c.ComposeAt(c.calc.Now(), cfg, target)
}

// ComposeAt builds the frame for a fixed instant. The style comes from the
// named device with exactly the target resolution, if there is one.
func (c *Composer) ComposeAt(now time.Time, cfg config.Wallpaper, target device.Resolution) (*scene.Frame, error) {
	var profile *device.Profile
	if p, ok := device.Find(target.Width, target.Height); ok {
		profile = &p
	}
	return c.ComposeProfile(now, cfg, target, profile)
}

// ComposeProfile builds the frame using profile's style, or the fallback
// style when profile is nil. Timezone errors are returned unchanged so the
// caller can apply its own fallback.
func (c *Composer) ComposeProfile(now time.Time, cfg config.Wallpaper, target device.Resolution, profile *device.Profile) (*scene.Frame, error) {
	facts, err := progress.Compute(now, cfg.Timezone)
	if err != nil {
		return nil, err
	}

	style := device.FallbackStyle
	if profile != nil {
		style = profile.Style
	}

	palette, err := c.palette(cfg)
	if err != nil {
		return nil, err
	}

	kind, ok := widget.ParseKind(string(cfg.Widget))
	if !ok {
		c.logger.Debug("unknown widget, using default", "widget", cfg.Widget, "default", kind)
	}

	w := widget.Render(kind, widget.Input{
		Facts:  facts,
		Accent: palette.Accent,
		Muted:  palette.Foreground,
		Style:  style,
	})

	frame := &scene.Frame{
		Width:      target.Width,
		Height:     target.Height,
		Background: palette.Background,
		Foreground: palette.Foreground,
		Padding:    Padding,
	}
	frame.Body = body(frame.ContentHeight(), cfg.Label, w, facts, palette, style)
	return frame, nil
}

// palette resolves the theme and accent override into parsed colours.
// A custom colour that does not parse degrades to the theme accent.
func (c *Composer) palette(cfg config.Wallpaper) (theme.RGB, error) {
	name, ok := theme.Parse(string(cfg.Theme))
	if !ok {
		c.logger.Debug("unknown theme, using default", "theme", cfg.Theme, "default", name)
	}
	p := theme.Resolve(name)

	rgb, err := p.Parsed()
	if err != nil {
		return theme.RGB{}, fmt.Errorf("failed to parse theme %s: %w", name, err)
	}

	accent := theme.EffectiveAccent(p, cfg.CustomColor)
	if parsed, err := colour.ParseHex(accent); err != nil {
		c.logger.Warn("ignoring invalid custom colour", "color", cfg.CustomColor, "error", err)
	} else {
		rgb.Accent = parsed
	}
	return rgb, nil
}

func body(contentHeight float64, label string, w scene.Node, facts progress.Facts, palette theme.RGB, style device.StyleParams) scene.Node {
	header := &scene.Column{
		Align:     scene.AlignCenter,
		MinHeight: headerMinHeight,
		Children: []scene.Node{
			&scene.Pad{
				Insets: scene.Insets{Left: headerPadding, Right: headerPadding},
				Child: &scene.Text{
					Content:    label,
					Size:       style.HeaderSize,
					Weight:     scene.WeightBlack,
					Color:      palette.Foreground,
					Opacity:    1,
					LineHeight: headerLineHeight,
				},
			},
		},
	}

	widgetArea := &scene.Fill{
		Align: scene.AlignCenter,
		Child: &scene.Pad{
			Insets: scene.Insets{Top: widgetPadding, Bottom: widgetPadding},
			Child:  w,
		},
	}

	stats := &scene.Row{
		Justify: scene.AlignCenter,
		Children: []scene.Node{
			stat(CaptionPassed, facts.Percentage+"%", palette, style),
			&scene.Spacer{Width: statGutter},
			stat(CaptionRemaining, fmt.Sprint(facts.DaysRemaining), palette, style),
		},
	}

	timestamp := &scene.Text{
		Content: fmt.Sprintf(GeneratedAtFormat, facts.GeneratedAt),
		Size:    timestampSize,
		Color:   palette.Foreground,
		Opacity: timestampOpacity,
	}

	return &scene.Column{
		Align:   scene.AlignCenter,
		Justify: scene.AlignCenter,
		Children: []scene.Node{
			&scene.Spacer{Height: contentHeight * leadSpace},
			header,
			widgetArea,
			stats,
			&scene.Spacer{Height: footerGap},
			timestamp,
		},
	}
}

func stat(caption, value string, palette theme.RGB, style device.StyleParams) scene.Node {
	return &scene.Column{
		Align: scene.AlignCenter,
		Children: []scene.Node{
			&scene.Text{
				Content: caption,
				Size:    style.SubHeaderSize,
				Weight:  scene.WeightBold,
				Color:   palette.Foreground,
				Opacity: statCaptionAlpha,
			},
			&scene.Spacer{Height: statCaptionGap},
			&scene.Text{
				Content: value,
				Size:    style.StatSize,
				Weight:  scene.WeightBold,
				Color:   palette.Accent,
				Opacity: 1,
			},
		},
	}
}
