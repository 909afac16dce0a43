// Package raster paints scene frames into images.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/yearpaper/internal/scene"
)

// Rasterizer turns frames into pixels. It holds only immutable font data and
// is safe for concurrent use.
type Rasterizer struct {
	fonts  Fonts
	logger hclog.Logger
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithFonts overrides the embedded Go fonts. Nil members keep the defaults.
func WithFonts(f Fonts) Option {
	return func(r *Rasterizer) {
		if f.Regular != nil {
			r.fonts.Regular = f.Regular
		}
		if f.Bold != nil {
			r.fonts.Bold = f.Bold
		}
	}
}

// WithLogger sets the logger used for degraded-rendering warnings.
func WithLogger(l hclog.Logger) Option {
	return func(r *Rasterizer) {
		r.logger = l
	}
}

// New creates a Rasterizer using the embedded Go fonts unless overridden.
func New(opts ...Option) (*Rasterizer, error) {
	fonts, err := DefaultFonts()
	if err != nil {
		return nil, err
	}

	r := &Rasterizer{
		fonts:  fonts,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render paints frame at its exact pixel size.
func (r *Rasterizer) Render(frame *scene.Frame) (image.Image, error) {
	if frame == nil {
		return nil, fmt.Errorf("frame cannot be nil")
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", frame.Width, frame.Height)
	}

	dc := gg.NewContext(frame.Width, frame.Height)
	dc.SetColor(frame.Background.WithOpacity(1))
	dc.Clear()

	p := newPainter(dc, r.fonts, r.logger)
	defer p.close()

	pad := frame.Padding
	p.draw(frame.Body,
		pad.Left,
		pad.Top,
		float64(frame.Width)-pad.Left-pad.Right,
		frame.ContentHeight(),
	)

	return dc.Image(), nil
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
