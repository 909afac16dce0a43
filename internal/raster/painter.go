package raster

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/yearpaper/internal/scene"
)

const defaultLineHeight = 1.2

type size struct {
	w, h float64
}

type faceKey struct {
	bold bool
	size float64
}

// painter lays out and draws one frame. Faces are created per render.
type painter struct {
	dc     *gg.Context
	fonts  Fonts
	faces  map[faceKey]font.Face
	logger hclog.Logger
}

func newPainter(dc *gg.Context, fonts Fonts, logger hclog.Logger) *painter {
	return &painter{
		dc:     dc,
		fonts:  fonts,
		faces:  make(map[faceKey]font.Face),
		logger: logger,
	}
}

func (p *painter) close() {
	for _, f := range p.faces {
		f.Close()
	}
}

func (p *painter) face(w scene.Weight, px float64) font.Face {
	key := faceKey{bold: w != scene.WeightRegular, size: px}
	if f, ok := p.faces[key]; ok {
		return f
	}

	src := p.fonts.Regular
	if key.bold {
		src = p.fonts.Bold
	}

	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		p.logger.Warn("falling back to bitmap font", "size", px, "error", err)
		f = basicfont.Face7x13
	}
	p.faces[key] = f
	return f
}

func lineHeight(t *scene.Text) float64 {
	if t.LineHeight > 0 {
		return t.Size * t.LineHeight
	}
	return t.Size * defaultLineHeight
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func nonNegative(v float64) float64 {
	return math.Max(0, v)
}

// offset positions an item of length inner inside outer.
func offset(a scene.Align, outer, inner float64) float64 {
	switch a {
	case scene.AlignCenter:
		return (outer - inner) / 2
	case scene.AlignEnd:
		return outer - inner
	default:
		return 0
	}
}

// measure returns the natural size of a node.
func (p *painter) measure(n scene.Node) size {
	switch n := n.(type) {
	case *scene.Text:
		if n.Size <= 0 {
			return size{}
		}
		w := toFloat(font.MeasureString(p.face(n.Weight, n.Size), n.Content))
		return size{w: w, h: lineHeight(n)}

	case *scene.Spacer:
		return size{w: nonNegative(n.Width), h: nonNegative(n.Height)}

	case *scene.Pad:
		c := p.measure(n.Child)
		return size{w: c.w + n.Left + n.Right, h: c.h + n.Top + n.Bottom}

	case *scene.Column:
		var s size
		for _, child := range n.Children {
			c := p.measure(child)
			s.w = math.Max(s.w, c.w)
			s.h += c.h
		}
		s.h = math.Max(s.h, n.MinHeight)
		return s

	case *scene.Row:
		var s size
		for _, child := range n.Children {
			c := p.measure(child)
			s.w += c.w
			s.h = math.Max(s.h, c.h)
		}
		return s

	case *scene.Fill:
		return p.measure(n.Child)

	case *scene.Layer:
		s := size{w: nonNegative(n.Width), h: nonNegative(n.Height)}
		if s.w > 0 && s.h > 0 {
			return s
		}
		for _, child := range n.Children {
			c := p.measure(child)
			s.w = math.Max(s.w, c.w)
			s.h = math.Max(s.h, c.h)
		}
		return s

	case *scene.Arc:
		d := nonNegative(n.Diameter)
		return size{w: d, h: d}

	case *scene.Dot:
		d := nonNegative(n.Diameter)
		return size{w: d, h: d}

	case *scene.Wrap:
		rows := p.flow(n)
		var h float64
		for i, r := range rows {
			if i > 0 {
				h += n.Gap
			}
			h += r.height
		}
		return size{w: nonNegative(n.Width), h: nonNegative(h)}

	default:
		return size{}
	}
}

type wrapRow struct {
	items  []int
	sizes  []size
	height float64
}

// flow breaks a Wrap's children into rows. A row always holds at least one
// child, so degenerate widths still terminate.
func (p *painter) flow(n *scene.Wrap) []wrapRow {
	var (
		rows []wrapRow
		cur  wrapRow
		x    float64
	)
	for i, child := range n.Children {
		c := p.measure(child)
		if len(cur.items) > 0 && x+n.Gap+c.w > n.Width {
			rows = append(rows, cur)
			cur, x = wrapRow{}, 0
		}
		if len(cur.items) > 0 {
			x += n.Gap
		}
		x += c.w
		cur.items = append(cur.items, i)
		cur.sizes = append(cur.sizes, c)
		cur.height = math.Max(cur.height, c.h)
	}
	if len(cur.items) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

// draw paints n into the box at (x, y) of size w by h.
func (p *painter) draw(n scene.Node, x, y, w, h float64) {
	switch n := n.(type) {
	case *scene.Text:
		p.drawText(n, x, y)

	case *scene.Pad:
		p.draw(n.Child, x+n.Left, y+n.Top, w-n.Left-n.Right, h-n.Top-n.Bottom)

	case *scene.Column:
		p.drawColumn(n, x, y, w, h)

	case *scene.Row:
		p.drawRow(n, x, y, w, h)

	case *scene.Fill:
		c := p.measure(n.Child)
		p.draw(n.Child, x+offset(n.Align, w, c.w), y, c.w, c.h)

	case *scene.Layer:
		for _, child := range n.Children {
			c := p.measure(child)
			p.draw(child, x+(w-c.w)/2, y+(h-c.h)/2, c.w, c.h)
		}

	case *scene.Arc:
		p.drawArc(n, x, y)

	case *scene.Dot:
		if n.Diameter <= 0 {
			return
		}
		r := n.Diameter / 2
		p.dc.SetColor(n.Color.WithOpacity(n.Opacity))
		p.dc.DrawCircle(x+r, y+r, r)
		p.dc.Fill()

	case *scene.Wrap:
		cy := y
		for _, row := range p.flow(n) {
			cx := x
			for i, idx := range row.items {
				s := row.sizes[i]
				p.draw(n.Children[idx], cx, cy, s.w, s.h)
				cx += s.w + n.Gap
			}
			cy += row.height + n.Gap
		}
	}
}

func (p *painter) drawText(t *scene.Text, x, y float64) {
	if t.Size <= 0 || t.Content == "" {
		return
	}
	face := p.face(t.Weight, t.Size)
	m := face.Metrics()
	ascent, descent := toFloat(m.Ascent), toFloat(m.Descent)
	baseline := y + (lineHeight(t)-(ascent+descent))/2 + ascent

	p.dc.SetFontFace(face)
	p.dc.SetColor(t.Color.WithOpacity(t.Opacity))
	p.dc.DrawString(t.Content, x, baseline)
}

func (p *painter) drawArc(a *scene.Arc, x, y float64) {
	r := a.Radius()
	if r <= 0 || a.Stroke <= 0 || a.Sweep <= 0 {
		return
	}
	cx, cy := x+a.Diameter/2, y+a.Diameter/2

	p.dc.SetColor(a.Color.WithOpacity(a.Opacity))
	p.dc.SetLineWidth(a.Stroke)
	if a.Round {
		p.dc.SetLineCap(gg.LineCapRound)
	} else {
		p.dc.SetLineCap(gg.LineCapButt)
	}

	p.dc.NewSubPath()
	if a.Sweep >= 1 {
		p.dc.DrawCircle(cx, cy, r)
	} else {
		start := -math.Pi / 2
		p.dc.DrawArc(cx, cy, r, start, start+2*math.Pi*a.Sweep)
	}
	p.dc.Stroke()
}

func (p *painter) drawColumn(col *scene.Column, x, y, w, h float64) {
	sizes := make([]size, len(col.Children))
	var total float64
	fills := 0
	for i, child := range col.Children {
		sizes[i] = p.measure(child)
		total += sizes[i].h
		if _, ok := child.(*scene.Fill); ok {
			fills++
		}
	}

	slack := nonNegative(h - total)
	cy := y
	var grow float64
	if fills > 0 {
		grow = slack / float64(fills)
	} else {
		cy += offset(col.Justify, slack, 0)
	}

	for i, child := range col.Children {
		s := sizes[i]
		if _, ok := child.(*scene.Fill); ok {
			p.draw(child, x, cy, w, s.h+grow)
			cy += s.h + grow
			continue
		}
		p.draw(child, x+offset(col.Align, w, s.w), cy, s.w, s.h)
		cy += s.h
	}
}

func (p *painter) drawRow(row *scene.Row, x, y, w, h float64) {
	sizes := make([]size, len(row.Children))
	var total float64
	for i, child := range row.Children {
		sizes[i] = p.measure(child)
		total += sizes[i].w
	}

	cx := x + offset(row.Justify, nonNegative(w-total), 0)
	for i, child := range row.Children {
		s := sizes[i]
		p.draw(child, cx, y+offset(row.Align, h, s.h), s.w, s.h)
		cx += s.w
	}
}
