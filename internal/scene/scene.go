// Package scene describes a wallpaper as a tree of layout and drawing nodes.
//
// A scene is plain data: widgets and the composer build it, and the raster
// package measures and paints it. Sizes are in pixels.
package scene

import "github.com/jmylchreest/yearpaper/internal/colour"

// Node is any element of a scene tree.
type Node interface {
	isNode()
}

// Align positions a child along a container's cross axis, or distributes
// children along the main axis when used as a Justify value.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Weight is a font weight class.
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
	WeightBlack
)

// Insets are padding widths around a box.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Frame is the root of a rendered wallpaper.
type Frame struct {
	Width      int
	Height     int
	Background colour.RGB
	Foreground colour.RGB
	Padding    Insets
	Body       Node
}

// ContentHeight is the frame height inside its vertical padding.
func (f *Frame) ContentHeight() float64 {
	return float64(f.Height) - f.Padding.Top - f.Padding.Bottom
}

// Text is a single line of text. Wrapping is left to the rasterizer.
type Text struct {
	Content    string
	Size       float64
	Weight     Weight
	Color      colour.RGB
	Opacity    float64
	LineHeight float64 // Multiple of Size; zero means 1.2.
}

// Spacer occupies space without drawing.
type Spacer struct {
	Width, Height float64
}

// Pad surrounds a child with fixed padding.
type Pad struct {
	Insets
	Child Node
}

// Column stacks children top to bottom.
type Column struct {
	Children  []Node
	Align     Align // Horizontal placement of each child.
	Justify   Align // Vertical placement of the children when there is slack.
	MinHeight float64
}

// Row places children left to right.
type Row struct {
	Children []Node
	Align    Align // Vertical placement of each child.
	Justify  Align // Horizontal placement of the children when there is slack.
}

// Fill expands to take the remaining height of its parent Column.
// Its child is placed at the top of the expanded box.
type Fill struct {
	Child Node
	Align Align
}

// Layer draws its children on top of each other, each centred in the layer.
type Layer struct {
	Width, Height float64
	Children      []Node
}

// Arc is a stroked circle segment inscribed in a Diameter-sized box.
// The circle radius is Diameter/2 - Stroke. The arc starts at twelve o'clock
// and sweeps clockwise through Sweep of a full turn.
type Arc struct {
	Diameter float64
	Stroke   float64
	Sweep    float64
	Color    colour.RGB
	Opacity  float64
	Round    bool // Round line caps.
}

// Radius returns the stroke centre-line radius.
func (a Arc) Radius() float64 {
	return a.Diameter/2 - a.Stroke
}

// Dot is a filled circle.
type Dot struct {
	Diameter float64
	Color    colour.RGB
	Opacity  float64
}

// Wrap flows children left to right in rows no wider than Width,
// starting a new row when the next child would not fit.
type Wrap struct {
	Width    float64
	Gap      float64
	Children []Node
}

func (*Text) isNode()   {}
func (*Spacer) isNode() {}
func (*Pad) isNode()    {}
func (*Column) isNode() {}
func (*Row) isNode()    {}
func (*Fill) isNode()   {}
func (*Layer) isNode()  {}
func (*Arc) isNode()    {}
func (*Dot) isNode()    {}
func (*Wrap) isNode()   {}

// Walk calls fn for node and each of its descendants, depth first.
func Walk(node Node, fn func(Node)) {
	if node == nil {
		return
	}
	fn(node)
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Children returns the direct children of a container node.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *Pad:
		return []Node{n.Child}
	case *Column:
		return n.Children
	case *Row:
		return n.Children
	case *Fill:
		return []Node{n.Child}
	case *Layer:
		return n.Children
	case *Wrap:
		return n.Children
	default:
		return nil
	}
}

// Texts returns the content of every Text node under node, in walk order.
func Texts(node Node) []string {
	var out []string
	Walk(node, func(n Node) {
		if t, ok := n.(*Text); ok {
			out = append(out, t.Content)
		}
	})
	return out
}
