package scene

import (
	"slices"
	"testing"
)

func TestWalkOrder(t *testing.T) {
	root := &Column{Children: []Node{
		&Text{Content: "a"},
		&Row{Children: []Node{
			&Text{Content: "b"},
			&Pad{Child: &Text{Content: "c"}},
		}},
		&Fill{Child: &Layer{Children: []Node{&Arc{}, &Text{Content: "d"}}}},
		&Wrap{Children: []Node{&Dot{}, &Dot{}}},
	}}

	if got, want := Texts(root), []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("Texts() = %v, want %v", got, want)
	}

	count := 0
	Walk(root, func(Node) { count++ })
	// column, a, row, b, pad, c, fill, layer, arc, d, wrap, dot, dot
	if count != 13 {
		t.Errorf("Walk visited %d nodes, want 13", count)
	}
}

func TestWalkNil(t *testing.T) {
	Walk(nil, func(Node) { t.Fatal("fn called for nil node") })
}

func TestArcRadius(t *testing.T) {
	a := Arc{Diameter: 600, Stroke: 40}
	if got := a.Radius(); got != 260 {
		t.Errorf("Radius() = %v, want 260", got)
	}
}

func TestFrameContentHeight(t *testing.T) {
	f := &Frame{Height: 1920, Padding: Insets{Top: 160, Bottom: 80}}
	if got := f.ContentHeight(); got != 1680 {
		t.Errorf("ContentHeight() = %v, want 1680", got)
	}
}
