package shape

import (
	"fmt"
	"testing"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/geom"
)

func TestCloneIsDeep(t *testing.T) {
	spot := color.NewSpot("ink", color.NewRGB(1, 2, 3), 40)
	leaf := rectItem(0, 1, 1, 0)
	leaf.Fill = spot
	g := NewGroup(leaf)

	c := g.Clone()
	c.Children[0].Points[0].Anchor.X = 99
	c.Children[0].Fill.Spot.Tint = 100
	c.Children = append(c.Children, rectItem(5, 5, 6, 4))

	if leaf.Points[0].Anchor.X != 0 {
		t.Error("Clone shares point storage")
	}
	if leaf.Fill.Spot.Tint != 40 {
		t.Error("Clone shares spot color")
	}
	if len(g.Children) != 1 {
		t.Error("Clone shares children slice")
	}
	if c.ID != g.ID {
		t.Errorf("Clone ID = %s, want %s", c.ID, g.ID)
	}
}

func TestTransform(t *testing.T) {
	p := rectItem(0, 10, 10, 0)
	p.Stroked, p.StrokeWidth = true, 2
	txt := &Item{Kind: KindText, Box: geom.Rect{Left: 0, Top: 4, Right: 4, Bottom: 0}}
	g := NewGroup(p, txt)

	g.Transform(geom.ScaleAbout(2, 2, geom.Point{}))

	b, err := Resolver{}.Bounds(g, Geometric)
	if err != nil {
		t.Fatal(err)
	}
	if want := (geom.Rect{Left: 0, Top: 20, Right: 20, Bottom: 0}); b != want {
		t.Errorf("Bounds after scale = %v, want %v", b, want)
	}
	if p.StrokeWidth != 4 {
		t.Errorf("StrokeWidth = %v, want 4", p.StrokeWidth)
	}
	if want := (geom.Rect{Left: 0, Top: 8, Right: 8, Bottom: 0}); txt.Box != want {
		t.Errorf("text Box = %v, want %v", txt.Box, want)
	}

	g.Translate(-5, 1)
	if got := p.Points[0].Anchor; got != (geom.Point{X: -5, Y: 21}) {
		t.Errorf("anchor after translate = %v", got)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	inner := NewGroup(rectItem(0, 1, 1, 0))
	inner.Name = "inner"
	root := NewGroup(inner, rectItem(2, 3, 3, 2))

	var visited int
	Walk(root, func(it *Item) bool {
		visited++
		return it.Name != "inner"
	})
	if visited != 3 {
		t.Errorf("visited = %d, want 3", visited)
	}
	if n := len(Paths(root)); n != 2 {
		t.Errorf("Paths = %d, want 2", n)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindPath, KindCompoundPath, KindGroup, KindText, KindRaster} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("symbol"); err == nil {
		t.Error("ParseKind(symbol) should fail")
	}
}

func TestSegmentFlatten(t *testing.T) {
	line := Segment{geom.Point{}, geom.Point{}, geom.Point{X: 4}, geom.Point{X: 4}}
	if pts := line.Flatten(16); len(pts) != 2 {
		t.Errorf("line Flatten = %d points, want 2", len(pts))
	}

	e := NewEllipse(geom.Rect{Left: -1, Top: 1, Right: 1, Bottom: -1})
	segs := Segments(e.Points, e.Closed)
	if len(segs) != 4 {
		t.Fatalf("Segments = %d, want 4", len(segs))
	}
	pts := segs[0].Flatten(8)
	if len(pts) != 9 {
		t.Errorf("Flatten = %d points, want 9", len(pts))
	}
	for _, p := range pts {
		if d := p.Dist(geom.Point{}); d < 0.999 || d > 1.001 {
			t.Errorf("point %v at radius %v, want ~1", p, d)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func ExampleResolver_Bounds() {
	clip := NewRectPath(geom.FromArray([4]float64{0, 0, 10, -10}))
	clip.Clipping = true
	art := NewRectPath(geom.FromArray([4]float64{100, 100, 200, -200}))

	g := NewGroup(clip, art)
	g.Clipped = true

	b, _ := Resolver{}.Bounds(g, Visible)
	fmt.Println(b.Array())
	// Output: [0 0 10 -10]
}
