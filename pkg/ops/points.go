package ops

import (
	"context"
	"fmt"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/points"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

// selectedPaths returns every path nested in the selection.
func selectedPaths(doc *document.Document) ([]*shape.Item, error) {
	items, err := doc.Selected()
	if err != nil {
		return nil, err
	}
	var out []*shape.Item
	for _, it := range items {
		out = append(out, shape.Paths(it)...)
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "selection contains no paths")
	}
	return out, nil
}

// black returns solid black in space.
func black(space color.Space) color.Color {
	switch space {
	case color.SpaceCMYK:
		return color.NewCMYK(0, 0, 0, 100)
	case color.SpaceGray:
		return color.NewGray(100)
	}
	return color.NewRGB(0, 0, 0)
}

// PointsToPolygon collects the anchors of every selected path, orders them
// by angle around their centroid and adds a closed polygon through them.
// The new polygon becomes the selection.
type PointsToPolygon struct {
	Layer string
}

func (PointsToPolygon) Name() string { return "points-to-polygon" }

func (p PointsToPolygon) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	paths, err := selectedPaths(doc)
	if err != nil {
		return Summary{}, err
	}
	var anchors []geom.Point
	for _, it := range paths {
		anchors = append(anchors, it.Anchors()...)
	}
	if len(anchors) < 3 {
		return Summary{}, errors.New(errors.ErrCodeInvalidInput, "need at least 3 points for a polygon, got %d", len(anchors))
	}

	poly := shape.NewPath(points.SortByAngle(anchors), true)
	poly.Name = "polygon"
	poly.Stroked, poly.StrokeWidth, poly.Stroke = true, 1, black(doc.ColorSpace)
	if err := doc.AddItem(p.Layer, poly); err != nil {
		return Summary{}, err
	}
	doc.Select(poly.ID)
	return Summary{
		Added:   []string{poly.ID},
		Message: fmt.Sprintf("polygon through %d points", len(anchors)),
	}, nil
}

// SmoothPoints converts every selected path into a Catmull-Rom spline
// through its anchors.
type SmoothPoints struct {
	Tension float64
}

func (SmoothPoints) Name() string { return "smooth" }

func (s SmoothPoints) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	if err := errors.ValidateFinite("tension", s.Tension); err != nil {
		return Summary{}, err
	}
	paths, err := selectedPaths(doc)
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	for _, it := range paths {
		it.Points = points.Smooth(it.Anchors(), it.Closed, s.Tension)
		sum.Changed = append(sum.Changed, it.ID)
	}
	sum.Message = fmt.Sprintf("smoothed %d paths at tension %.3g", len(paths), max(0, min(s.Tension, 1)))
	return sum, nil
}

// Scatter adds Count circles at uniformly random positions inside the
// selection bounds, grouped, and selects the group. The same Seed always
// produces the same layout.
type Scatter struct {
	Count  int
	Radius units.Value
	Seed   uint64
	Kind   shape.BoundsKind
	Layer  string
}

func (Scatter) Name() string { return "scatter" }

func (s Scatter) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	if s.Count <= 0 {
		return Summary{}, errors.New(errors.ErrCodeInvalidInput, "count must be positive, got %d", s.Count)
	}
	r, err := units.ToPoints(s.Radius.Magnitude, s.Radius.Unit)
	if err != nil {
		return Summary{}, err
	}
	if err := errors.ValidatePositive("radius", r); err != nil {
		return Summary{}, err
	}
	items, err := doc.Selected()
	if err != nil {
		return Summary{}, err
	}
	area, err := doc.Resolver().BoundsAll(items, s.Kind)
	if err != nil {
		return Summary{}, err
	}
	pts, err := points.RandomInRect(area, s.Count, points.NewRand(s.Seed))
	if err != nil {
		return Summary{}, err
	}

	fill := black(doc.ColorSpace)
	g := shape.NewGroup()
	g.Name = "scatter"
	for _, p := range pts {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		dot := shape.NewEllipse(geom.Rect{Left: p.X - r, Top: p.Y + r, Right: p.X + r, Bottom: p.Y - r})
		dot.Filled, dot.Fill = true, fill.Clone()
		g.Children = append(g.Children, dot)
	}
	if err := doc.AddItem(s.Layer, g); err != nil {
		return Summary{}, err
	}
	doc.Select(g.ID)
	return Summary{
		Added:   []string{g.ID},
		Message: fmt.Sprintf("scattered %d points in %v", s.Count, area),
	}, nil
}
