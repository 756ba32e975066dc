package shape

import (
	"math"

	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
)

// Segment is one cubic Bezier segment between two anchors.
type Segment struct{ P0, P1, P2, P3 geom.Point }

// Segments returns the cubic segments of a path, including the closing
// segment of a closed path.
func Segments(pts []PathPoint, closed bool) []Segment {
	n := len(pts)
	if n < 2 {
		return nil
	}
	count := n - 1
	if closed {
		count = n
	}
	out := make([]Segment, 0, count)
	for i := 0; i < count; i++ {
		a, b := pts[i], pts[(i+1)%n]
		out = append(out, Segment{a.Anchor, a.RightDir, b.LeftDir, b.Anchor})
	}
	return out
}

// At evaluates the segment at t in [0,1].
func (s Segment) At(t float64) geom.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return geom.Point{
		X: a*s.P0.X + b*s.P1.X + c*s.P2.X + d*s.P3.X,
		Y: a*s.P0.Y + b*s.P1.Y + c*s.P2.Y + d*s.P3.Y,
	}
}

// Flatten approximates the segment with n line pieces, returning n+1
// points starting at P0.
func (s Segment) Flatten(n int) []geom.Point {
	if n < 1 {
		n = 1
	}
	if s.IsLine() {
		return []geom.Point{s.P0, s.P3}
	}
	out := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, s.At(float64(i)/float64(n)))
	}
	return out
}

// IsLine reports whether both handles are retracted.
func (s Segment) IsLine() bool {
	return s.P1 == s.P0 && s.P2 == s.P3
}

// Extrema returns the parameters in (0,1) where the segment's derivative
// vanishes on either axis.
func (s Segment) Extrema() []float64 {
	var ts []float64
	ts = append(ts, axisRoots(s.P0.X, s.P1.X, s.P2.X, s.P3.X)...)
	ts = append(ts, axisRoots(s.P0.Y, s.P1.Y, s.P2.Y, s.P3.Y)...)
	return ts
}

// axisRoots solves B'(t) = 0 for one coordinate of a cubic.
func axisRoots(p0, p1, p2, p3 float64) []float64 {
	// B'(t)/3 = a t^2 + b t + c
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0

	const eps = 1e-12
	var roots []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if math.Abs(a) < eps {
		if math.Abs(b) > eps {
			keep(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
	case disc == 0:
		keep(-b / (2 * a))
	default:
		sq := math.Sqrt(disc)
		keep((-b + sq) / (2 * a))
		keep((-b - sq) / (2 * a))
	}
	return roots
}

// Bounds returns the exact bounds of the segment.
func (s Segment) Bounds() geom.Rect {
	r := geom.NewRect(s.P0, s.P3)
	for _, t := range s.Extrema() {
		p := s.At(t)
		r = geom.Union(r, geom.Rect{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y})
	}
	return r
}

// PathBounds returns the exact geometric bounds of a path: its anchors
// plus the extrema of every curved segment.
func PathBounds(pts []PathPoint, closed bool) (geom.Rect, error) {
	if len(pts) == 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeMalformedShape, "path has no points")
	}
	a := pts[0].Anchor
	r := geom.Rect{Left: a.X, Top: a.Y, Right: a.X, Bottom: a.Y}
	for _, s := range Segments(pts, closed) {
		r = geom.Union(r, s.Bounds())
	}
	return r, nil
}
