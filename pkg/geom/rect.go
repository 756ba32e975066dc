package geom

import (
	"fmt"
	"math"

	"github.com/matzehuels/artkit/pkg/errors"
)

// Point is a location in document space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both coordinates multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Eq reports whether p and q are equal within eps on both axes.
func (p Point) Eq(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Rect is an axis-aligned bounding box in document space (Y up).
// A valid Rect satisfies Left <= Right and Bottom <= Top.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a Rect from any two opposite corners.
func NewRect(a, b Point) Rect {
	return Rect{
		Left:   min(a.X, b.X),
		Top:    max(a.Y, b.Y),
		Right:  max(a.X, b.X),
		Bottom: min(a.Y, b.Y),
	}
}

// FromArray builds a Rect from the host order [left, top, right, bottom].
// The values are taken as-is; call Valid to check them.
func FromArray(a [4]float64) Rect {
	return Rect{Left: a[0], Top: a[1], Right: a[2], Bottom: a[3]}
}

// Array returns r in the host order [left, top, right, bottom].
func (r Rect) Array() [4]float64 { return [4]float64{r.Left, r.Top, r.Right, r.Bottom} }

// Valid reports whether r is finite and correctly oriented.
func (r Rect) Valid() bool {
	for _, v := range r.Array() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Left <= r.Right && r.Bottom <= r.Top
}

// Width returns the horizontal span of the box.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the box.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// CenterX returns the horizontal center of the box.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center of the box.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Center returns the center point of the box.
func (r Rect) Center() Point { return Point{r.CenterX(), r.CenterY()} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Bottom && p.Y <= r.Top
}

// Expand grows r by d on every side. A negative d shrinks it; the result is
// collapsed to its center rather than inverted.
func (r Rect) Expand(d float64) Rect {
	out := Rect{Left: r.Left - d, Top: r.Top + d, Right: r.Right + d, Bottom: r.Bottom - d}
	if out.Left > out.Right {
		out.Left, out.Right = r.CenterX(), r.CenterX()
	}
	if out.Bottom > out.Top {
		out.Bottom, out.Top = r.CenterY(), r.CenterY()
	}
	return out
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Corners returns the four corners counter-clockwise from bottom-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.Left, r.Bottom},
		{r.Right, r.Bottom},
		{r.Right, r.Top},
		{r.Left, r.Top},
	}
}

// Eq reports whether both boxes match within eps on every edge.
func (r Rect) Eq(o Rect, eps float64) bool {
	return math.Abs(r.Left-o.Left) <= eps && math.Abs(r.Top-o.Top) <= eps &&
		math.Abs(r.Right-o.Right) <= eps && math.Abs(r.Bottom-o.Bottom) <= eps
}

// String formats r in host order.
func (r Rect) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", r.Left, r.Top, r.Right, r.Bottom)
}

// Union merges two boxes by extremal coordinates.
func Union(a, b Rect) Rect {
	return Rect{
		Left:   min(a.Left, b.Left),
		Top:    max(a.Top, b.Top),
		Right:  max(a.Right, b.Right),
		Bottom: min(a.Bottom, b.Bottom),
	}
}

// UnionAll merges every box in rects. An empty slice has no bounds and
// returns an ErrCodeInvalidInput error.
func UnionAll(rects []Rect) (Rect, error) {
	if len(rects) == 0 {
		return Rect{}, errors.New(errors.ErrCodeInvalidInput, "cannot merge an empty list of bounds")
	}
	out := rects[0]
	for _, r := range rects[1:] {
		out = Union(out, r)
	}
	return out, nil
}

// BoundsOf returns the tightest box around pts.
func BoundsOf(pts []Point) (Rect, error) {
	if len(pts) == 0 {
		return Rect{}, errors.New(errors.ErrCodeInvalidInput, "cannot bound an empty point set")
	}
	r := Rect{Left: pts[0].X, Right: pts[0].X, Top: pts[0].Y, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		r.Left = min(r.Left, p.X)
		r.Right = max(r.Right, p.X)
		r.Top = max(r.Top, p.Y)
		r.Bottom = min(r.Bottom, p.Y)
	}
	return r, nil
}
