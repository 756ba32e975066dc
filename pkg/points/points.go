// Package points implements point-set helpers: centroid, polar sorting,
// Catmull-Rom smoothing and seeded random scattering.
package points

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
)

// Centroid returns the arithmetic mean of pts.
func Centroid(pts []geom.Point) (geom.Point, error) {
	if len(pts) == 0 {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "no points")
	}
	var c geom.Point
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(pts))), nil
}

// SortByAngle returns a copy of pts ordered by polar angle around their
// centroid, ascending (counter-clockwise with Y up, starting from the
// negative X axis). Points at equal angles are ordered by distance from the
// centroid. Full ties keep their input order.
func SortByAngle(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	copy(out, pts)
	if len(out) < 2 {
		return out
	}
	c, _ := Centroid(out)

	type polar struct {
		p           geom.Point
		angle, dist float64
	}
	ps := make([]polar, len(out))
	for i, p := range out {
		ps[i] = polar{p: p, angle: math.Atan2(p.Y-c.Y, p.X-c.X), dist: p.Dist(c)}
	}
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].angle != ps[j].angle {
			return ps[i].angle < ps[j].angle
		}
		return ps[i].dist < ps[j].dist
	})
	for i := range ps {
		out[i] = ps[i].p
	}
	return out
}

// Smooth turns anchors into a Catmull-Rom spline expressed as cubic Bezier
// handles. Each handle sits at (next - prev) * tension / 6 from its anchor;
// open paths reuse the end anchors as their missing neighbors, closed paths
// wrap around. Tension is clamped to [0, 1]. Tension 0 yields corner points
// with retracted handles, as do inputs with fewer than two points.
func Smooth(pts []geom.Point, closed bool, tension float64) []shape.PathPoint {
	tension = max(0, min(tension, 1))
	out := make([]shape.PathPoint, len(pts))
	n := len(pts)
	if n < 2 || tension == 0 {
		for i, p := range pts {
			out[i] = shape.CornerPoint(p)
		}
		return out
	}

	k := tension / 6
	for i, p := range pts {
		prev, next := i-1, i+1
		if closed {
			prev, next = (i-1+n)%n, (i+1)%n
		} else {
			prev, next = max(prev, 0), min(next, n-1)
		}
		d := pts[next].Sub(pts[prev]).Scale(k)
		out[i] = shape.PathPoint{
			Anchor:   p,
			LeftDir:  p.Sub(d),
			RightDir: p.Add(d),
			Type:     shape.Smooth,
		}
	}
	return out
}

// NewRand returns a deterministic PCG source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomInRect returns n points uniformly distributed inside r.
func RandomInRect(r geom.Rect, n int, rng *rand.Rand) ([]geom.Point, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "point count must not be negative, got %d", n)
	}
	if !r.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid rectangle %v", r)
	}
	out := make([]geom.Point, n)
	for i := range out {
		out[i] = geom.Point{
			X: r.Left + rng.Float64()*r.Width(),
			Y: r.Bottom + rng.Float64()*r.Height(),
		}
	}
	return out, nil
}
