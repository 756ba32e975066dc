package shape

import (
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
)

// BoundsKind selects geometric or stroke-inclusive bounds.
type BoundsKind int

const (
	Visible BoundsKind = iota
	Geometric
)

func (k BoundsKind) String() string {
	if k == Geometric {
		return "geometric"
	}
	return "visible"
}

// ParseBoundsKind resolves "visible" or "geometric".
func ParseBoundsKind(s string) (BoundsKind, error) {
	switch s {
	case "visible", "":
		return Visible, nil
	case "geometric":
		return Geometric, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown bounds kind: %q (want visible or geometric)", s)
}

// Releaser materializes the nested paths of a compound path whose direct
// children are not paths. The returned cleanup discards everything the
// release created and must be called once the paths are no longer needed.
type Releaser interface {
	Release(compound *Item) (paths []*Item, cleanup func(), err error)
}

// flatReleaser releases by walking the item tree in memory.
type flatReleaser struct{}

func (flatReleaser) Release(compound *Item) ([]*Item, func(), error) {
	var out []*Item
	for _, c := range compound.Children {
		for _, p := range Paths(c) {
			out = append(out, p.Clone())
		}
	}
	return out, func() {}, nil
}

// Resolver computes item bounds.
type Resolver struct {
	// Releaser flattens compound paths that have no direct sub-paths. When
	// nil, nested paths are collected in memory.
	Releaser Releaser
}

// Bounds returns the bounds of it.
func (r Resolver) Bounds(it *Item, kind BoundsKind) (geom.Rect, error) {
	if it == nil {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "nil item")
	}
	switch it.Kind {
	case KindPath:
		b, err := PathBounds(it.Points, it.Closed)
		if err != nil {
			return geom.Rect{}, err
		}
		return r.stroke(b, it, kind), nil
	case KindCompoundPath:
		if len(it.Children) == 0 {
			return geom.Rect{}, errors.New(errors.ErrCodeMalformedShape, "compound path %s has no sub-paths", it.Label())
		}
		b, err := r.union(it.Children, Geometric, false)
		if err != nil {
			return geom.Rect{}, err
		}
		return r.stroke(b, it, kind), nil
	case KindGroup:
		if it.Clipped {
			return r.clipBounds(it)
		}
		b, err := r.union(it.Children, kind, true)
		if err != nil {
			return geom.Rect{}, errors.Wrap(errors.ErrCodeMalformedShape, err, "group %s", it.Label())
		}
		return b, nil
	case KindText, KindRaster:
		if !it.Box.Valid() {
			return geom.Rect{}, errors.New(errors.ErrCodeMalformedShape, "%s %s has invalid bounds %v", it.Kind, it.Label(), it.Box)
		}
		return it.Box, nil
	}
	return geom.Rect{}, errors.New(errors.ErrCodeMalformedShape, "unknown item kind %v", it.Kind)
}

// BoundsAll returns the union of the bounds of items.
func (r Resolver) BoundsAll(items []*Item, kind BoundsKind) (geom.Rect, error) {
	return r.union(items, kind, false)
}

func (r Resolver) stroke(b geom.Rect, it *Item, kind BoundsKind) geom.Rect {
	if kind == Visible && it.Stroked && it.StrokeWidth > 0 {
		return b.Expand(it.StrokeWidth / 2)
	}
	return b
}

func (r Resolver) union(items []*Item, kind BoundsKind, skipHidden bool) (geom.Rect, error) {
	rects := make([]geom.Rect, 0, len(items))
	for _, c := range items {
		if skipHidden && c.Hidden {
			continue
		}
		b, err := r.Bounds(c, kind)
		if err != nil {
			return geom.Rect{}, err
		}
		rects = append(rects, b)
	}
	if len(rects) == 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeMalformedShape, "no visible items to measure")
	}
	return geom.UnionAll(rects)
}

// clipBounds returns the geometric bounds of a clipped group's mask.
func (r Resolver) clipBounds(g *Item) (geom.Rect, error) {
	for _, c := range g.Children {
		if c.Clipping {
			return r.Bounds(c, Geometric)
		}
		if c.Kind != KindCompoundPath {
			continue
		}
		direct := directPaths(c)
		if len(direct) > 0 {
			if direct[0].Clipping {
				return r.Bounds(c, Geometric)
			}
			continue
		}
		b, ok, err := r.releasedClip(c)
		if err != nil {
			return geom.Rect{}, err
		}
		if ok {
			return b, nil
		}
	}
	return geom.Rect{}, errors.New(errors.ErrCodeMalformedShape, "clipped group %s has no clipping path", g.Label())
}

// releasedClip releases a compound path and, when its first path is a
// clipping path, returns the union of the released paths.
func (r Resolver) releasedClip(c *Item) (geom.Rect, bool, error) {
	rel := r.Releaser
	if rel == nil {
		rel = flatReleaser{}
	}
	paths, cleanup, err := rel.Release(c)
	if err != nil {
		return geom.Rect{}, false, errors.Wrap(errors.ErrCodeMalformedShape, err, "release compound path %s", c.Label())
	}
	defer cleanup()
	if len(paths) == 0 || !paths[0].Clipping {
		return geom.Rect{}, false, nil
	}
	b, err := r.union(paths, Geometric, false)
	if err != nil {
		return geom.Rect{}, false, err
	}
	return b, true, nil
}

func directPaths(c *Item) []*Item {
	var out []*Item
	for _, ch := range c.Children {
		if ch.Kind == KindPath {
			out = append(out, ch)
		}
	}
	return out
}
