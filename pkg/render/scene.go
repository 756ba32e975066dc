package render

import (
	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
)

// Option configures a render.
type Option func(*renderer)

type renderer struct {
	width, height int
	scale         float64
	padding       float64
	artboards     bool
	showBounds    bool
	boundsKind    shape.BoundsKind
	background    string
}

// WithSize sets the frame size in pixels before scaling.
func WithSize(w, h int) Option { return func(r *renderer) { r.width, r.height = w, h } }

// WithScale multiplies the output resolution.
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

// WithArtboards outlines every artboard.
func WithArtboards() Option { return func(r *renderer) { r.artboards = true } }

// WithBounds overlays the resolved bounds of each selected item.
func WithBounds(kind shape.BoundsKind) Option {
	return func(r *renderer) { r.showBounds, r.boundsKind = true, kind }
}

// WithBackground sets a CSS background color; empty means transparent.
func WithBackground(css string) Option { return func(r *renderer) { r.background = css } }

func newRenderer(opts ...Option) renderer {
	r := renderer{width: 800, height: 600, scale: 1, padding: 16}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	return r
}

// viewport maps document points to image pixels.
type viewport struct {
	m    geom.Affine
	unit float64 // pixels per point
	w, h float64
}

func (v viewport) pt(p geom.Point) geom.Point { return v.m.Apply(p) }

func (v viewport) rect(r geom.Rect) (x, y, w, h float64) {
	tl := v.pt(geom.Point{X: r.Left, Y: r.Top})
	return tl.X, tl.Y, r.Width() * v.unit, r.Height() * v.unit
}

// extent is the union of all artboards and visible item bounds.
func extent(doc *document.Document) (geom.Rect, error) {
	var rects []geom.Rect
	for _, a := range doc.Artboards {
		rects = append(rects, a.Rect)
	}
	res := doc.Resolver()
	for _, l := range doc.Layers {
		if l.Hidden {
			continue
		}
		for _, it := range l.Items {
			if it.Hidden {
				continue
			}
			if b, err := res.Bounds(it, shape.Visible); err == nil {
				rects = append(rects, b)
			}
		}
	}
	if len(rects) == 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "document %q has nothing to draw", doc.Name)
	}
	return geom.UnionAll(rects)
}

func (r renderer) viewport(doc *document.Document) (viewport, error) {
	ext, err := extent(doc)
	if err != nil {
		return viewport{}, err
	}
	w, h := float64(r.width)*r.scale, float64(r.height)*r.scale
	pad := r.padding * r.scale
	availW, availH := w-2*pad, h-2*pad
	if availW <= 0 || availH <= 0 {
		return viewport{}, errors.New(errors.ErrCodeInvalidInput, "frame %dx%d too small", r.width, r.height)
	}
	k := 1.0
	if ext.Width() > 0 || ext.Height() > 0 {
		k = min(availW/max(ext.Width(), 1e-9), availH/max(ext.Height(), 1e-9))
	}
	// Center the extent in the frame, flipping Y.
	offX := pad + (availW-ext.Width()*k)/2
	offY := pad + (availH-ext.Height()*k)/2
	m := geom.Translate(-ext.Left, -ext.Top).
		Then(geom.Scale(k, -k)).
		Then(geom.Translate(offX, offY))
	return viewport{m: m, unit: k, w: w, h: h}, nil
}

// drawable is one painted leaf in paint order.
type drawable struct {
	item   *shape.Item
	clips  []*shape.Item // enclosing clip masks, outermost first
	fill   color.Color
	stroke color.Color
}

// flatten lists painted leaves back to front.
func flatten(doc *document.Document) []drawable {
	var out []drawable
	var visit func(it *shape.Item, clips []*shape.Item)
	visit = func(it *shape.Item, clips []*shape.Item) {
		if it.Hidden {
			return
		}
		switch it.Kind {
		case shape.KindGroup:
			inner, mask := clips, (*shape.Item)(nil)
			if it.Clipped {
				if mask = clipMask(it); mask != nil {
					inner = append(clips[:len(clips):len(clips)], mask)
				}
			}
			for _, c := range it.Children {
				if c == mask || c.Clipping {
					continue
				}
				visit(c, inner)
			}
		case shape.KindPath, shape.KindCompoundPath, shape.KindText, shape.KindRaster:
			if it.Clipping {
				return
			}
			d := drawable{item: it, clips: clips}
			if it.Filled {
				d.fill = it.Fill
			}
			if it.Stroked {
				d.stroke = it.Stroke
			}
			out = append(out, d)
		}
	}
	for _, l := range doc.Layers {
		if l.Hidden {
			continue
		}
		for _, it := range l.Items {
			visit(it, nil)
		}
	}
	return out
}

func clipMask(g *shape.Item) *shape.Item {
	for _, c := range g.Children {
		if c.Clipping {
			return c
		}
		if c.Kind == shape.KindCompoundPath {
			if ps := shape.Paths(c); len(ps) > 0 && ps[0].Clipping {
				return c
			}
		}
	}
	return nil
}

// subpaths returns the paths that make up the outline of it.
func subpaths(it *shape.Item) []*shape.Item {
	switch it.Kind {
	case shape.KindPath:
		return []*shape.Item{it}
	case shape.KindCompoundPath:
		return shape.Paths(it)
	}
	return nil
}

// solid converts c to a CSS hex color, falling back to a representative
// color for gradients.
func solid(c color.Color) (string, bool) {
	switch c.Kind {
	case color.KindNone:
		return "", false
	case color.KindGradient:
		mid, err := c.Gradient.At(50)
		if err != nil {
			return "", false
		}
		c = mid
	}
	h, err := color.Hex(c)
	if err != nil {
		return "", false
	}
	return h, true
}
