package render

import (
	"bytes"
	stdcolor "image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
)

// PNG rasterizes doc. The image is WithSize scaled by WithScale pixels.
func PNG(doc *document.Document, opts ...Option) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeNoDocument, "no document to render")
	}
	r := newRenderer(opts...)
	v, err := r.viewport(doc)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(math.Ceil(v.w)), int(math.Ceil(v.h)))
	if r.background != "" {
		dc.SetHexColor(r.background)
		dc.Clear()
	}
	if r.artboards {
		for _, a := range doc.Artboards {
			x, y, w, h := v.rect(a.Rect)
			dc.DrawRectangle(x, y, w, h)
			dc.SetRGB(1, 1, 1)
			dc.FillPreserve()
			dc.SetHexColor(artboardStroke)
			dc.SetLineWidth(r.scale)
			dc.Stroke()
		}
	}

	res := doc.Resolver()
	for _, d := range flatten(doc) {
		dc.Push()
		// Each Clip intersects with the mask already set.
		for _, m := range d.clips {
			tracePath(dc, v, m)
			dc.SetFillRuleEvenOdd()
			dc.Clip()
		}
		if d.item.Kind == shape.KindText || d.item.Kind == shape.KindRaster {
			x, y, w, h := v.rect(d.item.Box)
			dc.DrawRectangle(x, y, w, h)
			dc.SetHexColor(placeholder)
			dc.SetLineWidth(r.scale)
			dc.SetDash(4*r.scale, 2*r.scale)
			dc.Stroke()
			dc.Pop()
			continue
		}

		tracePath(dc, v, d.item)
		dc.SetFillRuleEvenOdd()
		if d.fill.Kind == color.KindGradient {
			if b, err := res.Bounds(d.item, shape.Geometric); err == nil {
				dc.SetFillStyle(gradientPattern(v, b, *d.fill.Gradient))
				dc.FillPreserve()
			}
		} else if c, ok := rgba(d.fill); ok {
			dc.SetColor(c)
			dc.FillPreserve()
		}
		if c, ok := rgba(d.stroke); ok && d.item.StrokeWidth > 0 {
			dc.SetColor(c)
			dc.SetLineWidth(d.item.StrokeWidth * v.unit)
			dc.Stroke()
		}
		dc.ClearPath()
		dc.Pop()
	}

	if r.showBounds && len(doc.Selection) > 0 {
		sel, err := doc.Selected()
		if err != nil {
			return nil, err
		}
		dc.SetHexColor(boundsStroke)
		dc.SetLineWidth(r.scale)
		dc.SetDash(3*r.scale, 3*r.scale)
		for _, it := range sel {
			b, err := res.Bounds(it, r.boundsKind)
			if err != nil {
				return nil, err
			}
			x, y, w, h := v.rect(b)
			dc.DrawRectangle(x, y, w, h)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func tracePath(dc *gg.Context, v viewport, it *shape.Item) {
	for _, p := range subpaths(it) {
		segs := shape.Segments(p.Points, p.Closed)
		if len(segs) == 0 {
			continue
		}
		dc.NewSubPath()
		start := v.pt(segs[0].P0)
		dc.MoveTo(start.X, start.Y)
		for _, s := range segs {
			end := v.pt(s.P3)
			if s.IsLine() {
				dc.LineTo(end.X, end.Y)
				continue
			}
			c1, c2 := v.pt(s.P1), v.pt(s.P2)
			dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		}
		if p.Closed {
			dc.ClosePath()
		}
	}
}

// gradientPattern spans a linear gradient across the item from left to
// right, or a radial one from its center to its farthest edge.
func gradientPattern(v viewport, b geom.Rect, g color.Gradient) gg.Gradient {
	x, y, w, h := v.rect(b)
	var pat gg.Gradient
	if g.Type == color.Radial {
		cx, cy := x+w/2, y+h/2
		pat = gg.NewRadialGradient(cx, cy, 0, cx, cy, max(w, h)/2)
	} else {
		pat = gg.NewLinearGradient(x, y+h/2, x+w, y+h/2)
	}
	for _, s := range g.Stops {
		if c, ok := rgba(s.Color); ok {
			pat.AddColorStop(s.Ramp/100, c)
		}
	}
	return pat
}

func rgba(c color.Color) (stdcolor.Color, bool) {
	css, ok := solid(c)
	if !ok {
		return nil, false
	}
	cf, err := colorful.Hex(css)
	if err != nil {
		return nil, false
	}
	return cf, true
}
