package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/shape"
)

const (
	artboardStroke = "#9a9a9a"
	boundsStroke   = "#ff2fa0"
	placeholder    = "#c8c8c8"
)

// SVG renders doc as a standalone SVG document.
func SVG(doc *document.Document, opts ...Option) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeNoDocument, "no document to render")
	}
	r := newRenderer(opts...)
	v, err := r.viewport(doc)
	if err != nil {
		return nil, err
	}

	var buf, defs bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		v.w, v.h, v.w, v.h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	var body bytes.Buffer
	if r.artboards {
		for _, a := range doc.Artboards {
			x, y, w, h := v.rect(a.Rect)
			fmt.Fprintf(&body, `  <rect class="artboard" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white" stroke="%s" stroke-width="1"/>`+"\n",
				x, y, w, h, artboardStroke)
		}
	}

	// A nested mask's clipPath is itself clipped by its parent's, so the
	// visible area is the intersection of the chain.
	type clipKey struct {
		parent string
		mask   *shape.Item
	}
	clips := map[clipKey]string{}
	clipID := func(chain []*shape.Item) string {
		id := ""
		for _, m := range chain {
			k := clipKey{parent: id, mask: m}
			next, ok := clips[k]
			if !ok {
				next = fmt.Sprintf("clip%d", len(clips))
				clips[k] = next
				parentAttr := ""
				if id != "" {
					parentAttr = fmt.Sprintf(` clip-path="url(#%s)"`, id)
				}
				fmt.Fprintf(&defs, `    <clipPath id="%s"%s><path d="%s" clip-rule="evenodd"/></clipPath>`+"\n", next, parentAttr, pathData(v, m))
			}
			id = next
		}
		return id
	}

	grads := 0
	for _, d := range flatten(doc) {
		clipAttr := ""
		if len(d.clips) > 0 {
			clipAttr = fmt.Sprintf(` clip-path="url(#%s)"`, clipID(d.clips))
		}

		if d.item.Kind == shape.KindText || d.item.Kind == shape.KindRaster {
			x, y, w, h := v.rect(d.item.Box)
			fmt.Fprintf(&body, `  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-dasharray="4 2"%s/>`+"\n",
				d.item.Kind, x, y, w, h, placeholder, clipAttr)
			continue
		}

		fill := "none"
		if d.fill.Kind == color.KindGradient {
			id := fmt.Sprintf("grad%d", grads)
			grads++
			writeGradient(&defs, id, *d.fill.Gradient)
			fill = fmt.Sprintf("url(#%s)", id)
		} else if css, ok := solid(d.fill); ok {
			fill = css
		}
		stroke := ""
		if css, ok := solid(d.stroke); ok {
			stroke = fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, css, d.item.StrokeWidth*v.unit)
		}
		fmt.Fprintf(&body, `  <path id="%s" d="%s" fill="%s" fill-rule="evenodd"%s%s/>`+"\n",
			xmlEscape(d.item.ID), pathData(v, d.item), fill, stroke, clipAttr)
	}

	if r.showBounds {
		if err := writeBounds(&body, doc, v, r.boundsKind); err != nil {
			return nil, err
		}
	}

	if defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		buf.Write(defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// pathData converts the outline of it to SVG path syntax in image space.
func pathData(v viewport, it *shape.Item) string {
	var sb strings.Builder
	for _, p := range subpaths(it) {
		segs := shape.Segments(p.Points, p.Closed)
		if len(segs) == 0 {
			continue
		}
		start := v.pt(segs[0].P0)
		fmt.Fprintf(&sb, "M%.2f %.2f", start.X, start.Y)
		for _, s := range segs {
			end := v.pt(s.P3)
			if s.IsLine() {
				fmt.Fprintf(&sb, " L%.2f %.2f", end.X, end.Y)
				continue
			}
			c1, c2 := v.pt(s.P1), v.pt(s.P2)
			fmt.Fprintf(&sb, " C%.2f %.2f %.2f %.2f %.2f %.2f", c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		}
		if p.Closed {
			sb.WriteString(" Z")
		}
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(sb.String())
}

func writeGradient(w *bytes.Buffer, id string, g color.Gradient) {
	tag := "linearGradient"
	if g.Type == color.Radial {
		tag = "radialGradient"
	}
	fmt.Fprintf(w, `    <%s id="%s">`+"\n", tag, id)
	for _, s := range g.Stops {
		css, ok := solid(s.Color)
		if !ok {
			continue
		}
		fmt.Fprintf(w, `      <stop offset="%.1f%%" stop-color="%s"/>`+"\n", s.Ramp, css)
	}
	fmt.Fprintf(w, "    </%s>\n", tag)
}

func writeBounds(w *bytes.Buffer, doc *document.Document, v viewport, kind shape.BoundsKind) error {
	if len(doc.Selection) == 0 {
		return nil
	}
	sel, err := doc.Selected()
	if err != nil {
		return err
	}
	res := doc.Resolver()
	for _, it := range sel {
		b, err := res.Bounds(it, kind)
		if err != nil {
			return err
		}
		x, y, bw, bh := v.rect(b)
		fmt.Fprintf(w, `  <rect class="bounds" data-item="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-dasharray="3 3"/>`+"\n",
			xmlEscape(it.ID), x, y, bw, bh, boundsStroke)
	}
	return nil
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")

func xmlEscape(s string) string { return xmlReplacer.Replace(s) }
