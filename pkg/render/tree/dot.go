package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/shape"
)

// Options configures hierarchy rendering.
type Options struct {
	// Detailed adds the item kind, point count and paint to labels.
	// When false, only the item label is shown.
	Detailed bool
}

// ToDOT converts the hierarchy of doc to Graphviz DOT.
func ToDOT(doc *document.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	selected := make(map[string]bool, len(doc.Selection))
	for _, id := range doc.Selection {
		selected[id] = true
	}

	root := "doc:" + doc.Name
	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder];\n", root, doc.Name)
	for i, l := range doc.Layers {
		if l.Scratch() {
			continue
		}
		lid := fmt.Sprintf("layer:%d", i)
		attrs := []string{fmt.Sprintf("label=%q", "layer "+l.Name), "shape=tab"}
		if l.Hidden {
			attrs = append(attrs, "fontcolor=grey50")
		}
		if l.Locked {
			attrs = append(attrs, "fillcolor=lightyellow")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", lid, strings.Join(attrs, ", "))
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, lid)
		for _, it := range l.Items {
			writeItem(&buf, lid, it, opts, selected)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeItem(buf *bytes.Buffer, parent string, it *shape.Item, opts Options, selected map[string]bool) {
	fmt.Fprintf(buf, "  %q [%s];\n", it.ID, strings.Join(fmtAttrs(it, fmtLabel(it, opts.Detailed), selected[it.ID]), ", "))
	fmt.Fprintf(buf, "  %q -> %q;\n", parent, it.ID)
	for _, c := range it.Children {
		writeItem(buf, it.ID, c, opts, selected)
	}
}

func fmtLabel(it *shape.Item, detailed bool) string {
	if !detailed {
		return it.Label()
	}

	parts := []string{"kind: " + it.Kind.String()}
	if n := len(it.Points); n > 0 {
		closed := "open"
		if it.Closed {
			closed = "closed"
		}
		parts = append(parts, fmt.Sprintf("points: %d (%s)", n, closed))
	}
	if n := len(it.Children); n > 0 {
		parts = append(parts, fmt.Sprintf("children: %d", n))
	}
	if it.Filled {
		parts = append(parts, "fill: "+it.Fill.String())
	}
	if it.Stroked {
		parts = append(parts, fmt.Sprintf("stroke: %s %.4gpt", it.Stroke, it.StrokeWidth))
	}
	if it.Clipped {
		parts = append(parts, "clipped")
	}
	return it.Label() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(it *shape.Item, label string, selected bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	style := []string{"rounded", "filled"}
	if it.Clipping {
		style = append(style, "dashed")
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	if selected {
		style = append(style, "bold")
		attrs = append(attrs, "color=deeppink")
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(style, ",")))
	if it.Hidden {
		attrs = append(attrs, "fontcolor=grey50")
	}
	return attrs
}

// RenderSVG lays out a DOT graph and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag with one sized in
// pixels so the diagram scales like the document previews.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
