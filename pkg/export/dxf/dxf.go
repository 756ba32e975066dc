// Package dxf exports documents as DXF drawings for CAD tools.
//
// The export profile is fixed: AutoCAD Release 14 compatibility, millimeter
// coordinates and maximum editability. Every visible path is written as
// individual LINE entities on a DXF layer named after its document layer,
// with curves flattened into straight pieces.
package dxf

import (
	"os"

	"github.com/yofu/dxf"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

// Release is the compatibility label of the export profile.
const Release = "R14"

// DefaultSegments is the number of line pieces per curved segment.
const DefaultSegments = 16

// Options configures an export.
type Options struct {
	// Segments is the number of line pieces per curved Bezier segment.
	// Zero means DefaultSegments.
	Segments int
	// SelectionOnly exports just the selected items.
	SelectionOnly bool
}

// Line is one exported entity in millimeters.
type Line struct {
	Layer string
	From  geom.Point
	To    geom.Point
}

// Result describes a finished export.
type Result struct {
	Path    string
	Release string
	Unit    units.Unit
	Layers  []string
	Lines   int
}

// Lines converts the visible paths of doc into millimeter line entities,
// grouped by layer in document order.
func Lines(doc *document.Document, opts Options) ([]Line, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeNoDocument, "no document to export")
	}
	n := opts.Segments
	if n == 0 {
		n = DefaultSegments
	}
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "segments must be positive, got %d", opts.Segments)
	}
	k, err := units.FromPoints(1, units.MM)
	if err != nil {
		return nil, err
	}

	var only map[string]bool
	if opts.SelectionOnly {
		sel, err := doc.Selected()
		if err != nil {
			return nil, err
		}
		only = make(map[string]bool, len(sel))
		for _, it := range sel {
			only[it.ID] = true
		}
	}

	var out []Line
	for _, l := range doc.Layers {
		if l.Hidden || l.Scratch() {
			continue
		}
		for _, it := range l.Items {
			for _, p := range visiblePaths(it, only) {
				for _, seg := range shape.Segments(p.Points, p.Closed) {
					pts := seg.Flatten(n)
					for i := 1; i < len(pts); i++ {
						out = append(out, Line{
							Layer: l.Name,
							From:  pts[i-1].Scale(k),
							To:    pts[i].Scale(k),
						})
					}
				}
			}
		}
	}
	return out, nil
}

// visiblePaths lists the paths below it, skipping hidden subtrees. With a
// non-nil only, a path is kept when it or one of its ancestors is listed.
func visiblePaths(it *shape.Item, only map[string]bool) []*shape.Item {
	var out []*shape.Item
	var visit func(n *shape.Item, picked bool)
	visit = func(n *shape.Item, picked bool) {
		if n.Hidden {
			return
		}
		picked = picked || only == nil || only[n.ID]
		if n.Kind == shape.KindPath && picked {
			out = append(out, n)
		}
		for _, c := range n.Children {
			visit(c, picked)
		}
	}
	visit(it, false)
	return out
}

// Export writes doc to path as DXF.
func Export(doc *document.Document, path string, opts Options) (Result, error) {
	lines, err := Lines(doc, opts)
	if err != nil {
		return Result{}, err
	}
	if len(lines) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "nothing to export: document has no visible paths")
	}

	d := dxf.NewDrawing()
	res := Result{Path: path, Release: Release, Unit: units.MM, Lines: len(lines)}
	current := ""
	for _, ln := range lines {
		if ln.Layer != current {
			if _, err := d.AddLayer(ln.Layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
				// Layer already exists from an earlier run of items.
				if err := d.ChangeLayer(ln.Layer); err != nil {
					return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "select layer %q", ln.Layer)
				}
			} else {
				res.Layers = append(res.Layers, ln.Layer)
			}
			current = ln.Layer
		}
		if _, err := d.Line(ln.From.X, ln.From.Y, 0, ln.To.X, ln.To.Y, 0); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "add line")
		}
	}

	tmp := path + ".tmp"
	if err := d.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return Result{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return Result{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return res, nil
}
