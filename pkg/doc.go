// Package pkg provides the libraries behind artkit, a toolkit for measuring
// and editing the selection of vector artwork documents.
//
// # Overview
//
// A document is a tree of layers, groups, compound paths and paths with
// artboards and a selection. The packages are organized in layers:
//
//  1. Foundations: [geom], [units], [errors]
//  2. Model: [shape] (items and bounds resolution), [color], [document]
//  3. Operations: [ops], built on [points] for polygon, spline and scatter
//     helpers
//  4. Output: [render] (SVG and PNG previews), [render/tree] (hierarchy
//     diagrams), [export/dxf] (CAD line work) and [pipeline], which caches
//     rendered artifacts
//  5. Support: [config], [prefs], [cache], [observability], [buildinfo]
//
// # Data Flow
//
//	document JSON
//	     ↓
//	[document] ImportJSON
//	     ↓
//	[ops] Runner.Preview → Commit (or Discard)
//	     ↓
//	[document] ExportJSON   or   [pipeline] Runner.Render → svg/png/dot/dxf
//
// # Quick Start
//
// Measure the visible bounds of the selection in millimeters:
//
//	doc, err := document.ImportJSON("poster.json")
//	if err != nil {
//	    return err
//	}
//	_, sum, err := ops.NewRunner(nil).Run(ctx, doc, ops.Measure{
//	    Kind: shape.Visible,
//	    Unit: units.MM,
//	})
//	fmt.Println(sum.Combined.Width, sum.Combined.Height)
//
// Clipped groups measure as their clipping path, and visible bounds include
// half the stroke width on every side.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/geom
// [units]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/units
// [errors]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/errors
// [shape]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/shape
// [color]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/color
// [document]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/document
// [ops]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/ops
// [points]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/points
// [render]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/render
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/render/tree
// [export/dxf]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/export/dxf
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/config
// [prefs]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/prefs
// [cache]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/artkit/pkg/buildinfo
package pkg
