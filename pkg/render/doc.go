// Package render draws documents for preview.
//
// # Overview
//
// Two output formats share one scene description:
//
//   - [SVG]: vector preview with gradients, suitable for a browser
//   - [PNG]: raster preview drawn with fogleman/gg
//
// Both flip the document's Y-up coordinates into image space and fit the
// artboards and all visible items into the requested frame.
//
//	svg, err := render.SVG(doc, render.WithBounds(shape.Visible), render.WithArtboards())
//	png, err := render.PNG(doc, render.WithSize(1200, 800), render.WithScale(2))
//
// # Item Trees
//
// The [tree] subpackage renders the layer and item hierarchy as a Graphviz
// diagram.
//
// [tree]: github.com/matzehuels/artkit/pkg/render/tree
package render
