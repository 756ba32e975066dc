// Package tree renders a document's layer and item hierarchy as a
// node-link diagram.
//
// [ToDOT] writes Graphviz DOT with one node per layer and item, and edges
// from each container to its children. [RenderSVG] lays the graph out with
// the embedded Graphviz build from goccy/go-graphviz, so no system install
// is needed.
//
//	dot := tree.ToDOT(doc, tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// Clipping masks are drawn dashed, hidden items grey, and selected items
// with a bold outline.
package tree
