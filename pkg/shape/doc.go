// Package shape defines the document item tree and resolves visible bounds.
//
// An [Item] is a tagged union over five kinds: paths, compound paths,
// groups, text and raster images. Dispatch is an exhaustive switch on
// [Kind]; there is no string-typed type test anywhere.
//
// # Bounds
//
// [Resolver.Bounds] computes the bounds a designer sees:
//
//   - Paths use exact cubic Bezier extrema, not control-point hulls.
//   - Visible bounds include half the stroke width of stroked paths.
//   - A clipped group is as large as its clipping path, however far the
//     clipped content extends.
//   - An unclipped group is the union of its visible children.
//
// Compound paths whose sub-paths are wrapped in groups have no direct paths
// to inspect. The resolver hands those to a [Releaser], which flattens them
// into temporary paths and cleans up afterwards.
package shape
