// Package geom provides the bounding boxes, points and affine transforms that
// every artkit operation is built on.
//
// # Coordinate Space
//
// All values live in document space: points (1/72 inch) with the Y axis
// pointing up. A [Rect] is therefore stored as (Left, Top, Right, Bottom)
// with Top >= Bottom, the same order the host's artboard arrays use
// ([left, top, right, bottom]).
//
// # Merging
//
// [Union] and [UnionAll] merge boxes by extremal coordinates (min of lefts,
// max of tops, max of rights, min of bottoms). The merge is associative and
// commutative, so the order in which group children are visited never
// changes the result.
//
//	box, err := geom.UnionAll([]geom.Rect{a, b, c})
//
// # Transforms
//
// [Affine] wraps golang.org/x/image/math/f64.Aff3 and is used to move and
// scale shapes:
//
//	m := geom.ScaleAbout(2, 2, box.Center())
//	moved := m.ApplyRect(box)
package geom
