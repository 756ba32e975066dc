package shape

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
)

// Kind identifies the variant of an Item.
type Kind int

const (
	KindPath Kind = iota
	KindCompoundPath
	KindGroup
	KindText
	KindRaster
)

var kindNames = [...]string{
	KindPath:         "path",
	KindCompoundPath: "compound",
	KindGroup:        "group",
	KindText:         "text",
	KindRaster:       "raster",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	switch s {
	case "compoundpath", "compound-path":
		return KindCompoundPath, nil
	case "image", "placed":
		return KindRaster, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDocument, "unknown item kind: %q", s)
}

// PointType distinguishes corner from smooth anchors.
type PointType int

const (
	Corner PointType = iota
	Smooth
)

func (t PointType) String() string {
	if t == Smooth {
		return "smooth"
	}
	return "corner"
}

// PathPoint is an anchor with its incoming (LeftDir) and outgoing
// (RightDir) Bezier handles. A handle equal to the anchor is retracted.
type PathPoint struct {
	Anchor   geom.Point
	LeftDir  geom.Point
	RightDir geom.Point
	Type     PointType
}

// CornerPoint returns a corner anchor at p with retracted handles.
func CornerPoint(p geom.Point) PathPoint {
	return PathPoint{Anchor: p, LeftDir: p, RightDir: p, Type: Corner}
}

// Item is a node of the document tree.
//
// Children holds group members or compound-path sub-paths. Box holds the
// native bounds of text and raster items, which carry no path points.
type Item struct {
	ID   string
	Name string
	Kind Kind

	Points []PathPoint
	Closed bool

	// Clipping marks a path (or a compound path's first sub-path) as the
	// mask of its enclosing clipped group.
	Clipping bool
	// Clipped marks a group whose content is masked by its clip child.
	Clipped bool

	Stroked     bool
	StrokeWidth float64
	Filled      bool
	Fill        color.Color
	Stroke      color.Color

	Box      geom.Rect
	Children []*Item
	Hidden   bool
}

// NewID returns a fresh unique item identifier.
func NewID() string { return uuid.NewString() }

// NewPath returns a path item through pts with corner anchors.
func NewPath(pts []geom.Point, closed bool) *Item {
	it := &Item{ID: NewID(), Kind: KindPath, Closed: closed}
	for _, p := range pts {
		it.Points = append(it.Points, CornerPoint(p))
	}
	return it
}

// NewRectPath returns a closed rectangular path covering r.
func NewRectPath(r geom.Rect) *Item {
	return NewPath([]geom.Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}, true)
}

// kappa places cubic handles for a quarter circle.
const kappa = 0.5522847498307936

// NewEllipse returns a closed four-anchor Bezier ellipse inscribed in r.
func NewEllipse(r geom.Rect) *Item {
	cx, cy := r.CenterX(), r.CenterY()
	rx, ry := r.Width()/2, r.Height()/2
	kx, ky := rx*kappa, ry*kappa
	pt := func(ax, ay, lx, ly, rx2, ry2 float64) PathPoint {
		return PathPoint{
			Anchor:   geom.Point{X: ax, Y: ay},
			LeftDir:  geom.Point{X: lx, Y: ly},
			RightDir: geom.Point{X: rx2, Y: ry2},
			Type:     Smooth,
		}
	}
	// Counter-clockwise from the right-most point.
	return &Item{
		ID:     NewID(),
		Kind:   KindPath,
		Closed: true,
		Points: []PathPoint{
			pt(cx+rx, cy, cx+rx, cy-ky, cx+rx, cy+ky),
			pt(cx, cy+ry, cx+kx, cy+ry, cx-kx, cy+ry),
			pt(cx-rx, cy, cx-rx, cy+ky, cx-rx, cy-ky),
			pt(cx, cy-ry, cx-kx, cy-ry, cx+kx, cy-ry),
		},
	}
}

// NewGroup returns a group of children.
func NewGroup(children ...*Item) *Item {
	return &Item{ID: NewID(), Kind: KindGroup, Children: children}
}

// Label returns the item's name, falling back to its kind and ID.
func (it *Item) Label() string {
	if it.Name != "" {
		return it.Name
	}
	id := it.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("<%s %s>", it.Kind, id)
}

// Anchors returns the anchor positions of a path.
func (it *Item) Anchors() []geom.Point {
	out := make([]geom.Point, len(it.Points))
	for i, p := range it.Points {
		out[i] = p.Anchor
	}
	return out
}

// Clone returns a deep copy of it, keeping IDs.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	out := *it
	out.Fill = it.Fill.Clone()
	out.Stroke = it.Stroke.Clone()
	if it.Points != nil {
		out.Points = make([]PathPoint, len(it.Points))
		copy(out.Points, it.Points)
	}
	if it.Children != nil {
		out.Children = make([]*Item, len(it.Children))
		for i, c := range it.Children {
			out.Children[i] = c.Clone()
		}
	}
	return &out
}

// Walk visits it and its descendants depth-first. Returning false from fn
// skips the children of the visited item.
func Walk(it *Item, fn func(*Item) bool) {
	if it == nil || !fn(it) {
		return
	}
	for _, c := range it.Children {
		Walk(c, fn)
	}
}

// Transform applies m to every coordinate of it and its descendants, in
// place. Stroke widths scale by the mean scale factor of m.
func (it *Item) Transform(m geom.Affine) {
	s := m.MeanScale()
	Walk(it, func(n *Item) bool {
		for i := range n.Points {
			p := &n.Points[i]
			p.Anchor = m.Apply(p.Anchor)
			p.LeftDir = m.Apply(p.LeftDir)
			p.RightDir = m.Apply(p.RightDir)
		}
		if n.Kind == KindText || n.Kind == KindRaster {
			n.Box = m.ApplyRect(n.Box)
		}
		n.StrokeWidth *= s
		return true
	})
}

// Translate moves it by (dx, dy).
func (it *Item) Translate(dx, dy float64) { it.Transform(geom.Translate(dx, dy)) }

// Paths returns every path item nested anywhere below it (it included when
// it is itself a path), in document order.
func Paths(it *Item) []*Item {
	var out []*Item
	Walk(it, func(n *Item) bool {
		if n.Kind == KindPath {
			out = append(out, n)
		}
		return true
	})
	return out
}
