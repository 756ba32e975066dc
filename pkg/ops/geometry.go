package ops

import (
	"context"
	"fmt"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

// Measure reports the bounds of every selected item and of the whole
// selection. It does not modify the document.
type Measure struct {
	Kind shape.BoundsKind
	Unit units.Unit
}

func (Measure) Name() string { return "measure" }

func (m Measure) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	if !m.Unit.Valid() {
		return Summary{}, errors.New(errors.ErrCodeInvalidUnit, "unknown unit: %d", int(m.Unit))
	}
	items, err := doc.Selected()
	if err != nil {
		return Summary{}, err
	}
	res := doc.Resolver()
	var sum Summary
	for _, it := range items {
		b, err := res.Bounds(it, m.Kind)
		if err != nil {
			return Summary{}, err
		}
		mm, err := m.measure(it.ID, it.Label(), b)
		if err != nil {
			return Summary{}, err
		}
		sum.Measurements = append(sum.Measurements, mm)
	}
	all, err := res.BoundsAll(items, m.Kind)
	if err != nil {
		return Summary{}, err
	}
	c, err := m.measure("", "selection", all)
	if err != nil {
		return Summary{}, err
	}
	sum.Combined = &c
	sum.Message = fmt.Sprintf("%s x %s", c.Width.Format(3), c.Height.Format(3))
	return sum, nil
}

func (m Measure) measure(id, label string, b geom.Rect) (Measurement, error) {
	w, err := units.V(b.Width(), units.Pt).In(m.Unit)
	if err != nil {
		return Measurement{}, err
	}
	h, err := units.V(b.Height(), units.Pt).In(m.Unit)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{ID: id, Label: label, Bounds: b, Width: w, Height: h}, nil
}

// HAlign is a horizontal alignment target.
type HAlign int

const (
	AlignNoneH HAlign = iota
	AlignLeft
	AlignCenterH
	AlignRight
)

// VAlign is a vertical alignment target.
type VAlign int

const (
	AlignNoneV VAlign = iota
	AlignTop
	AlignCenterV
	AlignBottom
)

// ParseHAlign resolves "left", "center", "right" or "" (no change).
func ParseHAlign(s string) (HAlign, error) {
	switch s {
	case "", "none":
		return AlignNoneH, nil
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenterH, nil
	case "right":
		return AlignRight, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown horizontal alignment %q", s)
}

// ParseVAlign resolves "top", "center", "bottom" or "" (no change).
func ParseVAlign(s string) (VAlign, error) {
	switch s {
	case "", "none":
		return AlignNoneV, nil
	case "top":
		return AlignTop, nil
	case "center":
		return AlignCenterV, nil
	case "bottom":
		return AlignBottom, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown vertical alignment %q", s)
}

// Align moves the selection, as one unit, so its bounds line up with an
// artboard edge or center.
type Align struct {
	Artboard   int
	Kind       shape.BoundsKind
	Horizontal HAlign
	Vertical   VAlign
}

func (Align) Name() string { return "align" }

func (a Align) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	items, err := doc.Selected()
	if err != nil {
		return Summary{}, err
	}
	ab, err := doc.Artboard(a.Artboard)
	if err != nil {
		return Summary{}, err
	}
	b, err := doc.Resolver().BoundsAll(items, a.Kind)
	if err != nil {
		return Summary{}, err
	}

	var dx, dy float64
	switch a.Horizontal {
	case AlignLeft:
		dx = ab.Rect.Left - b.Left
	case AlignCenterH:
		dx = ab.Rect.CenterX() - b.CenterX()
	case AlignRight:
		dx = ab.Rect.Right - b.Right
	}
	switch a.Vertical {
	case AlignTop:
		dy = ab.Rect.Top - b.Top
	case AlignCenterV:
		dy = ab.Rect.CenterY() - b.CenterY()
	case AlignBottom:
		dy = ab.Rect.Bottom - b.Bottom
	}

	var sum Summary
	if dx == 0 && dy == 0 {
		sum.Message = "already aligned"
		return sum, nil
	}
	for _, it := range items {
		it.Translate(dx, dy)
		sum.Changed = append(sum.Changed, it.ID)
	}
	sum.Message = fmt.Sprintf("moved %d items by (%.4g, %.4g) pt", len(items), dx, dy)
	return sum, nil
}

// Side selects which dimension Resize targets.
type Side int

const (
	SideWidth Side = iota
	SideHeight
	SideLongest
)

// ParseSide resolves "width", "height" or "longest".
func ParseSide(s string) (Side, error) {
	switch s {
	case "width", "w", "":
		return SideWidth, nil
	case "height", "h":
		return SideHeight, nil
	case "longest", "long":
		return SideLongest, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown side %q (want width, height or longest)", s)
}

func (s Side) String() string {
	switch s {
	case SideHeight:
		return "height"
	case SideLongest:
		return "longest"
	}
	return "width"
}

// Resize scales every selected item about its own center so the chosen
// side of its bounds matches Size. Proportional scaling keeps the aspect
// ratio; otherwise only the chosen axis changes.
type Resize struct {
	Size         units.Value
	Kind         shape.BoundsKind
	Side         Side
	Proportional bool
}

func (Resize) Name() string { return "resize" }

func (r Resize) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	target, err := units.ToPoints(r.Size.Magnitude, r.Size.Unit)
	if err != nil {
		return Summary{}, err
	}
	if err := errors.ValidatePositive("size", target); err != nil {
		return Summary{}, err
	}
	items, err := doc.Selected()
	if err != nil {
		return Summary{}, err
	}

	res := doc.Resolver()
	var sum Summary
	for _, it := range items {
		b, err := res.Bounds(it, r.Kind)
		if err != nil {
			return Summary{}, err
		}
		horizontal := r.Side == SideWidth || (r.Side == SideLongest && b.Width() >= b.Height())
		current := b.Height()
		if horizontal {
			current = b.Width()
		}
		if current == 0 {
			return Summary{}, errors.New(errors.ErrCodeMalformedShape, "%s has zero %s", it.Label(), r.Side)
		}
		f := target / current
		sx, sy := 1.0, f
		if horizontal {
			sx, sy = f, 1.0
		}
		if r.Proportional {
			sx, sy = f, f
		}
		it.Transform(geom.ScaleAbout(sx, sy, b.Center()))
		sum.Changed = append(sum.Changed, it.ID)
	}
	sum.Message = fmt.Sprintf("resized %d items to %s %s", len(items), r.Side, r.Size)
	return sum, nil
}

// FitArtboard resizes an artboard to the selection bounds plus a margin.
type FitArtboard struct {
	Artboard int
	Kind     shape.BoundsKind
	Margin   units.Value
}

func (FitArtboard) Name() string { return "fit-artboard" }

func (f FitArtboard) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	margin, err := units.ToPoints(f.Margin.Magnitude, f.Margin.Unit)
	if err != nil {
		return Summary{}, err
	}
	if err := errors.ValidateFinite("margin", margin); err != nil {
		return Summary{}, err
	}
	items, err := doc.Selected()
	if err != nil {
		return Summary{}, err
	}
	ab, err := doc.Artboard(f.Artboard)
	if err != nil {
		return Summary{}, err
	}
	b, err := doc.Resolver().BoundsAll(items, f.Kind)
	if err != nil {
		return Summary{}, err
	}
	ab.Rect = b.Expand(margin)
	return Summary{Message: fmt.Sprintf("artboard %q is now %v", ab.Name, ab.Rect)}, nil
}
