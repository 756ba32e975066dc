package ops

import (
	"context"
	"fmt"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/shape"
)

// Target picks which paint an operation reads and writes.
type Target int

const (
	TargetFill Target = iota
	TargetStroke
)

// ParseTarget resolves "fill" or "stroke".
func ParseTarget(s string) (Target, error) {
	switch s {
	case "fill", "":
		return TargetFill, nil
	case "stroke":
		return TargetStroke, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown paint target %q (want fill or stroke)", s)
}

func (t Target) String() string {
	if t == TargetStroke {
		return "stroke"
	}
	return "fill"
}

// paintable returns every selected leaf that carries paint, in selection
// order. Groups and compound paths are descended into; clipping paths are
// skipped since they are never painted.
func paintable(items []*shape.Item) []*shape.Item {
	var out []*shape.Item
	for _, it := range items {
		shape.Walk(it, func(n *shape.Item) bool {
			switch n.Kind {
			case shape.KindGroup:
				return true
			case shape.KindCompoundPath:
				out = append(out, n)
				return false
			case shape.KindPath, shape.KindText:
				if !n.Clipping {
					out = append(out, n)
				}
			}
			return false
		})
	}
	return out
}

func paint(it *shape.Item, t Target) (color.Color, bool) {
	if t == TargetStroke {
		return it.Stroke, it.Stroked
	}
	return it.Fill, it.Filled
}

func setPaint(it *shape.Item, t Target, c color.Color) {
	if t == TargetStroke {
		it.Stroke, it.Stroked = c, true
		if it.StrokeWidth == 0 {
			it.StrokeWidth = 1
		}
		return
	}
	it.Fill, it.Filled = c, true
}

// AverageColors replaces the fill (or stroke) of every painted leaf in the
// selection with the average of those colors, computed in the document
// color space.
type AverageColors struct {
	Target Target
}

func (AverageColors) Name() string { return "average-colors" }

func (a AverageColors) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	items, err := doc.Selected()
	if err != nil {
		return Summary{}, err
	}
	var targets []*shape.Item
	var colors []color.Color
	for _, it := range paintable(items) {
		if c, ok := paint(it, a.Target); ok {
			targets = append(targets, it)
			colors = append(colors, c)
		}
	}
	avg, err := color.Average(colors, doc.ColorSpace)
	if err != nil {
		return Summary{}, errors.Wrap(errors.GetCode(err), err, "average %s colors", a.Target)
	}

	var sum Summary
	for _, it := range targets {
		setPaint(it, a.Target, avg.Clone())
		sum.Changed = append(sum.Changed, it.ID)
	}
	sum.Message = fmt.Sprintf("%d %s colors -> %v", len(colors), a.Target, avg)
	return sum, nil
}

// SimulateBlindness recolors fill and stroke of every painted leaf in the
// selection as perceived with a color vision deficiency. Gradients are
// transformed stop by stop.
type SimulateBlindness struct {
	Deficiency color.Deficiency
}

func (SimulateBlindness) Name() string { return "simulate-blindness" }

func (s SimulateBlindness) Apply(ctx context.Context, doc *document.Document) (Summary, error) {
	items, err := doc.Selected()
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	for _, it := range paintable(items) {
		changed := false
		for _, t := range []Target{TargetFill, TargetStroke} {
			c, ok := paint(it, t)
			if !ok {
				continue
			}
			sim, err := color.Simulate(c, s.Deficiency)
			if err != nil {
				return Summary{}, errors.Wrap(errors.GetCode(err), err, "%s of %s", t, it.Label())
			}
			setPaint(it, t, sim)
			changed = true
		}
		if changed {
			sum.Changed = append(sum.Changed, it.ID)
		}
	}
	if len(sum.Changed) == 0 {
		return Summary{}, errors.New(errors.ErrCodeInvalidInput, "selection has no painted items")
	}
	sum.Message = fmt.Sprintf("simulated %s on %d items", s.Deficiency, len(sum.Changed))
	return sum, nil
}
