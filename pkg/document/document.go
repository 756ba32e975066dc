package document

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/artkit/pkg/cache"
	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

// scratchPrefix names the temporary layers created by Release.
const scratchPrefix = "__artkit_release_"

// Artboard is a named page rectangle.
type Artboard struct {
	Name string
	Rect geom.Rect
}

// Layer is an ordered list of top-level items.
type Layer struct {
	Name   string
	Locked bool
	Hidden bool
	Items  []*shape.Item
}

// Document is the full editable state.
type Document struct {
	Name           string
	ColorSpace     color.Space
	RulerUnits     units.Unit
	Artboards      []Artboard
	ActiveArtboard int
	Layers         []*Layer
	// Selection lists selected item IDs in selection order.
	Selection []string
}

// New returns an empty RGB document in points with one layer and one
// artboard covering r.
func New(name string, r geom.Rect) *Document {
	return &Document{
		Name:       name,
		ColorSpace: color.SpaceRGB,
		RulerUnits: units.Pt,
		Artboards:  []Artboard{{Name: "Artboard 1", Rect: r}},
		Layers:     []*Layer{{Name: "Layer 1"}},
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := *d
	out.Artboards = append([]Artboard(nil), d.Artboards...)
	out.Selection = append([]string(nil), d.Selection...)
	out.Layers = make([]*Layer, len(d.Layers))
	for i, l := range d.Layers {
		nl := *l
		nl.Items = make([]*shape.Item, len(l.Items))
		for j, it := range l.Items {
			nl.Items[j] = it.Clone()
		}
		out.Layers[i] = &nl
	}
	return &out
}

// Resolver returns a bounds resolver that releases compound paths onto a
// scratch layer of d.
func (d *Document) Resolver() shape.Resolver {
	return shape.Resolver{Releaser: d}
}

// Items returns every item in the document, depth-first, layer by layer.
func (d *Document) Items() []*shape.Item {
	var out []*shape.Item
	for _, l := range d.Layers {
		for _, it := range l.Items {
			shape.Walk(it, func(n *shape.Item) bool {
				out = append(out, n)
				return true
			})
		}
	}
	return out
}

// Find returns the item with id, searching nested items too.
func (d *Document) Find(id string) (*shape.Item, error) {
	for _, it := range d.Items() {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no item with id %q", id)
}

// Layer returns the layer called name.
func (d *Document) Layer(name string) (*Layer, error) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no layer named %q", name)
}

// Selected returns the selected items in selection order. Repeated ids and
// items nested inside another selected item are dropped, so each subtree
// appears once. An empty selection is an ErrCodeEmptySelection error.
func (d *Document) Selected() ([]*shape.Item, error) {
	if len(d.Selection) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySelection, "nothing is selected")
	}
	want := make(map[string]bool, len(d.Selection))
	for _, id := range d.Selection {
		want[id] = true
	}
	top := map[string]*shape.Item{}
	nested := map[string]bool{}
	var visit func(it *shape.Item, covered bool)
	visit = func(it *shape.Item, covered bool) {
		if want[it.ID] {
			if covered {
				nested[it.ID] = true
			} else if top[it.ID] == nil {
				top[it.ID] = it
			}
			covered = true
		}
		for _, c := range it.Children {
			visit(c, covered)
		}
	}
	for _, l := range d.Layers {
		for _, it := range l.Items {
			visit(it, false)
		}
	}

	out := make([]*shape.Item, 0, len(d.Selection))
	done := map[string]bool{}
	for _, id := range d.Selection {
		if done[id] {
			continue
		}
		done[id] = true
		it, ok := top[id]
		switch {
		case ok:
			out = append(out, it)
		case nested[id]:
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument,
				errors.New(errors.ErrCodeNotFound, "no item with id %q", id), "selection")
		}
	}
	return out, nil
}

// Select replaces the selection.
func (d *Document) Select(ids ...string) {
	d.Selection = append([]string(nil), ids...)
}

// AddItem appends it to the named layer, or to the first layer when layer
// is empty. The layer is created when missing.
func (d *Document) AddItem(layer string, it *shape.Item) error {
	if it.ID == "" {
		it.ID = shape.NewID()
	}
	if _, err := d.Find(it.ID); err == nil {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate item id %q", it.ID)
	}
	if layer == "" {
		if len(d.Layers) == 0 {
			d.Layers = append(d.Layers, &Layer{Name: "Layer 1"})
		}
		l := d.Layers[0]
		if l.Locked {
			return errors.New(errors.ErrCodeInvalidInput, "layer %q is locked", l.Name)
		}
		l.Items = append(l.Items, it)
		return nil
	}
	l, err := d.Layer(layer)
	if err != nil {
		l = &Layer{Name: layer}
		d.Layers = append(d.Layers, l)
	}
	if l.Locked {
		return errors.New(errors.ErrCodeInvalidInput, "layer %q is locked", l.Name)
	}
	l.Items = append(l.Items, it)
	return nil
}

// Artboard returns artboard i.
func (d *Document) Artboard(i int) (*Artboard, error) {
	if i < 0 || i >= len(d.Artboards) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "artboard %d out of range (document has %d)", i, len(d.Artboards))
	}
	return &d.Artboards[i], nil
}

// Active returns the active artboard.
func (d *Document) Active() (*Artboard, error) { return d.Artboard(d.ActiveArtboard) }

// Release places flattened copies of the paths nested in compound on a new
// scratch layer and returns them. The cleanup func removes the layer again.
func (d *Document) Release(compound *shape.Item) ([]*shape.Item, func(), error) {
	if compound.Kind != shape.KindCompoundPath {
		return nil, nil, errors.New(errors.ErrCodeMalformedShape, "cannot release %s", compound.Kind)
	}
	name := scratchPrefix + shape.NewID()
	layer := &Layer{Name: name, Hidden: true}
	for _, c := range compound.Children {
		for _, p := range shape.Paths(c) {
			cp := p.Clone()
			cp.ID = shape.NewID()
			layer.Items = append(layer.Items, cp)
		}
	}
	d.Layers = append(d.Layers, layer)
	cleanup := func() { d.removeLayer(name) }
	return layer.Items, cleanup, nil
}

func (d *Document) removeLayer(name string) {
	for i, l := range d.Layers {
		if l.Name == name {
			d.Layers = append(d.Layers[:i], d.Layers[i+1:]...)
			return
		}
	}
}

// Hash returns a content hash of d, stable across encode/decode cycles.
func (d *Document) Hash() (string, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// Validate checks the structural invariants of d.
func (d *Document) Validate() error {
	seen := map[string]bool{}
	for _, it := range d.Items() {
		if it.ID == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "item without id")
		}
		if seen[it.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		if (it.Kind == shape.KindPath) && len(it.Points) == 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "path %q has no points", it.ID)
		}
	}
	for _, id := range d.Selection {
		if !seen[id] {
			return errors.New(errors.ErrCodeInvalidDocument, "selection references unknown item %q", id)
		}
	}
	for i, a := range d.Artboards {
		if !a.Rect.Valid() {
			return errors.New(errors.ErrCodeInvalidDocument, "artboard %d has invalid rect %v", i, a.Rect)
		}
	}
	if len(d.Artboards) > 0 && (d.ActiveArtboard < 0 || d.ActiveArtboard >= len(d.Artboards)) {
		return errors.New(errors.ErrCodeInvalidDocument, "active artboard %d out of range", d.ActiveArtboard)
	}
	return nil
}

// String summarizes d for logs.
func (d *Document) String() string {
	return fmt.Sprintf("%s (%d layers, %d items, %d selected)", d.Name, len(d.Layers), len(d.Items()), len(d.Selection))
}
