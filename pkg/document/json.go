package document

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

var pointTypeFromString = map[string]shape.PointType{
	"":       shape.Corner,
	"corner": shape.Corner,
	"smooth": shape.Smooth,
}

type wireDocument struct {
	Name           string         `json:"name"`
	ColorSpace     color.Space    `json:"color_space"`
	RulerUnits     units.Unit     `json:"ruler_units"`
	Artboards      []wireArtboard `json:"artboards,omitempty"`
	ActiveArtboard int            `json:"active_artboard,omitempty"`
	Layers         []wireLayer    `json:"layers"`
	Selection      []string       `json:"selection,omitempty"`
}

type wireArtboard struct {
	Name string     `json:"name,omitempty"`
	Rect [4]float64 `json:"rect"`
}

type wireLayer struct {
	Name   string     `json:"name"`
	Locked bool       `json:"locked,omitempty"`
	Hidden bool       `json:"hidden,omitempty"`
	Items  []wireItem `json:"items"`
}

type wireItem struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Kind        string      `json:"kind"`
	Points      []wirePoint `json:"points,omitempty"`
	Closed      bool        `json:"closed,omitempty"`
	Clipping    bool        `json:"clipping,omitempty"`
	Clipped     bool        `json:"clipped,omitempty"`
	Fill        color.Color `json:"fill"`
	Stroke      color.Color `json:"stroke"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
	Box         *[4]float64 `json:"box,omitempty"`
	Hidden      bool        `json:"hidden,omitempty"`
	Children    []wireItem  `json:"children,omitempty"`
}

type wirePoint struct {
	Anchor [2]float64  `json:"anchor"`
	Left   *[2]float64 `json:"left,omitempty"`
	Right  *[2]float64 `json:"right,omitempty"`
	Type   string      `json:"type,omitempty"`
}

// ReadJSON decodes a document from r and validates it.
//
// Decoding errors, unknown item kinds or point types, and broken invariants
// (duplicate IDs, dangling selection entries, inverted artboards) are
// ErrCodeInvalidDocument errors. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var data wireDocument
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode")
	}

	d := &Document{
		Name:           data.Name,
		ColorSpace:     data.ColorSpace,
		RulerUnits:     data.RulerUnits,
		ActiveArtboard: data.ActiveArtboard,
		Selection:      data.Selection,
	}
	for _, a := range data.Artboards {
		d.Artboards = append(d.Artboards, Artboard{Name: a.Name, Rect: geom.FromArray(a.Rect)})
	}
	for _, wl := range data.Layers {
		l := &Layer{Name: wl.Name, Locked: wl.Locked, Hidden: wl.Hidden}
		for i, wi := range wl.Items {
			it, err := decodeItem(wi)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "layer %q item %d", wl.Name, i)
			}
			l.Items = append(l.Items, it)
		}
		d.Layers = append(d.Layers, l)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeItem(w wireItem) (*shape.Item, error) {
	kind, err := shape.ParseKind(w.Kind)
	if err != nil {
		return nil, err
	}
	it := &shape.Item{
		ID:          w.ID,
		Name:        w.Name,
		Kind:        kind,
		Closed:      w.Closed,
		Clipping:    w.Clipping,
		Clipped:     w.Clipped,
		Fill:        w.Fill,
		Filled:      w.Fill.Kind != color.KindNone,
		Stroke:      w.Stroke,
		Stroked:     w.Stroke.Kind != color.KindNone,
		StrokeWidth: w.StrokeWidth,
		Hidden:      w.Hidden,
	}
	if it.ID == "" {
		it.ID = shape.NewID()
	}
	if it.Stroked && it.StrokeWidth == 0 {
		it.StrokeWidth = 1
	}
	if w.Box != nil {
		it.Box = geom.FromArray(*w.Box)
	}
	for _, wp := range w.Points {
		pt, err := decodePoint(wp)
		if err != nil {
			return nil, err
		}
		it.Points = append(it.Points, pt)
	}
	for i, wc := range w.Children {
		c, err := decodeItem(wc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "child %d", i)
		}
		it.Children = append(it.Children, c)
	}
	return it, nil
}

func decodePoint(w wirePoint) (shape.PathPoint, error) {
	t, ok := pointTypeFromString[w.Type]
	if !ok {
		return shape.PathPoint{}, errors.New(errors.ErrCodeInvalidDocument, "unknown point type %q", w.Type)
	}
	a := geom.Point{X: w.Anchor[0], Y: w.Anchor[1]}
	p := shape.PathPoint{Anchor: a, LeftDir: a, RightDir: a, Type: t}
	if w.Left != nil {
		p.LeftDir = geom.Point{X: w.Left[0], Y: w.Left[1]}
	}
	if w.Right != nil {
		p.RightDir = geom.Point{X: w.Right[0], Y: w.Right[1]}
	}
	return p, nil
}

// ImportJSON reads the document stored at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	d, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read %s", path)
	}
	return d, nil
}

// WriteJSON encodes d as indented JSON. Scratch layers left behind by an
// unfinished release are not written.
func WriteJSON(d *Document, w io.Writer) error {
	out := wireDocument{
		Name:           d.Name,
		ColorSpace:     d.ColorSpace,
		RulerUnits:     d.RulerUnits,
		ActiveArtboard: d.ActiveArtboard,
		Selection:      d.Selection,
		Layers:         []wireLayer{},
	}
	for _, a := range d.Artboards {
		out.Artboards = append(out.Artboards, wireArtboard{Name: a.Name, Rect: a.Rect.Array()})
	}
	for _, l := range d.Layers {
		if isScratch(l.Name) {
			continue
		}
		wl := wireLayer{Name: l.Name, Locked: l.Locked, Hidden: l.Hidden, Items: []wireItem{}}
		for _, it := range l.Items {
			wl.Items = append(wl.Items, encodeItem(it))
		}
		out.Layers = append(out.Layers, wl)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

func encodeItem(it *shape.Item) wireItem {
	w := wireItem{
		ID:       it.ID,
		Name:     it.Name,
		Kind:     it.Kind.String(),
		Closed:   it.Closed,
		Clipping: it.Clipping,
		Clipped:  it.Clipped,
		Hidden:   it.Hidden,
	}
	if it.Filled {
		w.Fill = it.Fill
	}
	if it.Stroked {
		w.Stroke = it.Stroke
		w.StrokeWidth = it.StrokeWidth
	}
	if it.Kind == shape.KindText || it.Kind == shape.KindRaster {
		box := it.Box.Array()
		w.Box = &box
	}
	for _, p := range it.Points {
		wp := wirePoint{Anchor: [2]float64{p.Anchor.X, p.Anchor.Y}}
		if p.LeftDir != p.Anchor {
			wp.Left = &[2]float64{p.LeftDir.X, p.LeftDir.Y}
		}
		if p.RightDir != p.Anchor {
			wp.Right = &[2]float64{p.RightDir.X, p.RightDir.Y}
		}
		if p.Type == shape.Smooth {
			wp.Type = p.Type.String()
		}
		w.Points = append(w.Points, wp)
	}
	for _, c := range it.Children {
		w.Children = append(w.Children, encodeItem(c))
	}
	return w
}

// ExportJSON writes d to path, replacing any existing file atomically.
func ExportJSON(d *Document, path string) error {
	f, err := os.CreateTemp(dirOf(path), ".artkit-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	tmp := f.Name()
	if err := WriteJSON(d, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "rename to %s", path)
	}
	return nil
}
