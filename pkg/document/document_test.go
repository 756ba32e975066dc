package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

const sample = `{
  "name": "poster",
  "color_space": "cmyk",
  "ruler_units": "mm",
  "artboards": [{"name": "A", "rect": [0, 100, 200, 0]}],
  "layers": [{
    "name": "Layer 1",
    "items": [
      {"id": "r1", "kind": "path", "closed": true,
       "points": [{"anchor": [0, 10]}, {"anchor": [10, 10]}, {"anchor": [10, 0], "left": [12, 4], "type": "smooth"}],
       "fill": {"cmyk": [0, 100, 100, 0]}, "stroke": {"gray": 100}, "stroke_width": 2},
      {"id": "g1", "kind": "group", "clipped": true, "children": [
        {"id": "m1", "kind": "path", "clipping": true, "closed": true,
         "points": [{"anchor": [0, 0]}, {"anchor": [10, 0]}, {"anchor": [10, -10]}, {"anchor": [0, -10]}]},
        {"id": "t1", "kind": "text", "box": [100, 100, 200, -200]}
      ]}
    ]
  }],
  "selection": ["g1", "r1"]
}`

func mustRead(t *testing.T, s string) *Document {
	t.Helper()
	d, err := ReadJSON(strings.NewReader(s))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return d
}

func TestReadJSON(t *testing.T) {
	d := mustRead(t, sample)

	if d.ColorSpace != color.SpaceCMYK {
		t.Errorf("ColorSpace = %v, want cmyk", d.ColorSpace)
	}
	if d.RulerUnits != units.MM {
		t.Errorf("RulerUnits = %v, want mm", d.RulerUnits)
	}
	r1, err := d.Find("r1")
	if err != nil {
		t.Fatal(err)
	}
	if !r1.Filled || !r1.Stroked || r1.StrokeWidth != 2 {
		t.Errorf("r1 paint = filled %v stroked %v width %v", r1.Filled, r1.Stroked, r1.StrokeWidth)
	}
	p := r1.Points[2]
	if p.Type != shape.Smooth || p.LeftDir != (geom.Point{X: 12, Y: 4}) || p.RightDir != p.Anchor {
		t.Errorf("point = %+v", p)
	}
	if n := len(d.Items()); n != 4 {
		t.Errorf("Items = %d, want 4", n)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := mustRead(t, sample)
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatal(err)
	}
	again := mustRead(t, buf.String())

	h1, _ := d.Hash()
	h2, _ := again.Hash()
	if h1 != h2 {
		t.Error("Hash changed across a write/read cycle")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"layers": [`},
		{"unknown kind", `{"layers": [{"name": "L", "items": [{"id": "a", "kind": "symbol"}]}]}`},
		{"unknown point type", `{"layers": [{"name": "L", "items": [{"id": "a", "kind": "path", "points": [{"anchor": [0,0], "type": "cusp"}]}]}]}`},
		{"duplicate id", `{"layers": [{"name": "L", "items": [
			{"id": "a", "kind": "text", "box": [0,1,1,0]},
			{"id": "a", "kind": "text", "box": [0,1,1,0]}]}]}`},
		{"dangling selection", `{"layers": [], "selection": ["x"]}`},
		{"inverted artboard", `{"artboards": [{"rect": [10, 0, 0, 10]}], "layers": []}`},
		{"unknown unit", `{"ruler_units": "furlong", "layers": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("ReadJSON error = %v, want %s", err, errors.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestSelected(t *testing.T) {
	d := mustRead(t, sample)
	items, err := d.Selected()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "g1" || items[1].ID != "r1" {
		t.Errorf("Selected order = %v", []string{items[0].ID, items[1].ID})
	}

	d.Select("t1", "g1", "r1", "g1", "m1")
	items, err = d.Selected()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "g1" || items[1].ID != "r1" {
		ids := make([]string, len(items))
		for i, it := range items {
			ids[i] = it.ID
		}
		t.Errorf("Selected with nested and repeated ids = %v, want [g1 r1]", ids)
	}

	d.Select("r1", "nope")
	if _, err := d.Selected(); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Selected unknown id error = %v", err)
	}

	d.Select()
	if _, err := d.Selected(); !errors.Is(err, errors.ErrCodeEmptySelection) {
		t.Errorf("Selected error = %v, want %s", err, errors.ErrCodeEmptySelection)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := mustRead(t, sample)
	c := d.Clone()

	it, _ := c.Find("r1")
	it.Translate(50, 50)
	c.Artboards[0].Rect.Left = -1
	c.Selection[0] = "r1"
	c.Layers[0].Items = c.Layers[0].Items[:1]

	orig, _ := d.Find("r1")
	if orig.Points[0].Anchor != (geom.Point{X: 0, Y: 10}) {
		t.Error("Clone shares items")
	}
	if d.Artboards[0].Rect.Left != 0 {
		t.Error("Clone shares artboards")
	}
	if d.Selection[0] != "g1" {
		t.Error("Clone shares selection")
	}
	if len(d.Layers[0].Items) != 2 {
		t.Error("Clone shares layer item slices")
	}
}

func TestReleaseUsesScratchLayer(t *testing.T) {
	d := New("doc", geom.Rect{Right: 100, Top: 100})
	mask := shape.NewRectPath(geom.Rect{Left: 1, Top: 2, Right: 3, Bottom: 0})
	mask.Clipping = true
	compound := &shape.Item{ID: "c", Kind: shape.KindCompoundPath, Children: []*shape.Item{shape.NewGroup(mask)}}
	art := shape.NewRectPath(geom.Rect{Left: -50, Top: 50, Right: 50, Bottom: -50})
	g := shape.NewGroup(compound, art)
	g.Clipped = true
	if err := d.AddItem("", g); err != nil {
		t.Fatal(err)
	}

	paths, cleanup, err := d.Release(compound)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || !paths[0].Clipping || paths[0].ID == mask.ID {
		t.Errorf("released paths = %+v", paths)
	}
	if len(d.Layers) != 2 {
		t.Errorf("Layers during release = %d, want 2", len(d.Layers))
	}
	cleanup()
	if len(d.Layers) != 1 {
		t.Errorf("Layers after cleanup = %d, want 1", len(d.Layers))
	}

	b, err := d.Resolver().Bounds(g, shape.Visible)
	if err != nil {
		t.Fatal(err)
	}
	if want := (geom.Rect{Left: 1, Top: 2, Right: 3, Bottom: 0}); b != want {
		t.Errorf("Bounds = %v, want %v", b, want)
	}
	if len(d.Layers) != 1 {
		t.Errorf("scratch layer left behind: %d layers", len(d.Layers))
	}
}

func TestAddItem(t *testing.T) {
	d := New("doc", geom.Rect{Right: 10, Top: 10})
	it := shape.NewRectPath(geom.Rect{Right: 1, Top: 1})
	if err := d.AddItem("", it); err != nil {
		t.Fatal(err)
	}
	if err := d.AddItem("", it); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate AddItem error = %v", err)
	}
	if err := d.AddItem("Overlay", &shape.Item{Kind: shape.KindText, Box: geom.Rect{Right: 1, Top: 1}}); err != nil {
		t.Fatal(err)
	}
	if l, err := d.Layer("Overlay"); err != nil || len(l.Items) != 1 {
		t.Errorf("Layer(Overlay) = %v, %v", l, err)
	}

	d.Layers[0].Locked = true
	if err := d.AddItem("Layer 1", shape.NewRectPath(geom.Rect{Right: 1, Top: 1})); err == nil {
		t.Error("AddItem on a locked layer should fail")
	}
}

func TestExportImportJSON(t *testing.T) {
	d := mustRead(t, sample)
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(d, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "poster" || len(got.Items()) != 4 {
		t.Errorf("ImportJSON = %v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) error = %v", err)
	}
}

func TestArtboard(t *testing.T) {
	d := mustRead(t, sample)
	a, err := d.Active()
	if err != nil || a.Name != "A" {
		t.Errorf("Active = %v, %v", a, err)
	}
	if _, err := d.Artboard(3); err == nil {
		t.Error("Artboard(3) should fail")
	}
}
