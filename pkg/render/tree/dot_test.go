package tree

import (
	"strings"
	"testing"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
)

func sampleDoc(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New("poster", geom.Rect{Left: 0, Top: 100, Right: 100, Bottom: 0})

	mask := shape.NewRectPath(geom.Rect{Left: 0, Top: 10, Right: 10, Bottom: 0})
	mask.ID, mask.Clipping = "mask", true
	art := shape.NewRectPath(geom.Rect{Left: 0, Top: 50, Right: 50, Bottom: 0})
	art.ID, art.Filled, art.Fill = "art", true, color.NewRGB(255, 0, 0)
	grp := shape.NewGroup(mask, art)
	grp.ID, grp.Name, grp.Clipped = "g", "Logo", true

	if err := doc.AddItem("", grp); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleDoc(t), Options{})

	for _, want := range []string{
		"digraph G",
		`"doc:poster"`,
		`"layer:0"`,
		`"layer:0" -> "g"`,
		`"g" -> "mask"`,
		`"g" -> "art"`,
		`label="Logo"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sampleDoc(t), Options{Detailed: true})

	for _, want := range []string{"kind: group", "children: 2", "points: 4 (closed)", "clipped"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q", want)
		}
	}
}

func TestToDOT_ClippingAndSelection(t *testing.T) {
	doc := sampleDoc(t)
	doc.Select("art")
	dot := ToDOT(doc, Options{})

	var maskLine, artLine string
	for _, line := range strings.Split(dot, "\n") {
		switch {
		case strings.HasPrefix(line, `  "mask" [`):
			maskLine = line
		case strings.HasPrefix(line, `  "art" [`):
			artLine = line
		}
	}
	if !strings.Contains(maskLine, "dashed") {
		t.Errorf("clipping path should be dashed: %s", maskLine)
	}
	if !strings.Contains(artLine, "bold") {
		t.Errorf("selected item should be bold: %s", artLine)
	}
}

func TestToDOT_SkipsScratchLayers(t *testing.T) {
	doc := sampleDoc(t)
	doc.Layers = append(doc.Layers, &document.Layer{Name: "__artkit_release_x", Hidden: true})
	if strings.Contains(ToDOT(doc, Options{}), "__artkit_release_x") {
		t.Error("ToDOT() should not show release scratch layers")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="5pt" viewBox="0.00 0.00 80.00 40.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 80.00 40.00" width="80" height="40"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave SVG without viewBox untouched")
	}
}
