package dxf

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/shape"
)

func inchSquare(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New("part", geom.Rect{Left: 0, Top: 72, Right: 72, Bottom: 0})
	sq := shape.NewRectPath(geom.Rect{Left: 0, Top: 72, Right: 72, Bottom: 0})
	sq.ID = "sq"
	if err := doc.AddItem("", sq); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestLinesMillimeters(t *testing.T) {
	lines, err := Lines(inchSquare(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 {
		t.Fatalf("len(Lines) = %d, want 4", len(lines))
	}
	first := lines[0]
	if first.Layer != "Layer 1" {
		t.Errorf("Layer = %q, want %q", first.Layer, "Layer 1")
	}
	if math.Abs(first.From.Y-25.4) > 1e-9 || math.Abs(first.To.X-25.4) > 1e-9 {
		t.Errorf("first line = %v -> %v, want (0,25.4) -> (25.4,25.4)", first.From, first.To)
	}
}

func TestLinesFlattensCurves(t *testing.T) {
	doc := document.New("c", geom.Rect{Left: 0, Top: 10, Right: 10, Bottom: 0})
	if err := doc.AddItem("", shape.NewEllipse(geom.Rect{Left: 0, Top: 10, Right: 10, Bottom: 0})); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		segments int
		want     int
	}{
		{0, 4 * DefaultSegments},
		{1, 4},
		{5, 20},
	}
	for _, tt := range tests {
		lines, err := Lines(doc, Options{Segments: tt.segments})
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != tt.want {
			t.Errorf("Segments=%d: got %d lines, want %d", tt.segments, len(lines), tt.want)
		}
	}

	if _, err := Lines(doc, Options{Segments: -1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative segments error = %v, want INVALID_INPUT", err)
	}
}

func TestLinesSkipsHidden(t *testing.T) {
	doc := inchSquare(t)
	hidden := shape.NewRectPath(geom.Rect{Left: 0, Top: 1, Right: 1, Bottom: 0})
	hidden.Hidden = true
	if err := doc.AddItem("", hidden); err != nil {
		t.Fatal(err)
	}
	off := shape.NewRectPath(geom.Rect{Left: 0, Top: 1, Right: 1, Bottom: 0})
	if err := doc.AddItem("Off", off); err != nil {
		t.Fatal(err)
	}
	l, _ := doc.Layer("Off")
	l.Hidden = true

	lines, err := Lines(doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 {
		t.Errorf("len(Lines) = %d, want 4", len(lines))
	}
}

func TestLinesSelectionOnly(t *testing.T) {
	doc := inchSquare(t)
	if _, err := Lines(doc, Options{SelectionOnly: true}); !errors.Is(err, errors.ErrCodeEmptySelection) {
		t.Errorf("error = %v, want EMPTY_SELECTION", err)
	}
	doc.Select("sq")
	lines, err := Lines(doc, Options{SelectionOnly: true})
	if err != nil || len(lines) != 4 {
		t.Errorf("Lines() = %d, %v; want 4 lines", len(lines), err)
	}
}

func TestLinesSelectionOnlyNested(t *testing.T) {
	doc := document.New("part", geom.Rect{Left: 0, Top: 72, Right: 72, Bottom: 0})
	a := shape.NewRectPath(geom.Rect{Left: 0, Top: 10, Right: 10, Bottom: 0})
	b := shape.NewRectPath(geom.Rect{Left: 20, Top: 30, Right: 30, Bottom: 20})
	a.ID, b.ID = "a", "b"
	g := shape.NewGroup(a, b)
	g.ID = "g"
	if err := doc.AddItem("", g); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		selection []string
		want      int
	}{
		{[]string{"a"}, 4},
		{[]string{"g"}, 8},
		{[]string{"g", "b"}, 8},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.selection, ","), func(t *testing.T) {
			doc.Select(tt.selection...)
			lines, err := Lines(doc, Options{SelectionOnly: true})
			if err != nil || len(lines) != tt.want {
				t.Errorf("Lines() = %d, %v; want %d lines", len(lines), err, tt.want)
			}
		})
	}

	doc.Select("a")
	path := filepath.Join(t.TempDir(), "a.dxf")
	if res, err := Export(doc, path, Options{SelectionOnly: true}); err != nil || res.Lines != 4 {
		t.Errorf("Export() = %+v, %v; want 4 lines", res, err)
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.dxf")
	res, err := Export(inchSquare(t), path, Options{})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if res.Lines != 4 || res.Release != Release || len(res.Layers) != 1 {
		t.Errorf("Export() = %+v", res)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "LINE") {
		t.Error("output has no LINE entities")
	}
	if !strings.Contains(s, "Layer 1") {
		t.Error("output is missing the document layer")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestExportEmpty(t *testing.T) {
	doc := document.New("empty", geom.Rect{Left: 0, Top: 1, Right: 1, Bottom: 0})
	_, err := Export(doc, filepath.Join(t.TempDir(), "x.dxf"), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
