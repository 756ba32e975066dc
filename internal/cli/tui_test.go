package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/artkit/pkg/color"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/ops"
	"github.com/matzehuels/artkit/pkg/shape"
)

func smoothDoc(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New("sketch", geom.Rect{Left: 0, Top: 100, Right: 100, Bottom: 0})
	p := shape.NewPath([]geom.Point{{X: 10, Y: 10}, {X: 50, Y: 90}, {X: 90, Y: 10}}, false)
	p.ID = "p"
	p.Stroked, p.Stroke, p.StrokeWidth = true, color.NewGray(0), 1
	if err := doc.AddItem("", p); err != nil {
		t.Fatal(err)
	}
	doc.Select("p")
	return doc
}

func tensionTuner() tuner {
	return tuner{
		label: "tension",
		value: 0.5,
		step:  0.05,
		max:   1,
		build: func(v float64) (ops.Operation, error) { return ops.SmoothPoints{Tension: v}, nil },
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m previewModel, msgs ...tea.Msg) (previewModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(previewModel)
	}
	return m, cmd
}

func TestPreviewModelNudge(t *testing.T) {
	m := newPreviewModel(context.Background(), ops.NewRunner(nil), smoothDoc(t), tensionTuner())
	if m.preview == nil || m.err != nil {
		t.Fatalf("initial preview = %v, err %v", m.preview, m.err)
	}
	first := m.preview

	m, _ = update(t, m, key("up"), key("+"))
	if got := m.tune.value; got < 0.6-1e-9 || got > 0.6+1e-9 {
		t.Errorf("value = %v, want 0.6", got)
	}
	if !first.Discarded() {
		t.Error("previous preview should be discarded on change")
	}

	m, _ = update(t, m, key("pgup"))
	if got := m.tune.value; got < 1-1e-9 || got > 1+1e-9 {
		t.Errorf("value = %v, want clamped to 1", m.tune.value)
	}
}

func TestPreviewModelCommit(t *testing.T) {
	doc := smoothDoc(t)
	m := newPreviewModel(context.Background(), ops.NewRunner(nil), doc, tensionTuner())

	m, cmd := update(t, m, key("enter"))
	if !m.committed {
		t.Fatal("enter should commit")
	}
	if cmd == nil {
		t.Fatal("enter should quit")
	}
	out, err := m.preview.Commit()
	if err != nil {
		t.Fatal(err)
	}
	p, err := out.Find("p")
	if err != nil {
		t.Fatal(err)
	}
	if p.Points[1].Type != shape.Smooth {
		t.Errorf("middle anchor type = %v, want smooth", p.Points[1].Type)
	}
	if orig, _ := doc.Find("p"); orig.Points[1].Type != shape.Corner {
		t.Error("committing a preview must not modify the input document")
	}
}

func TestPreviewModelDiscard(t *testing.T) {
	m := newPreviewModel(context.Background(), ops.NewRunner(nil), smoothDoc(t), tensionTuner())

	m, cmd := update(t, m, key("esc"))
	if m.committed {
		t.Error("esc should not commit")
	}
	if cmd == nil || !m.preview.Discarded() {
		t.Error("esc should discard and quit")
	}
}

func TestPreviewModelError(t *testing.T) {
	doc := smoothDoc(t)
	doc.Select()
	m := newPreviewModel(context.Background(), ops.NewRunner(nil), doc, tensionTuner())
	if m.err == nil {
		t.Fatal("expected error for empty selection")
	}

	m, cmd := update(t, m, key("enter"))
	if m.committed || cmd != nil {
		t.Error("enter must not commit a failed preview")
	}
	if !strings.Contains(m.View(), "nothing is selected") {
		t.Errorf("view should show the error:\n%s", m.View())
	}
}

func TestPreviewModelView(t *testing.T) {
	m := newPreviewModel(context.Background(), ops.NewRunner(nil), smoothDoc(t), tensionTuner())
	view := m.View()
	for _, want := range []string{"smooth", "tension", "0.5", "1 changed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
