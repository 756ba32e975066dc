package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/ops"
)

var (
	paramStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	helpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	errStyle   = lipgloss.NewStyle().Foreground(colorRed)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// tuner is the single parameter an interactive preview adjusts.
type tuner struct {
	label    string
	value    float64
	step     float64
	min, max float64
	format   func(float64) string
	build    func(float64) (ops.Operation, error)
}

func (t tuner) text() string {
	if t.format != nil {
		return t.format(t.value)
	}
	return fmt.Sprintf("%g", t.value)
}

// previewModel re-previews the operation on every parameter change. Enter
// commits the current preview, Esc discards it.
type previewModel struct {
	ctx    context.Context
	runner *ops.Runner
	doc    *document.Document
	tune   tuner

	preview   *ops.Preview
	err       error
	committed bool
}

func newPreviewModel(ctx context.Context, runner *ops.Runner, doc *document.Document, t tuner) previewModel {
	m := previewModel{ctx: ctx, runner: runner, doc: doc, tune: t}
	m.refresh()
	return m
}

func (m *previewModel) refresh() {
	if m.preview != nil {
		m.preview.Discard()
	}
	m.preview = nil
	op, err := m.tune.build(m.tune.value)
	if err != nil {
		m.err = err
		return
	}
	m.preview, m.err = m.runner.Preview(m.ctx, m.doc, op)
}

func (m *previewModel) nudge(steps float64) {
	v := m.tune.value + steps*m.tune.step
	v = math.Max(m.tune.min, math.Min(v, m.tune.max))
	// Keep decimal steps from accumulating float noise.
	v = math.Round(v/m.tune.step) * m.tune.step
	if v == m.tune.value {
		return
	}
	m.tune.value = v
	m.refresh()
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "right", "k", "l", "+":
		m.nudge(1)
	case "down", "left", "j", "h", "-":
		m.nudge(-1)
	case "pgup", "shift+up":
		m.nudge(10)
	case "pgdown", "shift+down":
		m.nudge(-10)
	case "enter":
		if m.preview != nil && m.err == nil {
			m.committed = true
			return m, tea.Quit
		}
	case "esc", "q", "ctrl+c":
		if m.preview != nil {
			m.preview.Discard()
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	name := "preview"
	if op, err := m.tune.build(m.tune.value); err == nil {
		name = op.Name()
	}
	b.WriteString(StyleTitle.Render("Preview " + name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render(m.tune.label), paramStyle.Render(m.tune.text())))

	var body string
	switch {
	case m.err != nil:
		body = errStyle.Render(iconError + " " + errors.UserMessage(m.err))
	case m.preview != nil:
		sum := m.preview.Summary
		lines := []string{StyleValue.Render(sum.Message)}
		if n := len(sum.Changed); n > 0 {
			lines = append(lines, StyleDim.Render(fmt.Sprintf("%d changed", n)))
		}
		if n := len(sum.Added); n > 0 {
			lines = append(lines, StyleDim.Render(fmt.Sprintf("%d added", n)))
		}
		body = strings.Join(lines, "\n")
	}
	b.WriteString(boxStyle.Render(body))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("←/→ adjust  pgup/pgdn ×10  ⏎ apply  esc discard"))
	b.WriteString("\n")
	return b.String()
}

// tuned is the outcome of an interactive preview. Doc is nil when the user
// discarded the change.
type tuned struct {
	Doc     *document.Document
	Summary ops.Summary
	Value   float64
}

// runInteractive opens the preview and returns the committed result.
func runInteractive(ctx context.Context, runner *ops.Runner, doc *document.Document, t tuner, opts ...tea.ProgramOption) (tuned, error) {
	m := newPreviewModel(ctx, runner, doc, t)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return tuned{}, err
	}
	fm := final.(previewModel)
	if !fm.committed {
		return tuned{Value: fm.tune.value}, nil
	}
	out, err := fm.preview.Commit()
	if err != nil {
		return tuned{}, err
	}
	return tuned{Doc: out, Summary: fm.preview.Summary, Value: fm.tune.value}, nil
}
