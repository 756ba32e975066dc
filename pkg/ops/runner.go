package ops

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/geom"
	"github.com/matzehuels/artkit/pkg/observability"
	"github.com/matzehuels/artkit/pkg/units"
)

// Operation mutates a document in place.
type Operation interface {
	Name() string
	Apply(ctx context.Context, doc *document.Document) (Summary, error)
}

// Measurement is the resolved bounds of one item.
type Measurement struct {
	ID     string
	Label  string
	Bounds geom.Rect
	Width  units.Value
	Height units.Value
}

// Summary describes what an operation did.
type Summary struct {
	Operation string
	Message   string
	Changed   []string
	Added     []string

	Measurements []Measurement
	Combined     *Measurement
}

// Runner applies operations with logging and observability hooks.
type Runner struct {
	Logger *log.Logger
	Hooks  observability.OperationHooks
}

// NewRunner creates a runner. A nil logger selects log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Hooks: observability.Operation()}
}

// Preview is the result of applying an operation to a copy of a document.
type Preview struct {
	Before  *document.Document
	After   *document.Document
	Summary Summary

	discarded bool
}

// Commit returns the modified document. A discarded preview cannot be
// committed.
func (p *Preview) Commit() (*document.Document, error) {
	if p.discarded {
		return nil, errors.New(errors.ErrCodeInvalidInput, "preview of %s was discarded", p.Summary.Operation)
	}
	return p.After, nil
}

// Discard drops the modified document. Before stays valid.
func (p *Preview) Discard() {
	p.discarded = true
	p.After = nil
}

// Discarded reports whether Discard was called.
func (p *Preview) Discarded() bool { return p.discarded }

// Preview applies op to a clone of doc. doc itself is never modified.
func (r *Runner) Preview(ctx context.Context, doc *document.Document, op Operation) (*Preview, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeNoDocument, "no document is open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := r.hooks()
	hooks.OnOperationStart(ctx, op.Name(), len(doc.Selection))
	start := time.Now()

	after := doc.Clone()
	sum, err := op.Apply(ctx, after)
	dur := time.Since(start)
	hooks.OnOperationComplete(ctx, op.Name(), dur, err)
	if err != nil {
		r.logger().Debug("operation failed", "op", op.Name(), "error", err)
		return nil, err
	}
	sum.Operation = op.Name()

	r.logger().Debug("previewed operation",
		"op", op.Name(),
		"changed", len(sum.Changed),
		"added", len(sum.Added),
		"duration", dur)

	return &Preview{Before: doc, After: after, Summary: sum}, nil
}

// Run previews op and commits it.
func (r *Runner) Run(ctx context.Context, doc *document.Document, op Operation) (*document.Document, Summary, error) {
	p, err := r.Preview(ctx, doc, op)
	if err != nil {
		return nil, Summary{}, err
	}
	out, err := p.Commit()
	if err != nil {
		return nil, Summary{}, err
	}
	r.logger().Info("applied "+op.Name(), "changed", len(p.Summary.Changed), "added", len(p.Summary.Added))
	return out, p.Summary, nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) hooks() observability.OperationHooks {
	if r.Hooks == nil {
		return observability.Operation()
	}
	return r.Hooks
}
