package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/ops"
)

// mutation is one run of a document-changing command.
type mutation struct {
	input string
	flags outputFlags
	// build creates the operation from the parsed flags.
	build func() (ops.Operation, error)
	// tune, when set, enables --interactive.
	tune *tuner
	// flag and flagValue copy the tuned value back into a flag so it is
	// remembered.
	flag      string
	flagValue func(float64) string
}

// mutate loads the document, applies the operation (or opens the
// interactive preview) and writes the result.
func (c *CLI) mutate(cmd *cobra.Command, m mutation) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := c.loadDocument(m.input)
	if err != nil {
		return err
	}
	runner := c.newOpsRunner()

	var out *document.Document
	var sum ops.Summary
	if m.flags.interactive {
		if m.tune == nil {
			return errors.New(errors.ErrCodeUnsupported, "%s has no interactive preview", cmd.Name())
		}
		res, err := runInteractive(ctx, runner, doc, *m.tune,
			tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		if res.Doc == nil {
			printInfo(w, "Discarded")
			return nil
		}
		out, sum = res.Doc, res.Summary
		if m.flag != "" && m.flagValue != nil {
			_ = cmd.Flags().Set(m.flag, m.flagValue(res.Value))
		}
	} else {
		op, err := m.build()
		if err != nil {
			return err
		}
		p, err := runner.Preview(ctx, doc, op)
		if err != nil {
			return err
		}
		sum = p.Summary
		if m.flags.dryRun {
			p.Discard()
			printSummary(w, sum, true)
			return nil
		}
		if out, err = p.Commit(); err != nil {
			return err
		}
	}

	path, err := outputPath(m.input, m.flags)
	if err != nil {
		return err
	}
	if err := document.ExportJSON(out, path); err != nil {
		return err
	}
	logger.Debug("wrote document", "path", path, "changed", len(sum.Changed), "added", len(sum.Added))
	prog.done("Applied " + sum.Operation)
	printSummary(w, sum, false)
	printFile(w, path)
	c.savePrefs(cmd)
	return nil
}
