package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
)

// outputFlags controls where a mutating command writes its result.
type outputFlags struct {
	output      string
	inPlace     bool
	dryRun      bool
	interactive bool
}

func (f *outputFlags) register(cmd *cobra.Command, interactive bool) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output document (default <name>.out.json)")
	cmd.Flags().BoolVar(&f.inPlace, "in-place", false, "overwrite the input document")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the summary without writing")
	if interactive {
		cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "tune the operation in a live preview")
		cmd.MarkFlagsMutuallyExclusive("interactive", "dry-run")
	}
	cmd.MarkFlagsMutuallyExclusive("output", "in-place")
}

// outputPath returns the file a mutating command writes to.
func outputPath(input string, f outputFlags) (string, error) {
	switch {
	case f.output != "" && f.inPlace:
		return "", errors.New(errors.ErrCodeInvalidInput, "--output and --in-place are mutually exclusive")
	case f.inPlace:
		return input, nil
	case f.output != "":
		return f.output, nil
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".out.json", nil
}

// loadDocument reads a document and logs its size.
func (c *CLI) loadDocument(path string) (*document.Document, error) {
	doc, err := document.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded document",
		"path", path,
		"layers", len(doc.Layers),
		"items", len(doc.Items()),
		"selected", len(doc.Selection))
	return doc, nil
}
