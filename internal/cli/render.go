package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/export/dxf"
	"github.com/matzehuels/artkit/pkg/pipeline"
)

// parseFormats splits a comma-separated --format flag. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the output path without extension. A known format
// extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range []string{pipeline.FormatTree, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatDOT, pipeline.FormatDXF} {
		if ext := "." + pipeline.Extension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// renderDocument runs the pipeline behind a spinner and writes one file per
// format. It returns the written paths in format order.
func (c *CLI) renderDocument(cmd *cobra.Command, input, output string, opts pipeline.Options) ([]string, error) {
	doc, err := c.loadDocument(input)
	if err != nil {
		return nil, err
	}
	return c.renderLoaded(cmd, doc, input, output, opts)
}

func (c *CLI) renderLoaded(cmd *cobra.Command, doc *document.Document, input, output string, opts pipeline.Options) ([]string, error) {
	runner, err := c.newRunner()
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	logger := loggerFromContext(cmd.Context())
	opts.Logger = logger
	prog := newProgress(logger)
	spin := newSpinnerWithContext(cmd.Context(), cmd.ErrOrStderr(), "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	spin.Start()
	result, err := runner.Render(cmd.Context(), doc, opts)
	spin.Stop()
	if err != nil {
		return nil, err
	}

	w := cmd.OutOrStdout()
	base := basePath(output, input)
	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		data := result.Artifacts[format]
		path := base + "." + pipeline.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		printCacheStatus(w, format, len(data), contains(result.CacheInfo.Hits, format))
		printFile(w, path)
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Rendered %d formats", len(paths)))
	return paths, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats    string
		output     string
		width      int
		height     int
		scale      float64
		artboards  bool
		bounds     bool
		kind       string
		background string
		refresh    bool
		open       bool
	)

	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Render a document preview",
		Long: `Render the document to SVG, PNG, DXF or an item tree diagram. Outputs are
cached by document content and options; --refresh redraws them.

Formats: svg (default), png, dxf, dot, tree`,
		Example: `  artkit render poster.json
  artkit render poster.json --format svg,png --scale 2 --bounds
  artkit render poster.json -o preview/poster --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			opts := pipeline.Options{
				Formats:    parseFormats(formats),
				Width:      width,
				Height:     height,
				Scale:      scale,
				Artboards:  artboards,
				ShowBounds: bounds,
				Bounds:     kind,
				Background: background,
				Refresh:    refresh,
			}
			if !cmd.Flags().Changed("width") {
				opts.Width = c.Config.Render.Width
			}
			if !cmd.Flags().Changed("height") {
				opts.Height = c.Config.Render.Height
			}
			if !cmd.Flags().Changed("scale") {
				opts.Scale = c.Config.Render.Scale
			}
			if opts.Bounds == "" {
				opts.Bounds = c.Config.Bounds
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			paths, err := c.renderDocument(cmd, args[0], output, opts)
			if err != nil {
				return err
			}
			c.savePrefs(cmd)
			if open {
				if err := browser.OpenFile(paths[0]); err != nil {
					printWarning(cmd.ErrOrStderr(), "could not open %s: %v", paths[0], err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s), comma-separated")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default input name)")
	cmd.Flags().IntVar(&width, "width", pipeline.DefaultWidth, "frame width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", pipeline.DefaultHeight, "frame height in pixels (default from config)")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier (default from config)")
	cmd.Flags().BoolVar(&artboards, "artboards", true, "draw artboard outlines")
	cmd.Flags().BoolVar(&bounds, "bounds", false, "outline the bounds of selected items")
	cmd.Flags().StringVar(&kind, "bounds-kind", "", "bounds kind for --bounds (default from config)")
	cmd.Flags().StringVar(&background, "background", "", "background color, e.g. #ffffff")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached outputs")
	cmd.Flags().BoolVar(&open, "open", false, "open the first output when done")
	remember(cmd, "format", "artboards", "bounds", "bounds-kind", "background")
	return cmd
}

func (c *CLI) treeCommand() *cobra.Command {
	var (
		detailed bool
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "tree <document.json>",
		Short: "Diagram the document's layer and item hierarchy",
		Long: `Draw the layers and items of a document as a left-to-right tree. Clipping
paths are dashed, selected items highlighted and hidden items grayed.

Formats: tree (SVG via Graphviz, default), dot`,
		Example: `  artkit tree poster.json --detailed
  artkit tree poster.json --format dot -o hierarchy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			if format != pipeline.FormatTree && format != pipeline.FormatDOT {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid tree format %q (valid: dot, tree)", format)
			}
			opts := pipeline.Options{Formats: []string{format}, Detailed: detailed}
			if _, err := c.renderDocument(cmd, args[0], output, opts); err != nil {
				return err
			}
			c.savePrefs(cmd)
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with kind, points and paint")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatTree, "diagram format: tree or dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default input name)")
	remember(cmd, "detailed", "format")
	return cmd
}

func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export documents to other applications",
	}
	cmd.AddCommand(c.exportDXFCommand())
	return cmd
}

func (c *CLI) exportDXFCommand() *cobra.Command {
	var (
		segments  int
		selection bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "dxf <document.json>",
		Short: "Export paths as DXF line work in millimeters",
		Long: `Write every visible path as DXF line entities, one DXF layer per document
layer. Curves are flattened into --segments lines each.`,
		Example: `  artkit export dxf poster.json
  artkit export dxf poster.json --selection --segments 32 -o cut.dxf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPrefs(cmd)
			opts := pipeline.Options{
				Formats:       []string{pipeline.FormatDXF},
				Segments:      segments,
				SelectionOnly: selection,
			}
			if _, err := c.renderDocument(cmd, args[0], output, opts); err != nil {
				return err
			}
			c.savePrefs(cmd)
			return nil
		},
	}

	cmd.Flags().IntVar(&segments, "segments", dxf.DefaultSegments, "lines per flattened curve segment")
	cmd.Flags().BoolVar(&selection, "selection", false, "export only the selection")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default input name with .dxf)")
	remember(cmd, "segments")
	return cmd
}
