package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/export/dxf"
	"github.com/matzehuels/artkit/pkg/render"
	"github.com/matzehuels/artkit/pkg/render/tree"
)

// Render generates output artifacts in the requested formats without
// consulting any cache.
func Render(ctx context.Context, doc *document.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := RenderFormat(ctx, doc, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders doc in a single format.
func RenderFormat(ctx context.Context, doc *document.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.SVG(doc, previewOptions(opts)...)
	case FormatPNG:
		return render.PNG(doc, previewOptions(opts)...)
	case FormatDOT:
		return []byte(tree.ToDOT(doc, tree.Options{Detailed: opts.Detailed})), nil
	case FormatTree:
		return tree.RenderSVG(ctx, tree.ToDOT(doc, tree.Options{Detailed: opts.Detailed}))
	case FormatDXF:
		return exportDXF(doc, opts)
	default:
		return nil, ValidateFormat(format)
	}
}

func previewOptions(opts Options) []render.Option {
	out := []render.Option{
		render.WithSize(opts.Width, opts.Height),
	}
	if opts.Scale > 0 {
		out = append(out, render.WithScale(opts.Scale))
	}
	if opts.Artboards {
		out = append(out, render.WithArtboards())
	}
	if opts.ShowBounds {
		out = append(out, render.WithBounds(opts.BoundsKind()))
	}
	if opts.Background != "" {
		out = append(out, render.WithBackground(opts.Background))
	}
	return out
}

// exportDXF round-trips through a temporary file since the DXF writer only
// saves to paths.
func exportDXF(doc *document.Document, opts Options) ([]byte, error) {
	dir, err := os.MkdirTemp("", "artkit-dxf-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "export.dxf")
	if _, err := dxf.Export(doc, path, dxf.Options{Segments: opts.Segments, SelectionOnly: opts.SelectionOnly}); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read dxf")
	}
	return data, nil
}
