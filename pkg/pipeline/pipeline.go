// Package pipeline renders documents into output artifacts with caching.
//
// The CLI's render, tree and export commands all go through a [Runner], so
// an unchanged document rendered with unchanged options is served from the
// artifact cache instead of being drawn again.
//
// # Formats
//
//   - svg: vector preview ([render.SVG])
//   - png: raster preview ([render.PNG])
//   - dot: item hierarchy as Graphviz source ([tree.ToDOT])
//   - tree: item hierarchy laid out as SVG ([tree.RenderSVG])
//   - dxf: CAD export ([dxf.Export])
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Render(ctx, doc, pipeline.Options{Formats: []string{"svg", "dxf"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// [render.SVG]: github.com/matzehuels/artkit/pkg/render.SVG
// [render.PNG]: github.com/matzehuels/artkit/pkg/render.PNG
// [tree.ToDOT]: github.com/matzehuels/artkit/pkg/render/tree.ToDOT
// [tree.RenderSVG]: github.com/matzehuels/artkit/pkg/render/tree.RenderSVG
// [dxf.Export]: github.com/matzehuels/artkit/pkg/export/dxf.Export
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artkit/pkg/cache"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/shape"
)

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600

	// DefaultScale is the default resolution multiplier for PNG output.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatTree = "tree"
	FormatDXF  = "dxf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatTree: true,
	FormatDXF:  true,
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatTree {
		return "tree.svg"
	}
	return format
}

// Options configures a render run.
type Options struct {
	Formats []string `json:"formats,omitempty"`

	// Preview options
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Artboards  bool    `json:"artboards,omitempty"`
	ShowBounds bool    `json:"show_bounds,omitempty"`
	Bounds     string  `json:"bounds,omitempty"`
	Background string  `json:"background,omitempty"`

	// Diagram options
	Detailed bool `json:"detailed,omitempty"`

	// Export options
	Segments      int  `json:"segments,omitempty"`
	SelectionOnly bool `json:"selection_only,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a render run.
type Result struct {
	// DocHash is the content hash of the rendered document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo tracks which formats were served from the cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// AllHit reports whether every format came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		names := make([]string, 0, len(ValidFormats))
		for f := range ValidFormats {
			names = append(names, f)
		}
		slices.Sort(names)
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(names, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Bounds == "" {
		o.Bounds = shape.Visible.String()
	}
	if _, err := shape.ParseBoundsKind(o.Bounds); err != nil {
		return err
	}
	if o.Segments < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "segments must be positive, got %d", o.Segments)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// BoundsKind returns the parsed bounds overlay kind.
func (o *Options) BoundsKind() shape.BoundsKind {
	k, _ := shape.ParseBoundsKind(o.Bounds)
	return k
}

// IsDiagram reports whether format renders the item hierarchy.
func IsDiagram(format string) bool { return format == FormatDOT || format == FormatTree }

// ArtifactKeyOpts returns cache key options for a preview or export format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG:
		k.Width, k.Height = o.Width, o.Height
		k.ShowBounds = o.ShowBounds
		if o.ShowBounds {
			k.Bounds = o.Bounds
		}
		if format == FormatPNG {
			k.Scale = o.Scale
		}
		k.Artboards, k.Background = o.Artboards, o.Background
	case FormatDXF:
		k.Segments, k.Selection = o.Segments, o.SelectionOnly
	}
	return k
}

// DiagramKeyOpts returns cache key options for a hierarchy format.
func (o *Options) DiagramKeyOpts(format string) cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{Format: format, Detailed: o.Detailed}
}
