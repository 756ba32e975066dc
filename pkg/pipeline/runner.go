package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artkit/pkg/cache"
	"github.com/matzehuels/artkit/pkg/document"
	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/observability"
)

// Runner renders documents with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render produces every requested format, serving unchanged artifacts from
// the cache.
func (r *Runner) Render(ctx context.Context, doc *document.Document, opts Options) (result *Result, err error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeNoDocument, "no document to render")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Operation()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	hash, err := doc.Hash()
	if err != nil {
		return nil, err
	}
	result = &Result{DocHash: hash, Artifacts: make(map[string][]byte, len(opts.Formats))}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, hit, err := r.renderCached(ctx, doc, hash, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		result.Artifacts[format] = data
		result.Stats.Bytes += len(data)
		if hit {
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
		} else {
			result.CacheInfo.Misses = append(result.CacheInfo.Misses, format)
		}
	}
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"bytes", result.Stats.Bytes,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderCached(ctx context.Context, doc *document.Document, hash, format string, opts Options) ([]byte, bool, error) {
	keyType, key := "artifact", r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	if IsDiagram(format) {
		keyType, key = "diagram", r.Keyer.DiagramKey(hash, opts.DiagramKeyOpts(format))
	}
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, keyType)
			r.Logger.Debug("cache hit", "format", format)
			return data, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		hooks.OnCacheMiss(ctx, keyType)
	}

	data, err := RenderFormat(ctx, doc, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
	} else {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
