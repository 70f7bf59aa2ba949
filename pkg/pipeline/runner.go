package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/combview/pkg/cache"
	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/layout/store"
	"github.com/matzehuels/combview/pkg/observability"
	"github.com/matzehuels/combview/pkg/raster"
	"github.com/matzehuels/combview/pkg/render/frame"
	"github.com/matzehuels/combview/pkg/render/sink"
)

// Result contains the outputs of one render.
type Result struct {
	// RenderID identifies this run in logs and HTTP headers.
	RenderID string

	// Layout is the layout name and LayoutHash its content hash.
	Layout     string
	LayoutHash string

	// Format and Data are the encoded image.
	Format sink.Format
	Data   []byte

	// Canvas is the raw pixel grid. It is nil when the image came from
	// the cache.
	Canvas *raster.Canvas

	// Transform maps physical points onto the image.
	Transform geometry.Transform

	// Stats describes what was drawn.
	Stats frame.Stats

	// Timing holds per-stage durations.
	Timing Timing

	// CacheHit reports whether the image came from the cache.
	CacheHit bool
}

// Timing contains pipeline stage durations.
type Timing struct {
	Load   time.Duration
	Render time.Duration
	Encode time.Duration
}

// artifact is the cached form of a Result.
type artifact struct {
	Format    sink.Format        `json:"format"`
	Data      []byte             `json:"data"`
	Transform geometry.Transform `json:"transform"`
	Stats     frame.Stats        `json:"stats"`
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its store, cache, and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner.
// If s is nil, the embedded default layout store is used.
// If c is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(s store.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if s == nil {
		s = store.NewEmbeddedStore()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:  s,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load fetches a layout and hashes its content. An empty name loads
// [DefaultLayout].
//
// A missing or malformed layout is logged and returned as a typed error
// (LAYOUT_NOT_FOUND, LAYOUT_PARSE_ERROR); the document is nil.
func (r *Runner) Load(ctx context.Context, name string) (*layout.Document, string, error) {
	if name == "" {
		name = DefaultLayout
	}
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, name)

	doc, err := r.Store.Load(ctx, name)
	observability.Pipeline().OnLoadComplete(ctx, name, time.Since(start), err)
	if err != nil {
		if errors.IsLayoutUnavailable(err) {
			r.Logger.Error("layout unavailable", "layout", name, "code", errors.GetCode(err), "err", errors.UserMessage(err))
		}
		return nil, "", err
	}

	hash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "hash layout %q", name)
	}
	r.Logger.Debug("loaded layout", "layout", name, "hash", hash[:12], "duration", time.Since(start))
	return doc, hash, nil
}

// Render loads, renders, and encodes a layout with caching.
//
// On a load failure Render returns a nil result and the typed error from
// [Runner.Load]. Entities outside the canvas are not an error; they are
// counted in Stats.Clipped and logged as a warning.
func (r *Runner) Render(ctx context.Context, name string, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultLayout
	}

	result := &Result{
		RenderID: uuid.NewString(),
		Layout:   name,
		Format:   sink.Format(opts.Format),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, hash, err := r.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	result.LayoutHash = hash
	result.Timing.Load = time.Since(loadStart)

	cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if a, ok := r.cachedArtifact(ctx, cacheKey); ok {
			result.Data = a.Data
			result.Transform = a.Transform
			result.Stats = a.Stats
			result.CacheHit = true
			r.Logger.Debug("artifact cache hit", "layout", name, "format", opts.Format, "render_id", result.RenderID)
			r.warnClipped(name, result.Stats)
			return result, nil
		}
	}

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, name, opts.Format)
	res, err := frame.Render(doc, opts.FrameOptions())
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, name, opts.Format, 0, time.Since(renderStart), err)
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	result.Canvas = res.Canvas
	result.Transform = res.Transform
	result.Stats = res.Stats
	result.Timing.Render = time.Since(renderStart)

	r.warnClipped(name, res.Stats)

	// Stage 3: Encode
	encodeStart := time.Now()
	data, err := sink.Bytes(res.Canvas, result.Format)
	observability.Pipeline().OnRenderComplete(ctx, name, opts.Format, res.Stats.Clipped, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Timing.Encode = time.Since(encodeStart)

	r.Logger.Info("rendered layout",
		"layout", name,
		"size", fmt.Sprintf("%dx%d", res.Canvas.Width(), res.Canvas.Height()),
		"format", opts.Format,
		"duration", result.Timing.Render+result.Timing.Encode)

	r.storeArtifact(ctx, cacheKey, artifact{
		Format:    result.Format,
		Data:      data,
		Transform: res.Transform,
		Stats:     res.Stats,
	})
	r.storeTransform(ctx, r.Keyer.TransformKey(hash, opts.TransformKeyOpts()), res.Transform)

	return result, nil
}

// Transform returns the transform a render of the named layout would use,
// without drawing. Transforms published by earlier renders are reused.
func (r *Runner) Transform(ctx context.Context, name string, opts Options) (geometry.Transform, error) {
	if err := opts.ValidateForRender(); err != nil {
		return geometry.Transform{}, err
	}
	doc, hash, err := r.Load(ctx, name)
	if err != nil {
		return geometry.Transform{}, err
	}

	key := r.Keyer.TransformKey(hash, opts.TransformKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var t geometry.Transform
		if json.Unmarshal(data, &t) == nil {
			observability.Cache().OnCacheHit(ctx, "transform")
			return t, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "transform")

	t, err := doc.Fit(opts.Resolution)
	if err != nil {
		return geometry.Transform{}, err
	}
	t, err = t.WithPadding(opts.Padding)
	if err != nil {
		return geometry.Transform{}, err
	}
	r.storeTransform(ctx, key, t)
	return t, nil
}

func (r *Runner) warnClipped(name string, stats frame.Stats) {
	if stats.Clipped > 0 {
		r.Logger.Warn("entities outside the outline were clipped", "layout", name, "clipped", stats.Clipped)
	}
}

// Specs loads a layout and returns one subsection as stored:
// "accelerometers", "actuators", or "leds".
func (r *Runner) Specs(ctx context.Context, name, section string) (json.RawMessage, error) {
	doc, _, err := r.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return doc.Spec(section)
}

// List returns the names of all layouts in the store.
func (r *Runner) List(ctx context.Context) ([]string, error) {
	return r.Store.List(ctx)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedArtifact(ctx context.Context, key string) (artifact, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return artifact{}, false
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		// Unreadable entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return artifact{}, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return a, true
}

func (r *Runner) storeArtifact(ctx context.Context, key string, a artifact) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

func (r *Runner) storeTransform(ctx context.Context, key string, t geometry.Transform) {
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLTransform); err == nil {
		observability.Cache().OnCacheSet(ctx, "transform", len(data))
	}
}
