package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"classdraw/pkg/cache"
	"classdraw/pkg/errors"
	"classdraw/pkg/layout"
	"classdraw/pkg/model"
	"classdraw/pkg/render"
	"classdraw/pkg/render/dot"
	"classdraw/pkg/route"
	"classdraw/pkg/uml"
)

// Runner executes the pipeline with caching. It is stateless apart from
// the cache and logger; one Runner can serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache),
// a nil keyer gets the default scheme.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs validate → layout → route → render on the diagram.
//
// Structural validation errors short-circuit the run: the returned
// Result carries the report and the error code is INVALID_INPUT, and no
// later stage executes. Warnings of any stage never block.
func (r *Runner) Execute(ctx context.Context, d model.Diagram, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.ClassCount = len(d.Classes)
	for _, c := range d.Classes {
		result.Stats.ConnectionCount += len(c.Connections)
	}

	// Stage 1: validate.
	validateStart := time.Now()
	result.Report = model.Validate(d)
	result.Stats.ValidateTime = time.Since(validateStart)
	if !result.Report.Exportable() {
		return result, errors.New(errors.ErrCodeInvalidInput,
			"diagram has %d structural errors", len(result.Report.Errors))
	}

	// The hash comes from the canonical textual form, not the marshaled
	// model: ids are minted fresh on every parse and must not defeat the
	// cache keys.
	result.DiagramHash = cache.Hash([]byte(uml.Encode(d)))

	logger.Debug("validated diagram",
		"classes", result.Stats.ClassCount,
		"warnings", len(result.Report.Warnings))

	// Stage 2: layout, cached by diagram hash + layout config.
	layoutStart := time.Now()
	lay, layoutHit := r.layoutWithCache(ctx, d, result.DiagramHash, opts)
	result.Layout = lay
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"boxes", len(lay.Boxes),
		"notes", len(lay.Notes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: route. Pure and cheap, never cached.
	routeStart := time.Now()
	result.Routes = route.Plan(d, lay)
	result.Stats.RouteTime = time.Since(routeStart)

	// Stage 4: render, each format cached by diagram hash + options.
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCache(ctx, d, lay, result.Routes, result.DiagramHash, opts)
	if err != nil {
		return result, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layoutWithCache serves the layout from cache when possible. Cached
// entries are id-free (see layoutCacheEntry); a corrupt entry or one
// whose shape no longer matches the diagram falls through to
// recomputation.
func (r *Runner) layoutWithCache(ctx context.Context, d model.Diagram, diagramHash string, opts Options) (layout.Result, bool) {
	key := r.Keyer.LayoutKey(diagramHash, opts.Layout)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, ok := decodeLayoutEntry(d, data); ok {
				return cached, true
			}
		}
	}

	lay := layout.Build(d, opts.Layout)
	if data, ok := encodeLayoutEntry(d, lay); ok {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
	}
	return lay, false
}

// artifactKeyOpts is everything besides the diagram text that changes
// rendered bytes: the style and the layout configuration.
type artifactKeyOpts struct {
	Style  model.Style   `json:"style"`
	Layout layout.Config `json:"layout"`
}

// cacheableFormat reports whether a format's bytes are id-free. The
// json artifact embeds the run's entity ids, so serving it from cache
// would hand back ids from an earlier parse.
func cacheableFormat(format string) bool {
	return format != FormatJSON
}

// renderWithCache produces every requested format, serving cacheable
// ones from cache. The hit flag reports whether every cacheable
// requested format was served from cache.
func (r *Runner) renderWithCache(ctx context.Context, d model.Diagram, lay layout.Result, routes route.Result, diagramHash string, opts Options) (map[string][]byte, bool, error) {
	keyOpts := artifactKeyOpts{Style: d.Style, Layout: opts.Layout}
	artifacts := make(map[string][]byte, len(opts.Formats))

	cached, cacheable := 0, 0
	for _, format := range opts.Formats {
		if !cacheableFormat(format) {
			continue
		}
		cacheable++
		if opts.Refresh {
			continue
		}
		key := r.Keyer.ArtifactKey(diagramHash, format, keyOpts)
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
			cached++
		}
	}

	for _, format := range opts.Formats {
		if _, ok := artifacts[format]; ok {
			continue
		}
		data, err := r.renderFormat(ctx, format, d, lay, routes, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if cacheableFormat(format) {
			key := r.Keyer.ArtifactKey(diagramHash, format, keyOpts)
			_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		}
	}
	return artifacts, cacheable > 0 && cached == cacheable, nil
}

func (r *Runner) renderFormat(ctx context.Context, format string, d model.Diagram, lay layout.Result, routes route.Result, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.PNG(d, lay, routes, opts.Render)
	case FormatSVG:
		return dot.SVG(ctx, d)
	case FormatUML:
		return []byte(uml.Encode(d)), nil
	case FormatJSON:
		payload := struct {
			Layout layout.Result `json:"layout"`
			Routes route.Result  `json:"routes"`
		}{Layout: lay, Routes: routes}
		return json.MarshalIndent(payload, "", "  ")
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format: %q", format)
}

// Close releases resources held by the runner, primarily the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
