// Package pipeline runs the full validate → layout → route → render
// sequence with per-stage caching. Both the CLI and the API server sit
// on top of this package.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"classdraw/pkg/errors"
	"classdraw/pkg/layout"
	"classdraw/pkg/model"
	"classdraw/pkg/render"
	"classdraw/pkg/route"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatUML  = "uml"
	FormatJSON = "json"
)

// DefaultFormats is used when the caller requests no explicit formats.
var DefaultFormats = []string{FormatPNG}

// Options configures a pipeline run.
type Options struct {
	// Formats selects the artifacts to produce. Defaults to PNG.
	Formats []string

	// Layout configures box and note placement.
	Layout layout.Config

	// Render configures rasterization. Metrics should match Layout's.
	Render render.Config

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	for _, f := range o.Formats {
		switch f {
		case FormatPNG, FormatSVG, FormatUML, FormatJSON:
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format: %q", f)
		}
	}
	if o.Layout.MaxCanvasWidth == 0 {
		o.Layout = layout.DefaultConfig()
	}
	if o.Render.Metrics.LineHeight == 0 {
		o.Render = render.Config{Metrics: o.Layout.Metrics}
	}
	return nil
}

// Stats records per-stage timing and input size for a run.
type Stats struct {
	ValidateTime    time.Duration `json:"validate_time"`
	LayoutTime      time.Duration `json:"layout_time"`
	RouteTime       time.Duration `json:"route_time"`
	RenderTime      time.Duration `json:"render_time"`
	ClassCount      int           `json:"class_count"`
	ConnectionCount int           `json:"connection_count"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit"`
}

// Result is the output of a pipeline run. Warnings from the validator,
// layout, and router are all carried; none of them block the artifacts.
type Result struct {
	Report      model.Report      `json:"report"`
	Layout      layout.Result     `json:"layout"`
	Routes      route.Result      `json:"routes"`
	Artifacts   map[string][]byte `json:"-"`
	DiagramHash string            `json:"diagram_hash"`
	Stats       Stats             `json:"stats"`
	CacheInfo   CacheInfo         `json:"cache_info"`
}
