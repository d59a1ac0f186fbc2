package layout

import (
	"fmt"

	"classdraw/pkg/model"
)

// =============================================================================
// Configuration
// =============================================================================

// Placement defaults. The ring search order and padding margin are
// configurable rather than fixed; see Config.
const (
	defaultMaxCanvasWidth = 1600.0
	defaultGapX           = 40.0
	defaultGapY           = 60.0
	defaultCollisionPad   = 4.0
	defaultRingStep       = 24.0
	defaultMaxRings       = 40
)

// Config controls grid placement and the note ring search.
type Config struct {
	Metrics        Metrics
	MaxCanvasWidth float64 // row wraps when accumulated width exceeds this
	GapX           float64 // horizontal gap between boxes in a row
	GapY           float64 // vertical gap between rows
	CollisionPad   float64 // padding margin for the overlap test
	RingStep       float64 // radial increment per search ring
	MaxRings       int     // search gives up after this many rings
}

// DefaultConfig returns the standard layout configuration.
func DefaultConfig() Config {
	return Config{
		Metrics:        DefaultMetrics(),
		MaxCanvasWidth: defaultMaxCanvasWidth,
		GapX:           defaultGapX,
		GapY:           defaultGapY,
		CollisionPad:   defaultCollisionPad,
		RingStep:       defaultRingStep,
		MaxRings:       defaultMaxRings,
	}
}

// =============================================================================
// Result
// =============================================================================

// Warning is an advisory layout finding. It never blocks output.
type Warning struct {
	EntityID string `json:"entity_id" bson:"entity_id"`
	Message  string `json:"message" bson:"message"`
}

// Result maps entity ids to placed rectangles. Placements are
// collision-free after padding, except notes listed in Warnings that
// exhausted the search radius.
type Result struct {
	Boxes    map[string]Rect `json:"boxes" bson:"boxes"`
	Notes    map[string]Rect `json:"notes" bson:"notes"`
	Warnings []Warning       `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// =============================================================================
// Placement
// =============================================================================

// Build places every class box and note of the diagram.
//
// Boxes go on a row-major grid in declaration order: left to right with
// GapX between boxes, wrapping to a new row when the accumulated width
// would exceed MaxCanvasWidth; each row is as tall as its tallest box
// plus GapY. Notes are then placed per owning box with a ring search.
func Build(d model.Diagram, cfg Config) Result {
	res := Result{
		Boxes: make(map[string]Rect, len(d.Classes)),
		Notes: make(map[string]Rect),
	}

	// Collision set for the duration of this call only.
	var placed []Rect

	x, y := 0.0, 0.0
	rowHeight := 0.0
	for _, c := range d.Classes {
		w, h := cfg.Metrics.BoxSize(c)
		if x > 0 && x+w > cfg.MaxCanvasWidth {
			x = 0
			y += rowHeight + cfg.GapY
			rowHeight = 0
		}
		r := Rect{X: x, Y: y, W: w, H: h}
		res.Boxes[c.ID] = r
		placed = append(placed, r)

		x += w + cfg.GapX
		if h > rowHeight {
			rowHeight = h
		}
	}

	for _, c := range d.Classes {
		owner := res.Boxes[c.ID]
		for _, n := range c.Notes {
			w, h := cfg.Metrics.NoteSize(n)
			r, ok := placeNote(owner, w, h, placed, cfg)
			if !ok {
				res.Warnings = append(res.Warnings, Warning{
					EntityID: n.ID,
					Message: fmt.Sprintf(
						"no collision-free position for note within %d rings; using least-overlapping candidate",
						cfg.MaxRings),
				})
			}
			res.Notes[n.ID] = r
			placed = append(placed, r)
		}
	}

	return res
}

// ringOffsets is the fixed candidate order within one ring: down, right,
// up, left, then the four diagonals. Determinism depends on this order.
var ringOffsets = [][2]float64{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// placeNote searches for a rectangle of size w×h near the owning box.
// The seed candidate sits directly below the box; each subsequent ring
// offsets the seed by ring*RingStep in the fixed ring order. The first
// candidate clear of every placed rectangle wins. If no ring yields a
// clear spot, the least-overlapping candidate is returned with ok=false.
func placeNote(owner Rect, w, h float64, placed []Rect, cfg Config) (Rect, bool) {
	seed := Rect{X: owner.X, Y: owner.Y + owner.H + cfg.GapY/2, W: w, H: h}

	best := seed
	bestOverlap := totalOverlap(seed, placed)
	if bestOverlap == 0 && !anyIntersects(seed, placed, cfg.CollisionPad) {
		return seed, true
	}

	for ring := 1; ring <= cfg.MaxRings; ring++ {
		dist := float64(ring) * cfg.RingStep
		for _, off := range ringOffsets {
			cand := Rect{X: seed.X + off[0]*dist, Y: seed.Y + off[1]*dist, W: w, H: h}
			if !anyIntersects(cand, placed, cfg.CollisionPad) {
				return cand, true
			}
			if ov := totalOverlap(cand, placed); ov < bestOverlap {
				best, bestOverlap = cand, ov
			}
		}
	}
	return best, false
}

func anyIntersects(r Rect, placed []Rect, pad float64) bool {
	for _, p := range placed {
		if r.Intersects(p, pad) {
			return true
		}
	}
	return false
}

func totalOverlap(r Rect, placed []Rect) float64 {
	var sum float64
	for _, p := range placed {
		sum += r.OverlapArea(p)
	}
	return sum
}
