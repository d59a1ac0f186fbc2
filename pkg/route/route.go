// Package route computes connector line geometry between placed class
// boxes: anchor points on box perimeters and the endpoint marker for
// each relationship kind.
//
// Routing is intentionally simple: a straight segment between the two
// closest side midpoints, not an obstacle-avoiding or orthogonal router.
package route

import (
	"fmt"
	"math"

	"classdraw/pkg/layout"
	"classdraw/pkg/model"
)

// =============================================================================
// Geometry
// =============================================================================

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// SideMidpoints returns the four perimeter anchor candidates of a
// rectangle in fixed order: top, bottom, left, right. The fixed order
// breaks distance ties deterministically.
func SideMidpoints(r layout.Rect) [4]Point {
	cx, cy := r.Center()
	return [4]Point{
		{X: cx, Y: r.Y},
		{X: cx, Y: r.Y + r.H},
		{X: r.X, Y: cy},
		{X: r.X + r.W, Y: cy},
	}
}

// closestPair returns the source/target side midpoints with minimal
// Euclidean distance among the sixteen candidate pairs.
func closestPair(src, dst layout.Rect) (Point, Point) {
	srcPts := SideMidpoints(src)
	dstPts := SideMidpoints(dst)

	best := math.Inf(1)
	var from, to Point
	for _, s := range srcPts {
		for _, t := range dstPts {
			if d := distance(s, t); d < best {
				best, from, to = d, s, t
			}
		}
	}
	return from, to
}

// closestTo returns the side midpoint of r nearest to p.
func closestTo(r layout.Rect, p Point) Point {
	pts := SideMidpoints(r)
	best := pts[0]
	bestDist := distance(pts[0], p)
	for _, cand := range pts[1:] {
		if d := distance(cand, p); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

// =============================================================================
// Markers
// =============================================================================

// Marker is the endpoint decoration drawn at the target anchor.
type Marker string

// Endpoint markers, one per relationship kind.
const (
	MarkerNone           Marker = "none"
	MarkerHollowTriangle Marker = "hollow_triangle"
	MarkerHollowDiamond  Marker = "hollow_diamond"
	MarkerFilledDiamond  Marker = "filled_diamond"
	MarkerOpenArrow      Marker = "open_arrow"
)

// MarkerFor maps a relationship kind to its target endpoint marker.
// The table is symmetric with the serializer's symbol table.
func MarkerFor(rel model.Relationship) Marker {
	switch rel {
	case model.RelInheritance:
		return MarkerHollowTriangle
	case model.RelAggregation:
		return MarkerHollowDiamond
	case model.RelComposition:
		return MarkerFilledDiamond
	case model.RelDependency:
		return MarkerOpenArrow
	default:
		return MarkerNone
	}
}

// Dashed reports whether the relationship is drawn with a dashed line.
// Only dependency edges are dashed.
func Dashed(rel model.Relationship) bool {
	return rel == model.RelDependency
}

// =============================================================================
// Routing
// =============================================================================

// Route is one computed connector: a straight segment from the source
// box perimeter to the target box perimeter plus its marker.
type Route struct {
	ConnectionID string             `json:"connection_id" bson:"connection_id"`
	SourceID     string             `json:"source_id" bson:"source_id"`
	TargetID     string             `json:"target_id" bson:"target_id"`
	From         Point              `json:"from" bson:"from"`
	To           Point              `json:"to" bson:"to"`
	Relation     model.Relationship `json:"relation" bson:"relation"`
	Marker       Marker             `json:"marker" bson:"marker"`
	Dashed       bool               `json:"dashed" bson:"dashed"`
}

// Warning flags a connection the router skipped.
type Warning struct {
	ConnectionID string `json:"connection_id" bson:"connection_id"`
	Message      string `json:"message" bson:"message"`
}

// Result is the full routing output for one diagram.
type Result struct {
	Routes   []Route   `json:"routes" bson:"routes"`
	Warnings []Warning `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// Plan routes every connection of the diagram against the placed boxes.
//
// Targets are resolved by class name against what actually got placed.
// Unresolved or empty targets are skipped; unresolved ones produce a
// warning, empty ones are silently omitted like in the serialized form.
// Inheritance edges sharing a target are grouped: all children attach to
// one shared parent anchor, the side midpoint closest to the centroid of
// the children's box centers.
func Plan(d model.Diagram, lay layout.Result) Result {
	var res Result

	boxByName := make(map[string]layout.Rect, len(d.Classes))
	idByName := make(map[string]string, len(d.Classes))
	for _, c := range d.Classes {
		if _, dup := boxByName[c.Name]; dup {
			continue // first declaration wins, matching validator semantics
		}
		boxByName[c.Name] = lay.Boxes[c.ID]
		idByName[c.Name] = c.ID
	}

	parentAnchor := inheritanceAnchors(d, lay, boxByName)

	for _, c := range d.Classes {
		src, placed := lay.Boxes[c.ID]
		if !placed {
			continue
		}
		for _, conn := range c.Connections {
			if conn.Target == "" {
				continue
			}
			dst, ok := boxByName[conn.Target]
			if !ok {
				res.Warnings = append(res.Warnings, Warning{
					ConnectionID: conn.ID,
					Message:      fmt.Sprintf("target %q is not a placed class", conn.Target),
				})
				continue
			}

			var from, to Point
			if conn.Relation == model.RelInheritance {
				if anchor, grouped := parentAnchor[conn.Target]; grouped {
					to = anchor
					from = closestTo(src, to)
				} else {
					from, to = closestPair(src, dst)
				}
			} else {
				from, to = closestPair(src, dst)
			}

			res.Routes = append(res.Routes, Route{
				ConnectionID: conn.ID,
				SourceID:     c.ID,
				TargetID:     idByName[conn.Target],
				From:         from,
				To:           to,
				Relation:     conn.Relation,
				Marker:       MarkerFor(conn.Relation),
				Dashed:       Dashed(conn.Relation),
			})
		}
	}

	return res
}

// inheritanceAnchors finds parents with two or more inheriting children
// and picks one shared anchor per parent: the parent side midpoint
// closest to the centroid of the children's box centers. Single-child
// inheritance keeps ordinary closest-pair anchoring.
func inheritanceAnchors(d model.Diagram, lay layout.Result, boxByName map[string]layout.Rect) map[string]Point {
	type centroid struct {
		sumX, sumY float64
		n          int
	}
	children := make(map[string]*centroid)

	for _, c := range d.Classes {
		src, placed := lay.Boxes[c.ID]
		if !placed {
			continue
		}
		for _, conn := range c.Connections {
			if conn.Relation != model.RelInheritance || conn.Target == "" {
				continue
			}
			if _, ok := boxByName[conn.Target]; !ok {
				continue
			}
			cx, cy := src.Center()
			cen := children[conn.Target]
			if cen == nil {
				cen = &centroid{}
				children[conn.Target] = cen
			}
			cen.sumX += cx
			cen.sumY += cy
			cen.n++
		}
	}

	anchors := make(map[string]Point)
	for name, cen := range children {
		if cen.n < 2 {
			continue
		}
		mid := Point{X: cen.sumX / float64(cen.n), Y: cen.sumY / float64(cen.n)}
		anchors[name] = closestTo(boxByName[name], mid)
	}
	return anchors
}
