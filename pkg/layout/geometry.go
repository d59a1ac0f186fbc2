// Package layout assigns canvas rectangles to class boxes and notes.
//
// Class boxes are placed in declaration order on a row-major grid; notes
// are placed near their owning box via a collision-aware ring search.
// The algorithm is deterministic: identical input and configuration
// produce identical placements.
package layout

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports whether r and other overlap when both are grown by
// pad on every side. Touching edges within the padding count as overlap.
func (r Rect) Intersects(other Rect, pad float64) bool {
	return r.X-pad < other.X+other.W+pad &&
		r.X+r.W+pad > other.X-pad &&
		r.Y-pad < other.Y+other.H+pad &&
		r.Y+r.H+pad > other.Y-pad
}

// OverlapArea returns the area of the intersection of r and other,
// ignoring padding. Zero means the rectangles are disjoint.
func (r Rect) OverlapArea(other Rect) float64 {
	w := min(r.X+r.W, other.X+other.W) - max(r.X, other.X)
	h := min(r.Y+r.H, other.Y+other.H) - max(r.Y, other.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}
