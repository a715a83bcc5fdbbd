// Package entity holds the game entities and the stores that own them.
package entity

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// IDGenerator hands out entity IDs in increasing order.
// The zero value is ready to use; 0 is never returned ("nil" ID).
type IDGenerator struct {
	last EntityID
}

// Next returns a new unique entity ID
func (g *IDGenerator) Next() EntityID {
	g.last++
	return g.last
}

// Rect is an axis-aligned box in field coordinates (top-left origin, y grows down)
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether two boxes intersect. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Clamp restricts v to [lo, hi]. NaN maps to lo so it never reaches state.
func Clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
