package icicle

import (
	"github.com/magmavr/icegen/math"
)

/**
 * @brief A single sample of an icicle center-axis: a position and the
 * radius of the surface around it.
 */
type PathPoint struct {
	Position math.Vec3
	Radius   float32
}

/**
 * @brief An icicle center-axis: an ordered sequence of at least two
 * sampled points with a monotonic radius profile. Created fresh per
 * generation call and never mutated afterwards; regeneration produces
 * a new path.
 */
type Path struct {
	Points []PathPoint
}

// ArcLength returns the cumulative length of the polyline.
func (p Path) ArcLength() float32 {
	total := float32(0)
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Position.Distance(p.Points[i-1].Position)
	}
	return total
}

// IsFinite reports whether every position and radius of the path is
// finite. Paths failing this are dropped rather than handed to the
// mesh consumer.
func (p Path) IsFinite() bool {
	for _, pt := range p.Points {
		if !pt.Position.IsFinite() || !math.IsFinite(pt.Radius) {
			return false
		}
	}
	return true
}

// MonotonicTaper reports whether the radius profile never reverses
// direction: non-increasing root to tip, or non-decreasing when root
// and tip radii are swapped.
func (p Path) MonotonicTaper() bool {
	if len(p.Points) < 2 {
		return true
	}
	widening := p.Points[len(p.Points)-1].Radius > p.Points[0].Radius
	for i := 1; i < len(p.Points); i++ {
		diff := p.Points[i].Radius - p.Points[i-1].Radius
		if widening && diff < 0 {
			return false
		}
		if !widening && diff > 0 {
			return false
		}
	}
	return true
}

// Root returns the attachment-end point of the path.
func (p Path) Root() PathPoint {
	return p.Points[0]
}

// Tip returns the far-end point of the path.
func (p Path) Tip() PathPoint {
	return p.Points[len(p.Points)-1]
}
