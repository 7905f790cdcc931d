package icicle

import (
	"fmt"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/math"
)

/**
 * @brief A position on the host mesh from which icicles grow. Owned by
 * the caller; the generator never mutates it.
 */
type Anchor struct {
	/** @brief The position of the anchor in world space. */
	Position math.Vec3
	/** @brief The outward surface normal at the anchor. */
	Normal math.Vec3
	/** @brief The length of the source edge. Scales the start jitter; zero disables it. */
	EdgeLength float32
}

// NewAnchor builds a standalone anchor with no source edge. Start
// positions will not be jittered.
func NewAnchor(position, normal math.Vec3) Anchor {
	return Anchor{
		Position: position,
		Normal:   normal,
	}
}

// AnchorFromEdge derives an anchor from an edge: the position is the
// edge midpoint and the edge length drives the start jitter. A
// zero-length edge is degenerate.
func AnchorFromEdge(a, b, normal math.Vec3) (Anchor, error) {
	length := a.Distance(b)
	if length <= math.K_FLOAT_EPSILON {
		return Anchor{}, fmt.Errorf("%w: zero-length source edge", core.ErrDegenerateAnchor)
	}
	return Anchor{
		Position:   a.Lerp(b, 0.5),
		Normal:     normal,
		EdgeLength: length,
	}, nil
}

/**
 * @brief Validates the anchor. Failures wrap core.ErrDegenerateAnchor;
 * a batch skips such anchors and continues with the rest.
 */
func (a Anchor) Validate() error {
	if !a.Position.IsFinite() || !a.Normal.IsFinite() || !math.IsFinite(a.EdgeLength) {
		return fmt.Errorf("%w: non-finite anchor data", core.ErrDegenerateAnchor)
	}
	if a.Normal.LengthSquared() <= math.K_FLOAT_EPSILON {
		return fmt.Errorf("%w: zero-length normal", core.ErrDegenerateAnchor)
	}
	if a.EdgeLength < 0 {
		return fmt.Errorf("%w: negative edge length", core.ErrDegenerateAnchor)
	}
	return nil
}
