package icicle

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/math"
)

const (
	// Gives up on filling the remaining span of an edge after this many
	// placement attempts in a row fail to fit.
	maxPackIterations = 50
	// Distinguishes the packing random stream from the per-icicle
	// ordinal streams of the same anchor index.
	packOrdinal = 1 << 20
)

/**
 * @brief A source edge segment of the host selection.
 */
type Edge struct {
	A math.Vec3
	B math.Vec3
}

// Length returns the length of the edge.
func (e Edge) Length() float32 {
	return e.A.Distance(e.B)
}

// Point returns the position at normalized parameter t along the edge.
func (e Edge) Point(t float32) math.Vec3 {
	return e.A.Lerp(e.B, t)
}

/**
 * @brief Fills an edge with icicle anchors placed side by side, each
 * claiming a span of twice its randomized base radius, until no more
 * fit. Placement is deterministic for a given (params.Seed, index).
 *
 * The returned anchors carry a zero edge length: their positions are
 * already spread along the edge, so the per-icicle start jitter is not
 * applied on top.
 */
func PackEdge(edge Edge, normal math.Vec3, params Parameters, index int) ([]Anchor, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	total := edge.Length()
	if total <= math.K_FLOAT_EPSILON {
		return nil, fmt.Errorf("%w: zero-length source edge", core.ErrDegenerateAnchor)
	}
	if normal.LengthSquared() <= math.K_FLOAT_EPSILON {
		return nil, fmt.Errorf("%w: zero-length normal", core.ErrDegenerateAnchor)
	}

	rng := rand.New(rand.NewSource(subSeed(params.Seed, index, packOrdinal)))
	minSpacing := params.RadiusRoot * 0.5

	var anchors []Anchor
	cLength := float32(0)
	misses := 0
	for cLength < total {
		if total-cLength < 2*minSpacing {
			break
		}
		// Base radius varies per icicle between half and full root
		// radius so the row does not look machine-stamped.
		randRad := params.RadiusRoot * (0.5 + 0.5*rng.Float32())
		if cLength+2*randRad <= total {
			cLength += randRad
			anchors = append(anchors, Anchor{
				Position: edge.Point(cLength / total),
				Normal:   normal,
			})
			cLength += randRad
			misses = 0
			continue
		}
		misses++
		if misses >= maxPackIterations {
			core.LogDebug("edge packing gave up after %d attempts with %.3f of %.3f filled", misses, cLength, total)
			break
		}
	}
	return anchors, nil
}
