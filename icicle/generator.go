package icicle

import (
	"golang.org/x/exp/rand"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/math"
)

const (
	// Fraction of the source edge length used as the start jitter radius.
	jitterFraction float32 = 0.25
	// Below this alignment with world down the growth direction is
	// blended toward it, so near-horizontal normals still droop.
	horizontalThreshold float32 = 0.35
)

/**
 * @brief Generates Count icicle paths for a single anchor.
 *
 * All randomness comes from generators seeded from (params.Seed, index,
 * ordinal), so the same inputs always produce the same paths no matter
 * how many other anchors were processed before this one. index is the
 * anchor's position in the caller's selection and keeps separate
 * anchors from reusing each other's random streams.
 *
 * A path whose computed positions are not finite is skipped with a
 * warning instead of being returned; the remaining paths are kept.
 */
func Generate(anchor Anchor, params Parameters, index int) ([]Path, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := anchor.Validate(); err != nil {
		return nil, err
	}

	samples := params.samples()
	grow := growthDirection(anchor.Normal)
	u, v := lateralBasis(grow)

	paths := make([]Path, 0, params.Count)
	for ordinal := 0; ordinal < params.Count; ordinal++ {
		rng := rand.New(rand.NewSource(subSeed(params.Seed, index, ordinal)))
		path := buildPath(anchor, params, samples, grow, u, v, rng)
		if !path.IsFinite() {
			core.LogWarn("icicle %d of anchor %d produced non-finite geometry, skipping", ordinal, index)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// buildPath samples one icicle center-axis. Three displacement terms
// are accumulated on top of the straight growth axis: a quadratic
// gravity droop, a depth-scaled wind lean and a sine waviness whose
// phase and lateral direction are randomized per icicle.
func buildPath(anchor Anchor, params Parameters, samples int, grow, u, v math.Vec3, rng *rand.Rand) Path {
	down := math.NewVec3Down()

	// Cluster start positions around the anchor instead of stacking
	// every icicle on the exact edge midpoint.
	jitterAngle := rng.Float32() * math.K_PI_2
	jitterDist := rng.Float32() * jitterFraction * anchor.EdgeLength
	start := anchor.Position.
		Add(u.MulScalar(math.Kcos(jitterAngle) * jitterDist)).
		Add(v.MulScalar(math.Ksin(jitterAngle) * jitterDist))

	length := params.LengthMin + rng.Float32()*(params.LengthMax-params.LengthMin)

	phase := rng.Float32() * math.K_PI_2
	waveAngle := rng.Float32() * math.K_PI_2
	waveDir := u.MulScalar(math.Kcos(waveAngle)).Add(v.MulScalar(math.Ksin(waveAngle)))

	points := make([]PathPoint, samples)
	for i := 0; i < samples; i++ {
		t := float32(i) / float32(samples-1)

		offset := grow.MulScalar(t * length)
		offset = offset.Add(down.MulScalar(params.Gravity * t * t * length * 0.5))
		offset = offset.Add(params.Wind.MulScalar(t * length))
		// The wave is ramped by depth so the attachment end stays on
		// the anchor surface.
		wave := params.WavinessAmplitude * math.Ksin(math.K_PI_2*params.WavinessFrequency*t+phase) * t
		offset = offset.Add(waveDir.MulScalar(wave))

		points[i] = PathPoint{
			Position: start.Add(offset),
			Radius:   math.Lerp(params.RadiusRoot, params.RadiusTip, t),
		}
	}

	path := Path{Points: points}

	// Droop and lean stretch the polyline past the sampled target
	// length. Rescale about the start point so the arc length lands
	// exactly on it.
	raw := path.ArcLength()
	if raw > math.K_FLOAT_EPSILON && math.IsFinite(raw) {
		scale := length / raw
		for i := range points {
			points[i].Position = start.Add(points[i].Position.Sub(start).MulScalar(scale))
		}
	}

	return path
}

// growthDirection orients the anchor normal into the downward
// hemisphere and blends near-horizontal directions toward world down,
// so icicles on vertical faces still hang instead of growing sideways.
func growthDirection(normal math.Vec3) math.Vec3 {
	down := math.NewVec3Down()
	grow := normal.MulScalar(-1).Normalized()
	if grow.Dot(down) < 0 {
		grow = grow.MulScalar(-1)
	}
	if grow.Dot(down) < horizontalThreshold {
		grow = grow.Add(down).MulScalar(0.5).Normalized()
	}
	return grow
}

// lateralBasis returns two unit vectors perpendicular to grow and to
// each other, spanning the plane used for jitter and waviness.
func lateralBasis(grow math.Vec3) (math.Vec3, math.Vec3) {
	ref := math.NewVec3Up()
	if math.Kabs(grow.Dot(ref)) > 0.9 {
		ref = math.NewVec3(1.0, 0.0, 0.0)
	}
	u := grow.Cross(ref).Normalized()
	v := grow.Cross(u).Normalized()
	return u, v
}

// subSeed mixes (seed, index, ordinal) into one generator seed.
// splitmix64 finalizer; neighboring indices must not produce
// correlated streams.
func subSeed(seed int64, index, ordinal int) uint64 {
	x := uint64(seed)
	x ^= uint64(index)*0x9E3779B97F4A7C15 + uint64(ordinal)*0xBF58476D1CE4E5B9
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}
