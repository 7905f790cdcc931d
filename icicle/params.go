package icicle

import (
	"fmt"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/math"
)

const (
	// Bounds on the number of sample points per path.
	MinSamples = 8
	MaxSamples = 32
)

/**
 * @brief The immutable configuration for icicle generation. A single
 * Parameters value is shared by every anchor of a batch; per-icicle
 * randomness is derived from Seed so a batch stays reproducible.
 */
type Parameters struct {
	/** @brief Number of icicles generated per anchor. */
	Count int
	/** @brief Minimum target length of an icicle. */
	LengthMin float32
	/** @brief Maximum target length of an icicle. */
	LengthMax float32
	/** @brief Radius at the attachment end of the path. */
	RadiusRoot float32
	/** @brief Radius at the far end of the path. Zero makes a point tip. */
	RadiusTip float32
	/** @brief Gravity droop strength. Signed; negative lifts instead. */
	Gravity float32
	/** @brief Wind direction and strength. May be zero. */
	Wind math.Vec3
	/** @brief Amplitude of the lateral waviness perturbation. */
	WavinessAmplitude float32
	/** @brief Frequency of the waviness perturbation, in periods per unit depth. */
	WavinessFrequency float32
	/** @brief Number of sample points per path. Zero selects the default. */
	Samples int
	/** @brief Seed for all derived per-icicle generators. */
	Seed int64
}

// DefaultParameters returns a sensible roof-icicle starting point.
func DefaultParameters() Parameters {
	return Parameters{
		Count:             1,
		LengthMin:         1.5,
		LengthMax:         2.0,
		RadiusRoot:        0.15,
		RadiusTip:         0.0,
		Gravity:           0.3,
		Wind:              math.NewVec3Zero(),
		WavinessAmplitude: 0.015,
		WavinessFrequency: 4.0,
		Samples:           12,
		Seed:              1,
	}
}

/**
 * @brief Validates the parameter set. All failures wrap
 * core.ErrInvalidParameter so a caller can detect the whole class
 * with errors.Is before starting a batch.
 */
func (p Parameters) Validate() error {
	if p.Count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", core.ErrInvalidParameter, p.Count)
	}
	for _, f := range []struct {
		name  string
		value float32
	}{
		{"length-min", p.LengthMin},
		{"length-max", p.LengthMax},
		{"radius-root", p.RadiusRoot},
		{"radius-tip", p.RadiusTip},
		{"gravity", p.Gravity},
		{"wind.x", p.Wind.X},
		{"wind.y", p.Wind.Y},
		{"wind.z", p.Wind.Z},
		{"waviness-amplitude", p.WavinessAmplitude},
		{"waviness-frequency", p.WavinessFrequency},
	} {
		if !math.IsFinite(f.value) {
			return fmt.Errorf("%w: %s is not finite", core.ErrInvalidParameter, f.name)
		}
	}
	if p.LengthMin <= 0 {
		return fmt.Errorf("%w: length-min must be positive, got %f", core.ErrInvalidParameter, p.LengthMin)
	}
	if p.LengthMax < p.LengthMin {
		return fmt.Errorf("%w: length range is empty (%f > %f)", core.ErrInvalidParameter, p.LengthMin, p.LengthMax)
	}
	if p.RadiusRoot <= 0 {
		return fmt.Errorf("%w: radius-root must be positive, got %f", core.ErrInvalidParameter, p.RadiusRoot)
	}
	if p.RadiusTip < 0 {
		return fmt.Errorf("%w: radius-tip must not be negative, got %f", core.ErrInvalidParameter, p.RadiusTip)
	}
	if p.WavinessAmplitude < 0 {
		return fmt.Errorf("%w: waviness-amplitude must not be negative, got %f", core.ErrInvalidParameter, p.WavinessAmplitude)
	}
	if p.WavinessFrequency <= 0 {
		return fmt.Errorf("%w: waviness-frequency must be positive, got %f", core.ErrInvalidParameter, p.WavinessFrequency)
	}
	return nil
}

// samples returns the effective sample count, warning and defaulting
// instead of failing, the same way the geometry generators treat their
// segment counts.
func (p Parameters) samples() int {
	if p.Samples == 0 {
		return 12
	}
	if p.Samples < MinSamples || p.Samples > MaxSamples {
		clamped := math.Clamp(p.Samples, MinSamples, MaxSamples)
		core.LogWarn("sample count %d outside [%d, %d], clamping to %d", p.Samples, MinSamples, MaxSamples, clamped)
		return clamped
	}
	return p.Samples
}
