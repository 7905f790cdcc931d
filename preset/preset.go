// Package preset persists generation parameter sets as TOML files, so
// a look dialed in once can be reapplied or watched for live preview.
package preset

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/icicle"
	"github.com/magmavr/icegen/math"
	"github.com/magmavr/icegen/mesh"
)

// SkinSettings is the serialized form of mesh.Options.
type SkinSettings struct {
	RingVertices int    `toml:"ring_vertices"`
	Cap          string `toml:"cap"`
}

// Preset is the serialized form of one parameter set.
type Preset struct {
	Count             int          `toml:"count"`
	LengthMin         float32      `toml:"length_min"`
	LengthMax         float32      `toml:"length_max"`
	RadiusRoot        float32      `toml:"radius_root"`
	RadiusTip         float32      `toml:"radius_tip"`
	Gravity           float32      `toml:"gravity"`
	Wind              [3]float32   `toml:"wind"`
	WavinessAmplitude float32      `toml:"waviness_amplitude"`
	WavinessFrequency float32      `toml:"waviness_frequency"`
	Samples           int          `toml:"samples"`
	Seed              int64        `toml:"seed"`
	Skin              SkinSettings `toml:"skin"`
}

// File is a named collection of presets.
type File struct {
	Presets map[string]Preset `toml:"preset"`
}

// Default mirrors icicle.DefaultParameters plus the default skin.
func Default() Preset {
	p := icicle.DefaultParameters()
	return Preset{
		Count:             p.Count,
		LengthMin:         p.LengthMin,
		LengthMax:         p.LengthMax,
		RadiusRoot:        p.RadiusRoot,
		RadiusTip:         p.RadiusTip,
		Gravity:           p.Gravity,
		Wind:              [3]float32{p.Wind.X, p.Wind.Y, p.Wind.Z},
		WavinessAmplitude: p.WavinessAmplitude,
		WavinessFrequency: p.WavinessFrequency,
		Samples:           p.Samples,
		Seed:              p.Seed,
		Skin: SkinSettings{
			RingVertices: 8,
			Cap:          "ngon",
		},
	}
}

// Parameters converts the preset into a generation parameter set.
func (p Preset) Parameters() icicle.Parameters {
	return icicle.Parameters{
		Count:             p.Count,
		LengthMin:         p.LengthMin,
		LengthMax:         p.LengthMax,
		RadiusRoot:        p.RadiusRoot,
		RadiusTip:         p.RadiusTip,
		Gravity:           p.Gravity,
		Wind:              math.NewVec3(p.Wind[0], p.Wind[1], p.Wind[2]),
		WavinessAmplitude: p.WavinessAmplitude,
		WavinessFrequency: p.WavinessFrequency,
		Samples:           p.Samples,
		Seed:              p.Seed,
	}
}

// SkinOptions converts the serialized skin settings.
func (p Preset) SkinOptions() (mesh.Options, error) {
	opts := mesh.Options{RingVertices: p.Skin.RingVertices}
	switch p.Skin.Cap {
	case "", "ngon":
		opts.Cap = mesh.CapNgon
	case "none":
		opts.Cap = mesh.CapNone
	case "fan":
		opts.Cap = mesh.CapFan
	default:
		return mesh.Options{}, fmt.Errorf("%w: unknown cap mode %q", core.ErrInvalidParameter, p.Skin.Cap)
	}
	return opts, nil
}

// Load reads a preset file. Every preset is validated on the way in so
// a bad file is reported before a batch starts.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &File{}
	if err := toml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidParameter, path, err)
	}
	if f.Presets == nil {
		f.Presets = map[string]Preset{}
	}
	for name, p := range f.Presets {
		if err := p.Parameters().Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		if _, err := p.SkinOptions(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return f, nil
}

// Get returns the named preset, falling back to "default" when name is
// empty.
func (f *File) Get(name string) (Preset, error) {
	if name == "" {
		name = "default"
	}
	p, ok := f.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: no preset named %q", core.ErrInvalidParameter, name)
	}
	return p, nil
}

// Save writes the preset file.
func Save(path string, f *File) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
