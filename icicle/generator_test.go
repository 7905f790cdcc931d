package icicle

import (
	"errors"
	m "math"
	"reflect"
	"testing"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/math"
)

func specParams() Parameters {
	return Parameters{
		Count:             3,
		LengthMin:         0.5,
		LengthMax:         1.0,
		RadiusRoot:        0.05,
		RadiusTip:         0.0,
		Gravity:           0.3,
		Wind:              math.NewVec3Zero(),
		WavinessAmplitude: 0.02,
		WavinessFrequency: 4.0,
		Samples:           12,
		Seed:              42,
	}
}

func specAnchor() Anchor {
	return NewAnchor(math.NewVec3Zero(), math.NewVec3(0, -1, 0))
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := Generate(specAnchor(), specParams(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Generate(specAnchor(), specParams(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two generations with identical inputs differ")
	}
}

func TestGenerateDownwardGrowth(t *testing.T) {
	paths, err := Generate(specAnchor(), specParams(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(paths))
	}
	for pi, p := range paths {
		if len(p.Points) < 2 {
			t.Fatalf("path %d has %d points, want at least 2", pi, len(p.Points))
		}
		if p.Root().Position.Distance(math.NewVec3Zero()) > 0.05 {
			t.Errorf("path %d starts %f away from the anchor", pi, p.Root().Position.Distance(math.NewVec3Zero()))
		}
		if tip := p.Tip().Radius; tip > 1e-6 {
			t.Errorf("path %d tip radius = %f, want ~0", pi, tip)
		}
		for i := 1; i < len(p.Points); i++ {
			if p.Points[i].Position.Y >= p.Points[i-1].Position.Y {
				t.Errorf("path %d point %d does not descend: y %f -> %f",
					pi, i, p.Points[i-1].Position.Y, p.Points[i].Position.Y)
			}
		}
	}
}

func TestGenerateTaperMonotonic(t *testing.T) {
	params := specParams()
	paths, err := Generate(specAnchor(), params, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range paths {
		if !p.MonotonicTaper() {
			t.Errorf("path %d radius profile is not monotonic", i)
		}
		if p.Root().Radius != params.RadiusRoot {
			t.Errorf("path %d root radius = %f, want %f", i, p.Root().Radius, params.RadiusRoot)
		}
	}

	// Swapped radii widen instead, but stay monotonic.
	params.RadiusRoot = 0.01
	params.RadiusTip = 0.08
	paths, err = Generate(specAnchor(), params, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range paths {
		if !p.MonotonicTaper() {
			t.Errorf("widening path %d radius profile is not monotonic", i)
		}
		if p.Tip().Radius <= p.Root().Radius {
			t.Errorf("widening path %d does not widen: %f -> %f", i, p.Root().Radius, p.Tip().Radius)
		}
	}
}

func TestGenerateLengthBounds(t *testing.T) {
	params := specParams()
	paths, err := Generate(specAnchor(), params, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range paths {
		arc := p.ArcLength()
		if arc < params.LengthMin*0.99 || arc > params.LengthMax*1.01 {
			t.Errorf("path %d arc length %f outside [%f, %f]", i, arc, params.LengthMin, params.LengthMax)
		}
	}
}

func TestGenerateFiniteOutput(t *testing.T) {
	params := specParams()
	params.Gravity = 5.0
	params.Wind = math.NewVec3(0.4, 0, -0.2)
	params.WavinessAmplitude = 0.3
	paths, err := Generate(specAnchor(), params, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range paths {
		if !p.IsFinite() {
			t.Errorf("path %d contains non-finite coordinates", i)
		}
	}
}

func TestGenerateNearHorizontalNormal(t *testing.T) {
	// A sideways normal must still produce hanging icicles.
	anchor := NewAnchor(math.NewVec3Zero(), math.NewVec3(1, 0, 0))
	paths, err := Generate(anchor, specParams(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range paths {
		if p.Tip().Position.Y >= p.Root().Position.Y {
			t.Errorf("path %d does not hang: root y %f, tip y %f", i, p.Root().Position.Y, p.Tip().Position.Y)
		}
	}
}

func TestGenerateInvalidParameters(t *testing.T) {
	nan := float32(m.NaN())

	cases := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"count below one", func(p *Parameters) { p.Count = 0 }},
		{"empty length range", func(p *Parameters) { p.LengthMin = 2.0; p.LengthMax = 1.0 }},
		{"negative length", func(p *Parameters) { p.LengthMin = -0.5 }},
		{"zero root radius", func(p *Parameters) { p.RadiusRoot = 0 }},
		{"negative tip radius", func(p *Parameters) { p.RadiusTip = -0.01 }},
		{"negative waviness amplitude", func(p *Parameters) { p.WavinessAmplitude = -1 }},
		{"zero waviness frequency", func(p *Parameters) { p.WavinessFrequency = 0 }},
		{"non-finite gravity", func(p *Parameters) { p.Gravity = nan }},
		{"non-finite wind", func(p *Parameters) { p.Wind.Z = nan }},
	}
	for _, tc := range cases {
		params := specParams()
		tc.mutate(&params)
		if _, err := Generate(specAnchor(), params, 0); !errors.Is(err, core.ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", tc.name, err)
		}
	}
}

func TestGenerateDegenerateAnchor(t *testing.T) {
	anchor := NewAnchor(math.NewVec3Zero(), math.NewVec3Zero())
	paths, err := Generate(anchor, specParams(), 0)
	if !errors.Is(err, core.ErrDegenerateAnchor) {
		t.Fatalf("expected ErrDegenerateAnchor, got %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected zero paths for a degenerate anchor, got %d", len(paths))
	}
}

func TestBatchIsolatesDegenerateAnchors(t *testing.T) {
	anchors := []Anchor{
		NewAnchor(math.NewVec3Zero(), math.NewVec3Zero()), // degenerate
		specAnchor(),
	}
	results, err := GenerateBatch(anchors, specParams())
	if err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !errors.Is(results[0].Err, core.ErrDegenerateAnchor) {
		t.Errorf("result 0: expected ErrDegenerateAnchor, got %v", results[0].Err)
	}
	if results[1].Err != nil {
		t.Errorf("result 1 should be unaffected, got error %v", results[1].Err)
	}
	if len(results[1].Paths) != 3 {
		t.Errorf("result 1: expected 3 paths, got %d", len(results[1].Paths))
	}
}

func TestBatchOrderIndependence(t *testing.T) {
	anchors := make([]Anchor, 6)
	for i := range anchors {
		anchors[i] = NewAnchor(math.NewVec3(float32(i), 0, 0), math.NewVec3(0, -1, 0))
	}
	results, err := GenerateBatch(anchors, specParams())
	if err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}

	// Regenerating anchor 4 alone must match its batch output.
	alone, err := Generate(anchors[4], specParams(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(alone, results[4].Paths) {
		t.Error("standalone regeneration of anchor 4 differs from its batch output")
	}
}

func TestBatchRejectsInvalidParameters(t *testing.T) {
	params := specParams()
	params.Count = 0
	if _, err := GenerateBatch([]Anchor{specAnchor()}, params); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestAnchorFromEdge(t *testing.T) {
	anchor, err := AnchorFromEdge(math.NewVec3(-1, 0, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, -1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !anchor.Position.Compare(math.NewVec3Zero(), 1e-6) {
		t.Errorf("expected midpoint at origin, got %+v", anchor.Position)
	}
	if math.Kabs(anchor.EdgeLength-2.0) > 1e-6 {
		t.Errorf("expected edge length 2, got %f", anchor.EdgeLength)
	}

	p := math.NewVec3(3, 1, -2)
	if _, err := AnchorFromEdge(p, p, math.NewVec3(0, -1, 0)); !errors.Is(err, core.ErrDegenerateAnchor) {
		t.Errorf("expected ErrDegenerateAnchor for a zero-length edge, got %v", err)
	}
}

func TestEdgeJitterStaysNearAnchor(t *testing.T) {
	anchor, err := AnchorFromEdge(math.NewVec3(-0.1, 0, 0), math.NewVec3(0.1, 0, 0), math.NewVec3(0, -1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paths, err := Generate(anchor, specParams(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	limit := jitterFraction*anchor.EdgeLength + 1e-5
	for i, p := range paths {
		if d := p.Root().Position.Distance(anchor.Position); d > limit {
			t.Errorf("path %d root %f away from the anchor, limit %f", i, d, limit)
		}
	}
}
