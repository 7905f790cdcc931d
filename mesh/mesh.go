// Package mesh turns icicle center-axis paths into triangle meshes
// ready for extrusion into a host scene: one ring of vertices per path
// point, skinned with quads split into triangles, tip and root capped.
package mesh

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/icicle"
	"github.com/magmavr/icegen/math"
)

// CapMode selects how the attachment end of an icicle is filled.
type CapMode int

const (
	// CapNgon fills the root with a centroid fan.
	CapNgon CapMode = iota
	// CapNone leaves the root open.
	CapNone
	// CapFan fills the root with a fan from the first ring vertex.
	CapFan
)

const (
	MinRingVertices = 3
	MaxRingVertices = 24

	// Radii below this collapse a ring to a single point.
	tipEpsilon float32 = 1e-5
)

// Options controls skinning of a single path.
type Options struct {
	/** @brief Number of vertices per ring. Zero selects the default of 8. */
	RingVertices int
	/** @brief How the root end is filled. */
	Cap CapMode
	/** @brief The Name of the mesh. Empty generates one. */
	Name string
}

/**
 * @brief A skinned icicle mesh. Mirrors what the extrusion consumer
 * needs: positions, normals, texcoords and triangle indices, plus the
 * extents used to place it.
 */
type Config struct {
	/** @brief The Name of the mesh. */
	Name string
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of triangle Indices. */
	Indices []uint32

	Center  math.Vec3
	Extents math.Extents3D
}

// VertexCount returns the number of vertices.
func (c *Config) VertexCount() int {
	return len(c.Vertices)
}

// TriangleCount returns the number of triangles.
func (c *Config) TriangleCount() int {
	return len(c.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (c *Config) IsEmpty() bool {
	return len(c.Vertices) == 0
}

/**
 * @brief Skins a single path into a triangle mesh. The path must have
 * at least two points and finite coordinates; both are guaranteed by
 * the generator's output contract, so violations are caller bugs and
 * reported as invalid parameters.
 */
func Skin(path icicle.Path, opts Options) (*Config, error) {
	if len(path.Points) < 2 {
		return nil, fmt.Errorf("%w: path needs at least 2 points, got %d", core.ErrInvalidParameter, len(path.Points))
	}
	if !path.IsFinite() {
		return nil, fmt.Errorf("%w: path contains non-finite coordinates", core.ErrInvalidParameter)
	}

	ringVerts := opts.RingVertices
	if ringVerts == 0 {
		ringVerts = 8
	}
	if ringVerts < MinRingVertices || ringVerts > MaxRingVertices {
		clamped := math.Clamp(ringVerts, MinRingVertices, MaxRingVertices)
		core.LogWarn("ring vertex count %d outside [%d, %d], clamping to %d", ringVerts, MinRingVertices, MaxRingVertices, clamped)
		ringVerts = clamped
	}

	name := opts.Name
	if name == "" {
		name = "icicle-" + uuid.New().String()
	}

	config := &Config{Name: name}

	// One ring per point. Rings lie in the horizontal plane; a radius
	// near zero collapses the ring to its center point.
	pointCount := len(path.Points)
	ringStart := make([]uint32, pointCount)
	collapsed := make([]bool, pointCount)
	for i, pt := range path.Points {
		ringStart[i] = uint32(len(config.Vertices))
		depth := float32(i) / float32(pointCount-1)
		radius := pt.Radius
		if radius < tipEpsilon {
			// Only endpoints may pinch shut; a zero mid-path ring
			// would produce degenerate wall quads.
			if i == 0 || i == pointCount-1 {
				collapsed[i] = true
				config.Vertices = append(config.Vertices, math.Vertex3D{
					Position: pt.Position,
					Texcoord: math.NewVec2(0.5, depth),
				})
				continue
			}
			radius = tipEpsilon
		}
		for j := 0; j < ringVerts; j++ {
			angle := math.K_PI_2 * float32(j) / float32(ringVerts)
			offset := math.NewVec3(math.Kcos(angle)*radius, 0, math.Ksin(angle)*radius)
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: pt.Position.Add(offset),
				Texcoord: math.NewVec2(float32(j)/float32(ringVerts), depth),
			})
		}
	}

	// Skin the walls.
	for i := 0; i < pointCount-1; i++ {
		switch {
		case collapsed[i] && collapsed[i+1]:
			// Nothing to skin between two points.
		case collapsed[i+1]:
			tip := ringStart[i+1]
			for j := 0; j < ringVerts; j++ {
				a := ringStart[i] + uint32(j)
				b := ringStart[i] + uint32((j+1)%ringVerts)
				config.Indices = append(config.Indices, a, b, tip)
			}
		case collapsed[i]:
			root := ringStart[i]
			for j := 0; j < ringVerts; j++ {
				a := ringStart[i+1] + uint32(j)
				b := ringStart[i+1] + uint32((j+1)%ringVerts)
				config.Indices = append(config.Indices, root, b, a)
			}
		default:
			for j := 0; j < ringVerts; j++ {
				a := ringStart[i] + uint32(j)
				b := ringStart[i] + uint32((j+1)%ringVerts)
				c := ringStart[i+1] + uint32((j+1)%ringVerts)
				d := ringStart[i+1] + uint32(j)
				config.Indices = append(config.Indices, a, b, c)
				config.Indices = append(config.Indices, a, c, d)
			}
		}
	}

	// Root cap.
	if !collapsed[0] {
		switch opts.Cap {
		case CapNone:
		case CapFan:
			first := ringStart[0]
			for j := 1; j < ringVerts-1; j++ {
				config.Indices = append(config.Indices, first, first+uint32(j+1), first+uint32(j))
			}
		case CapNgon:
			centroid := uint32(len(config.Vertices))
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: path.Root().Position,
				Texcoord: math.NewVec2(0.5, 0),
			})
			for j := 0; j < ringVerts; j++ {
				a := ringStart[0] + uint32(j)
				b := ringStart[0] + uint32((j+1)%ringVerts)
				config.Indices = append(config.Indices, centroid, a, b)
			}
		}
	}

	// Tip cap. A collapsed tip is already closed by the wall fan.
	last := pointCount - 1
	if !collapsed[last] {
		centroid := uint32(len(config.Vertices))
		config.Vertices = append(config.Vertices, math.Vertex3D{
			Position: path.Tip().Position,
			Texcoord: math.NewVec2(0.5, 1),
		})
		for j := 0; j < ringVerts; j++ {
			a := ringStart[last] + uint32(j)
			b := ringStart[last] + uint32((j+1)%ringVerts)
			config.Indices = append(config.Indices, centroid, b, a)
		}
	}

	math.GeometryGenerateNormals(config.Vertices, config.Indices)
	config.Extents, config.Center = math.GeometryExtents(config.Vertices)

	return config, nil
}

// SkinBatch skins every path of every successful batch result. Failed
// anchors were already reported by the generator and are passed over.
func SkinBatch(results []icicle.BatchResult, opts Options) ([]*Config, error) {
	var configs []*Config
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		for pi, path := range result.Paths {
			perPath := opts
			if opts.Name != "" {
				perPath.Name = fmt.Sprintf("%s-%d-%d", opts.Name, result.AnchorIndex, pi)
			}
			config, err := Skin(path, perPath)
			if err != nil {
				return nil, err
			}
			core.StatsGeometry(int32(config.VertexCount()), int32(config.TriangleCount()))
			configs = append(configs, config)
		}
	}
	return configs, nil
}
