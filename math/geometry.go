package math

// GeometryGenerateNormals computes per-face normals for a triangle mesh
// and writes them back onto the referenced vertices.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		c := edge1.Cross(edge2)
		if c.LengthSquared() <= K_FLOAT_EPSILON {
			continue
		}
		normal := c.Normalized()

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// GeometryExtents returns the axis-aligned extents and center of the
// provided vertices.
func GeometryExtents(vertices []Vertex3D) (Extents3D, Vec3) {
	if len(vertices) == 0 {
		return Extents3D{}, NewVec3Zero()
	}

	extents := Extents3D{
		Min: vertices[0].Position,
		Max: vertices[0].Position,
	}
	for _, v := range vertices[1:] {
		p := v.Position
		if p.X < extents.Min.X {
			extents.Min.X = p.X
		}
		if p.Y < extents.Min.Y {
			extents.Min.Y = p.Y
		}
		if p.Z < extents.Min.Z {
			extents.Min.Z = p.Z
		}
		if p.X > extents.Max.X {
			extents.Max.X = p.X
		}
		if p.Y > extents.Max.Y {
			extents.Max.Y = p.Y
		}
		if p.Z > extents.Max.Z {
			extents.Max.Z = p.Z
		}
	}

	center := extents.Min.Add(extents.Max).MulScalar(0.5)
	return extents, center
}
