// Package export writes skinned icicle meshes as Wavefront OBJ, the
// lingua franca the extrusion side of a content pipeline can ingest.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/magmavr/icegen/mesh"
)

/**
 * @brief Writes the given meshes as one OBJ document: an object group
 * per mesh, positions, texcoords and normals per vertex, triangular
 * faces with global 1-based indices. Output order follows input order,
 * so a deterministic batch yields a byte-identical file.
 */
func WriteOBJ(w io.Writer, configs []*mesh.Config) error {
	bw := bufio.NewWriter(w)

	offset := 1
	for _, config := range configs {
		if config.IsEmpty() {
			continue
		}
		if _, err := fmt.Fprintf(bw, "o %s\n", config.Name); err != nil {
			return err
		}
		for _, v := range config.Vertices {
			if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z); err != nil {
				return err
			}
		}
		for _, v := range config.Vertices {
			if _, err := fmt.Fprintf(bw, "vt %g %g\n", v.Texcoord.X, v.Texcoord.Y); err != nil {
				return err
			}
		}
		for _, v := range config.Vertices {
			if _, err := fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z); err != nil {
				return err
			}
		}
		for i := 0; i+2 < len(config.Indices); i += 3 {
			a := offset + int(config.Indices[i+0])
			b := offset + int(config.Indices[i+1])
			c := offset + int(config.Indices[i+2])
			if _, err := fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c); err != nil {
				return err
			}
		}
		offset += config.VertexCount()
	}

	return bw.Flush()
}

// SaveOBJ writes the meshes to the named file.
func SaveOBJ(path string, configs []*mesh.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteOBJ(f, configs)
}
