// Package selection stands in for the host editor's edge selection: it
// reads edges from a minimal Wavefront OBJ subset (v, l and f
// statements) and derives generation anchors from them.
package selection

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/icicle"
	"github.com/magmavr/icegen/math"
)

// ReadOBJ extracts the unique edges of the polylines (l) and face
// boundaries (f) in the stream. Unsupported statements are skipped.
func ReadOBJ(r io.Reader) ([]icicle.Edge, error) {
	var vertices []math.Vec3
	var edges []icicle.Edge
	seen := make(map[[2]int]struct{})

	addEdge := func(a, b int) {
		if a == b {
			return
		}
		key := [2]int{a, b}
		if b < a {
			key = [2]int{b, a}
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		edges = append(edges, icicle.Edge{A: vertices[a], B: vertices[b]})
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex with %d coordinates", lineNo, len(fields)-1)
			}
			var coords [3]float32
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %v", lineNo, err)
				}
				coords[i] = float32(f)
			}
			vertices = append(vertices, math.NewVec3(coords[0], coords[1], coords[2]))

		case "l", "f":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %s with %d references", lineNo, fields[0], len(fields)-1)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveIndex(ref, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %v", lineNo, err)
				}
				indices = append(indices, idx)
			}
			for i := 1; i < len(indices); i++ {
				addEdge(indices[i-1], indices[i])
			}
			// A face boundary closes back on its first vertex.
			if fields[0] == "f" {
				addEdge(indices[len(indices)-1], indices[0])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}

// LoadOBJ reads edges from the named file.
func LoadOBJ(path string) ([]icicle.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	edges, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edges, nil
}

/**
 * @brief Derives anchors from selected edges. An edge whose horizontal
 * span cannot host a cone of the given minimum radius (vertical or
 * 2D-degenerate) is skipped with a log entry, never an error. The
 * anchors all grow straight down, the way plain ceiling icicles do.
 */
func Anchors(edges []icicle.Edge, minRadius float32) []icicle.Anchor {
	down := math.NewVec3Down()
	anchors := make([]icicle.Anchor, 0, len(edges))
	for i, e := range edges {
		horizontal := math.NewVec2(e.B.X-e.A.X, e.B.Z-e.A.Z).Length()
		if horizontal <= 2*minRadius {
			core.LogDebug("edge %d skipped: horizontal span %.4f below diameter %.4f", i, horizontal, 2*minRadius)
			continue
		}
		anchor, err := icicle.AnchorFromEdge(e.A, e.B, down)
		if err != nil {
			core.LogWarn("edge %d skipped: %v", i, err)
			continue
		}
		anchors = append(anchors, anchor)
	}
	return anchors
}

func resolveIndex(ref string, vertexCount int) (int, error) {
	// Face references may carry texcoord/normal parts: v, v/t, v//n, v/t/n.
	head := strings.SplitN(ref, "/", 2)[0]
	idx, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("bad vertex reference %q: %v", ref, err)
	}
	if idx < 0 {
		idx = vertexCount + idx
	} else {
		idx--
	}
	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("vertex reference %q out of range (%d vertices)", ref, vertexCount)
	}
	return idx, nil
}
