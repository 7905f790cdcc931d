package selection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magmavr/icegen/math"
)

const roofOBJ = `# flat roof quad plus one vertical strut
v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
v -1 -2 -1
f 1/1/1 2/2/1 3/3/1 4/4/1
l 1 5
`

func TestReadOBJEdges(t *testing.T) {
	edges, err := ReadOBJ(strings.NewReader(roofOBJ))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	// Four boundary edges from the quad, one from the polyline.
	if len(edges) != 5 {
		t.Fatalf("expected 5 edges, got %d", len(edges))
	}
}

func TestReadOBJDeduplicatesSharedEdges(t *testing.T) {
	twoTris := `v 0 0 0
v 1 0 0
v 0 0 1
v 1 0 1
f 1 2 3
f 2 4 3
`
	edges, err := ReadOBJ(strings.NewReader(twoTris))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	// The diagonal 2-3 is shared and must appear once.
	if len(edges) != 5 {
		t.Fatalf("expected 5 unique edges, got %d", len(edges))
	}
}

func TestReadOBJNegativeIndices(t *testing.T) {
	obj := `v 0 0 0
v 1 0 0
l -2 -1
`
	edges, err := ReadOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if !edges[0].A.Compare(math.NewVec3Zero(), 1e-6) {
		t.Errorf("unexpected edge start %+v", edges[0].A)
	}
}

func TestReadOBJBadReference(t *testing.T) {
	if _, err := ReadOBJ(strings.NewReader("v 0 0 0\nl 1 9\n")); err == nil {
		t.Error("expected an error for an out-of-range reference")
	}
}

func TestAnchorsFilterVerticalEdges(t *testing.T) {
	edges, err := ReadOBJ(strings.NewReader(roofOBJ))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	anchors := Anchors(edges, 0.05)
	// The vertical strut has no horizontal span and is filtered out.
	if len(anchors) != 4 {
		t.Fatalf("expected 4 anchors, got %d", len(anchors))
	}
	for i, a := range anchors {
		if !a.Normal.Compare(math.NewVec3Down(), 1e-6) {
			t.Errorf("anchor %d normal %+v, want straight down", i, a.Normal)
		}
		if a.EdgeLength <= 0 {
			t.Errorf("anchor %d carries no edge length", i)
		}
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roof.obj")
	if err := os.WriteFile(path, []byte(roofOBJ), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	edges, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(edges) != 5 {
		t.Errorf("expected 5 edges, got %d", len(edges))
	}
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
