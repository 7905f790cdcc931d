package export

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/magmavr/icegen/icicle"
	"github.com/magmavr/icegen/math"
	"github.com/magmavr/icegen/mesh"
)

func testMesh(t *testing.T, name string) *mesh.Config {
	t.Helper()
	path := icicle.Path{Points: []icicle.PathPoint{
		{Position: math.NewVec3(0, 0, 0), Radius: 0.1},
		{Position: math.NewVec3(0, -0.5, 0), Radius: 0.05},
		{Position: math.NewVec3(0, -1.0, 0), Radius: 0.0},
	}}
	config, err := mesh.Skin(path, mesh.Options{RingVertices: 8, Cap: mesh.CapNgon, Name: name})
	if err != nil {
		t.Fatalf("skin failed: %v", err)
	}
	return config
}

func countPrefix(data, prefix string) int {
	count := 0
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), prefix) {
			count++
		}
	}
	return count
}

func TestWriteOBJCounts(t *testing.T) {
	a := testMesh(t, "a")
	b := testMesh(t, "b")

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, []*mesh.Config{a, b}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()

	if got, want := countPrefix(out, "o "), 2; got != want {
		t.Errorf("object count = %d, want %d", got, want)
	}
	if got, want := countPrefix(out, "v "), a.VertexCount()+b.VertexCount(); got != want {
		t.Errorf("vertex line count = %d, want %d", got, want)
	}
	if got, want := countPrefix(out, "vn "), a.VertexCount()+b.VertexCount(); got != want {
		t.Errorf("normal line count = %d, want %d", got, want)
	}
	if got, want := countPrefix(out, "f "), a.TriangleCount()+b.TriangleCount(); got != want {
		t.Errorf("face line count = %d, want %d", got, want)
	}
}

func TestWriteOBJIndicesAreGlobal(t *testing.T) {
	a := testMesh(t, "a")
	b := testMesh(t, "b")

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, []*mesh.Config{a, b}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	total := a.VertexCount() + b.VertexCount()
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "f ") {
			continue
		}
		for _, ref := range strings.Fields(line)[1:] {
			idx, err := strconv.Atoi(strings.SplitN(ref, "/", 2)[0])
			if err != nil {
				t.Fatalf("unparseable face reference %q: %v", ref, err)
			}
			if idx < 1 || idx > total {
				t.Fatalf("face index %d outside [1, %d]", idx, total)
			}
		}
	}
}

func TestWriteOBJDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	if err := WriteOBJ(&first, []*mesh.Config{testMesh(t, "a")}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := WriteOBJ(&second, []*mesh.Config{testMesh(t, "a")}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two exports of identical meshes differ")
	}
}

func TestSaveOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icicles.obj")
	if err := SaveOBJ(path, []*mesh.Config{testMesh(t, "a")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "o a\n") {
		t.Errorf("unexpected file head %q", string(data[:16]))
	}
}
