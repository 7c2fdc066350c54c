package debug

import (
	"testing"

	"github.com/Faultbox/softmesh/internal/engine/mesh"
	"github.com/Faultbox/softmesh/pkg/math"
)

func TestLineVertices(t *testing.T) {
	segs := [][2]math.Vec3{
		{{X: 0, Y: 1, Z: 2}, {X: 3, Y: 4, Z: 5}},
	}
	out := LineVertices(segs)
	want := []float32{0, 1, 2, 3, 4, 5}
	if len(out) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, out[i], want[i])
		}
	}
}

func TestBoundsWireframe(t *testing.T) {
	b := mesh.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	out := BoundsWireframe(b, 0)
	if len(out) != 24*3 {
		t.Fatalf("expected 72 floats (12 edges), got %d", len(out))
	}
	for i, v := range out {
		if v != 1 && v != -1 {
			t.Errorf("coordinate %d: got %f, want ±1", i, v)
		}
	}

	padded := BoundsWireframe(b, 0.5)
	for i, v := range padded {
		if v != 1.5 && v != -1.5 {
			t.Errorf("padded coordinate %d: got %f, want ±1.5", i, v)
		}
	}
}

func TestNormalVectors(t *testing.T) {
	verts := []math.Vec3{{X: 1}}
	normals := []math.Vec3{{X: 1}}
	out := NormalVectors(verts, normals, 0.25)
	if len(out) != 6 {
		t.Fatalf("expected 6 floats, got %d", len(out))
	}
	if out[3] != 1.25 {
		t.Errorf("tip x: got %f, want 1.25", out[3])
	}
}
