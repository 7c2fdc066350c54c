package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/softmesh/pkg/math"
)

func cubeGeometry(t *testing.T) ([]math.Vec3, [][3]int) {
	t.Helper()
	coords, faces := UnitCube()
	verts := Unflatten(coords)
	topo := BuildTopology(faces, len(verts))
	if topo.Skipped != 0 {
		t.Fatalf("cube topology skipped %d faces", topo.Skipped)
	}
	return verts, topo.Triangles
}

func TestCubeVolume(t *testing.T) {
	verts, tris := cubeGeometry(t)
	v := SignedVolume(verts, tris)
	if gomath.Abs(float64(v)-1.0) > 1e-5 {
		t.Errorf("expected unit cube volume 1.0, got %f", v)
	}
}

func TestCubeSurfaceArea(t *testing.T) {
	verts, tris := cubeGeometry(t)
	a := SurfaceArea(verts, tris)
	if gomath.Abs(float64(a)-6.0) > 1e-5 {
		t.Errorf("expected unit cube area 6.0, got %f", a)
	}
}

func TestSignedVolumeFollowsWinding(t *testing.T) {
	verts, faces := UnitCube()
	topo := BuildTopology(faces, len(verts)/3)
	vs := Unflatten(verts)

	if SignedVolume(vs, topo.Triangles) <= 0 {
		t.Error("outward-wound cube should have positive signed volume")
	}
	topo.FlipTriangles()
	if SignedVolume(vs, topo.Triangles) >= 0 {
		t.Error("inward-wound cube should have negative signed volume")
	}
}

func TestDegenerateTrianglesContributeNothing(t *testing.T) {
	verts := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}
	tris := [][3]int{{0, 1, 2}} // collinear

	if v := SignedVolume(verts, tris); v != 0 {
		t.Errorf("degenerate triangle should add no volume, got %f", v)
	}
	if a := SurfaceArea(verts, tris); a != 0 {
		t.Errorf("degenerate triangle should add no area, got %f", a)
	}
	for i, n := range VertexNormals(verts, tris) {
		if n != (math.Vec3{}) {
			t.Errorf("vertex %d normal should be zero, got %+v", i, n)
		}
	}
}

func TestOutwardNormalsPointAway(t *testing.T) {
	verts, tris := cubeGeometry(t)
	normals := OutwardNormals(verts, tris)
	for i, n := range normals {
		if n.Dot(verts[i]) <= 0 {
			t.Errorf("vertex %d: normal %+v does not point away from center", i, n)
		}
	}

	// Same property must hold after a winding flip
	flipped := make([][3]int, len(tris))
	for i, tri := range tris {
		flipped[i] = [3]int{tri[0], tri[2], tri[1]}
	}
	for i, n := range OutwardNormals(verts, flipped) {
		if n.Dot(verts[i]) <= 0 {
			t.Errorf("flipped winding, vertex %d: normal %+v points inward", i, n)
		}
	}
}

func TestIcosphereGeometry(t *testing.T) {
	const radius = 1.0
	coords, faces := Icosphere(radius, 2)
	verts := Unflatten(coords)
	topo := BuildTopology(faces, len(verts))

	if topo.Skipped != 0 {
		t.Fatalf("icosphere topology skipped %d faces", topo.Skipped)
	}

	for i, v := range verts {
		if gomath.Abs(float64(v.Length())-radius) > 1e-5 {
			t.Fatalf("vertex %d not on sphere: |v| = %f", i, v.Length())
		}
	}

	// Inscribed polyhedron: volume below 4/3·π·r³ but converging toward it
	v := float64(SignedVolume(verts, topo.Triangles))
	ideal := 4.0 / 3.0 * gomath.Pi
	if v <= 0 {
		t.Fatalf("icosphere should be outward wound, volume %f", v)
	}
	if v >= ideal || v < ideal*0.93 {
		t.Errorf("volume %f out of expected range (%f..%f)", v, ideal*0.93, ideal)
	}

	a := float64(SurfaceArea(verts, topo.Triangles))
	idealArea := 4.0 * gomath.Pi
	if a >= idealArea || a < idealArea*0.93 {
		t.Errorf("area %f out of expected range (%f..%f)", a, idealArea*0.93, idealArea)
	}
}

func TestComputeBounds(t *testing.T) {
	verts := []math.Vec3{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -4, Z: 5}, {X: 0, Y: 0, Z: -2}}
	b := ComputeBounds(verts)

	if b.Min != (math.Vec3{X: -1, Y: -4, Z: -2}) {
		t.Errorf("min: got %+v", b.Min)
	}
	if b.Max != (math.Vec3{X: 3, Y: 2, Z: 5}) {
		t.Errorf("max: got %+v", b.Max)
	}
	c := b.Center()
	if c != (math.Vec3{X: 1, Y: -1, Z: 1.5}) {
		t.Errorf("center: got %+v", c)
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	coords := []float32{1, 2, 3, 4, 5, 6}
	out := Flatten(Unflatten(coords))
	if len(out) != len(coords) {
		t.Fatalf("length mismatch: %d vs %d", len(out), len(coords))
	}
	for i := range coords {
		if out[i] != coords[i] {
			t.Errorf("index %d: %f != %f", i, out[i], coords[i])
		}
	}
}
