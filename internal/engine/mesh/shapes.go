package mesh

import (
	"github.com/Faultbox/softmesh/pkg/math"
)

// UnitCube returns the geometry of an axis-aligned cube with side 1
// centered on the origin: 8 vertices and 6 quad faces using the 1-based
// convention of the input contract, wound counter-clockwise seen from
// outside.
func UnitCube() ([]float32, [][]int) {
	vertices := []float32{
		-0.5, -0.5, -0.5, // 1
		0.5, -0.5, -0.5, // 2
		0.5, 0.5, -0.5, // 3
		-0.5, 0.5, -0.5, // 4
		-0.5, -0.5, 0.5, // 5
		0.5, -0.5, 0.5, // 6
		0.5, 0.5, 0.5, // 7
		-0.5, 0.5, 0.5, // 8
	}
	faces := [][]int{
		{1, 4, 3, 2}, // back  (-Z)
		{5, 6, 7, 8}, // front (+Z)
		{1, 2, 6, 5}, // bottom (-Y)
		{3, 4, 8, 7}, // top   (+Y)
		{1, 5, 8, 4}, // left  (-X)
		{2, 3, 7, 6}, // right (+X)
	}
	return vertices, faces
}

// icosahedron vertex positions before normalization, t = golden ratio.
func icosahedronVerts() []math.Vec3 {
	const t = 1.6180339887
	return []math.Vec3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
}

// icosahedronFaces lists the 20 outward-wound triangles, 0-based.
func icosahedronFaces() [][3]int {
	return [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
}

// Icosphere returns an origin-centered sphere approximation of the given
// radius: an icosahedron subdivided the requested number of times, every
// vertex projected onto the sphere. Faces are 1-based triangles per the
// input contract.
func Icosphere(radius float32, subdivisions int) ([]float32, [][]int) {
	verts := icosahedronVerts()
	for i := range verts {
		verts[i] = verts[i].Normalize().Scale(radius)
	}
	tris := icosahedronFaces()

	midpoints := make(map[[2]int]int)
	midpoint := func(a, b int) int {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		m := verts[a].Add(verts[b]).Scale(0.5).Normalize().Scale(radius)
		verts = append(verts, m)
		idx := len(verts) - 1
		midpoints[key] = idx
		return idx
	}

	for s := 0; s < subdivisions; s++ {
		next := make([][3]int, 0, len(tris)*4)
		for _, t := range tris {
			ab := midpoint(t[0], t[1])
			bc := midpoint(t[1], t[2])
			ca := midpoint(t[2], t[0])
			next = append(next,
				[3]int{t[0], ab, ca},
				[3]int{t[1], bc, ab},
				[3]int{t[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		tris = next
	}

	faces := make([][]int, len(tris))
	for i, t := range tris {
		faces[i] = []int{t[0] + 1, t[1] + 1, t[2] + 1}
	}
	return Flatten(verts), faces
}
