// Package mesh provides surface-mesh topology and geometry utilities:
// face normalization, triangle buffers, vertex normals, and the surface
// integrals (volume, area) the soft-body model is built on.
package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/softmesh/internal/logger"
)

// Topology holds the normalized face data of a surface mesh. Faces and
// Triangles use 0-based vertex indices regardless of the input convention.
type Topology struct {
	Faces     [][]int  // validated faces, arity 3 or 4
	Triangles [][3]int // flat triangle buffer derived from Faces
	Skipped   int      // malformed input faces dropped during normalization
}

// BuildTopology normalizes a 1-based face list against a vertex count.
// Triangles pass through unchanged; a quad [p0,p1,p2,p3] is split into
// [p0,p1,p2] and [p2,p3,p0]. Faces with any other vertex count, or with
// indices outside [1, vertexCount], are skipped and logged rather than
// corrupting the buffer.
func BuildTopology(faces [][]int, vertexCount int) *Topology {
	topo := &Topology{}

	for fi, face := range faces {
		if len(face) != 3 && len(face) != 4 {
			logger.Warn("skipping malformed face",
				zap.Int("face", fi),
				zap.Int("vertices", len(face)),
			)
			topo.Skipped++
			continue
		}

		valid := true
		for _, idx := range face {
			if idx < 1 || idx > vertexCount {
				logger.Warn("skipping face with out-of-range vertex",
					zap.Int("face", fi),
					zap.Int("index", idx),
					zap.Int("vertex_count", vertexCount),
				)
				valid = false
				break
			}
		}
		if !valid {
			topo.Skipped++
			continue
		}

		norm := make([]int, len(face))
		for i, idx := range face {
			norm[i] = idx - 1
		}
		topo.Faces = append(topo.Faces, norm)

		topo.Triangles = append(topo.Triangles, [3]int{norm[0], norm[1], norm[2]})
		if len(norm) == 4 {
			topo.Triangles = append(topo.Triangles, [3]int{norm[2], norm[3], norm[0]})
		}
	}

	return topo
}

// FlipTriangles reverses the winding of every triangle in place by
// swapping the second and third indices.
func (t *Topology) FlipTriangles() {
	for i := range t.Triangles {
		t.Triangles[i][1], t.Triangles[i][2] = t.Triangles[i][2], t.Triangles[i][1]
	}
}
