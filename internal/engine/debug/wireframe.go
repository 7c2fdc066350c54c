// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/softmesh/internal/engine/mesh"
	"github.com/Faultbox/softmesh/pkg/math"
)

// LineVertices flattens endpoint pairs into GL line vertices, format
// [x, y, z] per vertex, two vertices per segment.
func LineVertices(segments [][2]math.Vec3) []float32 {
	out := make([]float32, 0, len(segments)*6)
	for _, s := range segments {
		out = append(out,
			s[0].X, s[0].Y, s[0].Z,
			s[1].X, s[1].Y, s[1].Z,
		)
	}
	return out
}

// BoundsWireframe creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format [x, y, z] per
// vertex. padding expands the box on all sides.
func BoundsWireframe(b mesh.Bounds, padding float32) []float32 {
	minX := b.Min.X - padding
	minY := b.Min.Y - padding
	minZ := b.Min.Z - padding
	maxX := b.Max.X + padding
	maxY := b.Max.Y + padding
	maxZ := b.Max.Z + padding

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// NormalVectors creates line vertices visualizing per-vertex normals
// scaled to the given length.
func NormalVectors(verts, normals []math.Vec3, length float32) []float32 {
	out := make([]float32, 0, len(verts)*6)
	for i, v := range verts {
		tip := v.AddScaled(normals[i], length)
		out = append(out, v.X, v.Y, v.Z, tip.X, tip.Y, tip.Z)
	}
	return out
}
