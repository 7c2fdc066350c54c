package mesh

import (
	"github.com/Faultbox/softmesh/pkg/math"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// SignedVolume returns the enclosed volume of a closed triangulated
// surface as the sum of signed tetrahedron volumes a·(b×c)/6 relative to
// the origin. The sign follows the triangle winding: positive when
// normals face away from the interior. Degenerate triangles contribute
// zero. The sum is accumulated in float64 to keep the cancellation error
// below test tolerances.
func SignedVolume(verts []math.Vec3, tris [][3]int) float32 {
	var sum float64
	for _, t := range tris {
		a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
		sum += float64(a.Dot(b.Cross(c))) / 6.0
	}
	return float32(sum)
}

// SurfaceArea returns the total triangle area of the surface.
func SurfaceArea(verts []math.Vec3, tris [][3]int) float32 {
	var sum float64
	for _, t := range tris {
		a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
		cross := b.Sub(a).Cross(c.Sub(a))
		sum += float64(cross.Length()) / 2.0
	}
	return float32(sum)
}

// VertexNormals accumulates each triangle's cross-product normal into its
// three vertices and normalizes the result. The cross product is already
// proportional to triangle area, so large triangles weigh more. Vertices
// not referenced by any triangle get the zero vector.
func VertexNormals(verts []math.Vec3, tris [][3]int) []math.Vec3 {
	normals := make([]math.Vec3, len(verts))
	for _, t := range tris {
		a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		normals[t[0]] = normals[t[0]].Add(n)
		normals[t[1]] = normals[t[1]].Add(n)
		normals[t[2]] = normals[t[2]].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// OutwardNormals returns per-vertex normals oriented away from the
// enclosed interior regardless of the buffer's winding direction. It uses
// the sign of the enclosed volume to detect inward-facing winding.
func OutwardNormals(verts []math.Vec3, tris [][3]int) []math.Vec3 {
	normals := VertexNormals(verts, tris)
	if SignedVolume(verts, tris) < 0 {
		for i := range normals {
			normals[i] = normals[i].Neg()
		}
	}
	return normals
}

// ComputeBounds returns the AABB of a vertex set. An empty set yields the
// zero bounds.
func ComputeBounds(verts []math.Vec3) Bounds {
	if len(verts) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		if v.X < b.Min.X {
			b.Min.X = v.X
		}
		if v.Y < b.Min.Y {
			b.Min.Y = v.Y
		}
		if v.Z < b.Min.Z {
			b.Min.Z = v.Z
		}
		if v.X > b.Max.X {
			b.Max.X = v.X
		}
		if v.Y > b.Max.Y {
			b.Max.Y = v.Y
		}
		if v.Z > b.Max.Z {
			b.Max.Z = v.Z
		}
	}
	return b
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Unflatten converts a flat x,y,z coordinate buffer into vectors.
func Unflatten(coords []float32) []math.Vec3 {
	verts := make([]math.Vec3, len(coords)/3)
	for i := range verts {
		verts[i] = math.Vec3{X: coords[i*3], Y: coords[i*3+1], Z: coords[i*3+2]}
	}
	return verts
}

// Flatten converts vectors back into a flat x,y,z coordinate buffer.
func Flatten(verts []math.Vec3) []float32 {
	coords := make([]float32, len(verts)*3)
	for i, v := range verts {
		coords[i*3] = v.X
		coords[i*3+1] = v.Y
		coords[i*3+2] = v.Z
	}
	return coords
}
