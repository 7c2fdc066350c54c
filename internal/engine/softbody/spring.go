package softbody

import (
	"github.com/Faultbox/softmesh/internal/engine/rigid"
	"github.com/Faultbox/softmesh/pkg/math"
)

// Spring is a damped Hookean spring between two particles of one body,
// addressed by index into the owning particle set. Rest length is fixed
// at construction.
type Spring struct {
	A, B      int
	Rest      float32
	Stiffness float32
	Damping   float32
}

// buildSprings derives the deduplicated structural spring set from the
// face list. allPairs connects every vertex pair within a face (6 on a
// quad, both diagonals included); otherwise quads contribute only their
// 4 perimeter edges. Triangles always contribute exactly their 3 edges.
func buildSprings(verts []math.Vec3, faces [][]int, allPairs bool, stiffness, damping float32) []Spring {
	connected := make(map[[2]int]bool)
	var springs []Spring

	add := func(a, b int) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		key := [2]int{a, b}
		if connected[key] {
			return
		}
		connected[key] = true
		springs = append(springs, Spring{
			A:         a,
			B:         b,
			Rest:      verts[a].Distance(verts[b]),
			Stiffness: stiffness,
			Damping:   damping,
		})
	}

	for _, face := range faces {
		if len(face) == 3 || allPairs {
			for i := 0; i < len(face); i++ {
				for j := i + 1; j < len(face); j++ {
					add(face[i], face[j])
				}
			}
			continue
		}
		// Pressure policy on quads: perimeter only, shape retention is
		// left to the volume term.
		for i := 0; i < len(face); i++ {
			add(face[i], face[(i+1)%len(face)])
		}
	}

	return springs
}

// applySpringForce applies the damped spring force between two engine
// handles: with d the extension beyond rest length and u the unit vector
// from B to A, A receives -k·d·u - c·((vA-vB)·u)·u and B the opposite.
// Coincident endpoints have no defined direction and exert no force.
func applySpringForce(eng Integrator, ha, hb rigid.Handle, rest, stiffness, damping float32) {
	delta := eng.Position(ha).Sub(eng.Position(hb))
	length := delta.Length()
	if length == 0 {
		return
	}
	u := delta.Scale(1 / length)

	d := length - rest
	vrel := eng.Velocity(ha).Sub(eng.Velocity(hb)).Dot(u)

	force := u.Scale(-stiffness*d - damping*vrel)
	eng.ApplyForce(ha, force)
	eng.ApplyForce(hb, force.Neg())
}
