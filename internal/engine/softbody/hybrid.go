package softbody

import (
	"go.uber.org/zap"

	"github.com/Faultbox/softmesh/internal/engine/mesh"
	"github.com/Faultbox/softmesh/internal/engine/rigid"
	"github.com/Faultbox/softmesh/internal/logger"
	"github.com/Faultbox/softmesh/pkg/math"
)

// ShellID names one of the two surfaces of a hybrid body.
type ShellID int

// Hybrid shells.
const (
	InnerShell ShellID = iota
	OuterShell
)

// ParticleRef addresses a particle inside one shell of a hybrid body.
// Coupling springs cross shells, so a bare index is not enough.
type ParticleRef struct {
	Shell ShellID
	Index int
}

// CouplingSpring links corresponding vertices of the inner and outer
// shells.
type CouplingSpring struct {
	A, B      ParticleRef
	Rest      float32
	Stiffness float32
	Damping   float32
}

// HybridSoftBody approximates a thick elastic membrane: an outer
// pressurized shell over the input mesh, an inner pressurized shell
// offset inward along vertex normals, and one coupling spring per shared
// vertex index. It owns both shells and all coupling springs.
type HybridSoftBody struct {
	inner, outer *SoftBody
	coupling     []CouplingSpring
	offset       float32

	engine   Integrator
	callback rigid.CallbackID
	attached bool
}

// NewHybrid builds a hybrid body from the outer surface geometry (flat
// vertex buffer, 1-based faces). The inner shell reuses the face topology
// on vertices offset inward by cfg.Offset along the outward normals; both
// shells simulate pressure independently, the inner one with the
// all-pairs spring network.
func NewHybrid(vertices []float32, faces [][]int, cfg Config) (*HybridSoftBody, error) {
	outerVerts, outerTopo, err := prepareGeometry(vertices, faces, cfg)
	if err != nil {
		return nil, err
	}

	normals := mesh.OutwardNormals(outerVerts, outerTopo.Triangles)
	innerVerts := make([]math.Vec3, len(outerVerts))
	for i, v := range outerVerts {
		innerVerts[i] = v.Sub(normals[i].Scale(cfg.Offset))
	}
	// Same face list, fresh topology: each shell owns and may reorient
	// its own triangle buffer.
	innerTopo := mesh.BuildTopology(faces, len(innerVerts))

	outer, err := newShell(outerVerts, outerTopo, cfg, Pressure, false)
	if err != nil {
		return nil, err
	}
	inner, err := newShell(innerVerts, innerTopo, cfg, Pressure, true)
	if err != nil {
		return nil, err
	}
	if len(inner.verts) != len(outer.verts) {
		return nil, ErrShellMismatch
	}

	hb := &HybridSoftBody{
		inner:  inner,
		outer:  outer,
		offset: cfg.Offset,
	}

	hb.coupling = make([]CouplingSpring, len(outerVerts))
	for i := range outerVerts {
		hb.coupling[i] = CouplingSpring{
			A:         ParticleRef{Shell: InnerShell, Index: i},
			B:         ParticleRef{Shell: OuterShell, Index: i},
			Rest:      innerVerts[i].Distance(outerVerts[i]),
			Stiffness: cfg.CouplingStiffness,
			Damping:   cfg.CouplingDamping,
		}
	}

	logger.Debug("hybrid soft body built",
		zap.Int("vertices", len(outerVerts)),
		zap.Int("coupling_springs", len(hb.coupling)),
		zap.Float32("offset", cfg.Offset),
	)

	return hb, nil
}

// Attach registers every particle of both shells and a single per-step
// callback covering structural, pressure, and coupling forces.
func (hb *HybridSoftBody) Attach(eng Integrator) error {
	if hb.attached {
		return ErrAlreadyAttached
	}
	hb.engine = eng
	hb.inner.attachParticles(eng)
	hb.outer.attachParticles(eng)
	hb.callback = eng.OnStep(hb.applyForces)
	hb.attached = true
	return nil
}

// Detach unregisters the callback and both shells' particles; idempotent.
func (hb *HybridSoftBody) Detach() {
	if !hb.attached {
		return
	}
	hb.engine.RemoveStepCallback(hb.callback)
	hb.inner.detachParticles()
	hb.outer.detachParticles()
	hb.engine = nil
	hb.attached = false
}

func (hb *HybridSoftBody) applyForces(dt float32) {
	hb.inner.applyForces(dt)
	hb.outer.applyForces(dt)
	for i := range hb.coupling {
		s := &hb.coupling[i]
		applySpringForce(hb.engine,
			hb.shell(s.A.Shell).handles[s.A.Index],
			hb.shell(s.B.Shell).handles[s.B.Index],
			s.Rest, s.Stiffness, s.Damping)
	}
}

func (hb *HybridSoftBody) shell(id ShellID) *SoftBody {
	if id == InnerShell {
		return hb.inner
	}
	return hb.outer
}

// Sync pulls both shells' positions back from the engine.
func (hb *HybridSoftBody) Sync() {
	hb.inner.Sync()
	hb.outer.Sync()
}

// Inner returns the inner shell.
func (hb *HybridSoftBody) Inner() *SoftBody {
	return hb.inner
}

// Outer returns the outer shell.
func (hb *HybridSoftBody) Outer() *SoftBody {
	return hb.outer
}

// CouplingSprings returns the coupling spring set for inspection.
func (hb *HybridSoftBody) CouplingSprings() []CouplingSpring {
	return hb.coupling
}

// Offset returns the configured inner-shell offset distance.
func (hb *HybridSoftBody) Offset() float32 {
	return hb.offset
}

// Vertices returns the outer shell's vertex buffer, the surface a
// renderer displays.
func (hb *HybridSoftBody) Vertices() []float32 {
	return hb.outer.Vertices()
}

// Triangles returns the outer shell's triangle buffer.
func (hb *HybridSoftBody) Triangles() [][3]int {
	return hb.outer.Triangles()
}

// Normals returns the outer shell's vertex normals.
func (hb *HybridSoftBody) Normals() []math.Vec3 {
	return hb.outer.Normals()
}

// Bounds returns the union of both shells' bounding boxes. The outer
// shell normally contains the inner one, but nothing enforces that once
// the simulation deforms them.
func (hb *HybridSoftBody) Bounds() mesh.Bounds {
	a, b := hb.outer.Bounds(), hb.inner.Bounds()
	if b.Min.X < a.Min.X {
		a.Min.X = b.Min.X
	}
	if b.Min.Y < a.Min.Y {
		a.Min.Y = b.Min.Y
	}
	if b.Min.Z < a.Min.Z {
		a.Min.Z = b.Min.Z
	}
	if b.Max.X > a.Max.X {
		a.Max.X = b.Max.X
	}
	if b.Max.Y > a.Max.Y {
		a.Max.Y = b.Max.Y
	}
	if b.Max.Z > a.Max.Z {
		a.Max.Z = b.Max.Z
	}
	return a
}

// SpringSegments returns endpoint positions for every spring of both
// shells plus the coupling springs.
func (hb *HybridSoftBody) SpringSegments() [][2]math.Vec3 {
	segs := hb.outer.SpringSegments()
	segs = append(segs, hb.inner.SpringSegments()...)
	for _, s := range hb.coupling {
		segs = append(segs, [2]math.Vec3{
			hb.shell(s.A.Shell).verts[s.A.Index],
			hb.shell(s.B.Shell).verts[s.B.Index],
		})
	}
	return segs
}

// Shells returns the inner and outer shells.
func (hb *HybridSoftBody) Shells() []*SoftBody {
	return []*SoftBody{hb.inner, hb.outer}
}
