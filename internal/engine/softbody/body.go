// Package softbody models elastic deformable bodies as point masses
// joined by damped springs, with an optional internal pressure force for
// gas-filled shells and a dual-shell hybrid variant for thick membranes.
//
// A body does not integrate motion itself: it attaches its particles to
// an external Integrator, applies forces from a per-step callback during
// the engine's force phase, and syncs positions back after integration.
package softbody

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/softmesh/internal/engine/mesh"
	"github.com/Faultbox/softmesh/internal/engine/rigid"
	"github.com/Faultbox/softmesh/internal/logger"
	"github.com/Faultbox/softmesh/pkg/math"
)

// Construction and lifecycle errors.
var (
	ErrEmptyGeometry       = errors.New("softbody: empty or misaligned vertex buffer")
	ErrNoTriangles         = errors.New("softbody: no valid faces in geometry")
	ErrBadPointMass        = errors.New("softbody: point mass must be positive")
	ErrUnknownType         = errors.New("softbody: unknown body type")
	ErrUnknownPressureMode = errors.New("softbody: unknown pressure mode")
	ErrAlreadyAttached     = errors.New("softbody: body already attached")
	ErrHybridViaNew        = errors.New("softbody: hybrid_shell bodies are built with NewHybrid")
	ErrShellMismatch       = errors.New("softbody: inner and outer shells differ in vertex count")
)

// Integrator is the contract of the external rigid-body engine a body
// attaches to. The engine must run step callbacks in its force phase,
// before it advances point-mass positions for the tick, and must clear
// force accumulators after integrating. rigid.World is the reference
// implementation.
type Integrator interface {
	AddPointMass(pos math.Vec3, mass, radius, damping float32) rigid.Handle
	RemovePointMass(h rigid.Handle)
	Position(h rigid.Handle) math.Vec3
	Velocity(h rigid.Handle) math.Vec3
	ApplyForce(h rigid.Handle, force math.Vec3)
	OnStep(fn func(dt float32)) rigid.CallbackID
	RemoveStepCallback(id rigid.CallbackID)
}

// Body is the surface shared by SoftBody and HybridSoftBody.
type Body interface {
	Attach(eng Integrator) error
	Detach()
	Sync()
	Vertices() []float32
	Triangles() [][3]int
	Normals() []math.Vec3
	Bounds() mesh.Bounds
	SpringSegments() [][2]math.Vec3
	Shells() []*SoftBody
}

// Particle is the per-point-mass state a body registers with the engine.
type Particle struct {
	Mass    float32
	Radius  float32
	Damping float32
}

// SoftBody is a single deformable surface: a particle per mesh vertex, a
// structural spring network, and (for Pressure bodies) a volume force.
type SoftBody struct {
	cfg Config
	typ Type

	verts     []math.Vec3
	topo      *mesh.Topology
	springs   []Spring
	particles []Particle

	normals []math.Vec3
	bounds  mesh.Bounds
	volume  float32
	area    float32

	engine     Integrator
	handles    []rigid.Handle
	callback   rigid.CallbackID
	hasCB      bool
	attached   bool
	scratch    []math.Vec3
	volWarning bool
}

// Build constructs the body variant selected by cfg.Type: a SoftBody for
// MassSpring and Pressure, a HybridSoftBody for HybridShell.
func Build(vertices []float32, faces [][]int, cfg Config) (Body, error) {
	if cfg.Type == HybridShell {
		return NewHybrid(vertices, faces, cfg)
	}
	return New(vertices, faces, cfg)
}

// New creates a MassSpring or Pressure body from a flat vertex buffer
// (x,y,z per vertex) and a 1-based face list of triangles and quads.
func New(vertices []float32, faces [][]int, cfg Config) (*SoftBody, error) {
	if cfg.Type == HybridShell {
		return nil, ErrHybridViaNew
	}
	verts, topo, err := prepareGeometry(vertices, faces, cfg)
	if err != nil {
		return nil, err
	}
	return newShell(verts, topo, cfg, cfg.Type, cfg.Type == MassSpring)
}

// prepareGeometry validates the input contract shared by New and
// NewHybrid.
func prepareGeometry(vertices []float32, faces [][]int, cfg Config) ([]math.Vec3, *mesh.Topology, error) {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return nil, nil, fmt.Errorf("%w: %d coordinates", ErrEmptyGeometry, len(vertices))
	}
	if cfg.PointMass <= 0 {
		return nil, nil, fmt.Errorf("%w: %f", ErrBadPointMass, cfg.PointMass)
	}

	verts := mesh.Unflatten(vertices)
	topo := mesh.BuildTopology(faces, len(verts))
	if len(topo.Triangles) == 0 {
		return nil, nil, ErrNoTriangles
	}
	return verts, topo, nil
}

// newShell builds one simulated surface. allPairs selects the spring
// policy independently of typ because a hybrid's inner shell is a
// Pressure body with the all-pairs network.
func newShell(verts []math.Vec3, topo *mesh.Topology, cfg Config, typ Type, allPairs bool) (*SoftBody, error) {
	b := &SoftBody{
		cfg:     cfg,
		typ:     typ,
		verts:   verts,
		topo:    topo,
		scratch: make([]math.Vec3, len(verts)),
	}

	if typ == Pressure {
		// The pressure law pushes along -p/V times the raw cross normal,
		// which is outward only when triangle normals face the interior.
		// Normalize the winding here instead of masking it per tick.
		if mesh.SignedVolume(verts, topo.Triangles) > 0 {
			topo.FlipTriangles()
			logger.Debug("flipped triangle winding for pressure body",
				zap.Int("triangles", len(topo.Triangles)))
		}
	}

	b.springs = buildSprings(verts, topo.Faces, allPairs, cfg.Stiffness, cfg.Damping)

	b.particles = make([]Particle, len(verts))
	for i := range b.particles {
		b.particles[i] = Particle{
			Mass:    cfg.PointMass,
			Radius:  cfg.PointRadius,
			Damping: cfg.PointDamping,
		}
	}

	b.refreshDerived()

	logger.Debug("soft body built",
		zap.String("type", typ.String()),
		zap.Int("particles", len(b.particles)),
		zap.Int("springs", len(b.springs)),
		zap.Int("triangles", len(topo.Triangles)),
		zap.Int("skipped_faces", topo.Skipped),
		zap.Float32("volume", b.volume),
		zap.Float32("area", b.area),
	)

	return b, nil
}

// Attach registers every particle with the engine and installs the
// per-step force callback. Attaching an attached body is an error.
func (b *SoftBody) Attach(eng Integrator) error {
	if b.attached {
		return ErrAlreadyAttached
	}
	b.attachParticles(eng)
	b.callback = eng.OnStep(b.applyForces)
	b.hasCB = true
	return nil
}

// Detach unregisters the callback and all particles. It is idempotent:
// detaching a detached body is a no-op. Detach must run before the body
// is discarded so the engine holds no stale handles.
func (b *SoftBody) Detach() {
	if !b.attached {
		return
	}
	if b.hasCB {
		b.engine.RemoveStepCallback(b.callback)
		b.hasCB = false
	}
	b.detachParticles()
}

// attachParticles registers the particle set without a callback; the
// hybrid body drives its shells' forces from a single callback of its own.
func (b *SoftBody) attachParticles(eng Integrator) {
	b.engine = eng
	b.handles = make([]rigid.Handle, len(b.verts))
	for i, v := range b.verts {
		p := b.particles[i]
		b.handles[i] = eng.AddPointMass(v, p.Mass, p.Radius, p.Damping)
	}
	b.attached = true
}

func (b *SoftBody) detachParticles() {
	for _, h := range b.handles {
		b.engine.RemovePointMass(h)
	}
	b.handles = nil
	b.engine = nil
	b.attached = false
}

// applyForces is the per-step callback: structural springs first, then
// the pressure term for pressurized bodies.
func (b *SoftBody) applyForces(dt float32) {
	for i := range b.springs {
		s := &b.springs[i]
		applySpringForce(b.engine, b.handles[s.A], b.handles[s.B], s.Rest, s.Stiffness, s.Damping)
	}
	if b.typ == Pressure {
		b.applyPressure()
	}
}

// Sync copies the authoritative particle positions back from the engine
// and recomputes normals, bounds, and the volume/area cache. It is a
// no-op on a detached body.
func (b *SoftBody) Sync() {
	if !b.attached {
		return
	}
	for i, h := range b.handles {
		b.verts[i] = b.engine.Position(h)
	}
	b.refreshDerived()
}

func (b *SoftBody) refreshDerived() {
	tris := b.topo.Triangles
	b.normals = mesh.OutwardNormals(b.verts, tris)
	b.bounds = mesh.ComputeBounds(b.verts)
	signed := mesh.SignedVolume(b.verts, tris)
	if signed < 0 {
		signed = -signed
	}
	b.volume = signed
	b.area = mesh.SurfaceArea(b.verts, tris)
}

// Vertices returns the current vertex buffer, flattened x,y,z per vertex.
// Before any simulation tick it equals the construction input exactly.
func (b *SoftBody) Vertices() []float32 {
	return mesh.Flatten(b.verts)
}

// Triangles returns the triangle index buffer (0-based).
func (b *SoftBody) Triangles() [][3]int {
	return b.topo.Triangles
}

// Normals returns outward per-vertex normals from the last Sync (or from
// construction if the body never ticked).
func (b *SoftBody) Normals() []math.Vec3 {
	return b.normals
}

// Bounds returns the body's axis-aligned bounding box.
func (b *SoftBody) Bounds() mesh.Bounds {
	return b.bounds
}

// Volume returns the cached enclosed volume.
func (b *SoftBody) Volume() float32 {
	return b.volume
}

// Area returns the cached surface area.
func (b *SoftBody) Area() float32 {
	return b.area
}

// Type returns the body's structural model.
func (b *SoftBody) Type() Type {
	return b.typ
}

// Springs returns the structural spring set for inspection.
func (b *SoftBody) Springs() []Spring {
	return b.springs
}

// SpringPairs returns the particle index pair of every structural spring,
// for wireframe overlays.
func (b *SoftBody) SpringPairs() [][2]int {
	pairs := make([][2]int, len(b.springs))
	for i, s := range b.springs {
		pairs[i] = [2]int{s.A, s.B}
	}
	return pairs
}

// SpringSegments returns current endpoint positions of every spring.
func (b *SoftBody) SpringSegments() [][2]math.Vec3 {
	segs := make([][2]math.Vec3, len(b.springs))
	for i, s := range b.springs {
		segs[i] = [2]math.Vec3{b.verts[s.A], b.verts[s.B]}
	}
	return segs
}

// Shells returns the body itself; a hybrid returns its two shells.
func (b *SoftBody) Shells() []*SoftBody {
	return []*SoftBody{b}
}
