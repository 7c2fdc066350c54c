package softbody

import (
	"go.uber.org/zap"

	"github.com/Faultbox/softmesh/internal/logger"
)

// applyPressure applies the per-triangle volume force using the current
// engine positions: with V the enclosed volume, every triangle pushes
// unitNormal · (-pressure/V) · area onto its vertices. In legacy mode the
// full vector goes to each of the three vertices; distributed mode splits
// it in thirds. The winding was normalized at construction so the force
// points away from the interior.
func (b *SoftBody) applyPressure() {
	pos := b.scratch
	for i, h := range b.handles {
		pos[i] = b.engine.Position(h)
	}
	tris := b.topo.Triangles

	var signed float64
	for _, t := range tris {
		a, c1, c2 := pos[t[0]], pos[t[1]], pos[t[2]]
		signed += float64(a.Dot(c1.Cross(c2))) / 6.0
	}
	volume := float32(signed)
	if volume < 0 {
		volume = -volume
	}
	b.volume = volume

	if volume == 0 {
		// Flat or collapsed mesh: the force is undefined, skip the tick
		// instead of dividing by zero.
		if !b.volWarning {
			logger.Warn("zero enclosed volume, pressure force skipped",
				zap.Int("particles", len(b.verts)))
			b.volWarning = true
		}
		return
	}
	b.volWarning = false

	magnitude := -b.cfg.Pressure / volume

	for _, t := range tris {
		pa, pb, pc := pos[t[0]], pos[t[1]], pos[t[2]]
		cross := pb.Sub(pa).Cross(pc.Sub(pa))
		length := cross.Length()
		if length == 0 {
			continue
		}
		area := length / 2
		force := cross.Scale(1 / length).Scale(magnitude * area)
		if b.cfg.PressureMode == PressureDistributed {
			force = force.Scale(1.0 / 3.0)
		}
		b.engine.ApplyForce(b.handles[t[0]], force)
		b.engine.ApplyForce(b.handles[t[1]], force)
		b.engine.ApplyForce(b.handles[t[2]], force)
	}
}
