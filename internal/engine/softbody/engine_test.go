package softbody

import (
	"github.com/Faultbox/softmesh/internal/engine/rigid"
	"github.com/Faultbox/softmesh/pkg/math"
)

// fakeEngine records registrations and applied forces without
// integrating, so tests can inspect the exact force output of one tick.
type fakeEngine struct {
	pos       []math.Vec3
	vel       []math.Vec3
	force     []math.Vec3
	alive     []bool
	callbacks map[rigid.CallbackID]func(dt float32)
	nextCB    rigid.CallbackID
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		callbacks: make(map[rigid.CallbackID]func(dt float32)),
		nextCB:    1,
	}
}

func (f *fakeEngine) AddPointMass(pos math.Vec3, mass, radius, damping float32) rigid.Handle {
	f.pos = append(f.pos, pos)
	f.vel = append(f.vel, math.Vec3{})
	f.force = append(f.force, math.Vec3{})
	f.alive = append(f.alive, true)
	return rigid.Handle(len(f.pos) - 1)
}

func (f *fakeEngine) RemovePointMass(h rigid.Handle) {
	f.alive[h] = false
}

func (f *fakeEngine) Position(h rigid.Handle) math.Vec3 { return f.pos[h] }
func (f *fakeEngine) Velocity(h rigid.Handle) math.Vec3 { return f.vel[h] }

func (f *fakeEngine) ApplyForce(h rigid.Handle, force math.Vec3) {
	f.force[h] = f.force[h].Add(force)
}

func (f *fakeEngine) OnStep(fn func(dt float32)) rigid.CallbackID {
	id := f.nextCB
	f.nextCB++
	f.callbacks[id] = fn
	return id
}

func (f *fakeEngine) RemoveStepCallback(id rigid.CallbackID) {
	delete(f.callbacks, id)
}

// forcePhase runs all registered callbacks, as an engine's force phase
// would, leaving the accumulated forces in place for inspection.
func (f *fakeEngine) forcePhase(dt float32) {
	for _, fn := range f.callbacks {
		fn(dt)
	}
}

func (f *fakeEngine) liveCount() int {
	n := 0
	for _, a := range f.alive {
		if a {
			n++
		}
	}
	return n
}
