// Package rigid implements the external point-mass integrator soft bodies
// attach to: a world of point masses with force accumulators, per-step
// callbacks, and a fixed-timestep semi-implicit Euler update. Anything
// that satisfies the same method set can replace it.
package rigid

import (
	"github.com/Faultbox/softmesh/pkg/math"
)

// Handle identifies a point mass registered with a World. Handles are
// never reused while the point mass is alive.
type Handle int

// CallbackID identifies a registered per-step callback.
type CallbackID int

type pointMass struct {
	pos     math.Vec3
	vel     math.Vec3
	force   math.Vec3
	mass    float32
	radius  float32
	damping float32
	alive   bool
}

type stepCallback struct {
	id CallbackID
	fn func(dt float32)
}

// World owns a set of simulated point masses.
type World struct {
	gravity   math.Vec3
	masses    []pointMass
	freeSlots []int
	callbacks []stepCallback
	nextCB    CallbackID
}

// NewWorld creates an empty world with the given gravity.
func NewWorld(gravity math.Vec3) *World {
	return &World{gravity: gravity, nextCB: 1}
}

// AddPointMass registers a point mass and returns its handle. A
// non-positive mass is clamped to a minimal value so the integrator never
// divides by zero.
func (w *World) AddPointMass(pos math.Vec3, mass, radius, damping float32) Handle {
	if mass <= 0 {
		mass = 1e-6
	}
	pm := pointMass{pos: pos, mass: mass, radius: radius, damping: damping, alive: true}

	if n := len(w.freeSlots); n > 0 {
		slot := w.freeSlots[n-1]
		w.freeSlots = w.freeSlots[:n-1]
		w.masses[slot] = pm
		return Handle(slot)
	}
	w.masses = append(w.masses, pm)
	return Handle(len(w.masses) - 1)
}

// RemovePointMass takes a point mass out of the simulation. Removing an
// already-removed handle is a no-op.
func (w *World) RemovePointMass(h Handle) {
	if int(h) < 0 || int(h) >= len(w.masses) || !w.masses[h].alive {
		return
	}
	w.masses[h] = pointMass{}
	w.freeSlots = append(w.freeSlots, int(h))
}

// Position returns the current position of a point mass.
func (w *World) Position(h Handle) math.Vec3 {
	return w.masses[h].pos
}

// SetPosition teleports a point mass, leaving its velocity untouched.
func (w *World) SetPosition(h Handle, pos math.Vec3) {
	w.masses[h].pos = pos
}

// Velocity returns the current velocity of a point mass.
func (w *World) Velocity(h Handle) math.Vec3 {
	return w.masses[h].vel
}

// ApplyForce accumulates a world-space force on a point mass for the
// current step. Accumulators are cleared after every integration, so a
// force never carries into the next substep.
func (w *World) ApplyForce(h Handle, force math.Vec3) {
	if int(h) < 0 || int(h) >= len(w.masses) || !w.masses[h].alive {
		return
	}
	w.masses[h].force = w.masses[h].force.Add(force)
}

// OnStep registers a callback invoked once per Step, in registration
// order, before positions advance.
func (w *World) OnStep(fn func(dt float32)) CallbackID {
	id := w.nextCB
	w.nextCB++
	w.callbacks = append(w.callbacks, stepCallback{id: id, fn: fn})
	return id
}

// RemoveStepCallback unregisters a callback. Unknown IDs are ignored.
func (w *World) RemoveStepCallback(id CallbackID) {
	for i, cb := range w.callbacks {
		if cb.id == id {
			w.callbacks = append(w.callbacks[:i], w.callbacks[i+1:]...)
			return
		}
	}
}

// Step advances the world by dt seconds: the force phase runs every
// registered callback, then each live point mass integrates
// semi-implicit Euler (velocity first, then position) with its linear
// damping applied, and force accumulators reset.
func (w *World) Step(dt float32) {
	for _, cb := range w.callbacks {
		cb.fn(dt)
	}

	for i := range w.masses {
		pm := &w.masses[i]
		if !pm.alive {
			continue
		}
		accel := pm.force.Scale(1 / pm.mass).Add(w.gravity)
		pm.vel = pm.vel.AddScaled(accel, dt)
		pm.vel = pm.vel.Scale(1 / (1 + pm.damping*dt))
		pm.pos = pm.pos.AddScaled(pm.vel, dt)
		pm.force = math.Vec3{}
	}
}

// Count returns the number of live point masses.
func (w *World) Count() int {
	n := 0
	for i := range w.masses {
		if w.masses[i].alive {
			n++
		}
	}
	return n
}
