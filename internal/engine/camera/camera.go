// Package camera provides an orbit camera for the wireframe viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/softmesh/pkg/math"
)

const (
	minDistance = 0.2
	maxDistance = 100.0
	maxPitch    = 1.45 // just short of straight up/down
)

// Orbit is a camera circling a target point at a distance, controlled by
// yaw/pitch angles in radians.
type Orbit struct {
	Target   math.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
}

// New returns an orbit camera looking at the target from a distance.
func New(target math.Vec3, distance float32) *Orbit {
	return &Orbit{
		Target:   target,
		Distance: distance,
		Yaw:      0.6,
		Pitch:    0.4,
	}
}

// Eye returns the camera position in world space.
func (c *Orbit) Eye() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return c.Target.Add(math.Vec3{
		X: c.Distance * cp * float32(gomath.Sin(float64(c.Yaw))),
		Y: c.Distance * float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Distance * cp * float32(gomath.Cos(float64(c.Yaw))),
	})
}

// View returns the view matrix.
func (c *Orbit) View() math.Mat4 {
	return math.LookAt(c.Eye(), c.Target, math.Vec3{Y: 1})
}

// Rotate adjusts yaw and pitch by the given deltas, clamping pitch so the
// camera never flips over the pole.
func (c *Orbit) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Zoom scales the orbit distance; positive deltas move closer.
func (c *Orbit) Zoom(delta float32) {
	c.Distance -= delta
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
	if c.Distance > maxDistance {
		c.Distance = maxDistance
	}
}
