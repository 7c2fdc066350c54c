package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/softmesh/pkg/math"
)

func TestEyeStaysAtDistance(t *testing.T) {
	c := New(math.Vec3{}, 5)
	for i := 0; i < 10; i++ {
		c.Rotate(0.3, 0.1)
		d := float64(c.Eye().Distance(c.Target))
		if gomath.Abs(d-5) > 1e-4 {
			t.Fatalf("after rotation %d: eye distance %f, want 5", i, d)
		}
	}
}

func TestPitchClamped(t *testing.T) {
	c := New(math.Vec3{}, 5)
	c.Rotate(0, 10)
	if c.Pitch > maxPitch {
		t.Errorf("pitch %f exceeds clamp %f", c.Pitch, maxPitch)
	}
	c.Rotate(0, -20)
	if c.Pitch < -maxPitch {
		t.Errorf("pitch %f below clamp %f", c.Pitch, -maxPitch)
	}
}

func TestZoomClamped(t *testing.T) {
	c := New(math.Vec3{}, 5)
	c.Zoom(1000)
	if c.Distance < minDistance {
		t.Errorf("distance %f below minimum", c.Distance)
	}
	c.Zoom(-1000)
	if c.Distance > maxDistance {
		t.Errorf("distance %f above maximum", c.Distance)
	}
}
