package softbody

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/softmesh/internal/engine/mesh"
)

func sphereHybrid(t *testing.T) *HybridSoftBody {
	t.Helper()
	verts, faces := mesh.Icosphere(1, 1)
	cfg := DefaultConfig()
	cfg.Type = HybridShell
	hb, err := NewHybrid(verts, faces, cfg)
	if err != nil {
		t.Fatalf("NewHybrid failed: %v", err)
	}
	return hb
}

func TestHybridCouplingSprings(t *testing.T) {
	hb := sphereHybrid(t)
	n := len(mesh.Unflatten(hb.Vertices()))

	// Exactly one coupling spring per shared vertex index
	if len(hb.CouplingSprings()) != n {
		t.Fatalf("expected %d coupling springs, got %d", n, len(hb.CouplingSprings()))
	}

	inner := mesh.Unflatten(hb.Inner().Vertices())
	outer := mesh.Unflatten(hb.Outer().Vertices())
	for i, s := range hb.CouplingSprings() {
		if s.A != (ParticleRef{Shell: InnerShell, Index: i}) {
			t.Errorf("spring %d: inner endpoint %+v", i, s.A)
		}
		if s.B != (ParticleRef{Shell: OuterShell, Index: i}) {
			t.Errorf("spring %d: outer endpoint %+v", i, s.B)
		}

		want := inner[i].Distance(outer[i])
		if gomath.Abs(float64(s.Rest-want)) > 1e-6 {
			t.Errorf("spring %d: rest %f, endpoint distance %f", i, s.Rest, want)
		}
		// Offset along a unit normal: rest length equals the offset
		if gomath.Abs(float64(s.Rest-hb.Offset())) > 1e-5 {
			t.Errorf("spring %d: rest %f, expected ≈ offset %f", i, s.Rest, hb.Offset())
		}
	}
}

func TestHybridInnerShellIsSmaller(t *testing.T) {
	hb := sphereHybrid(t)
	if hb.Inner().Volume() >= hb.Outer().Volume() {
		t.Errorf("inner volume %f should be below outer %f",
			hb.Inner().Volume(), hb.Outer().Volume())
	}
}

func TestHybridSpringPolicies(t *testing.T) {
	verts, faces := mesh.UnitCube()
	cfg := DefaultConfig()
	cfg.Type = HybridShell
	hb, err := NewHybrid(verts, faces, cfg)
	if err != nil {
		t.Fatalf("NewHybrid failed: %v", err)
	}

	// Outer shell follows the pressure policy: perimeter edges only
	if n := len(hb.Outer().Springs()); n != 12 {
		t.Errorf("outer shell: expected 12 springs, got %d", n)
	}
	// Inner shell uses the all-pairs network for rigidity
	if n := len(hb.Inner().Springs()); n != 24 {
		t.Errorf("inner shell: expected 24 springs, got %d", n)
	}
	assertNoDuplicatePairs(t, hb.Inner().Springs())
	assertNoDuplicatePairs(t, hb.Outer().Springs())
}

func TestHybridAttachDetach(t *testing.T) {
	hb := sphereHybrid(t)
	n := len(mesh.Unflatten(hb.Vertices()))
	eng := newFakeEngine()

	if err := hb.Attach(eng); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if eng.liveCount() != 2*n {
		t.Errorf("expected %d registered particles across shells, got %d", 2*n, eng.liveCount())
	}
	// One callback for the whole hybrid body, not one per shell
	if len(eng.callbacks) != 1 {
		t.Errorf("expected a single step callback, got %d", len(eng.callbacks))
	}

	if err := hb.Attach(eng); err != ErrAlreadyAttached {
		t.Errorf("second Attach: got %v, want ErrAlreadyAttached", err)
	}

	hb.Detach()
	if eng.liveCount() != 0 {
		t.Errorf("expected 0 particles after detach, got %d", eng.liveCount())
	}
	if len(eng.callbacks) != 0 {
		t.Errorf("expected no callbacks after detach, got %d", len(eng.callbacks))
	}
	hb.Detach() // idempotent
}

func TestHybridForcePhaseBalancedAtRest(t *testing.T) {
	// At construction the springs are at rest, so only the two pressure
	// terms act; on a centered sphere every outer-shell force points
	// outward from the origin.
	hb := sphereHybrid(t)
	outer := mesh.Unflatten(hb.Outer().Vertices())
	n := len(outer)

	eng := newFakeEngine()
	if err := hb.Attach(eng); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	eng.forcePhase(1.0 / 120)

	// Inner particles registered first, then outer
	for i := 0; i < n; i++ {
		f := eng.force[n+i]
		if f.Dot(outer[i]) <= 0 {
			t.Errorf("outer vertex %d: force %+v not outward", i, f)
		}
	}
}

func TestHybridSegmentsIncludeCoupling(t *testing.T) {
	hb := sphereHybrid(t)
	n := len(hb.CouplingSprings())
	want := len(hb.Inner().Springs()) + len(hb.Outer().Springs()) + n
	if got := len(hb.SpringSegments()); got != want {
		t.Errorf("expected %d wireframe segments, got %d", want, got)
	}
	if len(hb.Shells()) != 2 {
		t.Errorf("expected 2 shells, got %d", len(hb.Shells()))
	}
}
