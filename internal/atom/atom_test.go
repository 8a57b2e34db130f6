package atom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaults(t *testing.T) {
	a := New(mgl32.Vec3{0.5, -0.25, 1})

	if a.Position != (mgl32.Vec3{0.5, -0.25, 1}) {
		t.Errorf("unexpected position: %v", a.Position)
	}
	if a.Velocity != (mgl32.Vec3{}) {
		t.Errorf("expected zero velocity, got %v", a.Velocity)
	}
	if a.Mass != 1.0 {
		t.Errorf("expected mass 1.0, got %f", a.Mass)
	}
	if a.Charge != 1.0 {
		t.Errorf("expected charge 1.0, got %f", a.Charge)
	}
}

// The position update must see the post-update velocity. With v0 = 0 an
// explicit-Euler (position-first) variant would leave the position
// untouched, so this pins the semi-implicit ordering exactly.
func TestStepVelocityFirst(t *testing.T) {
	a := New(mgl32.Vec3{})
	a.Step(mgl32.Vec3{1, 0, 0}, 1.0)

	if a.Velocity != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("expected velocity (1,0,0), got %v", a.Velocity)
	}
	if a.Position != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("expected position (1,0,0), got %v", a.Position)
	}
}

func TestStepScalesByMassAndDelta(t *testing.T) {
	a := New(mgl32.Vec3{})
	a.Mass = 2.0
	a.Step(mgl32.Vec3{4, 0, 0}, 0.5)

	// dv = delta*f/m = 0.5*4/2 = 1, dp = delta*v = 0.5
	if a.Velocity != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("expected velocity (1,0,0), got %v", a.Velocity)
	}
	if a.Position != (mgl32.Vec3{0.5, 0, 0}) {
		t.Errorf("expected position (0.5,0,0), got %v", a.Position)
	}
}

func TestGravityAttracts(t *testing.T) {
	a := New(mgl32.Vec3{-1, 0, 0})
	b := New(mgl32.Vec3{1, 0, 0})

	f := a.Gravity(&b)

	if f.X() <= 0 || f.Y() != 0 || f.Z() != 0 {
		t.Errorf("expected force toward +x, got %v", f)
	}

	// |F| = G*m*m/r^2 with r = 2
	want := float32(Gravitation) / 4
	if got := f.Len(); !approx(got, want, 1e-5) {
		t.Errorf("expected magnitude %f, got %f", want, got)
	}
}

func TestMagnetismRepels(t *testing.T) {
	a := New(mgl32.Vec3{-1, 0, 0})
	b := New(mgl32.Vec3{1, 0, 0})

	f := a.Magnetism(&b)

	if f.X() >= 0 || f.Y() != 0 || f.Z() != 0 {
		t.Errorf("expected force toward -x, got %v", f)
	}

	want := float32(Permeability / (4 * math.Pi * 4))
	if got := f.Len(); !approx(got, want, 1e-5) {
		t.Errorf("expected magnitude %f, got %f", want, got)
	}
}

func TestForcesEqualAndOpposite(t *testing.T) {
	a := New(mgl32.Vec3{0.3, -0.7, 0.1})
	b := New(mgl32.Vec3{-0.4, 0.2, 0.9})

	fg := a.Gravity(&b).Add(b.Gravity(&a))
	fm := a.Magnetism(&b).Add(b.Magnetism(&a))

	for i := 0; i < 3; i++ {
		if !approx(fg[i], 0, 1e-6) {
			t.Errorf("gravity pair sum not zero: %v", fg)
		}
		if !approx(fm[i], 0, 1e-6) {
			t.Errorf("magnetism pair sum not zero: %v", fm)
		}
	}
}

// Coincident atoms divide by a zero squared distance. The documented
// behavior is IEEE-754 NaN propagation, not a panic.
func TestCoincidentAtomsProduceNaN(t *testing.T) {
	a := New(mgl32.Vec3{0.5, 0.5, 0.5})
	b := New(mgl32.Vec3{0.5, 0.5, 0.5})

	for name, f := range map[string]mgl32.Vec3{
		"gravity":   a.Gravity(&b),
		"magnetism": a.Magnetism(&b),
	} {
		for i := 0; i < 3; i++ {
			if !math.IsNaN(float64(f[i])) {
				t.Errorf("%s component %d: expected NaN, got %f", name, i, f[i])
			}
		}
	}
}

func approx(got, want, tol float32) bool {
	return float32(math.Abs(float64(got-want))) <= tol
}
