package cloud

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/atomcloud/internal/atom"
)

func assertSorted(t *testing.T, positions []mgl32.Vec3) {
	t.Helper()
	for i := 1; i < len(positions); i++ {
		if positions[i-1].Z() > positions[i].Z() {
			t.Fatalf("positions not sorted by z at %d: %f > %f",
				i, positions[i-1].Z(), positions[i].Z())
		}
	}
}

func TestNewSortedAndInRange(t *testing.T) {
	c := New(50, 7)

	positions := c.Positions()
	if len(positions) != 50 {
		t.Fatalf("expected 50 positions, got %d", len(positions))
	}
	assertSorted(t, positions)

	for i, p := range positions {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < -1 || p[axis] > 1 {
				t.Errorf("atom %d axis %d outside [-1,1]: %f", i, axis, p[axis])
			}
		}
	}
}

func TestNewSeedDeterminism(t *testing.T) {
	a := New(30, 99)
	b := New(30, 99)

	pa, pb := a.Positions(), b.Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("equal seeds diverged at atom %d: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestStepDeterminism(t *testing.T) {
	a := New(20, 42)
	b := New(20, 42)

	delta := float32(1.0 / 60.0)
	for i := 0; i < 100; i++ {
		a.Step(delta)
		b.Step(delta)
	}

	pa, pb := a.Positions(), b.Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("runs diverged at atom %d: %v vs %v", i, pa[i], pb[i])
		}
	}
}

// A single atom has no pair partner, so a step applies only the
// recentring shift: p' = p + (-p*m)*delta.
func TestSingleAtomRecentringOnly(t *testing.T) {
	p := mgl32.Vec3{1, 0.5, -0.25}
	c := NewFromAtoms([]atom.Atom{atom.New(p)})

	c.Step(0.5)

	positions := c.Positions()
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}

	want := p.Mul(0.5)
	if positions[0] != want {
		t.Errorf("expected %v, got %v", want, positions[0])
	}
	if !c.Valid() {
		t.Error("single-atom step produced non-finite state")
	}
}

// Two atoms mirrored through the origin exert equal-and-opposite forces
// and see a zero recentring shift, so the centroid stays pinned.
func TestSymmetricPairCentroid(t *testing.T) {
	c := NewFromAtoms([]atom.Atom{
		atom.New(mgl32.Vec3{-1, 0, 0}),
		atom.New(mgl32.Vec3{1, 0, 0}),
	})

	for i := 0; i < 50; i++ {
		c.Step(1.0 / 60.0)
		centroid := c.Centroid()
		for axis := 0; axis < 3; axis++ {
			if math.Abs(float64(centroid[axis])) > 1e-6 {
				t.Fatalf("step %d: centroid drifted to %v", i, centroid)
			}
		}
	}
}

func TestCoincidentPairPoisonsState(t *testing.T) {
	p := mgl32.Vec3{0.1, 0.2, 0.3}
	c := NewFromAtoms([]atom.Atom{atom.New(p), atom.New(p)})

	c.Step(1.0 / 60.0)

	// Division by zero squared distance propagates NaN, by policy.
	if c.Valid() {
		t.Error("expected NaN-poisoned state after coincident-pair step")
	}
}

func TestPositionsIsACopy(t *testing.T) {
	c := New(5, 1)

	positions := c.Positions()
	positions[0] = mgl32.Vec3{1000, 1000, 1000}

	if c.Positions()[0] == (mgl32.Vec3{1000, 1000, 1000}) {
		t.Error("mutating the snapshot leaked into the cloud")
	}
}

func TestStableSortPreservesTieOrder(t *testing.T) {
	// Two atoms sharing a z plane, distinct x so we can track identity.
	first := atom.New(mgl32.Vec3{-0.5, 0, 0})
	second := atom.New(mgl32.Vec3{0.5, 0, 0})
	c := NewFromAtoms([]atom.Atom{first, second})

	positions := c.Positions()
	if positions[0].X() != -0.5 || positions[1].X() != 0.5 {
		t.Errorf("equal-z atoms reordered: %v", positions)
	}
}

func TestLongRunStaysFiniteAndSorted(t *testing.T) {
	c := New(20, 42)

	delta := float32(1.0 / 60.0)
	for i := 0; i < 600; i++ {
		c.Step(delta)
		if !c.Valid() {
			t.Fatalf("step %d: non-finite state", i)
		}
		assertSorted(t, c.Positions())
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	// A population over the parallel threshold must produce exactly the
	// forces of the serial loop; chunked workers read the same snapshot
	// and accumulate in the same j order.
	n := parallelThreshold + 32
	a := New(n, 3)
	b := New(n, 3)

	a.Step(1.0 / 60.0)

	serial := make([]mgl32.Vec3, n)
	b.recenter(1.0 / 60.0)
	copy(b.prev, b.atoms)
	for i := range b.prev {
		self := &b.prev[i]
		var force mgl32.Vec3
		for j := range b.prev {
			if j == i {
				continue
			}
			force = force.Add(self.Gravity(&b.prev[j])).Add(self.Magnetism(&b.prev[j]))
		}
		serial[i] = force
	}
	for i := range b.atoms {
		b.atoms[i].Step(serial[i], 1.0/60.0)
	}
	b.sortByDepth()

	pa, pb := a.Positions(), b.Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("parallel and serial accumulation diverged at %d: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func BenchmarkStep(b *testing.B) {
	for _, n := range []int{10, 20, 50, 100} {
		c := New(n, 42)
		b.Run(fmt.Sprintf("atoms%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				c.Step(1.0 / 60.0)
			}
		})
	}
}
