package cloud

import (
	"math"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/atomcloud/internal/atom"
	"github.com/san-kum/atomcloud/internal/sim"
)

// Recenter scales the per-step drift correction that pulls the cloud's
// mass-weighted centroid back toward the origin.
const Recenter = 1.0

// Below this population the pairwise force loop runs on a single
// goroutine; the chunking overhead dominates for small clouds.
const parallelThreshold = 256

// Cloud owns an ordered population of atoms. After New or any completed
// Step the population is sorted ascending by position z, ties keeping
// their relative order, so renderers can composite back to front without
// re-sorting.
type Cloud struct {
	atoms  []atom.Atom
	forces []mgl32.Vec3
	prev   []atom.Atom
}

// New populates count atoms with positions drawn uniformly from [-1,1] on
// each axis. The random source is owned locally, so equal seeds produce
// bit-identical clouds.
func New(count int, seed int64) *Cloud {
	rng := rand.New(rand.NewSource(seed))

	atoms := make([]atom.Atom, count)
	for i := range atoms {
		atoms[i] = atom.New(mgl32.Vec3{
			uniform(rng),
			uniform(rng),
			uniform(rng),
		})
	}

	return NewFromAtoms(atoms)
}

// NewFromAtoms adopts a prepared population. The slice is owned by the
// cloud afterwards.
func NewFromAtoms(atoms []atom.Atom) *Cloud {
	c := &Cloud{
		atoms:  atoms,
		forces: make([]mgl32.Vec3, len(atoms)),
		prev:   make([]atom.Atom, len(atoms)),
	}
	c.sortByDepth()
	return c
}

func uniform(rng *rand.Rand) float32 {
	return float32(rng.Float64()*2 - 1)
}

// Step advances the cloud by one frame. The phases run strictly in order,
// each completing before the next:
//
//  1. recentring of all positions around the origin
//  2. pairwise force accumulation against an immutable snapshot
//  3. per-atom integration
//  4. stable depth sort
//
// Phase 2 reads exclusively from the snapshot taken after recentring, so
// the update is simultaneous across the population regardless of atom
// order or worker partitioning.
func (c *Cloud) Step(delta float32) {
	c.recenter(delta)
	copy(c.prev, c.atoms)
	c.accumulate(c.prev)
	for i := range c.atoms {
		c.atoms[i].Step(c.forces[i], delta)
	}
	c.sortByDepth()
}

// recenter shifts every position by the negated mass-weighted centroid,
// scaled by delta. Positions only; velocities are untouched.
func (c *Cloud) recenter(delta float32) {
	var shift mgl32.Vec3
	for i := range c.atoms {
		shift = shift.Sub(c.atoms[i].Position.Mul(c.atoms[i].Mass))
	}
	shift = shift.Mul(delta * Recenter)

	for i := range c.atoms {
		c.atoms[i].Position = c.atoms[i].Position.Add(shift)
	}
}

// accumulate sums gravity and magnetism over every ordered pair, reading
// only snapshot state and writing only per-atom force slots. O(n^2); the
// population is small enough that no spatial structure is warranted.
func (c *Cloud) accumulate(prev []atom.Atom) {
	n := len(prev)
	sim.ParallelFor(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			a := &prev[i]
			var force mgl32.Vec3
			for j := range prev {
				if j == i {
					continue
				}
				o := &prev[j]
				force = force.Add(a.Gravity(o)).Add(a.Magnetism(o))
			}
			c.forces[i] = force
		}
	})
}

func (c *Cloud) sortByDepth() {
	sort.SliceStable(c.atoms, func(i, j int) bool {
		return c.atoms[i].Position.Z() < c.atoms[j].Position.Z()
	})
}

// Positions returns a copy of every atom's position in the current depth
// order. Mutating the returned slice does not affect the cloud.
func (c *Cloud) Positions() []mgl32.Vec3 {
	positions := make([]mgl32.Vec3, len(c.atoms))
	for i := range c.atoms {
		positions[i] = c.atoms[i].Position
	}
	return positions
}

// Len returns the population size.
func (c *Cloud) Len() int { return len(c.atoms) }

// Centroid returns the mass-weighted mean position.
func (c *Cloud) Centroid() mgl32.Vec3 {
	if len(c.atoms) == 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	var mass float32
	for i := range c.atoms {
		sum = sum.Add(c.atoms[i].Position.Mul(c.atoms[i].Mass))
		mass += c.atoms[i].Mass
	}
	return sum.Mul(1 / mass)
}

// KineticEnergy returns the total kinetic energy 1/2*sum(m*|v|^2).
func (c *Cloud) KineticEnergy() float64 {
	ke := 0.0
	for i := range c.atoms {
		v := c.atoms[i].Velocity
		ke += 0.5 * float64(c.atoms[i].Mass) * float64(v.Dot(v))
	}
	return ke
}

// Valid reports whether every position and velocity component is finite.
// A coincident-atom force evaluation poisons the state with NaN, which
// this surfaces to the runner's validation.
func (c *Cloud) Valid() bool {
	for i := range c.atoms {
		if !finite(c.atoms[i].Position) || !finite(c.atoms[i].Velocity) {
			return false
		}
	}
	return true
}

func finite(v mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		f := float64(v[i])
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
