package atom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Force model constants, tuned for visual effect rather than SI accuracy.
const (
	// Gravitation scales the pairwise attractive force.
	Gravitation = 5.0

	// Permeability scales the pairwise repulsive force between like charges.
	Permeability = 55.0
)

// Atom is a point mass with a position, velocity, mass and charge.
// Position and Velocity are mutated only by Step; the force functions
// are pure.
type Atom struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Mass     float32
	Charge   float32
}

// New returns an Atom at pos with zero velocity and unit mass and charge.
func New(pos mgl32.Vec3) Atom {
	return Atom{
		Position: pos,
		Mass:     1.0,
		Charge:   1.0,
	}
}

// Step advances the atom by one semi-implicit Euler step: the velocity is
// updated from the applied force first, and the new velocity then updates
// the position within the same call. Swapping the two updates would turn
// this into explicit Euler and degrade numerical stability.
func (a *Atom) Step(force mgl32.Vec3, delta float32) {
	a.Velocity = a.Velocity.Add(force.Mul(delta / a.Mass))
	a.Position = a.Position.Add(a.Velocity.Mul(delta))
}

// Gravity returns the attractive force pulling a toward o, with magnitude
// Gravitation*m_a*m_o/r^2.
//
// Coincident atoms (r^2 == 0) divide by zero: the result carries NaN
// components per IEEE-754 and propagates through the caller's pipeline.
// No minimum-distance clamp is applied.
func (a *Atom) Gravity(o *Atom) mgl32.Vec3 {
	dir := o.Position.Sub(a.Position)
	r2 := dir.Dot(dir)
	return dir.Normalize().Mul(Gravitation * a.Mass * o.Mass / r2)
}

// Magnetism returns the force pushing a along the line from o toward a,
// with magnitude Permeability*q_a*q_o/(4*pi*r^2). Like charges repel.
// Shares the coincident-atom degeneracy of Gravity.
func (a *Atom) Magnetism(o *Atom) mgl32.Vec3 {
	dir := a.Position.Sub(o.Position)
	r2 := dir.Dot(dir)
	return dir.Normalize().Mul(Permeability * a.Charge * o.Charge / (4 * math.Pi * r2))
}
