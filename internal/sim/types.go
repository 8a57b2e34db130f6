package sim

import "github.com/go-gl/mathgl/mgl32"

// System is a steppable particle system. Step advances the population by
// one frame; Positions returns a read-only, order-preserving snapshot.
type System interface {
	Step(delta float32)
	Positions() []mgl32.Vec3
}

// Validator reports whether a system's state is still finite.
type Validator interface {
	Valid() bool
}

// EnergySource exposes the kinetic energy of a system. Optional.
type EnergySource interface {
	KineticEnergy() float64
}

// CentroidSource exposes the mass-weighted centroid of a system. Optional.
type CentroidSource interface {
	Centroid() mgl32.Vec3
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(sys System, t float64)
	Value() float64
	Reset()
}

// Observer is notified before every step.
type Observer interface {
	OnStep(sys System, t float64)
}

// Config holds the parameters of a single run.
type Config struct {
	Atoms         int
	Seed          int64
	Dt            float64
	Duration      float64
	ValidateState bool
}

// DefaultConfig returns a 20-atom run at a 60 Hz timestep.
func DefaultConfig() Config {
	return Config{
		Atoms:         20,
		Seed:          42,
		Dt:            1.0 / 60.0,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Result collects the output of a run. Frames[i] is the position snapshot
// after i steps, in depth order; Frames[0] is the initial population.
type Result struct {
	Frames     [][]mgl32.Vec3
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
