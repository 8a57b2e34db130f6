package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/atomcloud/internal/sim"
)

// CentroidDrift tracks the largest distance the mass-weighted centroid
// strays from the origin over a run. With the recentring correction
// active this should stay near zero for symmetric populations.
type CentroidDrift struct {
	maxDrift float64
}

func NewCentroidDrift() *CentroidDrift { return &CentroidDrift{} }

func (c *CentroidDrift) Name() string { return "centroid_drift" }

func (c *CentroidDrift) Observe(sys sim.System, t float64) {
	var centroid mgl32.Vec3
	if cs, ok := sys.(sim.CentroidSource); ok {
		centroid = cs.Centroid()
	} else {
		positions := sys.Positions()
		if len(positions) == 0 {
			return
		}
		for _, p := range positions {
			centroid = centroid.Add(p)
		}
		centroid = centroid.Mul(1 / float32(len(positions)))
	}

	drift := float64(centroid.Len())
	c.maxDrift = math.Max(c.maxDrift, drift)
}

func (c *CentroidDrift) Value() float64 { return c.maxDrift }

func (c *CentroidDrift) Reset() { c.maxDrift = 0 }

// KineticEnergy averages the system's kinetic energy over a run. Systems
// that do not expose energy report zero.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(sys sim.System, t float64) {
	es, ok := sys.(sim.EnergySource)
	if !ok {
		return
	}
	k.total += es.KineticEnergy()
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// Spread tracks the time-averaged RMS distance of atoms from their mean
// position, a rough measure of how tightly the cloud is bound.
type Spread struct {
	total   float64
	samples int
}

func NewSpread() *Spread { return &Spread{} }

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(sys sim.System, t float64) {
	positions := sys.Positions()
	if len(positions) == 0 {
		return
	}

	var mean mgl32.Vec3
	for _, p := range positions {
		mean = mean.Add(p)
	}
	mean = mean.Mul(1 / float32(len(positions)))

	sum := 0.0
	for _, p := range positions {
		d := p.Sub(mean)
		sum += float64(d.Dot(d))
	}

	s.total += math.Sqrt(sum / float64(len(positions)))
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Spread) Reset() {
	s.total = 0
	s.samples = 0
}
