// Package sim provides the primitives that drive a particle system
// through a run:
//
//   - [System]: steppable population exposing position snapshots
//   - [Metric]: per-step scalar accumulator
//   - [Observer]: per-step callback
//   - [Runner]: orchestrates a fixed-duration run
//   - [Ensemble]: parallel seeded runs
//
// # Example
//
//	c := cloud.New(20, 42)
//	r := sim.NewRunner(c)
//	result, _ := r.Run(ctx, sim.DefaultConfig())
//
// # Thread Safety
//
// Runner instances are NOT thread-safe. For parallel simulations, use
// the [Ensemble] type, which gives every run its own System.
package sim
