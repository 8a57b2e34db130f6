package sim

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Runner drives a System for a fixed duration, recording per-frame
// position snapshots and folding metrics into the result.
//
// Runner instances are not safe for concurrent use; see Ensemble for
// parallel runs.
type Runner struct {
	sys       System
	metrics   []Metric
	observers []Observer
}

func NewRunner(sys System) *Runner {
	return &Runner{
		sys:       sys,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps the system Duration/Dt times. With ValidateState set, the run
// stops at the first NaN/Inf state and records a StepError instead of
// letting corrupt frames accumulate.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([][]mgl32.Vec3, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, r.sys.Positions())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(r.sys, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.sys, t)
		}

		r.sys.Step(float32(cfg.Dt))
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState {
			if v, ok := r.sys.(Validator); ok && !v.Valid() {
				result.Errors = append(result.Errors, StepError{Step: i, Time: t, Wrapped: ErrInvalidState})
				break
			}
		}

		result.Frames = append(result.Frames, r.sys.Positions())
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the system until Duration elapses or the callback
// returns false. The callback sees the state before each step.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(sys System, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(r.sys, t) {
			return nil
		}

		r.sys.Step(float32(cfg.Dt))
		t += cfg.Dt

		if cfg.ValidateState {
			if v, ok := r.sys.(Validator); ok && !v.Valid() {
				return fmt.Errorf("invalid state at t=%.4f: %w", t, ErrInvalidState)
			}
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
