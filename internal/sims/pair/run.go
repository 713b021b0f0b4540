package pair

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"twobody/internal/monitoring"
	"twobody/internal/wavefunc"
)

// Outcome classifies how a run ended.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
	OutcomeFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFault:
		return "fault"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Frame is one output snapshot. Densities for particles not selected with
// WithParticles are nil.
type Frame struct {
	RunID     uuid.UUID
	Index     int
	Step      int
	Time      float64
	Particle1 *ProbabilityDensity
	Particle2 *ProbabilityDensity
	Norm      float64
}

// Densities returns the non-nil densities in particle order.
func (f Frame) Densities() []*ProbabilityDensity {
	out := make([]*ProbabilityDensity, 0, 2)
	if f.Particle1 != nil {
		out = append(out, f.Particle1)
	}
	if f.Particle2 != nil {
		out = append(out, f.Particle2)
	}
	return out
}

// Sink receives frames as they become due.
type Sink interface {
	WriteFrame(ctx context.Context, f Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, f Frame) error

// WriteFrame calls fn.
func (fn SinkFunc) WriteFrame(ctx context.Context, f Frame) error { return fn(ctx, f) }

// ProgressFunc is called after every completed step.
type ProgressFunc func(step, total int)

// Result summarizes a finished run.
type Result struct {
	RunID       uuid.UUID
	Outcome     Outcome
	Steps       int
	Frames      int
	NormHistory []float64
	Elapsed     time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink routes frames to s.
func WithSink(s Sink) Option { return func(r *Runner) { r.sink = s } }

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option { return func(r *Runner) { r.progress = fn } }

// WithParticles selects which marginals each frame carries. The default is
// both.
func WithParticles(ps ...Particle) Option {
	return func(r *Runner) { r.particles = append([]Particle(nil), ps...) }
}

// Runner owns one two-particle state and drives it through a run.
type Runner struct {
	cfg  Config
	pots Potentials
	id   uuid.UUID

	sl slicer
	h  *hamiltonian
	st *TwoParticleState

	step      int
	nextFrame int

	gate    gate
	running atomic.Bool

	sink      Sink
	progress  ProgressFunc
	particles []Particle
}

// NewRunner validates the configuration, precomputes what the Hamiltonian
// needs and builds the initial state. All configuration errors surface here.
func NewRunner(cfg Config, pots Potentials, wf1, wf2 *wavefunc.State, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if wf1 == nil || wf2 == nil {
		return nil, fmt.Errorf("%w: both single-particle states are required", ErrInvalidConfig)
	}
	lat := cfg.Lattice()
	for i, wf := range []*wavefunc.State{wf1, wf2} {
		if wf.Lattice() != lat {
			return nil, fmt.Errorf("%w: particle %d lattice %+v does not match %+v", ErrInvalidConfig, i+1, wf.Lattice(), lat)
		}
	}
	if wf1.Mass() != cfg.Mass1 || wf2.Mass() != cfg.Mass2 {
		return nil, fmt.Errorf("%w: state masses (%g, %g) do not match configuration (%g, %g)",
			ErrInvalidConfig, wf1.Mass(), wf2.Mass(), cfg.Mass1, cfg.Mass2)
	}
	pots, err := pots.check(lat)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:       cfg,
		pots:      pots,
		id:        uuid.New(),
		sl:        newSlicer(cfg),
		particles: []Particle{Particle1, Particle2},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.h = newHamiltonian(cfg, pots)
	if r.st, err = build(cfg, pots, wf1, wf2, r.sl); err != nil {
		return nil, err
	}
	return r, nil
}

// ID returns the run identifier stamped on frames and results.
func (r *Runner) ID() uuid.UUID { return r.id }

// Config returns the run configuration.
func (r *Runner) Config() Config { return r.cfg }

// Potentials returns the run's precomputed potential tables.
func (r *Runner) Potentials() Potentials { return r.pots }

// State exposes the live two-particle state.
func (r *Runner) State() *TwoParticleState { return r.st }

// StepCount reports how many steps have completed.
func (r *Runner) StepCount() int { return r.step }

// Time reports the simulated time of the Real array.
func (r *Runner) Time() float64 { return float64(r.step) * r.cfg.Dt }

// Step advances the state by one timestep:
//
//	Real  += dt·H[ImagP]         (pass 1)
//	swap ImagP -> ImagM
//	ImagP  = ImagM - dt·H[Real]  (pass 2)
//
// The first pass completes on every slice before the second begins. Step
// must not be called while Run is active.
func (r *Runner) Step() error {
	dt := r.cfg.Dt
	st, h := r.st, r.h
	ny := st.lat.Ny

	ip := st.ImagP()
	err := r.sl.run(context.Background(), ny, func(y2 int) {
		h.applySlice(st.real, st.real, ip, dt, y2)
	})
	if err != nil {
		return err
	}

	next := st.swap()
	im := st.ImagM()
	err = r.sl.run(context.Background(), ny, func(y2 int) {
		h.applySlice(next, im, st.real, -dt, y2)
	})
	if err != nil {
		return err
	}
	r.step++
	return nil
}

// Pause parks the run at its next safe point.
func (r *Runner) Pause() { r.gate.pause() }

// Resume releases a paused run.
func (r *Runner) Resume() { r.gate.release() }

// Paused reports whether a pause is in effect.
func (r *Runner) Paused() bool { return r.gate.isPaused() }

// Run integrates until round(T/dt)+1 steps have completed or ctx is
// cancelled. Cancellation is reported as OutcomeCancelled with a nil error;
// faults return OutcomeFault and an error wrapping ErrFault.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Result{RunID: r.id, Outcome: OutcomeFault}, fmt.Errorf("%w: run %s already active", ErrFault, r.id)
	}
	defer r.running.Store(false)

	start := time.Now()
	total := r.cfg.Steps()
	res := Result{RunID: r.id}
	monitoring.Logf("pair: run %s start grid=%dx%d a=%g dt=%g steps=%d frames=%d workers=%d",
		r.id, r.cfg.Nx, r.cfg.Ny, r.cfg.Spacing, r.cfg.Dt, total, r.cfg.Frames, r.sl.workers)

	finish := func(o Outcome, err error) (Result, error) {
		res.Outcome = o
		res.Steps = r.step
		res.Elapsed = time.Since(start)
		if err != nil {
			monitoring.Logf("pair: run %s %s after %d steps: %v", r.id, o, r.step, err)
		} else {
			monitoring.Logf("pair: run %s %s after %d steps in %s", r.id, o, r.step, res.Elapsed)
		}
		return res, err
	}
	classify := func(err error) (Result, error) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return finish(OutcomeCancelled, nil)
		}
		if !errors.Is(err, ErrFault) {
			err = fmt.Errorf("%w: %v", ErrFault, err)
		}
		return finish(OutcomeFault, err)
	}

	for r.step < total {
		for r.nextFrame < r.cfg.Frames && r.cfg.FrameStep(r.nextFrame) <= r.step {
			norm, err := r.emit(ctx)
			if err != nil {
				return classify(err)
			}
			res.Frames++
			res.NormHistory = append(res.NormHistory, norm)
		}

		if err := r.Step(); err != nil {
			return classify(err)
		}
		if r.progress != nil {
			r.progress(r.step, total)
		}
		if err := r.gate.wait(ctx); err != nil {
			return classify(err)
		}
	}
	return finish(OutcomeCompleted, nil)
}

func (r *Runner) emit(ctx context.Context) (float64, error) {
	f := Frame{
		RunID: r.id,
		Index: r.nextFrame,
		Step:  r.step,
		Time:  r.Time(),
		Norm:  r.st.Norm(),
	}
	for _, p := range r.particles {
		d, err := marginal(ctx, r.st, p, r.sl)
		if err != nil {
			return 0, err
		}
		switch p {
		case Particle1:
			f.Particle1 = &d
		case Particle2:
			f.Particle2 = &d
		}
	}
	if r.sink != nil {
		if err := r.sink.WriteFrame(ctx, f); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return 0, err
			}
			return 0, fmt.Errorf("%w: sink: %v", ErrFault, err)
		}
	}
	monitoring.Logf("pair: run %s frame %d/%d step=%d t=%.4g norm=%.6f", r.id, f.Index+1, r.cfg.Frames, f.Step, f.Time, f.Norm)
	r.nextFrame++
	return f.Norm, nil
}
