// SPDX-License-Identifier: MIT

package solver

import (
	"math"
	"time"

	"github.com/katalvlaran/polyopt/emit"
	"github.com/katalvlaran/polyopt/metrics"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxNorm stops a run whose gradient norm exceeds it (Diverged).
	DefaultMaxNorm = 1e9

	// DefaultArmijoC is the sufficient-increase constant c of the line search.
	DefaultArmijoC = 0.5

	// DefaultBacktrackTau is the step shrink factor τ of the line search.
	DefaultBacktrackTau = 0.5
)

// ---------- Panic messages ----------

const (
	panicMaxNormInvalid    = "solver: WithMaxNorm: max norm must be positive and not NaN"
	panicLineSearchInvalid = "solver: WithLineSearch: c and tau must lie in (0, 1)"
	panicClockNil          = "solver: WithClock: clock must not be nil"
)

// Option configures Run. Constructors panic on nonsensical values.
type Option func(*Options)

// Options is the resolved configuration of one run.
type Options struct {
	maxNorm  float64
	armijoC  float64
	tau      float64
	recorder Recorder
	emitter  emit.Emitter
	metrics  *metrics.Metrics
	clock    func() time.Time
	runID    string
}

func defaultOptions() Options {
	return Options{
		maxNorm: DefaultMaxNorm,
		armijoC: DefaultArmijoC,
		tau:     DefaultBacktrackTau,
		emitter: emit.NewNullEmitter(),
		clock:   time.Now,
	}
}

func gatherOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithMaxNorm sets the divergence threshold on ‖∇f‖. +Inf disables it.
func WithMaxNorm(v float64) Option {
	if math.IsNaN(v) || v <= 0 {
		panic(panicMaxNormInvalid)
	}

	return func(o *Options) { o.maxNorm = v }
}

// WithLineSearch sets the Armijo constant c and the shrink factor tau.
func WithLineSearch(c, tau float64) Option {
	if !(c > 0 && c < 1) || !(tau > 0 && tau < 1) {
		panic(panicLineSearchInvalid)
	}

	return func(o *Options) {
		o.armijoC = c
		o.tau = tau
	}
}

// WithRecorder streams every Iteration to r. nil disables recording.
func WithRecorder(r Recorder) Option {
	return func(o *Options) { o.recorder = r }
}

// WithEmitter sends events to e. nil restores the NullEmitter.
func WithEmitter(e emit.Emitter) Option {
	return func(o *Options) {
		if e == nil {
			e = emit.NewNullEmitter()
		}
		o.emitter = e
	}
}

// WithMetrics records Prometheus metrics into m. nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithClock replaces time.Now for measuring Elapsed.
func WithClock(clock func() time.Time) Option {
	if clock == nil {
		panic(panicClockNil)
	}

	return func(o *Options) { o.clock = clock }
}

// WithRunID fixes the run identifier used in events and Result.RunID.
// By default a random UUID is generated.
func WithRunID(id string) Option {
	return func(o *Options) { o.runID = id }
}
