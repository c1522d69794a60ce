// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"time"

	"github.com/katalvlaran/polyopt/fault"
)

// Algorithm names an optimisation method. The string value is used in output
// file names and on the command line.
type Algorithm string

const (
	GradientDescent Algorithm = "gradient_descent"
	NewtonsMethod   Algorithm = "newtons_method"
)

// Algorithms lists the supported algorithms in their canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{GradientDescent, NewtonsMethod}
}

// ParseAlgorithm maps a name to an Algorithm.
// Errors: ErrUnknownAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(name); a {
	case GradientDescent, NewtonsMethod:
		return a, nil
	}

	return "", fault.Newf(fault.UnknownAlgorithm, "solver.ParseAlgorithm", fmt.Sprintf("%q", name))
}

// Title is the human-readable name used in report banners.
func (a Algorithm) Title() string {
	switch a {
	case GradientDescent:
		return "Gradient Descent/Ascent"
	case NewtonsMethod:
		return "Newton's Method"
	}

	return string(a)
}

// Outcome classifies how a run ended. The numeric values are the case numbers
// printed in reports.
type Outcome int

const (
	Failed        Outcome = 0
	Stationary    Outcome = 1
	MaxIterations Outcome = 2
	Diverged      Outcome = 3
)

func (o Outcome) String() string {
	switch o {
	case Stationary:
		return "stationary"
	case MaxIterations:
		return "max_iterations"
	case Diverged:
		return "diverged"
	}

	return "failed"
}

// Iteration is one step of a run. Terminal iterations (the run stopped after
// computing the gradient) leave StepSize, Direction and Next empty.
type Iteration struct {
	Index     int       // 1-based
	X         []float64 // point at the start of the iteration
	Gradient  []float64
	Norm      float64
	StepSize  float64   // gradient descent only
	Direction []float64 // Newton only
	Next      []float64 // point after the step; nil when terminal
}

// Terminal reports whether the run stopped at this iteration without stepping.
func (it Iteration) Terminal() bool { return it.Next == nil }

// Result summarises a run.
type Result struct {
	Algorithm  Algorithm
	Outcome    Outcome
	X          []float64 // final point
	Iterations int       // iterations started
	Elapsed    time.Duration
	Err        error // set when Outcome is Failed
	RunID      string
}

// Recorder observes iterations as they happen. A non-nil error aborts the run.
type Recorder interface {
	Record(it Iteration) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(it Iteration) error

// Record calls f(it).
func (f RecorderFunc) Record(it Iteration) error { return f(it) }
