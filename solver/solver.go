// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/polyopt/emit"
	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/input"
)

const opRun = "solver.Run"

// stepFunc advances from x along gradient g, filling the step fields of it.
// It returns the next point.
type stepFunc func(x, g []float64, it *Iteration) ([]float64, error)

// Run executes alg on data from data.InitialPoint.
//
// Implementation:
//   - Stage 1: resolve the algorithm and options; emit run_start.
//   - Stage 2: iterate up to data.MaxIter times (see package doc for the stop rules).
//   - Stage 3: time the run, record metrics, emit run_end.
//
// Errors:
//   - ErrUnknownAlgorithm before anything runs.
//   - ctx.Err() when the context ends; the partial Result is returned too.
//   - any error returned by the Recorder.
//
// A singular Hessian is not an error of Run: the Result has Outcome Failed and
// Err set.
func Run(ctx context.Context, alg Algorithm, data *input.Data, opts ...Option) (Result, error) {
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return Result{Algorithm: alg}, err
	}
	if data == nil || data.Polynomial == nil {
		return Result{Algorithm: alg}, fault.Newf(fault.VectorSize, opRun, "no problem to solve")
	}
	o := gatherOptions(opts)
	if o.runID == "" {
		o.runID = uuid.NewString()
	}

	var step stepFunc
	switch alg {
	case GradientDescent:
		step = gradientStep(data, &o)
	case NewtonsMethod:
		step = newtonStep(data)
	}

	o.emitter.Emit(emit.Event{RunID: o.runID, Algorithm: string(alg), Msg: emit.MsgRunStart,
		Meta: map[string]any{
			"polynomial": data.Polynomial.String(),
			"goal":       data.Goal.String(),
			"x0":         data.InitialPoint,
			"tolerance":  data.Tolerance,
			"max_iter":   data.MaxIter,
		}})

	start := o.clock()
	res, err := iterate(ctx, alg, data, &o, step)
	res.Elapsed = o.clock().Sub(start)
	res.RunID = o.runID

	o.metrics.ObserveRun(string(alg), res.Outcome.String(), res.Elapsed)
	meta := map[string]any{
		"outcome":    res.Outcome.String(),
		"iterations": res.Iterations,
		"x":          res.X,
		"elapsed":    res.Elapsed,
	}
	if cause := firstErr(err, res.Err); cause != nil {
		meta["error"] = cause.Error()
	}
	o.emitter.Emit(emit.Event{RunID: o.runID, Algorithm: string(alg), Msg: emit.MsgRunEnd, Meta: meta})

	return res, err
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// iterate is the loop shared by both algorithms.
func iterate(ctx context.Context, alg Algorithm, data *input.Data, o *Options, step stepFunc) (Result, error) {
	p := data.Polynomial
	x := append([]float64(nil), data.InitialPoint...)
	res := Result{Algorithm: alg, Outcome: MaxIterations}

	for k := 1; k <= data.MaxIter; k++ {
		if err := ctx.Err(); err != nil {
			res.Outcome, res.X = Failed, x
			return res, err
		}
		res.Iterations = k

		g, err := p.Gradient(x)
		if err != nil {
			res.Outcome, res.X, res.Err = Failed, x, err
			return res, nil
		}
		it := Iteration{Index: k, X: x, Gradient: g, Norm: norm(g)}
		o.metrics.ObserveIteration(string(alg), it.Norm)

		var stop Outcome
		switch {
		case it.Norm < data.Tolerance:
			stop = Stationary
		case it.Norm > o.maxNorm:
			stop = Diverged
		}
		if stop != Failed {
			res.Outcome, res.X = stop, x
			return res, o.record(alg, it)
		}

		next, stepErr := step(x, g, &it)
		if stepErr != nil {
			// the iteration is recorded without a step before failing
			it.StepSize, it.Direction = 0, nil
			res.Outcome, res.X, res.Err = Failed, x, stepErr
			return res, o.record(alg, it)
		}
		it.Next = next
		if err := o.record(alg, it); err != nil {
			res.Outcome, res.X = Failed, x
			return res, err
		}
		x = next
	}
	res.X = x

	return res, nil
}

// record forwards it to the recorder and the emitter.
func (o *Options) record(alg Algorithm, it Iteration) error {
	meta := map[string]any{"norm": it.Norm, "x": it.X}
	if it.Next != nil {
		meta["next"] = it.Next
		if alg == GradientDescent {
			meta["step_size"] = it.StepSize
		}
	}
	o.emitter.Emit(emit.Event{RunID: o.runID, Step: it.Index, Algorithm: string(alg), Msg: emit.MsgIteration, Meta: meta})

	if o.recorder == nil {
		return nil
	}
	if err := o.recorder.Record(it); err != nil {
		return fmt.Errorf("%s: iteration %d: %w", opRun, it.Index, err)
	}

	return nil
}
