// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/polynomial"
	"github.com/katalvlaran/polyopt/vector"
)

func norm(g []float64) float64 { return vector.Norm(g) }

// gradientStep moves along d = goal·g by the backtracking step size.
func gradientStep(data *input.Data, o *Options) stepFunc {
	goal := data.Goal.Sign()

	return func(x, g []float64, it *Iteration) ([]float64, error) {
		d := vector.Scale(goal, g)
		s, backtracks, err := lineSearch(data.Polynomial, goal, x, g, d, o.armijoC, o.tau)
		if err != nil {
			return nil, err
		}
		o.metrics.AddBacktracks(string(GradientDescent), backtracks)
		it.StepSize = s

		next := append([]float64(nil), x...)
		if err = vector.AddScaled(next, s, d); err != nil {
			return nil, err
		}

		return next, nil
	}
}

// lineSearch returns the largest s = τ^k (k ≥ 0) with
//
//	(f(x+s·d) - f(x))·goal ≥ c·s·(g·d)·goal
//
// and the number of halvings k. The loop ends at the latest when s underflows
// to zero, where both sides vanish; NaN comparisons also end it.
func lineSearch(p *polynomial.Polynomial, goal float64, x, g, d []float64, c, tau float64) (float64, int, error) {
	fx, err := p.Eval(x)
	if err != nil {
		return 0, 0, err
	}
	gd, err := vector.Dot(g, d)
	if err != nil {
		return 0, 0, err
	}

	trial := make([]float64, len(x))
	s, k := 1.0, 0
	for {
		copy(trial, x)
		if err = vector.AddScaled(trial, s, d); err != nil {
			return 0, 0, err
		}
		ft, err := p.Eval(trial)
		if err != nil {
			return 0, 0, err
		}
		if !((ft-fx)*goal < c*s*gd*goal) {
			return s, k, nil
		}
		s *= tau
		k++
	}
}
