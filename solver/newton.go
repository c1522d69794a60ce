// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/matrix"
	"github.com/katalvlaran/polyopt/vector"
)

// newtonStep moves by d = -H⁻¹(x)·g. A singular Hessian fails the step.
func newtonStep(data *input.Data) stepFunc {
	return func(x, g []float64, it *Iteration) ([]float64, error) {
		inv, err := data.Polynomial.InverseHessian(x)
		if err != nil {
			return nil, err
		}
		hg, err := matrix.MatVec(inv, g)
		if err != nil {
			return nil, err
		}
		d := vector.Neg(hg)
		it.Direction = d

		return vector.Add(x, d)
	}
}
