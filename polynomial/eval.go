// SPDX-License-Identifier: MIT

package polynomial

import (
	"fmt"

	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/matrix"
)

const (
	opEval           = "Polynomial.Eval"
	opPartial        = "Polynomial.Partial"
	opGradient       = "Polynomial.Gradient"
	opHessian        = "Polynomial.Hessian"
	opInverseHessian = "Polynomial.InverseHessian"

	// noVar marks an unused derivative slot in termValue.
	noVar = -1
)

func (p *Polynomial) checkX(op string, x []float64) error {
	if len(x) != p.nvars {
		return fault.Newf(fault.VectorSize, op, fmt.Sprintf("got %d values, want %d", len(x), p.nvars))
	}

	return nil
}

// ipow returns x^e for e >= 0 with 0^0 = 1.
func ipow(x float64, e int) float64 {
	r := 1.0
	for e > 0 {
		if e&1 == 1 {
			r *= x
		}
		x *= x
		e >>= 1
	}

	return r
}

// termValue evaluates t at x after differentiating with respect to the
// 0-based variables di and dj (noVar to skip). exps is scratch of len n.
func termValue(t term, x []float64, di, dj int, exps []int) float64 {
	copy(exps, t.exps)
	v := t.coeff
	for _, d := range [2]int{di, dj} {
		if d == noVar {
			continue
		}
		if exps[d] == 0 {
			return 0
		}
		v *= float64(exps[d])
		exps[d]--
	}
	for j, e := range exps {
		if e != 0 {
			v *= ipow(x[j], e)
		}
	}

	return v
}

func (p *Polynomial) sum(x []float64, di, dj int) float64 {
	exps := make([]int, p.nvars)
	var s float64
	for _, t := range p.terms {
		s += termValue(t, x, di, dj, exps)
	}

	return s
}

// Eval returns f(x).
//
// Errors: ErrVectorSize if len(x) != NumVars().
func (p *Polynomial) Eval(x []float64) (float64, error) {
	if err := p.checkX(opEval, x); err != nil {
		return 0, err
	}

	return p.sum(x, noVar, noVar), nil
}

// Partial returns ∂f/∂x_i at x; i is 1-based like the variable names.
//
// Errors: ErrVectorSize if len(x) != NumVars() or i is outside 1..n.
func (p *Polynomial) Partial(x []float64, i int) (float64, error) {
	if err := p.checkX(opPartial, x); err != nil {
		return 0, err
	}
	if i < 1 || i > p.nvars {
		return 0, fault.Newf(fault.VectorSize, opPartial, fmt.Sprintf("variable x_%d outside x_1..x_%d", i, p.nvars))
	}

	return p.sum(x, i-1, noVar), nil
}

// Gradient returns ∇f(x).
//
// Errors: ErrVectorSize.
func (p *Polynomial) Gradient(x []float64) ([]float64, error) {
	if err := p.checkX(opGradient, x); err != nil {
		return nil, err
	}
	g := make([]float64, p.nvars)
	for i := range g {
		g[i] = p.sum(x, i, noVar)
	}

	return g, nil
}

// Hessian returns the n×n matrix of second partial derivatives at x.
// Only the upper triangle is computed; the lower one is mirrored.
//
// Errors: ErrVectorSize.
// Complexity: O(n² · terms · n).
func (p *Polynomial) Hessian(x []float64) (*matrix.Dense, error) {
	if err := p.checkX(opHessian, x); err != nil {
		return nil, err
	}
	n := p.nvars
	h, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opHessian, err)
	}
	var v float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v = p.sum(x, i, j)
			_ = h.Set(i, j, v) // indices are in range
			_ = h.Set(j, i, v)
		}
	}

	return h, nil
}

// InverseHessian returns H(x)⁻¹.
//
// Errors: ErrVectorSize, ErrSingular.
func (p *Polynomial) InverseHessian(x []float64) (*matrix.Dense, error) {
	h, err := p.Hessian(x)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverseHessian, err)
	}

	return inv, nil
}
