// SPDX-License-Identifier: MIT

package polynomial

import (
	"github.com/katalvlaran/polyopt/matrix"
)

// term is one row of the coefficient/exponent table.
type term struct {
	coeff float64
	exps  []int // len == number of variables; exps[j] is the power of x_{j+1}
}

// Polynomial is an immutable parsed polynomial. The zero value is not usable;
// build one with Parse.
type Polynomial struct {
	text  string
	nvars int
	terms []term
}

// String returns the polynomial text with whitespace removed.
func (p *Polynomial) String() string { return p.text }

// NumVars returns n, the number of variables declared on the left-hand side.
func (p *Polynomial) NumVars() int { return p.nvars }

// NumTerms returns the number of terms on the right-hand side.
func (p *Polynomial) NumTerms() int { return len(p.terms) }

// Coefficients returns the (terms, 1+n) table: column 0 holds coefficients,
// column j the exponent of x_j. The result is a fresh copy.
func (p *Polynomial) Coefficients() *matrix.Dense {
	cols := 1 + p.nvars
	data := make([]float64, 0, len(p.terms)*cols)
	for _, t := range p.terms {
		data = append(data, t.coeff)
		for _, e := range t.exps {
			data = append(data, float64(e))
		}
	}
	m, _ := matrix.NewDenseFrom(len(p.terms), cols, data) // shape >= 1x2 by construction

	return m
}
