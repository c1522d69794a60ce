// SPDX-License-Identifier: MIT

// Package polynomial parses expanded multivariate polynomials written as
//
//	f(x_1,x_2,...,x_n)=RHS
//
// and evaluates them together with their gradient, Hessian and inverse
// Hessian.
//
// Grammar of RHS (whitespace is ignored everywhere):
//   - Terms are split at every '+' or '-' that is not the first character; a
//     leading sign belongs to the first term.
//   - A term is an optional sign followed by '*'-separated elements.
//   - An element is a variable x_i or x_i^k (1 ≤ i ≤ n, k a non-negative
//     integer) or a non-negative coefficient "digits" / "digits.digits".
//   - Repeated variables in one term add their exponents; coefficients multiply.
//
// Storage:
//
// A parsed polynomial keeps one row per term: the coefficient followed by the
// exponent of every variable. Coefficients exposes that table as a
// *matrix.Dense of shape (terms, 1+n).
//
// Derivatives are exact: they are computed from the exponent table, not by
// finite differences.
package polynomial
