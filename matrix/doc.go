// SPDX-License-Identifier: MIT

// Package matrix provides a small dense float64 matrix used by the polynomial
// optimiser: the coefficient/exponent table of a polynomial and the Hessian
// with its inverse are both *Dense values.
//
// What it offers:
//   - Dense: row-major storage with bounds-checked At/Set (errors, never panics).
//   - Kernels: Add, Sub, Neg, Mul, Scale, Transpose, MatVec.
//   - Square algebra: LU with partial pivoting, Determinant, Cofactor,
//     Adjugate, Inverse, Solve.
//   - Validators shared by every kernel (validators.go).
//
// Errors:
//
// Every failure is a *fault.Error; match with errors.Is against the sentinels
// in errors.go (ErrZeroSize, ErrAddShape, ErrMulShape, ErrSingular, ...).
// Kernels prefix the operation name, e.g. "Mul: ...".
//
// Fast paths:
//
// Kernels type-switch on *Dense and walk the flat buffer directly; any other
// Matrix implementation goes through At/Set in fixed i→j order, producing the
// same numbers.
package matrix
