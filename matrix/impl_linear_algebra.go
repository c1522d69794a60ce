// SPDX-License-Identifier: MIT

// Package matrix - linear algebra kernels.
//
// Purpose:
//   - Elementwise and product kernels over any Matrix, with a *Dense fast path.
//   - Square algebra for Newton steps: pivoted LU, determinant, cofactors,
//     adjugate, inverse and linear solves.
//
// Determinism:
//   - Fixed loop orders everywhere; pivot ties resolve to the lowest row.

package matrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/polyopt/fault"
)

// ZeroPivot is the pivot magnitude at (or below) which LU reports ErrSingular.
const ZeroPivot = 0.0

// asDense returns m itself when it is a *Dense, otherwise a *Dense copy read
// through At in i→j order.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
//
// Implementation:
//   - Stage 1: ValidateSameShape(a, b); allocate result.
//   - Stage 2: if both are *Dense walk the flat buffers; otherwise At/Set in i→j order.
//
// Errors:
//   - ErrZeroSize (nil operand), ErrAddShape.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path.
	var (
		i, j   int
		av, bv float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add returns a fresh Dense with C[i,j] = A[i,j] + B[i,j].
//
// Errors: ErrZeroSize (nil input), ErrAddShape (shape mismatch).
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a fresh Dense with C[i,j] = A[i,j] - B[i,j].
//
// Errors: ErrZeroSize (nil input), ErrAddShape (shape mismatch).
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Neg returns -m.
func Neg(m Matrix) (*Dense, error) {
	res, err := scale(m, -1)
	if err != nil {
		return nil, matrixErrorf(opNeg, err)
	}

	return res, nil
}

// Scale returns alpha*m.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	res, err := scale(m, alpha)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	return res, nil
}

func scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	src, err := asDense(m)
	if err != nil {
		return nil, err
	}
	res := src.clone()
	for idx := range res.data {
		res.data[idx] *= alpha
	}

	return res, nil
}

// Mul returns the matrix product C = A*B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: i→k→j loop order so the inner loop streams rows of B.
//
// Errors:
//   - ErrZeroSize (nil input), ErrMulShape (a.Cols != b.Rows).
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	rows, inner, cols := da.r, da.c, db.c
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j int
		aik     float64
	)
	for i = 0; i < rows; i++ {
		for k = 0; k < inner; k++ {
			aik = da.data[i*inner+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < cols; j++ {
				res.data[i*cols+j] += aik * db.data[k*cols+j]
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res := &Dense{r: src.c, c: src.r, data: make([]float64, len(src.data))}
	for i := 0; i < src.r; i++ {
		for j := 0; j < src.c; j++ {
			res.data[j*src.r+i] = src.data[i*src.c+j]
		}
	}

	return res, nil
}

// MatVec returns y = m*x.
//
// Errors:
//   - ErrZeroSize (nil m), ErrLengthMismatch (len(x) != m.Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, src.r)
	var sum float64
	for i := 0; i < src.r; i++ {
		sum = 0
		row := src.data[i*src.c : (i+1)*src.c]
		for j, v := range row {
			sum += v * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// LU computes P*A = L*U with partial pivoting.
//
// Implementation:
//   - Stage 1: validate square; copy A into U, L = I, Perm = identity.
//   - Stage 2: for each column k pick the row with the largest |U[i,k]| (i ≥ k,
//     lowest index on ties), swap rows in U, Perm and the built part of L.
//   - Stage 3: eliminate below the pivot, storing multipliers in L.
//
// Errors:
//   - ErrZeroSize, ErrNonSquare, ErrSingular (pivot magnitude <= ZeroPivot).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix) (*Factors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := src.r
	u := src.clone()
	l, _ := NewIdentity(n) // n > 0 after ValidateSquare on a constructed matrix
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var (
		i, j, k, p int
		best, f    float64
	)
	for k = 0; k < n; k++ {
		// Stage 2: pivot search.
		p, best = k, math.Abs(u.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(u.data[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= ZeroPivot || math.IsNaN(best) {
			return nil, matrixErrorf(opLU, fault.Newf(fault.Singular, "", fmt.Sprintf("zero pivot in column %d", k)))
		}
		if p != k {
			swapRows(u, p, k, 0, n)
			swapRows(l, p, k, 0, k) // only the multipliers already computed
			perm[p], perm[k] = perm[k], perm[p]
			sign = -sign
		}

		// Stage 3: elimination.
		pivot := u.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f = u.data[i*n+k] / pivot
			l.data[i*n+k] = f
			u.data[i*n+k] = 0
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				u.data[i*n+j] -= f * u.data[k*n+j]
			}
		}
	}

	return &Factors{L: l, U: u, Perm: perm, Sign: sign}, nil
}

// swapRows exchanges columns [from,to) of rows a and b in d.
func swapRows(d *Dense, a, b, from, to int) {
	ra, rb := a*d.c, b*d.c
	for j := from; j < to; j++ {
		d.data[ra+j], d.data[rb+j] = d.data[rb+j], d.data[ra+j]
	}
}

// Solve solves A*x = b using the factorisation.
// Errors: ErrLengthMismatch.
func (f *Factors) Solve(b []float64) ([]float64, error) {
	n := f.U.r
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	x := make([]float64, n)
	f.solveInto(b, x, make([]float64, n))

	return x, nil
}

// solveInto runs forward then backward substitution; y is scratch.
func (f *Factors) solveInto(b, x, y []float64) {
	n := f.U.r
	var (
		i, k int
		sum  float64
	)
	// Forward: L*y = P*b.
	for i = 0; i < n; i++ {
		sum = b[f.Perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.L.data[i*n+k] * y[k]
		}
		y[i] = sum
	}
	// Backward: U*x = y.
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= f.U.data[i*n+k] * x[k]
		}
		x[i] = sum / f.U.data[i*n+i]
	}
}

// Determinant returns det(m). A singular matrix yields 0 with a nil error.
//
// Errors: ErrZeroSize, ErrNonSquare.
// Complexity: O(n^3).
func Determinant(m Matrix) (float64, error) {
	fac, err := LU(m)
	if err != nil {
		if fault.KindOf(err) == fault.Singular {
			return 0, nil
		}

		return 0, matrixErrorf(opDeterminant, err)
	}
	n := fac.U.r
	det := fac.Sign
	for i := 0; i < n; i++ {
		det *= fac.U.data[i*n+i]
	}

	return det, nil
}

// minor returns m without row i and column j. m must be at least 2×2.
func minor(m *Dense, i, j int) *Dense {
	n := m.r - 1
	out := &Dense{r: n, c: n, data: make([]float64, 0, n*n)}
	for r := 0; r < m.r; r++ {
		if r == i {
			continue
		}
		for c := 0; c < m.c; c++ {
			if c == j {
				continue
			}
			out.data = append(out.data, m.data[r*m.c+c])
		}
	}

	return out
}

// Cofactor returns (-1)^(i+j) * det(minor(i,j)). The cofactor of a 1×1
// matrix is 1.
//
// Errors: ErrZeroSize, ErrNonSquare, ErrOutOfRange.
// Complexity: O(n^3).
func Cofactor(m Matrix, i, j int) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opCofactor, err)
	}
	if err := validateIndex(m.Rows(), m.Cols(), i, j); err != nil {
		return 0, matrixErrorf(opCofactor, err)
	}
	if m.Rows() == 1 {
		return 1, nil
	}
	src, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opCofactor, err)
	}
	det, err := Determinant(minor(src, i, j))
	if err != nil {
		return 0, matrixErrorf(opCofactor, err)
	}
	if (i+j)%2 == 1 {
		det = -det
	}

	return det, nil
}

// Adjugate returns the transposed cofactor matrix, so that
// m * Adjugate(m) = det(m) * I.
//
// Errors: ErrZeroSize, ErrNonSquare.
// Complexity: O(n^5); intended for the small Hessians of this module.
func Adjugate(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opAdjugate, err)
	}
	n := m.Rows()
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opAdjugate, err)
	}
	var cof float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if cof, err = Cofactor(m, i, j); err != nil {
				return nil, matrixErrorf(opAdjugate, err)
			}
			res.data[j*n+i] = cof
		}
	}

	return res, nil
}

// Inverse returns m⁻¹ by solving against the identity columns of a pivoted LU.
//
// Errors:
//   - ErrZeroSize, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (*Dense, error) {
	fac, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := fac.U.r
	inv := &Dense{r: n, c: n, data: make([]float64, n*n)}
	e := make([]float64, n)
	x := make([]float64, n)
	y := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		fac.solveInto(e, x, y)
		for i := 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Solve returns x with m*x = b.
//
// Errors: ErrZeroSize, ErrNonSquare, ErrSingular, ErrLengthMismatch.
func Solve(m Matrix, b []float64) ([]float64, error) {
	fac, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return fac.Solve(b)
}
