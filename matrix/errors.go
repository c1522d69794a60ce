// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/polyopt/fault"
)

// Sentinels re-exported from fault so callers of this package need not import
// it. Compare with errors.Is; kernels wrap them as "<Op>: <detail>".
var (
	// ErrZeroSize: a matrix with zero rows or columns (or a nil matrix).
	ErrZeroSize = fault.ErrZeroSize

	// ErrInitializerSize: NewDenseFrom got len(data) != rows*cols.
	ErrInitializerSize = fault.ErrInitializerSize

	// ErrAddShape: Add/Sub operands differ in shape.
	ErrAddShape = fault.ErrAddShape

	// ErrMulShape: Mul with a.Cols != b.Rows.
	ErrMulShape = fault.ErrMulShape

	// ErrNonSquare: a square matrix was required.
	ErrNonSquare = fault.ErrNonSquare

	// ErrSingular: a zero pivot was met, the matrix has no inverse.
	ErrSingular = fault.ErrSingular

	// ErrOutOfRange: At/Set/Row/Col/Cofactor index outside the matrix.
	ErrOutOfRange = fault.ErrOutOfRange

	// ErrLengthMismatch: MatVec or Solve got a vector of the wrong length.
	ErrLengthMismatch = fault.ErrLengthMismatch
)

// Operation tags prefixed to every error leaving a kernel.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opNeg         = "Neg"
	opMul         = "Mul"
	opScale       = "Scale"
	opTranspose   = "Transpose"
	opMatVec      = "MatVec"
	opLU          = "LU"
	opDeterminant = "Determinant"
	opCofactor    = "Cofactor"
	opAdjugate    = "Adjugate"
	opInverse     = "Inverse"
	opSolve       = "Solve"
)

// matrixErrorf prefixes err with the operation tag; errors.Is still matches.
// err must be non-nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// shapeDetail renders "RxC" for error details.
func shapeDetail(m Matrix) string {
	return fmt.Sprintf("%dx%d", m.Rows(), m.Cols())
}
