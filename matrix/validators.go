// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - One place for the shape checks every kernel performs before touching data.
//   - Validators return *fault.Error values tagged with the validator name, so a
//     kernel only adds its own op prefix.
//
// Note:
//   - Composite validators check nil first, then shape.
//   - All checks are O(1) and allocate only on failure.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/polyopt/fault"
)

// ValidateNotNil ensures the matrix reference is non-nil.
//
// A nil matrix is reported as ErrZeroSize: it has no rows to work with.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return fault.Newf(fault.ZeroSize, "ValidateNotNil", "nil matrix")
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return fault.Newf(fault.ZeroSize, "ValidateNotNil", "nil *Dense")
	}

	return nil
}

// ValidateSameShape ensures a and b have identical dimensions (Add/Sub).
//
// Errors: ErrZeroSize (nil operand), ErrAddShape.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fault.Newf(fault.AddShape, "ValidateSameShape",
			fmt.Sprintf("%s vs %s", shapeDetail(a), shapeDetail(b)))
	}

	return nil
}

// ValidateSquare ensures m is n×n.
//
// Errors: ErrZeroSize (nil), ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return fault.Newf(fault.NonSquare, "ValidateSquare", shapeDetail(m))
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols() == b.Rows().
//
// Errors: ErrZeroSize (nil operand), ErrMulShape.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return fault.Newf(fault.MulShape, "ValidateMulCompatible",
			fmt.Sprintf("%s * %s", shapeDetail(a), shapeDetail(b)))
	}

	return nil
}

// ValidateVecLen ensures len(x) == want.
//
// Errors: ErrLengthMismatch.
// Complexity: O(1).
func ValidateVecLen(x []float64, want int) error {
	if len(x) != want {
		return fault.Newf(fault.LengthMismatch, "ValidateVecLen",
			fmt.Sprintf("got %d, want %d", len(x), want))
	}

	return nil
}

// validateIndex checks (i, j) against m's bounds; shared by Dense and Cofactor.
func validateIndex(rows, cols, i, j int) error {
	if i < 0 || i >= rows || j < 0 || j >= cols {
		return fault.Newf(fault.OutOfRange, "",
			fmt.Sprintf("(%d,%d) outside %dx%d", i, j, rows, cols))
	}

	return nil
}
