// SPDX-License-Identifier: MIT

package matrix

// Matrix is a two-dimensional mutable array of float64 values.
//
// Complexity: all methods are O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Factors holds a pivoted LU factorisation P*A = L*U.
//   - L is unit lower triangular, U is upper triangular.
//   - Perm[i] is the row of A that ended up in row i.
//   - Sign is +1 or -1, the parity of the permutation.
type Factors struct {
	L, U *Dense
	Perm []int
	Sign float64
}
