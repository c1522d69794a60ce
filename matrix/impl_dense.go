// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Safety at the public surface: At/Set return errors instead of panicking.
//   - Two text renderings: String (bracketed rows) and Format (the report style
//     used in output_results files).
//
// Complexity quicksheet:
//   - NewDense/NewDenseFrom: O(r*c); At/Set: O(1); Clone/RawData: O(r*c).

package matrix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/polyopt/fault"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
	ctxRow = "Row"
	ctxCol = "Col"
)

// ---------- formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "

	_reportRowOpen  = "( "
	_reportCellSep  = "\t"
	_reportRowClose = ")\n"

	// DefaultFormatPrecision is the number of significant digits Format uses
	// when prec <= 0 (the classic six-digit stream default).
	DefaultFormatPrecision = 6
)

// denseErrorf attaches method context and coordinates to a sentinel error.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (both > 0 for every public constructor).
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrZeroSize.
//   - Stage 2: allocate a zero-filled buffer.
//
// Errors:
//   - ErrZeroSize.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fault.Newf(fault.ZeroSize, "NewDense", fmt.Sprintf("%dx%d", rows, cols))
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom creates an r×c matrix from a flattened row-major initialiser.
// The slice is copied; later changes to data do not reach the matrix.
//
// Errors:
//   - ErrZeroSize if rows or cols is zero (checked first).
//   - ErrInitializerSize if len(data) != rows*cols.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fault.Newf(fault.ZeroSize, "NewDenseFrom", fmt.Sprintf("%dx%d", rows, cols))
	}
	if len(data) != rows*cols {
		return nil, fault.Newf(fault.InitializerSize, "NewDenseFrom",
			fmt.Sprintf("got %d values for %dx%d", len(data), rows, cols))
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// NewDiagonal creates a square matrix with diag on its main diagonal.
//
// Errors:
//   - ErrZeroSize if diag is empty.
func NewDiagonal(diag []float64) (*Dense, error) {
	n := len(diag)
	if n == 0 {
		return nil, fault.Newf(fault.ZeroSize, "NewDiagonal", "empty diagonal")
	}
	d := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i, v := range diag {
		d.data[i*n+i] = v
	}

	return d, nil
}

// NewIdentity creates the n×n identity matrix.
//
// Errors:
//   - ErrZeroSize if n <= 0.
func NewIdentity(n int) (*Dense, error) {
	if n <= 0 {
		return nil, fault.Newf(fault.ZeroSize, "NewIdentity", strconv.Itoa(n))
	}
	d := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 1
	}

	return d, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (int, int) { return m.r, m.c }

// At returns the element at (i, j).
// Errors: ErrOutOfRange.
func (m *Dense) At(i, j int) (float64, error) {
	if err := validateIndex(m.r, m.c, i, j); err != nil {
		return 0, denseErrorf(ctxAt, i, j, err)
	}

	return m.data[i*m.c+j], nil
}

// Set assigns v at (i, j).
// Errors: ErrOutOfRange.
func (m *Dense) Set(i, j int, v float64) error {
	if err := validateIndex(m.r, m.c, i, j); err != nil {
		return denseErrorf(ctxSet, i, j, err)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Row returns a copy of row i.
// Errors: ErrOutOfRange.
func (m *Dense) Row(i int) ([]float64, error) {
	if err := validateIndex(m.r, m.c, i, 0); err != nil {
		return nil, denseErrorf(ctxRow, i, 0, err)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Col returns a copy of column j.
// Errors: ErrOutOfRange.
func (m *Dense) Col(j int) ([]float64, error) {
	if err := validateIndex(m.r, m.c, 0, j); err != nil {
		return nil, denseErrorf(ctxCol, 0, j, err)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() Matrix {
	return m.clone()
}

// clone is the typed variant used by kernels that need *Dense back.
func (m *Dense) clone() *Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// RawData returns a copy of the row-major buffer.
func (m *Dense) RawData() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// String renders the matrix as bracketed rows: "[a, b]\n[c, d]\n".
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			sb.WriteString(strconv.FormatFloat(m.data[i*m.c+j], 'g', -1, 64))
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// Format renders m in report style: every row as "( a\tb\t)\n", followed by
// one blank line. Values use prec significant digits (DefaultFormatPrecision
// when prec <= 0). A nil matrix renders as the lone blank line.
func Format(m Matrix, prec int) string {
	if prec <= 0 {
		prec = DefaultFormatPrecision
	}
	var sb strings.Builder
	if ValidateNotNil(m) == nil {
		rows, cols := m.Rows(), m.Cols()
		for i := 0; i < rows; i++ {
			sb.WriteString(_reportRowOpen)
			for j := 0; j < cols; j++ {
				v, _ := m.At(i, j) // indices are in range by construction
				sb.WriteString(strconv.FormatFloat(v, 'g', prec, 64))
				sb.WriteString(_reportCellSep)
			}
			sb.WriteString(_reportRowClose)
		}
	}
	sb.WriteString("\n")

	return sb.String()
}
