// SPDX-License-Identifier: MIT

// Package vector implements the arithmetic on []float64 points used by the
// optimisers: sums, scaling, dot products and the Euclidean norm.
//
// The kernels delegate to gonum's floats package after checking lengths, so a
// mismatch comes back as ErrLengthMismatch instead of a panic. Inputs are never
// modified except for AddScaled's dst.
package vector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/polyopt/fault"
)

// ErrLengthMismatch is returned when two vectors of different lengths meet.
var ErrLengthMismatch = fault.ErrLengthMismatch

// DefaultPrecision is the number of significant digits Format uses when
// prec <= 0.
const DefaultPrecision = 6

func checkLen(op string, v, w []float64) error {
	if len(v) != len(w) {
		return fault.Newf(fault.LengthMismatch, op, fmt.Sprintf("%d vs %d", len(v), len(w)))
	}

	return nil
}

// Add returns v + w.
func Add(v, w []float64) ([]float64, error) {
	if err := checkLen("vector.Add", v, w); err != nil {
		return nil, err
	}

	return floats.AddTo(make([]float64, len(v)), v, w), nil
}

// Sub returns v - w.
func Sub(v, w []float64) ([]float64, error) {
	if err := checkLen("vector.Sub", v, w); err != nil {
		return nil, err
	}

	return floats.SubTo(make([]float64, len(v)), v, w), nil
}

// Neg returns -v.
func Neg(v []float64) []float64 {
	return Scale(-1, v)
}

// Scale returns alpha*v.
func Scale(alpha float64, v []float64) []float64 {
	return floats.ScaleTo(make([]float64, len(v)), alpha, v)
}

// AddScaled performs dst += alpha*v in place.
func AddScaled(dst []float64, alpha float64, v []float64) error {
	if err := checkLen("vector.AddScaled", dst, v); err != nil {
		return err
	}
	floats.AddScaled(dst, alpha, v)

	return nil
}

// Dot returns the inner product of v and w.
func Dot(v, w []float64) (float64, error) {
	if err := checkLen("vector.Dot", v, w); err != nil {
		return 0, err
	}

	return floats.Dot(v, w), nil
}

// Norm returns the Euclidean norm of v. The norm of an empty vector is 0.
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}

	return floats.Norm(v, 2)
}

// Round returns a copy of v with every element rounded to places decimals,
// halves away from zero.
func Round(v []float64, places int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = scalar.Round(x, places)
	}

	return out
}

// Format renders v as "(a, b, c)" with prec significant digits
// (DefaultPrecision when prec <= 0). An empty vector renders as "()".
func Format(v []float64, prec int) string {
	if prec <= 0 {
		prec = DefaultPrecision
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, x := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(FormatFloat(x, prec))
	}
	sb.WriteByte(')')

	return sb.String()
}

// FormatFloat renders x with prec significant digits. Non-finite values are
// written the way C-family streams print them: nan, inf, -inf.
func FormatFloat(x float64, prec int) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	return strconv.FormatFloat(x, 'g', prec, 64)
}
