// SPDX-License-Identifier: MIT

// Package fault defines the closed set of failure kinds reported by polyopt.
//
// Every user-triggered failure (a malformed input line, an incompatible matrix
// shape, an unwritable output file) is an *Error carrying exactly one Kind.
// Callers match with errors.Is against the exported sentinels or switch on
// KindOf(err); the Kind list is exhaustive and String() covers all of it.
//
// Wrapping:
//   - Packages wrap with fmt.Errorf("Op: %w", err) or fault.Wrap; both keep
//     errors.Is(err, fault.ErrX) true.
//   - Two *Error values are equal under errors.Is when their kinds match,
//     regardless of Op/Detail.
package fault

import (
	"errors"
	"strings"
)

// Kind is the discriminant of an Error.
type Kind uint8

const (
	// Unknown is reported by KindOf for errors that are not *Error.
	Unknown Kind = iota

	// ReadInput: the problem file cannot be opened or read.
	ReadInput
	// WriteResults: an output_results file cannot be created or written.
	WriteResults
	// WriteIterations: an output_iterations file cannot be created or written.
	WriteIterations

	// TooManyLines: a non-blank line follows the fifth line.
	TooManyLines
	// TooFewLines: fewer than five lines, or a blank line among the first five.
	TooFewLines

	// InvalidGoal: line 1 is neither "min" nor "max".
	InvalidGoal
	// MissingEqualSign: the polynomial has no '='.
	MissingEqualSign
	// InvalidLHS: the text left of '=' is not f(x_1,...,x_n).
	InvalidLHS
	// InvalidRHS: the text right of '=' is not an expanded polynomial.
	InvalidRHS
	// InvalidInitialPointLine: line 3 is not initial_point=v1,v2,...
	InvalidInitialPointLine
	// InitialPointSize: the initial point and the polynomial disagree on n.
	InitialPointSize
	// InvalidToleranceLine: line 4 is not tolerance=v.
	InvalidToleranceLine
	// InvalidTolerance: tolerance is zero or negative.
	InvalidTolerance
	// InvalidMaxIterLine: line 5 is not max_iter=n.
	InvalidMaxIterLine
	// InvalidMaxIter: max_iter is zero or negative.
	InvalidMaxIter

	// VectorSize: an x vector does not match the polynomial's variable count.
	VectorSize
	// UnknownAlgorithm: the algorithm name is not supported.
	UnknownAlgorithm

	// ZeroSize: a matrix with zero rows or columns was requested.
	ZeroSize
	// InitializerSize: flattened initial elements do not fill rows*cols.
	InitializerSize
	// AddShape: matrices of different shapes were added or subtracted.
	AddShape
	// MulShape: a.Cols != b.Rows in a product.
	MulShape
	// NonSquare: a square matrix was required.
	NonSquare
	// Singular: a matrix has no inverse.
	Singular
	// OutOfRange: a row/column index is outside the matrix.
	OutOfRange

	// LengthMismatch: vectors of different lengths were combined.
	LengthMismatch

	// InvalidConfig: the run configuration is malformed.
	InvalidConfig
	// Store: the run history store failed.
	Store

	numKinds
)

var kindNames = [numKinds]string{
	Unknown:                 "unknown",
	ReadInput:               "read_input",
	WriteResults:            "write_results",
	WriteIterations:         "write_iterations",
	TooManyLines:            "too_many_lines",
	TooFewLines:             "too_few_lines",
	InvalidGoal:             "invalid_goal",
	MissingEqualSign:        "missing_equal_sign",
	InvalidLHS:              "invalid_lhs",
	InvalidRHS:              "invalid_rhs",
	InvalidInitialPointLine: "invalid_initial_point_line",
	InitialPointSize:        "initial_point_size",
	InvalidToleranceLine:    "invalid_tolerance_line",
	InvalidTolerance:        "invalid_tolerance",
	InvalidMaxIterLine:      "invalid_max_iter_line",
	InvalidMaxIter:          "invalid_max_iter",
	VectorSize:              "vector_size",
	UnknownAlgorithm:        "unknown_algorithm",
	ZeroSize:                "zero_size",
	InitializerSize:         "initializer_size",
	AddShape:                "add_shape",
	MulShape:                "mul_shape",
	NonSquare:               "non_square",
	Singular:                "singular",
	OutOfRange:              "out_of_range",
	LengthMismatch:          "length_mismatch",
	InvalidConfig:           "invalid_config",
	Store:                   "store",
}

var kindMessages = [numKinds]string{
	Unknown:                 "unknown failure",
	ReadInput:               "cannot open the input file",
	WriteResults:            "cannot open the output_results file",
	WriteIterations:         "cannot open the output_iterations file",
	TooManyLines:            "more than 5 lines in the input file; expected: min/max, polynomial, initial point, tolerance, max iterations",
	TooFewLines:             "less than 5 lines in the input file; expected: min/max, polynomial, initial point, tolerance, max iterations",
	InvalidGoal:             "invalid first line: expected \"min\" or \"max\"",
	MissingEqualSign:        "invalid polynomial on the second line: missing '='",
	InvalidLHS:              "invalid polynomial on the second line: left-hand side must be f(x_1,x_2,...)",
	InvalidRHS:              "invalid polynomial on the second line: right-hand side must be an expanded and simplified polynomial",
	InvalidInitialPointLine: "invalid third line: expected initial_point=x_1,x_2,... (e.g. \"initial_point=1,0,-1\")",
	InitialPointSize:        "invalid third line: the initial point must have as many values as the polynomial has variables",
	InvalidToleranceLine:    "invalid fourth line: expected tolerance=... (e.g. \"tolerance=0.0001\")",
	InvalidTolerance:        "tolerance must be positive",
	InvalidMaxIterLine:      "invalid fifth line: expected max_iter=... (e.g. \"max_iter=10000\")",
	InvalidMaxIter:          "max_iter must be positive",
	VectorSize:              "x vector length does not match the number of polynomial variables",
	UnknownAlgorithm:        "unknown algorithm; supported: gradient_descent, newtons_method",
	ZeroSize:                "matrix dimensions must be > 0",
	InitializerSize:         "initializer length does not match rows*cols",
	AddShape:                "matrices must have the same shape to be added or subtracted",
	MulShape:                "matrix shapes are incompatible for multiplication",
	NonSquare:               "matrix is not square",
	Singular:                "matrix is singular",
	OutOfRange:              "index out of range",
	LengthMismatch:          "vector lengths must match",
	InvalidConfig:           "invalid configuration",
	Store:                   "run history store failure",
}

// String returns the stable snake_case name of k.
func (k Kind) String() string {
	if k >= numKinds {
		return kindNames[Unknown]
	}

	return kindNames[k]
}

// Message returns the human-readable description of k.
func (k Kind) Message() string {
	if k >= numKinds {
		return kindMessages[Unknown]
	}

	return kindMessages[k]
}

// Kinds lists every defined kind except Unknown, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := Unknown + 1; k < numKinds; k++ {
		out = append(out, k)
	}

	return out
}

// Error is the single error type of the module.
type Error struct {
	Kind   Kind   // discriminant
	Op     string // operation that failed, e.g. "Polynomial.Parse" (optional)
	Detail string // offending input or extra context (optional)
	Err    error  // underlying cause (optional)
}

// Error renders "op: message: detail: cause", omitting empty parts.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Message())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality with another *Error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

// New returns an *Error of kind k for operation op.
func New(k Kind, op string) *Error {
	return &Error{Kind: k, Op: op}
}

// Newf returns an *Error of kind k carrying the offending detail.
func Newf(k Kind, op, detail string) *Error {
	return &Error{Kind: k, Op: op, Detail: detail}
}

// Wrap attaches kind k to a foreign cause. A nil cause yields nil.
func Wrap(k Kind, op string, cause error) error {
	if cause == nil {
		return nil
	}

	return &Error{Kind: k, Op: op, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unknown
}
