// SPDX-License-Identifier: MIT

// Package input loads an optimisation problem from the five-line text format:
//
//	min                          (or max)
//	f(x_1,x_2)=x_1^2+x_2^2
//	initial_point=1,-2
//	tolerance=0.0001
//	max_iter=10000
//
// Whitespace inside a line is ignored. The first five physical lines are the
// five fields even when blank; trailing blank lines are allowed. Lines are
// validated in order and the first failure is returned as a *fault.Error.
package input
