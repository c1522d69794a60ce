// SPDX-License-Identifier: MIT

// Package report runs an algorithm on a problem and writes its two text files:
//
//	output_results_<algorithm>.txt     problem echo, timing and outcome
//	output_iterations_<algorithm>.txt  one block per iteration
//
// Numbers in the iteration trail carry 10 significant digits; the results
// report uses 6 and rounds the final point to 3 decimals.
package report
