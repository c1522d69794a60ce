// Package polyopt finds local extrema of multivariate polynomials with
// gradient descent/ascent and Newton's method.
//
// A problem is a five-line text file:
//
//	min
//	f(x_1,x_2) = x_1^2 + 2*x_2^2 - 2*x_1
//	initial_point = 3, -1
//	tolerance = 0.0001
//	max_iter = 500
//
// Every algorithm writes an output_results_<algorithm>.txt report and an
// output_iterations_<algorithm>.txt trail of every step.
//
// Packages:
//
//	fault/      the closed set of error kinds, matched with errors.Is
//	matrix/     dense row-major matrices, LU, determinant, adjugate, inverse
//	vector/     []float64 arithmetic on top of gonum/floats
//	polynomial/ parsing, evaluation, analytic gradient and Hessian
//	input/      the five-line problem file
//	solver/     the optimisation loop, line search and Newton step
//	report/     results report, iteration trail, run summaries
//	store/      run history in memory, SQLite or MySQL
//	config/     YAML settings
//	emit/       structured events: log lines and OpenTelemetry spans
//	metrics/    Prometheus counters for runs and iterations
//	cmd/polyopt the command-line tool
//
// Under the hood the derivatives are exact: the polynomial keeps its
// coefficient/exponent matrix, and ∂/∂x_i is read straight from it.
//
//	go install github.com/katalvlaran/polyopt/cmd/polyopt@latest
package polyopt
