// SPDX-License-Identifier: MIT

// Package solver runs unconstrained optimisation on a parsed problem.
//
// Algorithms:
//   - GradientDescent: steps along goal·∇f (descent for min, ascent for max)
//     with a backtracking line search on the Armijo condition.
//   - NewtonsMethod: steps by -H⁻¹∇f; converges to any stationary point.
//
// Every iteration computes the gradient g and its norm. The run stops with
// Stationary when ‖g‖ < tolerance, with Diverged when ‖g‖ > max norm (1e9 by
// default), and with MaxIterations once the iteration cap is exhausted. A NaN
// norm satisfies neither bound and iteration continues.
//
// Observability is opt-in through options: a Recorder sees each Iteration, an
// emit.Emitter receives run_start/iteration/run_end events, and a
// *metrics.Metrics counts runs, iterations and backtracks.
package solver
