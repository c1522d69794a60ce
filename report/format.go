// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/matrix"
	"github.com/katalvlaran/polyopt/solver"
	"github.com/katalvlaran/polyopt/vector"
)

const (
	// TrailPrecision is the significant digits of the iteration trail.
	TrailPrecision = 10
	// ReportPrecision is the significant digits of the results report.
	ReportPrecision = 6
	// RoundPlaces is the decimals the final point is rounded to.
	RoundPlaces = 3
)

func num(v float64, prec int) string { return vector.FormatFloat(v, prec) }

// WriteIteration appends one trail block for it to w.
func WriteIteration(w io.Writer, alg solver.Algorithm, it solver.Iteration) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Iteration %d: \n", it.Index)
	fmt.Fprintf(&sb, "Current_x: %s\n", vector.Format(it.X, TrailPrecision))
	fmt.Fprintf(&sb, "Gradient: %s\n", vector.Format(it.Gradient, TrailPrecision))
	fmt.Fprintf(&sb, "Norm: %s\n", num(it.Norm, TrailPrecision))
	if !it.Terminal() {
		if alg == solver.NewtonsMethod {
			fmt.Fprintf(&sb, "Direction: %s\n", vector.Format(it.Direction, TrailPrecision))
		} else {
			fmt.Fprintf(&sb, "Step_size: %s\n", num(it.StepSize, TrailPrecision))
		}
		fmt.Fprintf(&sb, "Next_x: %s\n\n", vector.Format(it.Next, TrailPrecision))
	}
	_, err := io.WriteString(w, sb.String())

	return err
}

// Results renders the results report of res on data.
func Results(data *input.Data, res solver.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "========== %s Results ==========\n\n", res.Algorithm.Title())
	fmt.Fprintf(&sb, "min/max: %d\n", int(data.Goal))
	fmt.Fprintf(&sb, "%s\n", data.Polynomial)
	fmt.Fprintf(&sb, "initial_point: %s\n", vector.Format(data.InitialPoint, ReportPrecision))
	fmt.Fprintf(&sb, "tolerance: %s\n", num(data.Tolerance, ReportPrecision))
	fmt.Fprintf(&sb, "max_iter: %d\n", data.MaxIter)
	sb.WriteString("coeff_exp_mtx:\n")
	sb.WriteString(matrix.Format(data.Polynomial.Coefficients(), ReportPrecision))
	fmt.Fprintf(&sb, "The algorithm took %s seconds\n\n", num(res.Elapsed.Seconds(), ReportPrecision))

	x := vector.Format(vector.Round(res.X, RoundPlaces), ReportPrecision)
	switch res.Outcome {
	case solver.Stationary:
		sb.WriteString("Case 1:\n")
		switch {
		case res.Algorithm == solver.NewtonsMethod:
			sb.WriteString("A stationary point is found at: ")
		case data.Goal == input.Maximize:
			sb.WriteString("A local maximum is found at: ")
		default:
			sb.WriteString("A local minimum is found at: ")
		}
		fmt.Fprintf(&sb, "%s\n", x)
	case solver.MaxIterations:
		sb.WriteString("Case 2:\n")
		sb.WriteString("Reached the maximum number of iterations, \n")
		fmt.Fprintf(&sb, "The current point is at: %s\n", x)
		sb.WriteString("A point at nan might suggest that there is no stationary point around the initial point.\n")
	case solver.Diverged:
		sb.WriteString("Case 3:\n")
		sb.WriteString("The gradient norm of the current point is extremely large,\n")
		sb.WriteString("The algorithm is stopped to prevent overflow,\n")
		fmt.Fprintf(&sb, "The current point is at: %s\n", x)
		sb.WriteString("This might suggest that there is no stationary point around the initial point,\n")
		sb.WriteString("or that the current x values are too large/small.\n")
	default:
		sb.WriteString("Failed to perform the optimization algorithm, please check the input polynomial\n")
		if res.Err != nil {
			fmt.Fprintf(&sb, "Reason: %v\n", res.Err)
		}
	}

	return sb.String()
}
