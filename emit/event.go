// SPDX-License-Identifier: MIT

// Package emit carries structured observability events out of an optimisation
// run. The solver and the CLI describe what happens as Events; an Emitter
// decides where they go (log lines, JSON lines, OpenTelemetry spans, nowhere).
package emit

// Event names emitted by polyopt.
const (
	MsgInputLoaded   = "input_loaded"
	MsgRunStart      = "run_start"
	MsgIteration     = "iteration"
	MsgRunEnd        = "run_end"
	MsgReportWritten = "report_written"
	MsgStoreError    = "store_error"
)

// Event is a single observability record.
type Event struct {
	// RunID identifies the optimisation run (one per algorithm per invocation).
	RunID string

	// Step is the 1-based iteration number; zero for run-level events.
	Step int

	// Algorithm is the solver name, empty for CLI-level events.
	Algorithm string

	// Msg names the event, one of the Msg* constants.
	Msg string

	// Meta holds event-specific data. Common keys:
	//   - "norm": gradient norm (float64)
	//   - "step_size": line search result (float64)
	//   - "outcome": run outcome name (string)
	//   - "error": error text (string); marks the span as failed
	Meta map[string]any
}
