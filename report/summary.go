// SPDX-License-Identifier: MIT

package report

import (
	"time"

	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/solver"
)

// Summary is the flat record of one run kept in the history store.
type Summary struct {
	RunID          string
	Algorithm      string
	Goal           string
	Polynomial     string
	InitialPoint   []float64
	Tolerance      float64
	MaxIter        int
	Outcome        string
	Case           int
	X              []float64
	Iterations     int
	Elapsed        time.Duration
	Error          string
	ResultsFile    string
	IterationsFile string
	CreatedAt      time.Time
}

// Summarize flattens a finished run.
func Summarize(data *input.Data, res solver.Result, files Files, at time.Time) Summary {
	s := Summary{
		RunID:          res.RunID,
		Algorithm:      string(res.Algorithm),
		Goal:           data.Goal.String(),
		Polynomial:     data.Polynomial.String(),
		InitialPoint:   append([]float64(nil), data.InitialPoint...),
		Tolerance:      data.Tolerance,
		MaxIter:        data.MaxIter,
		Outcome:        res.Outcome.String(),
		Case:           int(res.Outcome),
		X:              append([]float64(nil), res.X...),
		Iterations:     res.Iterations,
		Elapsed:        res.Elapsed,
		ResultsFile:    files.Results,
		IterationsFile: files.Iterations,
		CreatedAt:      at.UTC(),
	}
	if res.Err != nil {
		s.Error = res.Err.Error()
	}

	return s
}
