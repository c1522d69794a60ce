// SPDX-License-Identifier: MIT

package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/polynomial"
)

// Goal is the optimisation direction. Its numeric value is the sign applied to
// the gradient step and printed in reports as "min/max: -1|1".
type Goal int

const (
	Minimize Goal = -1
	Maximize Goal = 1
)

// String returns "min" or "max".
func (g Goal) String() string {
	if g == Maximize {
		return "max"
	}

	return "min"
}

// Sign returns the goal as a float multiplier.
func (g Goal) Sign() float64 { return float64(g) }

// Defaults applied before the file overrides them.
const (
	DefaultGoal      = Minimize
	DefaultTolerance = 1e-4
	DefaultMaxIter   = 10000

	// DefaultFileName is the problem file read when no path is given.
	DefaultFileName = "input_function.txt"

	numLines = 5
)

const (
	prefixInitialPoint = "initial_point="
	prefixTolerance    = "tolerance="
	prefixMaxIter      = "max_iter="

	opLoad  = "input.Load"
	opParse = "input.Parse"
)

// Data is a validated optimisation problem.
type Data struct {
	Goal         Goal
	Polynomial   *polynomial.Polynomial
	InitialPoint []float64
	Tolerance    float64
	MaxIter      int
}

// Load opens path and parses it.
//
// Errors: ErrReadInput when the file cannot be opened or read, otherwise any
// error of Parse.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.Wrap(fault.ReadInput, opLoad, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads the five-line format from r.
//
// Implementation:
//   - Stage 1: collect the five field lines (whitespace removed).
//   - Stage 2: validate lines 1..5 in order.
func Parse(r io.Reader) (*Data, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	d := &Data{Goal: DefaultGoal, Tolerance: DefaultTolerance, MaxIter: DefaultMaxIter}
	if d.Goal, err = parseGoal(lines[0]); err != nil {
		return nil, err
	}
	if d.Polynomial, err = polynomial.Parse(lines[1]); err != nil {
		return nil, err
	}
	if d.InitialPoint, err = parseInitialPoint(lines[2], d.Polynomial.NumVars()); err != nil {
		return nil, err
	}
	if d.Tolerance, err = parseTolerance(lines[3]); err != nil {
		return nil, err
	}
	if d.MaxIter, err = parseMaxIter(lines[4]); err != nil {
		return nil, err
	}

	return d, nil
}

// readLines returns exactly five whitespace-free lines or a line-count error.
// Lines may be of any length.
func readLines(r io.Reader) ([numLines]string, error) {
	var (
		lines [numLines]string
		n     int
	)
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return lines, fault.Wrap(fault.ReadInput, opParse, err)
		}
		if raw == "" && err != nil {
			break
		}
		line := stripSpace(raw)
		if n < numLines {
			lines[n] = line
			n++
		} else if line != "" {
			return lines, fault.Newf(fault.TooManyLines, opParse, fmt.Sprintf("line %d: %q", lineNo, line))
		}
		if err != nil {
			break
		}
	}
	for i := 0; i < numLines; i++ {
		if lines[i] == "" {
			return lines, fault.Newf(fault.TooFewLines, opParse, fmt.Sprintf("line %d is missing or blank", i+1))
		}
	}

	return lines, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\v', '\f':
			return -1
		}

		return r
	}, s)
}

func parseGoal(line string) (Goal, error) {
	switch line {
	case "min":
		return Minimize, nil
	case "max":
		return Maximize, nil
	}

	return 0, fault.Newf(fault.InvalidGoal, opParse, line)
}

// parseFinite parses a float and rejects NaN and ±Inf.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

func parseInitialPoint(line string, n int) ([]float64, error) {
	rest, ok := strings.CutPrefix(line, prefixInitialPoint)
	if !ok || rest == "" {
		return nil, fault.Newf(fault.InvalidInitialPointLine, opParse, line)
	}
	items := strings.Split(rest, ",")
	x := make([]float64, 0, len(items))
	for _, item := range items {
		v, ok := parseFinite(item)
		if !ok {
			return nil, fault.Newf(fault.InvalidInitialPointLine, opParse, fmt.Sprintf("value %q", item))
		}
		x = append(x, v)
	}
	if len(x) != n {
		return nil, fault.Newf(fault.InitialPointSize, opParse, fmt.Sprintf("got %d values, want %d", len(x), n))
	}

	return x, nil
}

func parseTolerance(line string) (float64, error) {
	rest, ok := strings.CutPrefix(line, prefixTolerance)
	if !ok {
		return 0, fault.Newf(fault.InvalidToleranceLine, opParse, line)
	}
	v, ok := parseFinite(rest)
	if !ok {
		return 0, fault.Newf(fault.InvalidToleranceLine, opParse, line)
	}
	if v <= 0 {
		return 0, fault.Newf(fault.InvalidTolerance, opParse, rest)
	}

	return v, nil
}

func parseMaxIter(line string) (int, error) {
	rest, ok := strings.CutPrefix(line, prefixMaxIter)
	if !ok {
		return 0, fault.Newf(fault.InvalidMaxIterLine, opParse, line)
	}
	v, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fault.Newf(fault.InvalidMaxIterLine, opParse, line)
	}
	if v <= 0 {
		return 0, fault.Newf(fault.InvalidMaxIter, opParse, rest)
	}

	return v, nil
}
