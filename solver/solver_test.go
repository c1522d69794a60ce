package solver_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/polyopt/emit"
	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/metrics"
	"github.com/katalvlaran/polyopt/solver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// problem builds input data from the five lines.
func problem(t *testing.T, goal, poly, x0 string, maxIter string) *input.Data {
	t.Helper()
	text := strings.Join([]string{goal, poly, "initial_point=" + x0, "tolerance=0.0001", "max_iter=" + maxIter}, "\n")
	d, err := input.Parse(strings.NewReader(text))
	require.NoError(t, err)

	return d
}

// bowl has its minimum at (1, 0).
const bowl = "f(x_1,x_2)=x_1^2+2*x_2^2-2*x_1"

type trail struct {
	mu  sync.Mutex
	its []solver.Iteration
}

func (tr *trail) Record(it solver.Iteration) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.its = append(tr.its, it)

	return nil
}

type captured struct {
	mu     sync.Mutex
	events []emit.Event
}

func (c *captured) Emit(e emit.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func TestGradientDescentConverges(t *testing.T) {
	data := problem(t, "min", bowl, "3,-1", "100")
	tr := &trail{}

	res, err := solver.Run(context.Background(), solver.GradientDescent, data, solver.WithRecorder(tr))
	require.NoError(t, err)
	require.Equal(t, solver.Stationary, res.Outcome)
	require.NoError(t, res.Err)
	require.Equal(t, 3, res.Iterations)
	require.InDeltaSlice(t, []float64{1, 0}, res.X, eps)
	require.NotEmpty(t, res.RunID)

	// backtracking: 1 → 0.5 → 0.25 on the first step, 1 → 0.5 on the second
	require.Len(t, tr.its, 3)
	require.Equal(t, 0.25, tr.its[0].StepSize)
	require.Equal(t, []float64{4, -4}, tr.its[0].Gradient)
	require.InDeltaSlice(t, []float64{2, 0}, tr.its[0].Next, eps)
	require.Equal(t, 0.5, tr.its[1].StepSize)
	require.True(t, tr.its[2].Terminal())
	require.Zero(t, tr.its[2].Norm)

	// the input point is not modified
	require.Equal(t, []float64{3, -1}, data.InitialPoint)
}

func TestGradientAscent(t *testing.T) {
	data := problem(t, "max", "f(x_1)=-x_1^2+4*x_1", "0", "100")

	res, err := solver.Run(context.Background(), solver.GradientDescent, data)
	require.NoError(t, err)
	require.Equal(t, solver.Stationary, res.Outcome)
	require.InDeltaSlice(t, []float64{2}, res.X, eps)
	require.Equal(t, 2, res.Iterations)
}

func TestNewtonOneStep(t *testing.T) {
	data := problem(t, "min", bowl, "3,-1", "100")
	tr := &trail{}

	res, err := solver.Run(context.Background(), solver.NewtonsMethod, data, solver.WithRecorder(tr))
	require.NoError(t, err)
	require.Equal(t, solver.Stationary, res.Outcome)
	require.Equal(t, 2, res.Iterations)
	require.InDeltaSlice(t, []float64{1, 0}, res.X, eps)
	require.InDeltaSlice(t, []float64{-2, 1}, tr.its[0].Direction, eps)
	require.Zero(t, tr.its[0].StepSize)
}

func TestMaxIterations(t *testing.T) {
	data := problem(t, "min", bowl, "3,-1", "1")

	res, err := solver.Run(context.Background(), solver.GradientDescent, data)
	require.NoError(t, err)
	require.Equal(t, solver.MaxIterations, res.Outcome)
	require.Equal(t, 1, res.Iterations)
	require.InDeltaSlice(t, []float64{2, 0}, res.X, eps)
}

func TestDiverged(t *testing.T) {
	// x^3 has no minimum; the gradient explodes within a few steps.
	data := problem(t, "min", "f(x_1)=x_1^3", "-10", "100")

	res, err := solver.Run(context.Background(), solver.GradientDescent, data)
	require.NoError(t, err)
	require.Equal(t, solver.Diverged, res.Outcome)
	require.Less(t, res.Iterations, 10)

	// a lower ceiling stops earlier
	res, err = solver.Run(context.Background(), solver.GradientDescent, data, solver.WithMaxNorm(100))
	require.NoError(t, err)
	require.Equal(t, solver.Diverged, res.Outcome)
	require.Equal(t, 1, res.Iterations)
}

func TestNewtonSingularHessian(t *testing.T) {
	data := problem(t, "min", "f(x_1,x_2)=x_1+x_2", "0,0", "10")
	tr := &trail{}

	res, err := solver.Run(context.Background(), solver.NewtonsMethod, data, solver.WithRecorder(tr))
	require.NoError(t, err)
	require.Equal(t, solver.Failed, res.Outcome)
	require.ErrorIs(t, res.Err, fault.ErrSingular)
	require.Len(t, tr.its, 1)
	require.True(t, tr.its[0].Terminal())
}

func TestUnknownAlgorithm(t *testing.T) {
	data := problem(t, "min", bowl, "0,0", "10")
	_, err := solver.Run(context.Background(), solver.Algorithm("simplex"), data)
	require.ErrorIs(t, err, fault.ErrUnknownAlgorithm)

	_, err = solver.ParseAlgorithm("Newton")
	require.ErrorIs(t, err, fault.ErrUnknownAlgorithm)

	a, err := solver.ParseAlgorithm("newtons_method")
	require.NoError(t, err)
	require.Equal(t, "Newton's Method", a.Title())
	require.Equal(t, "Gradient Descent/Ascent", solver.GradientDescent.Title())
	require.Equal(t, []solver.Algorithm{solver.GradientDescent, solver.NewtonsMethod}, solver.Algorithms())
}

func TestContextCanceled(t *testing.T) {
	data := problem(t, "min", bowl, "3,-1", "100")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := solver.Run(ctx, solver.GradientDescent, data)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, solver.Failed, res.Outcome)
	require.Equal(t, []float64{3, -1}, res.X)
}

func TestRecorderErrorAborts(t *testing.T) {
	data := problem(t, "min", bowl, "3,-1", "100")
	boom := errors.New("disk full")
	rec := solver.RecorderFunc(func(solver.Iteration) error { return boom })

	res, err := solver.Run(context.Background(), solver.GradientDescent, data, solver.WithRecorder(rec))
	require.ErrorIs(t, err, boom)
	require.Equal(t, solver.Failed, res.Outcome)
	require.Equal(t, 1, res.Iterations)
}

func TestClockAndEvents(t *testing.T) {
	data := problem(t, "min", bowl, "3,-1", "100")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	ev := &captured{}

	res, err := solver.Run(context.Background(), solver.GradientDescent, data,
		solver.WithClock(clock), solver.WithEmitter(ev), solver.WithRunID("run-1"))
	require.NoError(t, err)
	require.Equal(t, time.Second, res.Elapsed)
	require.Equal(t, "run-1", res.RunID)

	require.Len(t, ev.events, 5) // start, 3 iterations, end
	require.Equal(t, emit.MsgRunStart, ev.events[0].Msg)
	require.Equal(t, emit.MsgIteration, ev.events[1].Msg)
	require.Equal(t, 1, ev.events[1].Step)
	require.Equal(t, 0.25, ev.events[1].Meta["step_size"])
	last := ev.events[4]
	require.Equal(t, emit.MsgRunEnd, last.Msg)
	require.Equal(t, "stationary", last.Meta["outcome"])
	require.Equal(t, "run-1", last.RunID)
}

func TestMetricsRecorded(t *testing.T) {
	data := problem(t, "min", bowl, "3,-1", "100")
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	_, err := solver.Run(context.Background(), solver.GradientDescent, data, solver.WithMetrics(m))
	require.NoError(t, err)

	expected := `
# HELP polyopt_iterations_total Solver iterations executed
# TYPE polyopt_iterations_total counter
polyopt_iterations_total{algorithm="gradient_descent"} 3
# HELP polyopt_line_search_backtracks_total Step halvings performed by the backtracking line search
# TYPE polyopt_line_search_backtracks_total counter
polyopt_line_search_backtracks_total{algorithm="gradient_descent"} 3
# HELP polyopt_runs_total Completed optimisation runs by algorithm and outcome
# TYPE polyopt_runs_total counter
polyopt_runs_total{algorithm="gradient_descent",outcome="stationary"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"polyopt_iterations_total", "polyopt_line_search_backtracks_total", "polyopt_runs_total"))
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { solver.WithMaxNorm(0) })
	require.Panics(t, func() { solver.WithLineSearch(1, 0.5) })
	require.Panics(t, func() { solver.WithLineSearch(0.5, 0) })
	require.Panics(t, func() { solver.WithClock(nil) })
	require.NotPanics(t, func() { solver.WithLineSearch(0.1, 0.9) })
}
