package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/katalvlaran/polyopt/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func count(t *testing.T, reg *prometheus.Registry) int {
	t.Helper()
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)

	return n
}

func TestRecording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveIteration("gradient_descent", 2.5)
	m.ObserveIteration("gradient_descent", 0.5)
	m.AddBacktracks("gradient_descent", 3)
	m.AddBacktracks("gradient_descent", 0)
	m.ObserveRun("gradient_descent", "stationary", 20*time.Millisecond)

	require.Equal(t, 5, count(t, reg))

	n, err := testutil.GatherAndCount(reg, "polyopt_iterations_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[mf.GetName()] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				values[mf.GetName()] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	require.Equal(t, 2.0, values["polyopt_iterations_total"])
	require.Equal(t, 0.5, values["polyopt_gradient_norm"])
	require.Equal(t, 3.0, values["polyopt_line_search_backtracks_total"])
	require.Equal(t, 1.0, values["polyopt_runs_total"])
	require.Equal(t, 1.0, values["polyopt_run_duration_seconds"])
}

func TestDisableAndNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.Disable()
	m.ObserveIteration("newtons_method", 1)
	require.Equal(t, 0, count(t, reg))
	m.Enable()
	m.ObserveIteration("newtons_method", 1)
	require.Equal(t, 2, count(t, reg))

	var none *metrics.Metrics
	require.NotPanics(t, func() {
		none.ObserveIteration("x", 1)
		none.AddBacktracks("x", 2)
		none.ObserveRun("x", "y", time.Second)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveRun("newtons_method", "max_iterations", time.Millisecond)

	srv := httptest.NewServer(metrics.Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `polyopt_runs_total{algorithm="newtons_method",outcome="max_iterations"} 1`)
}
