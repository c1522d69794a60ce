// SPDX-License-Identifier: MIT

// Command polyopt reads an optimisation problem from a text file, runs each
// selected algorithm on it and writes one results report and one iteration
// trail per algorithm.
//
// Usage:
//
//	polyopt [-config polyopt.yaml] [-input input_function.txt] [-out .]
//	        [-algorithms gradient_descent,newtons_method] [-log-format text|json|none]
//	        [-store none|memory|sqlite|mysql] [-dsn DSN] [-metrics-addr :9464]
//	        [-trace] [-history N]
//
// Flags override the config file; the config file overrides the defaults.
// Any failure prints its message to stderr and exits with status 1.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/polyopt/config"
	"github.com/katalvlaran/polyopt/emit"
	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/metrics"
	"github.com/katalvlaran/polyopt/report"
	"github.com/katalvlaran/polyopt/solver"
	"github.com/katalvlaran/polyopt/store"
)

const (
	exitOK   = 0
	exitFail = 1

	tracerName      = "polyopt"
	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds the raw command line; only flags the user actually set are
// applied over the config.
type flags struct {
	configPath  string
	input       string
	out         string
	algorithms  string
	logFormat   string
	storeDriver string
	dsn         string
	metricsAddr string
	trace       bool
	history     int
}

func parseFlags(args []string, stderr io.Writer) (flags, map[string]bool, error) {
	var f flags
	fs := flag.NewFlagSet("polyopt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.input, "input", input.DefaultFileName, "problem file")
	fs.StringVar(&f.out, "out", ".", "directory for output files")
	fs.StringVar(&f.algorithms, "algorithms", "gradient_descent,newtons_method", "comma separated algorithms to run")
	fs.StringVar(&f.logFormat, "log-format", config.LogText, "event log format: text, json or none")
	fs.StringVar(&f.storeDriver, "store", store.DriverNone, "run history store: "+strings.Join(store.Drivers(), ", "))
	fs.StringVar(&f.dsn, "dsn", "", "store DSN (sqlite path or mysql DSN)")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&f.trace, "trace", false, "print an OpenTelemetry span per event to stderr")
	fs.IntVar(&f.history, "history", 0, "print the last N stored runs and exit")
	if err := fs.Parse(args); err != nil {
		return flags{}, nil, err
	}
	if fs.NArg() > 0 {
		return flags{}, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return f, set, nil
}

// resolveConfig layers defaults, the optional config file and the set flags.
func resolveConfig(f flags, set map[string]bool) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if set["input"] {
		cfg.Input = f.input
	}
	if set["out"] {
		cfg.OutputDir = f.out
	}
	if set["algorithms"] {
		cfg.Algorithms = strings.Split(f.algorithms, ",")
	}
	if set["log-format"] {
		cfg.Log.Format = f.logFormat
	}
	if set["store"] {
		cfg.Store.Driver = f.storeDriver
	}
	if set["dsn"] {
		cfg.Store.DSN = f.dsn
	}
	if set["metrics-addr"] {
		cfg.Metrics.Addr = f.metricsAddr
	}
	if set["trace"] {
		cfg.Trace.Enabled = f.trace
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// run is main without the process exit, so tests can drive it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, set, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}
	cfg, err := resolveConfig(f, set)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}

	app, err := newApp(ctx, cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}
	defer app.close(stderr)

	if f.history > 0 {
		err = app.printHistory(ctx, stdout, f.history)
	} else {
		err = app.optimize(ctx, stdout, stderr)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}

	return exitOK
}

// app holds the wired observability and persistence for one invocation.
type app struct {
	cfg     config.Config
	emitter emit.Emitter
	metrics *metrics.Metrics
	store   store.Store // nil when the driver is "none"
	tracer  *sdktrace.TracerProvider
	server  *http.Server
}

func newApp(ctx context.Context, cfg config.Config, stderr io.Writer) (*app, error) {
	a := &app{cfg: cfg}

	var emitters []emit.Emitter
	switch cfg.Log.Format {
	case config.LogText:
		emitters = append(emitters, emit.NewLogEmitter(stderr, false))
	case config.LogJSON:
		emitters = append(emitters, emit.NewLogEmitter(stderr, true))
	}
	if cfg.Trace.Enabled {
		a.tracer = sdktrace.NewTracerProvider(sdktrace.WithSyncer(emit.NewSpanWriter(stderr)))
		emitters = append(emitters, emit.NewOTelEmitter(a.tracer.Tracer(tracerName)))
	}
	a.emitter = emit.NewMultiEmitter(emitters...)

	registry := prometheus.NewRegistry()
	a.metrics = metrics.New(registry)
	if cfg.Metrics.Addr != "" {
		ln, err := net.Listen("tcp", cfg.Metrics.Addr)
		if err != nil {
			a.close(stderr)
			return nil, fmt.Errorf("metrics listener: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(registry))
		a.server = &http.Server{Handler: mux, ReadHeaderTimeout: shutdownTimeout}
		go func() {
			if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(stderr, "metrics server: %v\n", err)
			}
		}()
	}

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		a.close(stderr)
		return nil, err
	}
	a.store = st

	return a, nil
}

// close releases everything newApp acquired; failures are reported, not returned.
func (a *app) close(stderr io.Writer) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			fmt.Fprintln(stderr, err)
		}
	}
	if a.server != nil {
		_ = a.server.Shutdown(ctx)
	}
	if a.tracer != nil {
		_ = a.tracer.Shutdown(ctx)
	}
}

// optimize runs every configured algorithm on the input problem.
func (a *app) optimize(ctx context.Context, stdout, stderr io.Writer) error {
	data, err := input.Load(a.cfg.Input)
	if err != nil {
		return err
	}
	a.emitter.Emit(emit.Event{Msg: emit.MsgInputLoaded, Meta: map[string]any{
		"path":          a.cfg.Input,
		"goal":          data.Goal.String(),
		"vars":          data.Polynomial.NumVars(),
		"terms":         data.Polynomial.NumTerms(),
		"initial_point": data.InitialPoint,
	}})

	algs, err := a.cfg.ParsedAlgorithms()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	produced := make([]report.Files, 0, len(algs))
	for _, alg := range algs {
		opts := append(a.cfg.SolverOptions(),
			solver.WithEmitter(a.emitter),
			solver.WithMetrics(a.metrics),
		)
		res, files, err := report.Handle(ctx, data, alg, a.cfg.OutputDir, opts...)
		if err != nil {
			return err
		}
		produced = append(produced, files)
		a.emitter.Emit(emit.Event{RunID: res.RunID, Step: res.Iterations, Algorithm: string(alg),
			Msg: emit.MsgReportWritten, Meta: map[string]any{
				"outcome":    res.Outcome.String(),
				"results":    files.Results,
				"iterations": files.Iterations,
			}})
		a.save(ctx, report.Summarize(data, res, files, time.Now()), stderr)
	}

	fmt.Fprintln(stdout, "Successfully performed the optimization algorithms!")
	fmt.Fprintln(stdout, "Please check the following files:")
	for _, files := range produced {
		fmt.Fprintf(stdout, "    %s\n", files.Results)
	}
	for _, files := range produced {
		fmt.Fprintf(stdout, "    %s\n", files.Iterations)
	}

	return nil
}

// save records a run; history failures never fail the optimisation.
func (a *app) save(ctx context.Context, sum report.Summary, stderr io.Writer) {
	if a.store == nil {
		return
	}
	if err := a.store.Save(ctx, sum); err != nil {
		a.emitter.Emit(emit.Event{RunID: sum.RunID, Algorithm: sum.Algorithm, Msg: emit.MsgStoreError,
			Meta: map[string]any{"error": err.Error()}})
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
}

// printHistory writes the n most recent stored runs as a table.
func (a *app) printHistory(ctx context.Context, stdout io.Writer, n int) error {
	if a.store == nil {
		return errors.New("-history needs a store: set -store or store.driver")
	}
	runs, err := a.store.Recent(ctx, n)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tRUN\tALGORITHM\tGOAL\tOUTCOME\tITER\tX\tPOLYNOMIAL")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%v\t%s\n",
			r.CreatedAt.Format(time.RFC3339), r.RunID, r.Algorithm, r.Goal,
			r.Outcome, r.Iterations, r.X, r.Polynomial)
	}

	return tw.Flush()
}
