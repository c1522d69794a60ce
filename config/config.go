// SPDX-License-Identifier: MIT

// Package config loads polyopt settings from YAML.
//
// Precedence is defaults < config file < command-line flags; this package
// covers the first two, cmd/polyopt applies the flags on top.
package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v2"

	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/solver"
	"github.com/katalvlaran/polyopt/store"
)

// Log formats.
const (
	LogText = "text"
	LogJSON = "json"
	LogNone = "none"
)

const opValidate = "config.Validate"

// Config is the full settings tree.
type Config struct {
	Input      string        `yaml:"input"`
	OutputDir  string        `yaml:"output_dir"`
	Algorithms []string      `yaml:"algorithms"`
	Solver     SolverConfig  `yaml:"solver"`
	Log        LogConfig     `yaml:"log"`
	Store      StoreConfig   `yaml:"store"`
	Metrics    MetricsConfig `yaml:"metrics"`
	Trace      TraceConfig   `yaml:"trace"`
}

// SolverConfig tunes the optimisation loop.
type SolverConfig struct {
	MaxNorm      float64 `yaml:"max_norm"`
	ArmijoC      float64 `yaml:"armijo_c"`
	BacktrackTau float64 `yaml:"backtrack_tau"`
}

// LogConfig selects the event log format: text, json or none.
type LogConfig struct {
	Format string `yaml:"format"`
}

// StoreConfig selects the run history backend.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is non-empty.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// TraceConfig turns on OpenTelemetry spans for every event, printed to stderr.
type TraceConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	algs := solver.Algorithms()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = string(a)
	}

	return Config{
		Input:      input.DefaultFileName,
		OutputDir:  ".",
		Algorithms: names,
		Solver: SolverConfig{
			MaxNorm:      solver.DefaultMaxNorm,
			ArmijoC:      solver.DefaultArmijoC,
			BacktrackTau: solver.DefaultBacktrackTau,
		},
		Log:   LogConfig{Format: LogText},
		Store: StoreConfig{Driver: store.DriverNone},
	}
}

// Load reads path over Default(). Keys absent from the file keep their
// default; unknown keys are rejected.
//
// Errors:
//   - ErrReadInput if the file cannot be read.
//   - ErrInvalidConfig on malformed YAML or failed validation.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fault.Wrap(fault.ReadInput, "config.Load", err)
	}

	return Parse(raw)
}

// Parse decodes YAML bytes over Default() and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return Config{}, fault.Wrap(fault.InvalidConfig, "config.Parse", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field. The first failure wins.
//
// Errors: ErrInvalidConfig.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fault.Newf(fault.InvalidConfig, opValidate, "input is empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fault.Newf(fault.InvalidConfig, opValidate, "output_dir is empty")
	}
	if _, err := c.ParsedAlgorithms(); err != nil {
		return err
	}
	if !(c.Solver.MaxNorm > 0) || math.IsInf(c.Solver.MaxNorm, 0) {
		return fault.Newf(fault.InvalidConfig, opValidate,
			fmt.Sprintf("solver.max_norm must be positive, got %g", c.Solver.MaxNorm))
	}
	if !inUnitInterval(c.Solver.ArmijoC) {
		return fault.Newf(fault.InvalidConfig, opValidate,
			fmt.Sprintf("solver.armijo_c must lie in (0, 1), got %g", c.Solver.ArmijoC))
	}
	if !inUnitInterval(c.Solver.BacktrackTau) {
		return fault.Newf(fault.InvalidConfig, opValidate,
			fmt.Sprintf("solver.backtrack_tau must lie in (0, 1), got %g", c.Solver.BacktrackTau))
	}
	switch c.Log.Format {
	case LogText, LogJSON, LogNone:
	default:
		return fault.Newf(fault.InvalidConfig, opValidate,
			fmt.Sprintf("log.format %q is not one of text, json, none", c.Log.Format))
	}
	if !knownDriver(c.Store.Driver) {
		return fault.Newf(fault.InvalidConfig, opValidate,
			fmt.Sprintf("store.driver %q is not one of %s", c.Store.Driver, strings.Join(store.Drivers(), ", ")))
	}
	if c.Store.Driver == store.DriverMySQL && c.Store.DSN == "" {
		return fault.Newf(fault.InvalidConfig, opValidate, "store.dsn is required for mysql")
	}

	return nil
}

// ParsedAlgorithms resolves the algorithm names in order.
//
// Errors:
//   - ErrInvalidConfig if the list is empty or repeats a name.
//   - ErrUnknownAlgorithm for an unrecognised name.
func (c Config) ParsedAlgorithms() ([]solver.Algorithm, error) {
	if len(c.Algorithms) == 0 {
		return nil, fault.Newf(fault.InvalidConfig, opValidate, "algorithms is empty")
	}
	out := make([]solver.Algorithm, 0, len(c.Algorithms))
	seen := make(map[solver.Algorithm]bool, len(c.Algorithms))
	for _, name := range c.Algorithms {
		alg, err := solver.ParseAlgorithm(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if seen[alg] {
			return nil, fault.Newf(fault.InvalidConfig, opValidate,
				fmt.Sprintf("algorithm %q listed twice", alg))
		}
		seen[alg] = true
		out = append(out, alg)
	}

	return out, nil
}

// SolverOptions converts the solver section into solver options. Call it on
// a validated Config; invalid values panic inside the solver constructors.
func (c Config) SolverOptions() []solver.Option {
	return []solver.Option{
		solver.WithMaxNorm(c.Solver.MaxNorm),
		solver.WithLineSearch(c.Solver.ArmijoC, c.Solver.BacktrackTau),
	}
}

func inUnitInterval(v float64) bool { return v > 0 && v < 1 }

func knownDriver(name string) bool {
	for _, d := range store.Drivers() {
		if name == d {
			return true
		}
	}

	return false
}
