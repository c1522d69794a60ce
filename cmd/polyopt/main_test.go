package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const problem = `min
f(x_1, x_2) = x_1^2 + 2*x_2^2 - 2*x_1
initial_point = 3, -1
tolerance = 0.0001
max_iter = 500
`

func writeProblem(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "input_function.txt")
	require.NoError(t, os.WriteFile(path, []byte(problem), 0o644))

	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRunBothAlgorithms(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	code, stdout, stderr := runCLI(t, "-input", writeProblem(t, dir), "-out", out, "-log-format", "none")
	require.Equal(t, exitOK, code, stderr)

	want := []string{
		"Successfully performed the optimization algorithms!",
		"Please check the following files:",
		"    " + filepath.Join(out, "output_results_gradient_descent.txt"),
		"    " + filepath.Join(out, "output_results_newtons_method.txt"),
		"    " + filepath.Join(out, "output_iterations_gradient_descent.txt"),
		"    " + filepath.Join(out, "output_iterations_newtons_method.txt"),
	}
	require.Equal(t, strings.Join(want, "\n")+"\n", stdout)
	for _, line := range want[2:] {
		_, err := os.Stat(strings.TrimSpace(line))
		require.NoError(t, err)
	}
	require.Empty(t, stderr)
}

func TestRunLogsEventsAndTraces(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCLI(t, "-input", writeProblem(t, dir), "-out", dir,
		"-algorithms", "newtons_method", "-log-format", "text", "-trace")
	require.Equal(t, exitOK, code, stderr)

	require.Contains(t, stderr, "[input_loaded]")
	require.Contains(t, stderr, "[run_start]")
	require.Contains(t, stderr, "[iteration]")
	require.Contains(t, stderr, "[run_end]")
	require.Contains(t, stderr, "[report_written]")
	require.Contains(t, stderr, "span report_written run=")
	require.NoFileExists(t, filepath.Join(dir, "output_results_gradient_descent.txt"))
}

func TestRunHistoryWithSQLite(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")
	inputPath := writeProblem(t, dir)

	code, _, stderr := runCLI(t, "-input", inputPath, "-out", dir, "-log-format", "none",
		"-store", "sqlite", "-dsn", db)
	require.Equal(t, exitOK, code, stderr)

	code, stdout, stderr := runCLI(t, "-store", "sqlite", "-dsn", db, "-history", "10", "-log-format", "none")
	require.Equal(t, exitOK, code, stderr)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "CREATED"))
	require.Contains(t, stdout, "gradient_descent")
	require.Contains(t, stdout, "newtons_method")
	require.Contains(t, stdout, "stationary")
}

func TestRunConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "polyopt.yaml")
	cfg := "input: " + writeProblem(t, dir) + "\n" +
		"output_dir: " + filepath.Join(dir, "from-config") + "\n" +
		"algorithms: [gradient_descent]\n" +
		"log: {format: json}\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	code, stdout, stderr := runCLI(t, "-config", cfgPath, "-log-format", "none")
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, filepath.Join(dir, "from-config", "output_results_gradient_descent.txt"))
	require.NotContains(t, stdout, "newtons_method")
	require.Empty(t, stderr, "the flag overrides the json log format from the file")
}

func TestRunMetricsEndpoint(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCLI(t, "-input", writeProblem(t, dir), "-out", dir,
		"-log-format", "none", "-metrics-addr", "127.0.0.1:0")
	require.Equal(t, exitOK, code, stderr)
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("min\nf(x_1)=x_1^2\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing input", []string{"-input", filepath.Join(dir, "absent.txt")}, "cannot open the input file"},
		{"short input", []string{"-input", bad}, "less than 5 lines"},
		{"unknown algorithm", []string{"-algorithms", "simplex"}, "unknown algorithm"},
		{"unknown log format", []string{"-log-format", "xml"}, "invalid configuration"},
		{"history without store", []string{"-history", "3"}, "-history needs a store"},
		{"positional argument", []string{"extra"}, "unexpected arguments: extra"},
		{"bad flag", []string{"-nope"}, "flag provided but not defined"},
		{"missing config", []string{"-config", filepath.Join(dir, "absent.yaml")}, "cannot open the input file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"-out", dir, "-log-format", "none"}, tc.args...)
			code, stdout, stderr := runCLI(t, args...)
			require.Equal(t, exitFail, code)
			require.Empty(t, stdout)
			require.Contains(t, stderr, tc.want)
		})
	}
}

func TestRunHelp(t *testing.T) {
	code, _, stderr := runCLI(t, "-h")
	require.Equal(t, exitOK, code)
	require.Contains(t, stderr, "-algorithms")
}
