// SPDX-License-Identifier: MIT

package report

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/input"
	"github.com/katalvlaran/polyopt/solver"
)

const (
	opHandle = "report.Handle"

	resultsPrefix    = "output_results_"
	iterationsPrefix = "output_iterations_"
	fileExt          = ".txt"
)

// Files names the two outputs of one algorithm.
type Files struct {
	Results    string
	Iterations string
}

// FilesFor returns the output paths of alg inside dir.
func FilesFor(dir string, alg solver.Algorithm) Files {
	return Files{
		Results:    filepath.Join(dir, resultsPrefix+string(alg)+fileExt),
		Iterations: filepath.Join(dir, iterationsPrefix+string(alg)+fileExt),
	}
}

// Handle runs alg on data and writes both output files into dir.
//
// Implementation:
//   - Stage 1: validate alg; nothing is created for an unknown algorithm.
//   - Stage 2: create the results file, then the iterations file.
//   - Stage 3: run the solver, streaming each iteration to the trail.
//   - Stage 4: write the results report.
//
// Errors:
//   - ErrUnknownAlgorithm, ErrWriteResults, ErrWriteIterations.
//   - errors of solver.Run (context cancellation).
//
// opts are passed to solver.Run after the trail recorder.
func Handle(ctx context.Context, data *input.Data, alg solver.Algorithm, dir string, opts ...solver.Option) (solver.Result, Files, error) {
	if _, err := solver.ParseAlgorithm(string(alg)); err != nil {
		return solver.Result{Algorithm: alg}, Files{}, err
	}
	files := FilesFor(dir, alg)

	resultsFile, err := os.Create(files.Results)
	if err != nil {
		return solver.Result{Algorithm: alg}, files, fault.Wrap(fault.WriteResults, opHandle, err)
	}
	defer resultsFile.Close()

	iterFile, err := os.Create(files.Iterations)
	if err != nil {
		return solver.Result{Algorithm: alg}, files, fault.Wrap(fault.WriteIterations, opHandle, err)
	}
	defer iterFile.Close()

	trail := bufio.NewWriter(iterFile)
	recorder := solver.RecorderFunc(func(it solver.Iteration) error {
		if err := WriteIteration(trail, alg, it); err != nil {
			return fault.Wrap(fault.WriteIterations, opHandle, err)
		}

		return nil
	})

	res, runErr := solver.Run(ctx, alg, data, append([]solver.Option{solver.WithRecorder(recorder)}, opts...)...)
	if err := trail.Flush(); err != nil && runErr == nil {
		runErr = fault.Wrap(fault.WriteIterations, opHandle, err)
	}
	if err := iterFile.Close(); err != nil && runErr == nil {
		runErr = fault.Wrap(fault.WriteIterations, opHandle, err)
	}
	if runErr != nil {
		return res, files, runErr
	}

	if _, err := resultsFile.WriteString(Results(data, res)); err != nil {
		return res, files, fault.Wrap(fault.WriteResults, opHandle, err)
	}
	if err := resultsFile.Close(); err != nil {
		return res, files, fault.Wrap(fault.WriteResults, opHandle, err)
	}

	return res, files, nil
}
