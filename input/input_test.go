package input_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/input"
	"github.com/stretchr/testify/require"
)

func TestLoadValid(t *testing.T) {
	d, err := input.Load(filepath.Join("testdata", "valid.txt"))
	require.NoError(t, err)
	require.Equal(t, input.Minimize, d.Goal)
	require.Equal(t, "f(x_1,x_2)=x_1^2+2*x_2^2-2*x_1", d.Polynomial.String())
	require.Equal(t, []float64{3, -1}, d.InitialPoint)
	require.Equal(t, 0.0001, d.Tolerance)
	require.Equal(t, 500, d.MaxIter)
}

func TestLoadCRLF(t *testing.T) {
	d, err := input.Load(filepath.Join("testdata", "crlf.txt"))
	require.NoError(t, err)
	require.Equal(t, input.Maximize, d.Goal)
	require.Equal(t, "max", d.Goal.String())
	require.Equal(t, 1.0, d.Goal.Sign())
	require.Equal(t, 1e-6, d.Tolerance)
}

func TestLoadErrors(t *testing.T) {
	_, err := input.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, fault.ErrReadInput)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = input.Load(filepath.Join("testdata", "too_many.txt"))
	require.ErrorIs(t, err, fault.ErrTooManyLines)
}

func lines(l ...string) string { return strings.Join(l, "\n") + "\n" }

func TestParseLineErrors(t *testing.T) {
	const (
		goal = "min"
		poly = "f(x_1,x_2)=x_1^2+x_2^2"
		ip   = "initial_point=1,2"
		tol  = "tolerance=0.001"
		it   = "max_iter=10"
	)
	cases := []struct {
		name string
		text string
		want error
	}{
		{"four lines", lines(goal, poly, ip, tol), fault.ErrTooFewLines},
		{"blank third line", lines(goal, poly, "", tol, it), fault.ErrTooFewLines},
		{"blank line first", lines("", goal, poly, ip, tol), fault.ErrTooFewLines},
		{"blank line shifts fields", lines("", goal, poly, ip, tol, it), fault.ErrTooManyLines},
		{"empty file", "", fault.ErrTooFewLines},
		{"sixth line", lines(goal, poly, ip, tol, it, "", "max"), fault.ErrTooManyLines},
		{"bad goal", lines("minimum", poly, ip, tol, it), fault.ErrInvalidGoal},
		{"no equal sign", lines(goal, "x_1^2", ip, tol, it), fault.ErrMissingEqualSign},
		{"bad lhs", lines(goal, "f(y)=1", ip, tol, it), fault.ErrInvalidLHS},
		{"bad rhs", lines(goal, "f(x_1,x_2)=x_3", ip, tol, it), fault.ErrInvalidRHS},
		{"bad ip prefix", lines(goal, poly, "start=1,2", tol, it), fault.ErrInvalidInitialPointLine},
		{"bad ip value", lines(goal, poly, "initial_point=1,a", tol, it), fault.ErrInvalidInitialPointLine},
		{"empty ip item", lines(goal, poly, "initial_point=1,,2", tol, it), fault.ErrInvalidInitialPointLine},
		{"nan ip", lines(goal, poly, "initial_point=NaN,2", tol, it), fault.ErrInvalidInitialPointLine},
		{"ip size", lines(goal, poly, "initial_point=1,2,3", tol, it), fault.ErrInitialPointSize},
		{"bad tol line", lines(goal, poly, ip, "tol=1", it), fault.ErrInvalidToleranceLine},
		{"inf tol", lines(goal, poly, ip, "tolerance=Inf", it), fault.ErrInvalidToleranceLine},
		{"zero tol", lines(goal, poly, ip, "tolerance=0", it), fault.ErrInvalidTolerance},
		{"negative tol", lines(goal, poly, ip, "tolerance=-1e-3", it), fault.ErrInvalidTolerance},
		{"bad iter line", lines(goal, poly, ip, tol, "max_iter=1.5"), fault.ErrInvalidMaxIterLine},
		{"zero iter", lines(goal, poly, ip, tol, "max_iter=0"), fault.ErrInvalidMaxIter},
		{"negative iter", lines(goal, poly, ip, tol, "max_iter=-5"), fault.ErrInvalidMaxIter},
		// the first failing line wins
		{"goal before tolerance", lines("x", poly, ip, "tolerance=0", it), fault.ErrInvalidGoal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := input.Parse(strings.NewReader(tc.text))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseIgnoresWhitespace(t *testing.T) {
	d, err := input.Parse(strings.NewReader(" m a x \n\tf(x_1) = x_1\t\ninitial_point = -0.5\ntolerance = 1\nmax_iter = 3"))
	require.NoError(t, err)
	require.Equal(t, input.Maximize, d.Goal)
	require.Equal(t, []float64{-0.5}, d.InitialPoint)
	require.Equal(t, 3, d.MaxIter)
}

func TestParseLongPolynomialLine(t *testing.T) {
	rhs := strings.Repeat("+x_1^2", 20000)
	text := "min\nf(x_1)=1" + rhs + "\ninitial_point=1\ntolerance=0.001\nmax_iter=10\n"
	require.Greater(t, len(text), 64*1024)

	d, err := input.Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, 20001, d.Polynomial.NumTerms())
	require.Equal(t, 10, d.MaxIter)
}
