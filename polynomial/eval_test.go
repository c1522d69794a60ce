package polynomial_test

import (
	"testing"

	"github.com/katalvlaran/polyopt/fault"
	"github.com/katalvlaran/polyopt/polynomial"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// f(x, y) = x^2*y + 3*y^3 - 2*x + 1
const cubic = "f(x_1,x_2)=x_1^2*x_2+3*x_2^3-2*x_1+1"

func TestEval(t *testing.T) {
	p := polynomial.MustParse(cubic)

	v, err := p.Eval([]float64{2, -1})
	require.NoError(t, err)
	require.InDelta(t, 4*-1+3*-1-4+1, v, eps)

	// 0^0 counts as 1: the constant term survives at the origin.
	v, err = p.Eval([]float64{0, 0})
	require.NoError(t, err)
	require.InDelta(t, 1.0, v, eps)

	_, err = p.Eval([]float64{1})
	require.ErrorIs(t, err, fault.ErrVectorSize)
}

func TestPartialAndGradient(t *testing.T) {
	p := polynomial.MustParse(cubic)
	x := []float64{2, -1}

	// ∂f/∂x = 2xy - 2, ∂f/∂y = x^2 + 9y^2
	dx, err := p.Partial(x, 1)
	require.NoError(t, err)
	require.InDelta(t, -6.0, dx, eps)

	dy, err := p.Partial(x, 2)
	require.NoError(t, err)
	require.InDelta(t, 13.0, dy, eps)

	g, err := p.Gradient(x)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-6, 13}, g, eps)

	_, err = p.Partial(x, 0)
	require.ErrorIs(t, err, fault.ErrVectorSize)
	_, err = p.Partial(x, 3)
	require.ErrorIs(t, err, fault.ErrVectorSize)
	_, err = p.Gradient(nil)
	require.ErrorIs(t, err, fault.ErrVectorSize)
}

func TestHessian(t *testing.T) {
	p := polynomial.MustParse(cubic)

	// H = [[2y, 2x], [2x, 18y]]
	h, err := p.Hessian([]float64{2, -1})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-2, 4, 4, -18}, h.RawData(), eps)

	_, err = p.Hessian([]float64{1, 2, 3})
	require.ErrorIs(t, err, fault.ErrVectorSize)
}

func TestInverseHessian(t *testing.T) {
	p := polynomial.MustParse("f(x_1,x_2)=x_1^2+2*x_2^2")

	inv, err := p.InverseHessian([]float64{5, 5})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0, 0, 0.25}, inv.RawData(), eps)

	// linear polynomial: the Hessian is zero everywhere
	lin := polynomial.MustParse("f(x_1,x_2)=x_1+x_2")
	_, err = lin.InverseHessian([]float64{1, 1})
	require.ErrorIs(t, err, fault.ErrSingular)
}
