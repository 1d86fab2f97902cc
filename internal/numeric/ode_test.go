package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEulerExponentialGrowth(t *testing.T) {
	// dy/dx = y, y(0) = 1 has solution e^x. Euler with a fixed step
	// undershoots but must stay in the right ballpark.
	curve := Euler(func(x, y float64) float64 { return y }, 0, 1, 1, 101)

	require.Len(t, curve.X, 101)
	require.Len(t, curve.Y, 101)
	assert.Equal(t, 0.0, curve.X[0])
	assert.Equal(t, 1.0, curve.X[100])
	assert.Equal(t, 1.0, curve.Y[0])
	assert.InDelta(t, math.E, curve.Y[100], 0.02)
	// Explicit Euler underestimates a convex solution.
	assert.Less(t, curve.Y[100], math.E)
}

func TestEulerNaNPropagates(t *testing.T) {
	// Once the right-hand side is undefined every later sample is NaN.
	f := func(x, y float64) float64 { return math.Sqrt(1 - x) }
	curve := Euler(f, 0, 2, 0, 21)

	assert.False(t, math.IsNaN(curve.Y[10])) // x=1 boundary still fine
	assert.True(t, math.IsNaN(curve.Y[12]))
	assert.True(t, math.IsNaN(curve.Y[20]))
}

func TestRK45ExponentialGrowth(t *testing.T) {
	curve, err := RK45(func(x, y float64) float64 { return y }, 0, 1, 1, 100, 0.1, 1e-6)
	require.NoError(t, err)

	require.Len(t, curve.X, 100)
	require.Len(t, curve.Y, 100)
	assert.InDelta(t, math.E, curve.Y[99], 1e-4)
	assert.Greater(t, curve.Evals, 0)
}

func TestRK45MoreAccurateThanEuler(t *testing.T) {
	f := func(x, y float64) float64 { return y }
	euler := Euler(f, 0, 1, 1, 100)
	rk, err := RK45(f, 0, 1, 1, 100, 0.1, 1e-6)
	require.NoError(t, err)

	eulerErr := math.Abs(euler.Y[99] - math.E)
	rkErr := math.Abs(rk.Y[99] - math.E)
	assert.Less(t, rkErr, eulerErr)
}

func TestRK45UniformOutputGrid(t *testing.T) {
	curve, err := RK45(func(x, y float64) float64 { return math.Sin(x) * y }, 0, 5, 1, 50, 0.1, 1e-6)
	require.NoError(t, err)

	h := curve.X[1] - curve.X[0]
	for i := 1; i < len(curve.X); i++ {
		assert.InDelta(t, h, curve.X[i]-curve.X[i-1], 1e-9)
	}
}

func TestRK45LinearRHS(t *testing.T) {
	// dy/dx = x, y(0) = 0 has solution x^2/2.
	curve, err := RK45(func(x, y float64) float64 { return x }, 0, 10, 0, 100, 0.1, 1e-6)
	require.NoError(t, err)

	for i, x := range curve.X {
		assert.InDelta(t, x*x/2, curve.Y[i], 1e-4, "at x=%g", x)
	}
}

func TestRK45UndefinedInitialCondition(t *testing.T) {
	_, err := RK45(func(x, y float64) float64 { return math.Log(x) }, 0, 1, 0, 10, 0.1, 1e-6)
	assert.Error(t, err)
}

func TestRK45BlowUp(t *testing.T) {
	// dy/dx = y^2, y(0) = 1 blows up at x = 1; the integrator must
	// report failure rather than return garbage.
	_, err := RK45(func(x, y float64) float64 { return y * y }, 0, 2, 1, 10, 0.1, 1e-6)
	assert.Error(t, err)
}

func TestRK45ZeroSpan(t *testing.T) {
	curve, err := RK45(func(x, y float64) float64 { return y }, 1, 1, 3, 5, 0.1, 1e-6)
	require.NoError(t, err)
	for _, y := range curve.Y {
		assert.Equal(t, 3.0, y)
	}
}
