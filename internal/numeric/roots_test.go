package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvekit/mathtools/internal/types"
)

func findRoots(t *testing.T, f Func, lo, hi float64) []float64 {
	t.Helper()
	steps := types.StepLog{}
	return FindRoots(f, lo, hi, 4, RootConfig{}, &steps, nil)
}

func TestFindRootsQuadratic(t *testing.T) {
	roots := findRoots(t, func(x float64) float64 { return x*x - 4 }, -10, 10)
	require.Len(t, roots, 2)
	assert.InDelta(t, -2, roots[0], 1e-4)
	assert.InDelta(t, 2, roots[1], 1e-4)
}

func TestFindRootsSortedAscending(t *testing.T) {
	roots := findRoots(t, func(x float64) float64 { return (x - 3) * (x + 1) * x }, -10, 10)
	require.Len(t, roots, 3)
	assert.Equal(t, []float64{-1, 0, 3}, roots)
}

func TestFindRootsNoRoots(t *testing.T) {
	roots := findRoots(t, func(x float64) float64 { return x*x + 1 }, -10, 10)
	assert.Empty(t, roots)
}

func TestFindRootsLinear(t *testing.T) {
	roots := findRoots(t, func(x float64) float64 { return 2*x - 5 }, -10, 10)
	require.Len(t, roots, 1)
	assert.InDelta(t, 2.5, roots[0], 1e-4)
}

func TestFindRootsOutsideDomainDiscarded(t *testing.T) {
	// Roots at ±2; the domain only admits the positive one.
	roots := findRoots(t, func(x float64) float64 { return x*x - 4 }, 0, 10)
	require.Len(t, roots, 1)
	assert.InDelta(t, 2, roots[0], 1e-4)
}

func TestFindRootsBruteForceFallback(t *testing.T) {
	// tanh-like plateau defeats Newton from distant seeds; the scan
	// still brackets the crossing at the origin.
	f := func(x float64) float64 { return math.Tanh(x) }
	steps := types.StepLog{}
	roots := FindRoots(f, -1000, 1000, 4, RootConfig{}, &steps, nil)
	require.NotEmpty(t, roots)
	assert.InDelta(t, 0, roots[0], 1e-2)
}

func TestFindRootsNaNRegions(t *testing.T) {
	// log(x) is undefined for x <= 0; the search must survive the NaN
	// region and still find the root at x=1.
	f := func(x float64) float64 { return math.Log(x) }
	roots := findRoots(t, f, -10, 10)
	require.NotEmpty(t, roots)
	assert.InDelta(t, 1, roots[len(roots)-1], 1e-3)
}

func TestFindRootsRoundsToPrecision(t *testing.T) {
	steps := types.StepLog{}
	f := func(x float64) float64 { return x*x - 2 }
	roots := FindRoots(f, 0, 10, 2, RootConfig{}, &steps, nil)
	require.Len(t, roots, 1)
	assert.Equal(t, 1.41, roots[0])
}

func TestFindRootsStepNarration(t *testing.T) {
	steps := types.StepLog{}
	FindRoots(func(x float64) float64 { return x*x + 1 }, -10, 10, 4, RootConfig{}, &steps, nil)
	require.NotEmpty(t, steps)
	assert.Equal(t, "Using brute force root finding", steps[0])
}

func TestBrentSimpleBracket(t *testing.T) {
	root, ok := brent(func(x float64) float64 { return x*x*x - x - 2 }, 1, 2, 1e-12, 100)
	require.True(t, ok)
	assert.InDelta(t, 1.5213797068, root, 1e-6)
}

func TestBrentRejectsNonBracket(t *testing.T) {
	_, ok := brent(func(x float64) float64 { return x*x + 1 }, -1, 1, 1e-12, 100)
	assert.False(t, ok)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.1416, Round(math.Pi, 4))
	assert.Equal(t, 3.0, Round(math.Pi, 0))
	assert.Equal(t, -2.5, Round(-2.5004, 3))
	assert.Equal(t, -2.5, Round(-2.5, 4))
}
