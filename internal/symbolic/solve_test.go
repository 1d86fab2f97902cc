package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvekit/mathtools/internal/numeric"
	"github.com/solvekit/mathtools/internal/types"
)

func solveString(t *testing.T, src string) ([]float64, error) {
	t.Helper()
	steps := types.StepLog{}
	return SolveEquation(parse(t, src), "x", -1000, 1000, 4, numeric.RootConfig{}, &steps, nil)
}

func TestSolveLinearClosedForm(t *testing.T) {
	roots, err := solveString(t, "2*x + 6")
	require.NoError(t, err)
	assert.Equal(t, []float64{-3}, roots)
}

func TestSolveQuadratic(t *testing.T) {
	t.Run("two real roots", func(t *testing.T) {
		roots, err := solveString(t, "x**2 - 4")
		require.NoError(t, err)
		assert.Equal(t, []float64{-2, 2}, roots)
	})

	t.Run("repeated root", func(t *testing.T) {
		roots, err := solveString(t, "x**2 - 2*x + 1")
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, roots)
	})

	t.Run("complex roots omitted", func(t *testing.T) {
		steps := types.StepLog{}
		roots, err := SolveEquation(parse(t, "x**2 + 1"), "x", -1000, 1000, 4, numeric.RootConfig{}, &steps, nil)
		require.NoError(t, err)
		assert.Empty(t, roots)
		assert.Contains(t, steps, "Discriminant is negative; both roots are complex and omitted")
	})

	t.Run("factored input", func(t *testing.T) {
		roots, err := solveString(t, "(x+1)*(x-2)")
		require.NoError(t, err)
		assert.Equal(t, []float64{-1, 2}, roots)
	})
}

func TestSolveCubic(t *testing.T) {
	t.Run("three real roots", func(t *testing.T) {
		roots, err := solveString(t, "x**3 - 6*x**2 + 11*x - 6")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, roots)
	})

	t.Run("one real root", func(t *testing.T) {
		roots, err := solveString(t, "x**3 - 1")
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, roots)
	})
}

func TestSolveDegenerateConstants(t *testing.T) {
	_, err := solveString(t, "0")
	assert.ErrorIs(t, err, ErrIdentity)

	_, err = solveString(t, "5")
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveNonPolynomialFallsBackToNumeric(t *testing.T) {
	steps := types.StepLog{}
	roots, err := SolveEquation(parse(t, "sin(x)"), "x", -1, 1, 4, numeric.RootConfig{}, &steps, nil)
	require.NoError(t, err)
	require.NotEmpty(t, roots)
	assert.Contains(t, roots, 0.0)
	assert.Contains(t, steps, "Solving numerically over the domain [-1, 1]")
}

func TestSolveDomainFilter(t *testing.T) {
	steps := types.StepLog{}
	roots, err := SolveEquation(parse(t, "x**2 - 4"), "x", 0, 10, 4, numeric.RootConfig{}, &steps, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, roots)
}

func TestNarratePolynomialShapes(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		steps := Narrate(parse(t, "2*x + 6"), "x")
		assert.Contains(t, steps, "This is a polynomial equation of degree 1")
		assert.Contains(t, steps, "Here a = 2 and b = 6")
		assert.Contains(t, steps, "Substituting: x = -6/2 = -3")
	})

	t.Run("quadratic", func(t *testing.T) {
		steps := Narrate(parse(t, "x**2 - 4"), "x")
		assert.Contains(t, steps, "This is a polynomial equation of degree 2")
		assert.Contains(t, steps, "Here a = 1, b = 0, c = -4")
		assert.Contains(t, steps, "Calculate the discriminant: b² - 4ac = 16")
		assert.Contains(t, steps, "Discriminant > 0, so there are two real solutions")
	})

	t.Run("complex quadratic narrated only", func(t *testing.T) {
		steps := Narrate(parse(t, "x**2 + 1"), "x")
		assert.Contains(t, steps, "Discriminant < 0, so there are two complex solutions")
	})
}

func TestNarrateTranscendentalShapes(t *testing.T) {
	assert.Contains(t, Narrate(parse(t, "sin(x)"), "x"), "This is a trigonometric equation")
	assert.Contains(t, Narrate(parse(t, "log(x) - 1"), "x"), "This is a logarithmic equation")
	assert.Contains(t, Narrate(parse(t, "exp(x) - 2"), "x"), "This is an exponential equation")
	assert.Contains(t, Narrate(parse(t, "abs(x) - 1"), "x"), "General approach: isolating the variable")
}

func TestNarrateStartsAndEnds(t *testing.T) {
	steps := Narrate(parse(t, "x - 1"), "x")
	require.NotEmpty(t, steps)
	assert.Equal(t, "Starting with expression: x - 1 = 0", steps[0])
	assert.Equal(t, "Finally, solving the equation", steps[len(steps)-1])
}
