package solver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvekit/mathtools/internal/config"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/types"
)

func newSymbolic() *SymbolicOps {
	return NewSymbolicOps(config.Default(), logging.NewNop())
}

func TestSymbolicSolveEquation(t *testing.T) {
	ops := newSymbolic()

	t.Run("quadratic closed form", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"equation": "x^2 - 5x + 6 = 0",
		})
		sol, ok := resp.(types.EquationSolution)
		require.True(t, ok, "got %#v", resp)
		assert.Equal(t, []float64{2, 3}, sol.Solutions)
		require.NotEmpty(t, sol.Steps)
		assert.Contains(t, sol.Steps[0], "Using symbolic method to solve")
		assert.Contains(t, sol.Steps, "This is a polynomial equation of degree 2")
	})

	t.Run("narration suppressed", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"equation":  "x^2 - 4",
			"showSteps": false,
		})
		sol, ok := resp.(types.EquationSolution)
		require.True(t, ok)
		assert.Equal(t, []float64{-2, 2}, sol.Solutions)
		assert.NotContains(t, sol.Steps, "This is a polynomial equation of degree 2")
	})

	t.Run("identity has no discrete roots", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{"equation": "x = x"})
		sol, ok := resp.(types.EquationSolution)
		require.True(t, ok)
		assert.Empty(t, sol.Solutions)
	})

	t.Run("complex roots reported as empty", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{"equation": "x^2 + 1 = 0"})
		sol, ok := resp.(types.EquationSolution)
		require.True(t, ok)
		assert.NotNil(t, sol.Solutions)
		assert.Empty(t, sol.Solutions)
	})

	t.Run("trigonometric falls back to numeric", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"equation": "sin(x)",
			"domain":   []interface{}{-1.0, 1.0},
		})
		sol, ok := resp.(types.EquationSolution)
		require.True(t, ok)
		assert.Contains(t, sol.Solutions, 0.0)
		assert.Contains(t, sol.Steps, "This is a trigonometric equation")
	})

	t.Run("null domain means default", func(t *testing.T) {
		var params map[string]interface{}
		payload := `{"equation":"x^2 - 4","domain":null}`
		require.NoError(t, json.Unmarshal([]byte(payload), &params))

		resp := ops.Execute(params)
		sol, ok := resp.(types.EquationSolution)
		require.True(t, ok, "got %#v", resp)
		assert.Equal(t, []float64{-2, 2}, sol.Solutions)
	})

	t.Run("parse failure", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{"equation": "x ^^ 2"})
		_, ok := resp.(types.ErrorResponse)
		assert.True(t, ok)
	})
}

func TestSymbolicSolveSystem(t *testing.T) {
	ops := newSymbolic()

	t.Run("two by two", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":      "system",
			"equations": []interface{}{"2x + y = 5", "x - y = 1"},
			"variables": []interface{}{"x", "y"},
		})
		sol, ok := resp.(types.SystemSolution)
		require.True(t, ok, "got %#v", resp)

		x, found := sol.Solution.Get("x")
		require.True(t, found)
		assert.InDelta(t, 2, x, 1e-9)
		y, found := sol.Solution.Get("y")
		require.True(t, found)
		assert.InDelta(t, 1, y, 1e-9)
		assert.Contains(t, sol.Steps, "Variables to solve for: x, y")
	})

	t.Run("steps null when suppressed", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":      "system",
			"equations": []interface{}{"x = 1"},
			"showSteps": false,
		})
		sol, ok := resp.(types.SystemSolution)
		require.True(t, ok)
		assert.Nil(t, sol.Steps)

		data, err := json.Marshal(sol)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"steps":null`)
	})

	t.Run("unsolvable", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":      "system",
			"equations": []interface{}{"x + y = 1", "2x + 2y = 2"},
		})
		errResp, ok := resp.(types.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, "No solution found for the system", errResp.Error)
	})
}

func TestSymbolicDifferentiate(t *testing.T) {
	ops := newSymbolic()

	t.Run("first derivative", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "differentiate",
			"expression": "x^2 + 3x",
		})
		d, ok := resp.(types.DerivativeResult)
		require.True(t, ok, "got %#v", resp)
		assert.Equal(t, "2*x + 3", d.Derivative)
		assert.Equal(t, 1, d.Order)
		assert.Contains(t, d.Steps, "Using the sum rule: d/dx[f(x) + g(x)] = d/dx[f(x)] + d/dx[g(x)]")
	})

	t.Run("higher order", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "differentiate",
			"expression": "x^3",
			"order":      2.0,
		})
		d, ok := resp.(types.DerivativeResult)
		require.True(t, ok)
		assert.Equal(t, "6*x", d.Derivative)
		assert.Equal(t, 2, d.Order)
	})

	t.Run("steps suppressed", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "differentiate",
			"expression": "x^2",
			"showSteps":  false,
		})
		d, ok := resp.(types.DerivativeResult)
		require.True(t, ok)
		assert.Nil(t, d.Steps)
	})

	t.Run("invalid order", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "differentiate",
			"expression": "x^2",
			"order":      0.0,
		})
		_, ok := resp.(types.ErrorResponse)
		assert.True(t, ok)
	})
}

func TestSymbolicIntegrate(t *testing.T) {
	ops := newSymbolic()

	t.Run("indefinite", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "integrate",
			"expression": "2x",
		})
		in, ok := resp.(types.IntegralResult)
		require.True(t, ok, "got %#v", resp)
		assert.Equal(t, "x**2", in.Integral)
		assert.Nil(t, in.Limits)
		assert.Contains(t, in.Steps, "Result of indefinite integration: x**2 + C")
		assert.Contains(t, in.Steps, "(where C is an arbitrary constant)")
	})

	t.Run("definite", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "integrate",
			"expression": "2x",
			"limits":     []interface{}{0.0, 1.0},
		})
		in, ok := resp.(types.IntegralResult)
		require.True(t, ok)
		assert.Equal(t, "1", in.Integral)
		assert.Equal(t, []float64{0, 1}, in.Limits)
	})

	t.Run("null limits mean indefinite", func(t *testing.T) {
		var params map[string]interface{}
		payload := `{"type":"integrate","expression":"2x","limits":null}`
		require.NoError(t, json.Unmarshal([]byte(payload), &params))

		resp := ops.Execute(params)
		in, ok := resp.(types.IntegralResult)
		require.True(t, ok, "got %#v", resp)
		assert.Equal(t, "x**2", in.Integral)
		assert.Nil(t, in.Limits)
	})

	t.Run("no closed form", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "integrate",
			"expression": "sin(x^2)",
		})
		_, ok := resp.(types.ErrorResponse)
		assert.True(t, ok)
	})

	t.Run("bad limits", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"type":       "integrate",
			"expression": "x",
			"limits":     []interface{}{1.0},
		})
		_, ok := resp.(types.ErrorResponse)
		assert.True(t, ok)
	})
}

func TestSymbolicGetTools(t *testing.T) {
	tools := newSymbolic().GetTools()
	require.Len(t, tools, 4)

	ids := map[string]bool{}
	for _, tool := range tools {
		ids[tool.ID] = true
	}
	assert.True(t, ids["solve"])
	assert.True(t, ids["system"])
	assert.True(t, ids["differentiate"])
	assert.True(t, ids["integrate"])
}
