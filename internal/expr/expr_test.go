package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalString(t *testing.T, src string, env Env) float64 {
	t.Helper()
	node, err := Parse(src)
	require.NoError(t, err)
	return node.Eval(env)
}

func TestParseEval(t *testing.T) {
	tests := []struct {
		name string
		src  string
		env  Env
		want float64
	}{
		{"addition", "1 + 2", nil, 3},
		{"precedence", "2 + 3*4", nil, 14},
		{"division", "7 / 2", nil, 3.5},
		{"unary minus", "-5 + 3", nil, -2},
		{"double negation", "--4", nil, 4},
		{"parentheses", "(2 + 3)*4", nil, 20},
		{"power", "2**10", nil, 1024},
		{"power right associative", "2**3**2", nil, 512},
		{"negative exponent", "2**-2", nil, 0.25},
		{"unary binds below power", "-2**2", nil, -4},
		{"variable", "x*x - 4", Env{"x": 3}, 5},
		{"two variables", "x + 2*y", Env{"x": 1, "y": 2}, 5},
		{"sqrt", "sqrt(16)", nil, 4},
		{"nested calls", "abs(cos(0) - 2)", nil, 1},
		{"ln alias", "ln(e)", nil, 1},
		{"pi constant", "cos(pi)", nil, -1},
		{"float literal", "0.5 + .25", nil, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalString(t, tt.src, tt.env)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseErrors(t *testing.T) {
	bad := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unbalanced parens", "(x + 1"},
		{"trailing operator", "x +"},
		{"trailing tokens", "x 5"},
		{"unknown function", "foo(x)"},
		{"lone dot", "."},
		{"double dot", "1..5"},
		{"stray character", "x @ 2"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestUnboundVariableIsNaN(t *testing.T) {
	got := evalString(t, "x + 1", Env{})
	assert.True(t, math.IsNaN(got))
}

func TestDomainViolationsPropagateNaN(t *testing.T) {
	assert.True(t, math.IsNaN(evalString(t, "sqrt(0 - 1)", nil)))
	assert.True(t, math.IsNaN(evalString(t, "log(0 - 1)", nil)))
}

func TestUnknownFunctionNeverEvaluates(t *testing.T) {
	// Identifiers only call through the fixed symbol table; anything
	// else must be rejected at parse time, not resolved dynamically.
	_, err := Parse("system(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown function")
}

func TestCompile1(t *testing.T) {
	f, err := Compile1("x**2 - 4", "x")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, f(2), 1e-12)
	assert.InDelta(t, 5.0, f(-3), 1e-12)
}

func TestCompile2(t *testing.T) {
	f, err := Compile2("x + 2*y", "x", "y")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, f(1, 2), 1e-12)
}

func TestVars(t *testing.T) {
	node, err := Parse("x + sin(y) - pi")
	require.NoError(t, err)
	vars := Vars(node)
	assert.Contains(t, vars, "x")
	assert.Contains(t, vars, "y")
	// Constants fold to literals at parse time.
	assert.NotContains(t, vars, "pi")
}
