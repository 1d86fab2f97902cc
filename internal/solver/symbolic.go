package solver

import (
	"errors"
	"strconv"
	"strings"

	"github.com/solvekit/mathtools/internal/config"
	"github.com/solvekit/mathtools/internal/linear"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/numeric"
	"github.com/solvekit/mathtools/internal/preprocess"
	"github.com/solvekit/mathtools/internal/symbolic"
	"github.com/solvekit/mathtools/internal/types"
)

// SymbolicOps answers symbolic requests: equation solving with step
// narration, linear systems, differentiation and integration.
type SymbolicOps struct {
	cfg *config.Config
	log *logging.Logger
}

// NewSymbolicOps creates the symbolic dispatcher.
func NewSymbolicOps(cfg *config.Config, log *logging.Logger) *SymbolicOps {
	return &SymbolicOps{cfg: cfg, log: log}
}

// Execute routes a request by its "type" discriminator. Anything other
// than the named operations is treated as a single-equation solve.
func (o *SymbolicOps) Execute(params map[string]interface{}) types.Response {
	switch stringOr(params, "type", "solve") {
	case "system":
		return o.SolveSystem(params)
	case "differentiate":
		return o.Differentiate(params)
	case "integrate":
		return o.Integrate(params)
	default:
		return o.SolveEquation(params)
	}
}

// SolveEquation solves a single equation, preferring closed forms and
// narrating the algebra when showSteps is set.
func (o *SymbolicOps) SolveEquation(params map[string]interface{}) types.Response {
	equation := stringOr(params, "equation", "")
	variable := stringOr(params, "variable", "x")
	precision := intOr(params, "precision", 4)
	showSteps := boolOr(params, "showSteps", true)
	domain, ok := GetRange(params, "domain", [2]float64{-1000, 1000})
	if !ok {
		return types.Errorf("Error solving equation: domain must be [min, max]")
	}

	processed := preprocess.SplitEquation(equation)

	steps := types.StepLog{}
	steps.Add("Using symbolic method to solve: %s = 0", processed)

	e, err := symbolic.Parse(processed)
	if err != nil {
		return types.Errorf("Error solving equation: %v", err)
	}
	steps.Add("Expression parsed as: %s", e)

	if showSteps {
		steps.Extend(symbolic.Narrate(e, variable))
	}

	cfg := numeric.RootConfig{
		Seeds:      o.cfg.Solver.Seeds,
		ScanPoints: o.cfg.Solver.ScanPoints,
		Tolerance:  o.cfg.Solver.Tolerance,
		MaxIter:    o.cfg.Solver.MaxIter,
	}
	solutions, err := symbolic.SolveEquation(e, variable, domain[0], domain[1], precision, cfg, &steps, o.log)
	if err != nil {
		if errors.Is(err, symbolic.ErrIdentity) || errors.Is(err, symbolic.ErrNoSolution) {
			// Neither shape yields discrete roots; report an empty set.
			steps.Add("%s", err.Error())
			solutions = nil
		} else {
			return types.Errorf("Error solving equation: %v", err)
		}
	}
	if solutions == nil {
		solutions = []float64{}
	}
	steps.Add("Raw solutions: %v", solutions)
	for _, s := range solutions {
		steps.Add("Validated solution: %g", s)
	}

	return types.EquationSolution{
		Solutions:  solutions,
		Expression: processed,
		Variable:   variable,
		Steps:      steps,
	}
}

// SolveSystem solves simultaneous linear equations. Nonlinear systems
// are out of reach of the coefficient extractor and report an error.
func (o *SymbolicOps) SolveSystem(params map[string]interface{}) types.Response {
	equations, ok := GetStrings(params, "equations")
	if !ok || len(equations) == 0 {
		return types.Errorf("No equations provided")
	}
	showSteps := boolOr(params, "showSteps", true)
	variables, _ := GetStrings(params, "variables")
	if len(variables) == 0 {
		variables = preprocess.InferVariables(equations)
	}

	steps := types.StepLog{}
	steps.Add("Variables to solve for: %s", strings.Join(variables, ", "))
	steps.Add("System of %d equations:", len(equations))
	for i, eq := range equations {
		steps.Add("Equation %d: %s", i+1, eq)
	}

	coeffs, consts, err := linear.Extract(equations, variables, &steps)
	if err != nil {
		return types.Errorf("Error solving system: %v", err)
	}
	steps.Add("Solving the system")

	values, err := linear.Solve(coeffs, consts)
	if err != nil {
		if errors.Is(err, linear.ErrSingular) {
			return types.Errorf("No solution found for the system")
		}
		return types.Errorf("Error solving system: %v", err)
	}

	solution := types.VarMap{}
	for i, v := range variables {
		solution.Set(v, values[i])
		steps.Add("Solution for %s = %g", v, values[i])
	}

	return types.SystemSolution{
		Solution:  solution,
		Variables: variables,
		Steps:     gatedSteps(steps, showSteps),
	}
}

// Differentiate computes an nth-order symbolic derivative.
func (o *SymbolicOps) Differentiate(params map[string]interface{}) types.Response {
	expression := stringOr(params, "expression", "")
	variable := stringOr(params, "variable", "x")
	order := intOr(params, "order", 1)
	showSteps := boolOr(params, "showSteps", true)

	if order < 1 {
		return types.Errorf("Error in differentiation: order must be at least 1")
	}

	e, err := symbolic.Parse(preprocess.Normalize(expression))
	if err != nil {
		return types.Errorf("Error in differentiation: %v", err)
	}

	steps := types.StepLog{}
	steps.Add("Expression to differentiate: %s", e)
	steps.Add("With respect to: %s", variable)
	steps.Add("Order of differentiation: %d", order)
	if order == 1 {
		steps.Extend(narrateDerivative(e, variable))
	}

	result := symbolic.DiffN(e, variable, order)
	steps.Add("Result of differentiation: %s", result)

	return types.DerivativeResult{
		Original:   e.String(),
		Derivative: result.String(),
		Variable:   variable,
		Order:      order,
		Steps:      gatedSteps(steps, showSteps),
	}
}

// narrateDerivative walks the top-level terms of a sum and names the
// differentiation rule each one calls for.
func narrateDerivative(e symbolic.Expr, variable string) []string {
	steps := []string{"Using the basic differentiation rules:"}
	sum, ok := e.(symbolic.Add)
	if !ok {
		return steps
	}
	steps = append(steps, "Using the sum rule: d/dx[f(x) + g(x)] = d/dx[f(x)] + d/dx[g(x)]")
	for _, term := range sum.Terms {
		steps = append(steps, "Differentiating term: "+term.String())
		if !symbolic.ContainsSymbol(term, variable) {
			steps = append(steps, "Constant term, derivative is 0")
			continue
		}
		switch t := term.(type) {
		case symbolic.Pow:
			if base, ok := t.Base.(symbolic.Var); ok && base.Name == variable {
				if _, isNum := t.Exp.(symbolic.Num); isNum {
					steps = append(steps, "Using power rule: d/dx[x^n] = n*x^(n-1)")
				}
			}
		case symbolic.Mul:
			steps = append(steps, "Using product rule or chain rule as appropriate")
		}
	}
	return steps
}

// Integrate computes a symbolic antiderivative, or a definite integral
// when limits are supplied.
func (o *SymbolicOps) Integrate(params map[string]interface{}) types.Response {
	expression := stringOr(params, "expression", "")
	variable := stringOr(params, "variable", "x")
	showSteps := boolOr(params, "showSteps", true)

	e, err := symbolic.Parse(preprocess.Normalize(expression))
	if err != nil {
		return types.Errorf("Error in integration: %v", err)
	}

	steps := types.StepLog{}
	steps.Add("Expression to integrate: %s", e)
	steps.Add("With respect to: %s", variable)

	var limits []float64
	// A JSON null under the key means the same as an absent key.
	if v, present := params["limits"]; present && v != nil {
		vals, ok := GetNumbers(params, "limits")
		if !ok || len(vals) != 2 {
			return types.Errorf("Error in integration: limits must be [lower, upper]")
		}
		limits = vals
	}

	var integral string
	if limits != nil {
		steps.Add("Definite integral with limits: [%g, %g]", limits[0], limits[1])
		value := symbolic.DefiniteIntegrate(e, variable, limits[0], limits[1])
		integral = strconv.FormatFloat(value, 'g', -1, 64)
		steps.Add("Result of definite integration: %s", integral)
	} else {
		steps.Add("Indefinite integral (antiderivative)")
		anti, ok := symbolic.Integrate(e, variable)
		if !ok {
			return types.Errorf("Error in integration: no closed-form antiderivative found for %s", e)
		}
		integral = anti.String()
		steps.Add("Result of indefinite integration: %s + C", integral)
		steps.Add("(where C is an arbitrary constant)")
	}

	return types.IntegralResult{
		Original: e.String(),
		Integral: integral,
		Variable: variable,
		Limits:   limits,
		Steps:    gatedSteps(steps, showSteps),
	}
}

// gatedSteps returns the collected steps, or nil (marshaled as null)
// when narration was not requested.
func gatedSteps(steps types.StepLog, showSteps bool) types.StepLog {
	if !showSteps {
		return nil
	}
	return steps
}

// GetTools returns the operation metadata for the symbolic solver.
func (o *SymbolicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "solve",
			Name:        "Solve Equation Symbolically",
			Description: "Solve a single-variable equation, preferring closed forms, with step narration",
			Parameters: []types.Parameter{
				{Name: "equation", Type: "string", Description: "Equation text, with or without '='", Required: true},
				{Name: "variable", Type: "string", Description: "Unknown to solve for (default x)"},
				{Name: "domain", Type: "number[]", Description: "Accepted root interval (default [-1000, 1000])"},
				{Name: "precision", Type: "number", Description: "Decimal places in reported roots (default 4)"},
				{Name: "showSteps", Type: "boolean", Description: "Include algebra narration (default true)"},
			},
			Returns: "solutions, expression, variable, steps",
		},
		{
			ID:          "system",
			Name:        "Solve System",
			Description: "Solve simultaneous linear equations",
			Parameters: []types.Parameter{
				{Name: "equations", Type: "string[]", Description: "One equation per entry", Required: true},
				{Name: "variables", Type: "string[]", Description: "Unknowns; inferred from the text when absent"},
				{Name: "showSteps", Type: "boolean", Description: "Include extraction narration (default true)"},
			},
			Returns: "solution, variables, steps",
		},
		{
			ID:          "differentiate",
			Name:        "Differentiate",
			Description: "Compute an nth-order symbolic derivative",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression to differentiate", Required: true},
				{Name: "variable", Type: "string", Description: "Differentiation variable (default x)"},
				{Name: "order", Type: "number", Description: "Derivative order (default 1)"},
				{Name: "showSteps", Type: "boolean", Description: "Include rule narration (default true)"},
			},
			Returns: "original, derivative, variable, order, steps",
		},
		{
			ID:          "integrate",
			Name:        "Integrate",
			Description: "Compute a symbolic antiderivative or a definite integral",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression to integrate", Required: true},
				{Name: "variable", Type: "string", Description: "Integration variable (default x)"},
				{Name: "limits", Type: "number[]", Description: "Definite integration bounds [lower, upper]"},
				{Name: "showSteps", Type: "boolean", Description: "Include narration (default true)"},
			},
			Returns: "original, integral, variable, limits, steps",
		},
	}
}
