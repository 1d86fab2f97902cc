package solver

import (
	"errors"

	"github.com/solvekit/mathtools/internal/config"
	"github.com/solvekit/mathtools/internal/expr"
	"github.com/solvekit/mathtools/internal/linear"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/numeric"
	"github.com/solvekit/mathtools/internal/preprocess"
	"github.com/solvekit/mathtools/internal/types"
)

// NumericOps answers numeric solve requests: single equations by root
// finding, linear systems by coefficient extraction, and ODE initial
// value problems by integration.
type NumericOps struct {
	cfg *config.Config
	log *logging.Logger
}

// NewNumericOps creates the numeric dispatcher.
func NewNumericOps(cfg *config.Config, log *logging.Logger) *NumericOps {
	return &NumericOps{cfg: cfg, log: log}
}

// Execute routes a request by its "type" discriminator. Anything other
// than the named operations is treated as a single-equation solve.
func (o *NumericOps) Execute(params map[string]interface{}) types.Response {
	switch stringOr(params, "type", "solve") {
	case "linear_system":
		return o.SolveLinearSystem(params)
	case "ode":
		return o.SolveODE(params)
	default:
		return o.SolveEquation(params)
	}
}

// SolveEquation finds real roots of a single equation over a domain.
func (o *NumericOps) SolveEquation(params map[string]interface{}) types.Response {
	equation := stringOr(params, "equation", "")
	variable := stringOr(params, "variable", "x")
	precision := intOr(params, "precision", 4)
	domain, ok := GetRange(params, "domain", [2]float64{-1000, 1000})
	if !ok {
		return types.Errorf("Error solving equation: domain must be [min, max]")
	}

	processed := preprocess.SplitEquation(equation)

	steps := types.StepLog{}
	steps.Add("Using numeric method to solve: %s = 0", processed)

	f, err := expr.Compile1(processed, variable)
	if err != nil {
		return types.Errorf("Error solving equation: %v", err)
	}

	cfg := numeric.RootConfig{
		Seeds:      o.cfg.Solver.Seeds,
		ScanPoints: o.cfg.Solver.ScanPoints,
		Tolerance:  o.cfg.Solver.Tolerance,
		MaxIter:    o.cfg.Solver.MaxIter,
	}
	solutions := numeric.FindRoots(f, domain[0], domain[1], precision, cfg, &steps, o.log)
	if solutions == nil {
		solutions = []float64{}
	}

	return types.EquationSolution{
		Solutions:  solutions,
		Expression: processed,
		Variable:   variable,
		Steps:      steps,
	}
}

// SolveLinearSystem extracts coefficients from equation text and solves
// the resulting matrix equation.
func (o *NumericOps) SolveLinearSystem(params map[string]interface{}) types.Response {
	equations, ok := GetStrings(params, "equations")
	if !ok || len(equations) == 0 {
		return types.Errorf("No equations provided")
	}
	variables, _ := GetStrings(params, "variables")
	if len(variables) == 0 {
		variables = preprocess.InferVariables(equations)
	}

	steps := types.StepLog{}
	steps.Add("Variables: %v", variables)

	coeffs, consts, err := linear.Extract(equations, variables, &steps)
	if err != nil {
		return types.Errorf("Error solving system: %v", err)
	}
	steps.Add("Coefficient matrix A: %v", coeffs)
	steps.Add("Constant vector b: %v", consts)

	values, err := linear.Solve(coeffs, consts)
	if err != nil {
		if errors.Is(err, linear.ErrSingular) {
			return types.Errorf("The system is singular or not uniquely solvable")
		}
		return types.Errorf("Error solving system: %v", err)
	}

	solution := types.VarMap{}
	for i, v := range variables {
		solution.Set(v, numeric.Round(values[i], 6))
	}

	return types.SystemSolution{
		Solution:  solution,
		Variables: variables,
		Matrix:    coeffs,
		Constants: consts,
		Steps:     steps,
	}
}

// SolveODE integrates dy/dx = f(x, y) from an initial condition and
// samples the solution on an even grid.
func (o *NumericOps) SolveODE(params map[string]interface{}) types.Response {
	equation := stringOr(params, "equation", "")
	y0 := numberOr(params, "initialCondition", 0)
	x0 := numberOr(params, "x0", 0)
	xEnd := numberOr(params, "xEnd", 10)
	numPoints := intOr(params, "numPoints", o.cfg.ODE.NumPoints)
	method := stringOr(params, "method", o.cfg.ODE.Method)
	maxStep := numberOr(params, "maxStep", o.cfg.ODE.MaxStep)
	tolerance := numberOr(params, "tolerance", o.cfg.ODE.Tolerance)

	if numPoints < 2 {
		return types.Errorf("Error solving ODE: numPoints must be at least 2")
	}

	rhs := preprocess.StripDerivativeLHS(equation)

	steps := types.StepLog{}
	steps.Add("ODE to solve: dy/dx = %s", rhs)
	steps.Add("Initial condition: y(%g) = %g", x0, y0)
	steps.Add("Integration range: [%g, %g]", x0, xEnd)

	f, err := expr.Compile2(rhs, "x", "y")
	if err != nil {
		return types.Errorf("Error solving ODE: %v", err)
	}

	switch method {
	case "RK45":
		steps.Add("Using Runge-Kutta 4(5) method with adaptive step size")
		steps.Add("Tolerance: %g", tolerance)

		curve, err := numeric.RK45(f, x0, xEnd, y0, numPoints, maxStep, tolerance)
		if err != nil {
			return types.Errorf("ODE solver failed: %v", err)
		}
		message := "The solver successfully reached the end of the integration interval."
		steps.Add("ODE solver status: %s", message)
		steps.Add("Function evaluations: %d", curve.Evals)

		return types.ODESolution{
			X:        curve.X,
			Y:        curve.Y,
			Equation: rhs,
			Method:   "RK45",
			Success:  true,
			Message:  message,
			Steps:    steps,
		}

	case "Euler":
		steps.Add("Using Euler's method with fixed step size")
		steps.Add("Step size: %g", (xEnd-x0)/float64(numPoints-1))

		curve := numeric.Euler(f, x0, xEnd, y0, numPoints)

		return types.ODESolution{
			X:        curve.X,
			Y:        curve.Y,
			Equation: rhs,
			Method:   "Euler",
			Success:  true,
			Message:  "Solution computed using Euler's method",
			Steps:    steps,
		}

	default:
		return types.Errorf("Unsupported method: %s", method)
	}
}

// GetTools returns the operation metadata for the numeric solver.
func (o *NumericOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "solve",
			Name:        "Solve Equation",
			Description: "Find real roots of a single-variable equation over a domain",
			Parameters: []types.Parameter{
				{Name: "equation", Type: "string", Description: "Equation text, with or without '='", Required: true},
				{Name: "variable", Type: "string", Description: "Unknown to solve for (default x)"},
				{Name: "domain", Type: "number[]", Description: "Search interval [min, max] (default [-1000, 1000])"},
				{Name: "precision", Type: "number", Description: "Decimal places in reported roots (default 4)"},
			},
			Returns: "solutions, expression, variable, steps",
		},
		{
			ID:          "linear_system",
			Name:        "Solve Linear System",
			Description: "Solve simultaneous linear equations by coefficient extraction",
			Parameters: []types.Parameter{
				{Name: "equations", Type: "string[]", Description: "One equation per entry", Required: true},
				{Name: "variables", Type: "string[]", Description: "Unknowns; inferred from the text when absent"},
			},
			Returns: "solution, variables, matrix, constants, steps",
		},
		{
			ID:          "ode",
			Name:        "Solve ODE",
			Description: "Integrate dy/dx = f(x, y) from an initial condition",
			Parameters: []types.Parameter{
				{Name: "equation", Type: "string", Description: "Right-hand side, or 'dy/dx = ...'", Required: true},
				{Name: "initialCondition", Type: "number", Description: "y(x0) (default 0)"},
				{Name: "x0", Type: "number", Description: "Integration start (default 0)"},
				{Name: "xEnd", Type: "number", Description: "Integration end (default 10)"},
				{Name: "numPoints", Type: "number", Description: "Output sample count (default 100)"},
				{Name: "method", Type: "string", Description: "RK45 or Euler (default RK45)"},
				{Name: "maxStep", Type: "number", Description: "Maximum adaptive step (default 0.1)"},
				{Name: "tolerance", Type: "number", Description: "Local error tolerance (default 1e-6)"},
			},
			Returns: "x, y, equation, method, success, message, steps",
		},
	}
}
