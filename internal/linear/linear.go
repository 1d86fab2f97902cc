// Package linear extracts a coefficient matrix and constant vector from
// linear equation text and solves the resulting system.
package linear

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/solvekit/mathtools/internal/preprocess"
	"github.com/solvekit/mathtools/internal/types"
)

// ErrSingular classifies a system with no unique solution, as opposed
// to a parse or evaluation failure.
var ErrSingular = errors.New("the system is singular or not uniquely solvable")

// coefficientPattern matches [sign][optional number][optional *] ahead
// of a variable name: "2*x", "-x", "+ 3.5*x". A bare sign or an empty
// match means a coefficient of 1.
func coefficientPattern(variable string) *regexp.Regexp {
	return regexp.MustCompile(`([-+]?\s*\d*\.?\d*)\s*\*?\s*` + regexp.QuoteMeta(variable) + `\b`)
}

// constantPattern matches numeric literals; the first standalone one
// per side (not attached to a variable or a multiplication) is taken as
// the constant term.
var constantPattern = regexp.MustCompile(`[-+]?\s*\d+\.?\d*`)

// Row is the extraction of one equation: coefficients aligned to the
// resolved variable order plus the right-hand constant.
type Row struct {
	Coefficients []float64
	Constant     float64
}

// ExtractRow derives the coefficient row of a single equation. The
// equation is split on its first equality sign (a missing right side is
// the literal zero), both sides are normalized, and for each variable
// the matched coefficient terms are summed per side; the net
// coefficient is the left sum minus the right sum. The constant is the
// right side's first standalone literal minus the left side's.
//
// Constant extraction is deliberately best-effort: only the first
// standalone literal per side is captured, so an equation with several
// disjoint constant terms on one side extracts incorrectly. Downstream
// callers depend on this behavior, so it is preserved, not fixed.
func ExtractRow(equation string, variables []string) (Row, error) {
	left, right := preprocess.Sides(equation)

	row := Row{Coefficients: make([]float64, len(variables))}
	for i, v := range variables {
		pattern := coefficientPattern(v)
		leftSum, err := sumCoefficients(pattern, left)
		if err != nil {
			return Row{}, fmt.Errorf("equation %q: %w", equation, err)
		}
		rightSum, err := sumCoefficients(pattern, right)
		if err != nil {
			return Row{}, fmt.Errorf("equation %q: %w", equation, err)
		}
		row.Coefficients[i] = leftSum - rightSum
	}

	row.Constant = firstConstant(right) - firstConstant(left)
	return row, nil
}

func sumCoefficients(pattern *regexp.Regexp, side string) (float64, error) {
	var sum float64
	for _, m := range pattern.FindAllStringSubmatch(side, -1) {
		raw := strings.TrimSpace(m[1])
		switch raw {
		case "", "+":
			sum++
			continue
		case "-":
			sum--
			continue
		}
		raw = strings.ReplaceAll(raw, " ", "")
		c, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("bad coefficient %q: %w", m[1], err)
		}
		sum += c
	}
	return sum, nil
}

// firstConstant returns the first standalone numeric literal of a side:
// the first number not immediately followed by a letter (a variable) or
// an asterisk (a coefficient). Later constants on the same side are
// ignored.
func firstConstant(side string) float64 {
	for _, loc := range constantPattern.FindAllStringIndex(side, -1) {
		rest := strings.TrimLeft(side[loc[1]:], " \t")
		if rest != "" {
			next := rest[0]
			if next == '*' || next >= 'a' && next <= 'z' || next >= 'A' && next <= 'Z' {
				continue
			}
		}
		raw := strings.ReplaceAll(side[loc[0]:loc[1]], " ", "")
		c, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return c
	}
	return 0
}

// Extract builds the full matrix/vector pair for a list of equations
// against a resolved, ordered variable list. The variable order is
// fixed here and must be carried unchanged into result assembly. Each
// extraction is narrated into steps when a log is supplied.
func Extract(equations []string, variables []string, steps *types.StepLog) ([][]float64, []float64, error) {
	coeffs := make([][]float64, 0, len(equations))
	consts := make([]float64, 0, len(equations))
	for _, eq := range equations {
		if steps != nil {
			left, right := preprocess.Sides(eq)
			steps.Add("Processed equation: %s = %s", left, right)
		}
		row, err := ExtractRow(eq, variables)
		if err != nil {
			return nil, nil, err
		}
		if steps != nil {
			steps.Add("Coefficients: %v, Constant: %g", row.Coefficients, row.Constant)
		}
		coeffs = append(coeffs, row.Coefficients)
		consts = append(consts, row.Constant)
	}
	return coeffs, consts, nil
}

// Solve solves A·x = b. A non-square or numerically singular matrix
// reports ErrSingular.
func Solve(coeffs [][]float64, consts []float64) ([]float64, error) {
	n := len(coeffs)
	if n == 0 {
		return nil, fmt.Errorf("no equations provided")
	}
	m := len(coeffs[0])
	if n != m {
		return nil, ErrSingular
	}

	flat := make([]float64, 0, n*m)
	for _, row := range coeffs {
		flat = append(flat, row...)
	}
	a := mat.NewDense(n, m, flat)
	b := mat.NewVecDense(n, consts)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, ErrSingular
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
