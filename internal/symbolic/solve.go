package symbolic

import (
	"errors"
	"math"
	"sort"

	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/numeric"
	"github.com/solvekit/mathtools/internal/types"
)

// ErrNoSolution indicates an inconsistent equation (a nonzero constant
// equated to zero).
var ErrNoSolution = errors.New("no solution (inconsistent equation)")

// ErrIdentity indicates 0 = 0, which every value satisfies.
var ErrIdentity = errors.New("identity (0 = 0): infinitely many solutions")

// SolveEquation finds the real roots of e = 0 inside [lo, hi], rounded
// to the requested precision and sorted ascending.
//
// Polynomials up to degree three are solved in closed form (linear
// formula, quadratic formula, Cardano with the trigonometric branch for
// three real roots). Everything else — higher degrees, trigonometric,
// logarithmic, exponential and mixed shapes — falls back to the seeded
// numeric root search over the domain. Complex roots are discarded with
// a step note, never reported as values.
func SolveEquation(e Expr, name string, lo, hi float64, precision int, cfg numeric.RootConfig, steps *types.StepLog, log *logging.Logger) ([]float64, error) {
	coeffs, isPoly := PolyCoeffs(e, name)
	if isPoly {
		roots, err := solvePolynomial(coeffs, steps)
		if err != nil {
			return nil, err
		}
		if roots != nil {
			return clampRoots(roots, lo, hi, precision), nil
		}
		// Degree beyond the closed forms; fall through to numeric.
	}

	steps.Add("Solving numerically over the domain [%g, %g]", lo, hi)
	f := func(x float64) float64 { return EvalAt(e, name, x) }
	roots := numeric.FindRoots(f, lo, hi, precision, cfg, steps, log)
	return roots, nil
}

// solvePolynomial handles degrees zero through three in closed form.
// A nil slice with nil error means the degree is out of closed-form
// range.
func solvePolynomial(coeffs []float64, steps *types.StepLog) ([]float64, error) {
	deg := len(coeffs) - 1
	for deg > 0 && coeffs[deg] == 0 {
		deg--
	}
	switch deg {
	case 0:
		if coeffs[0] == 0 {
			return nil, ErrIdentity
		}
		return nil, ErrNoSolution
	case 1:
		b, a := coeffs[0], coeffs[1]
		return []float64{-b / a}, nil
	case 2:
		c, b, a := coeffs[0], coeffs[1], coeffs[2]
		disc := b*b - 4*a*c
		switch {
		case disc > 0:
			sq := math.Sqrt(disc)
			return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}, nil
		case disc == 0:
			return []float64{-b / (2 * a)}, nil
		default:
			steps.Add("Discriminant is negative; both roots are complex and omitted")
			return []float64{}, nil
		}
	case 3:
		return solveCubic(coeffs[3], coeffs[2], coeffs[1], coeffs[0], steps), nil
	}
	return nil, nil
}

// solveCubic solves a*x**3 + b*x**2 + c*x + d = 0 via the depressed
// cubic: three real roots through the trigonometric method, otherwise
// Cardano's single real root with the complex pair noted.
func solveCubic(a, b, c, d float64, steps *types.StepLog) []float64 {
	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	offset := b / (3 * a)
	disc := -(4*p*p*p + 27*q*q)

	switch {
	case disc > 0:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		roots := make([]float64, 0, 3)
		for k := 0; k < 3; k++ {
			roots = append(roots, m*math.Cos(theta-2*math.Pi*float64(k)/3)-offset)
		}
		return roots
	case disc == 0:
		if q == 0 {
			return []float64{-offset}
		}
		return []float64{3*q/p - offset, -3 * q / (2 * p) - offset}
	default:
		shifted := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
		var counterpart float64
		if shifted != 0 {
			counterpart = -p / (3 * shifted)
		}
		root := shifted + counterpart - offset
		steps.Add("One real root; the remaining pair is complex and omitted")
		return []float64{root}
	}
}

func clampRoots(roots []float64, lo, hi float64, precision int) []float64 {
	kept := make([]float64, 0, len(roots))
	for _, r := range roots {
		if r < lo || r > hi {
			continue
		}
		kept = append(kept, numeric.Round(r, precision))
	}
	sort.Float64s(kept)
	out := kept[:0]
	var prev float64
	for i, r := range kept {
		if i > 0 && r == prev {
			continue
		}
		out = append(out, r)
		prev = r
	}
	return out
}
