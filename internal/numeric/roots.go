package numeric

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/types"
)

// Func is a scalar function under root search.
type Func func(float64) float64

// RootConfig tunes the root search.
type RootConfig struct {
	// Seeds is the number of evenly spaced starting points for the
	// local Newton search.
	Seeds int
	// ScanPoints is the sample count of the sign-change fallback scan.
	ScanPoints int
	// Tolerance is the absolute residual bound for accepting a root and
	// the distance under which two roots are considered duplicates.
	Tolerance float64
	// MaxIter bounds one Newton iteration.
	MaxIter int
}

func (c RootConfig) withDefaults() RootConfig {
	if c.Seeds <= 0 {
		c.Seeds = 10
	}
	if c.ScanPoints <= 1 {
		c.ScanPoints = 1000
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 1e-10
	}
	if c.MaxIter <= 0 {
		c.MaxIter = 50
	}
	return c
}

// FindRoots locates real roots of f inside [lo, hi], rounded to the
// requested number of decimal places, in ascending order.
//
// The search runs Newton iterations from evenly spaced seed points and
// keeps a result only if it lies in the domain and evaluates within
// tolerance of zero. If no seed converges, a dense uniform scan locates
// sign-change brackets and a Brent search runs inside each one; the
// fallback can find non-adjacent roots the seeded pass missed. A failed
// attempt is skipped, not fatal.
func FindRoots(f Func, lo, hi float64, precision int, cfg RootConfig, steps *types.StepLog, log *logging.Logger) []float64 {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logging.NewNop()
	}

	var solutions []float64
	seeds := make([]float64, cfg.Seeds)
	floats.Span(seeds, lo, hi)

	for _, x0 := range seeds {
		root, ok := newton(f, x0, cfg.Tolerance, cfg.MaxIter)
		if !ok {
			log.Debug("newton attempt did not converge", zap.Float64("seed", x0))
			continue
		}
		if root < lo || root > hi || math.Abs(f(root)) >= cfg.Tolerance {
			continue
		}
		if containsWithin(solutions, root, cfg.Tolerance) {
			continue
		}
		solutions = append(solutions, Round(root, precision))
		steps.Add("Found solution from starting point %g: %g", x0, root)
	}

	if len(solutions) == 0 {
		steps.Add("Using brute force root finding")
		xs := make([]float64, cfg.ScanPoints)
		floats.Span(xs, lo, hi)
		ys := make([]float64, len(xs))
		for i, x := range xs {
			ys[i] = f(x)
		}
		for i := 0; i+1 < len(xs); i++ {
			// NaN products fail the comparison, skipping broken spans.
			if !(ys[i]*ys[i+1] <= 0) {
				continue
			}
			a, b := xs[i], xs[i+1]
			root, ok := brent(f, a, b, cfg.Tolerance, 100)
			if !ok {
				steps.Add("Failed to converge in interval [%g, %g]", a, b)
				continue
			}
			solutions = append(solutions, Round(root, precision))
			steps.Add("Found solution in interval [%g, %g]: %g", a, b, root)
		}
	}

	return sortedUnique(solutions)
}

// newton runs a damped-free Newton iteration with a central-difference
// derivative. It reports failure when the function is undefined, the
// derivative vanishes, or the iteration budget runs out.
func newton(f Func, x0, tol float64, maxIter int) (float64, bool) {
	x := x0
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return 0, false
		}
		if math.Abs(fx) < tol {
			return x, true
		}
		d := derivative(f, x)
		if math.IsNaN(d) || math.Abs(d) < 1e-15 {
			return 0, false
		}
		x -= fx / d
	}
	if fx := f(x); math.Abs(fx) < tol {
		return x, true
	}
	return 0, false
}

func derivative(f Func, x float64) float64 {
	h := 1e-7 * (1 + math.Abs(x))
	return (f(x+h) - f(x-h)) / (2 * h)
}

// brent finds a root of f inside the bracketing interval [a, b] using
// Brent's method (inverse quadratic interpolation with bisection
// safeguards). The bracket must change sign.
func brent(f Func, a, b, tol float64, maxIter int) (float64, bool) {
	fa, fb := f(a), f(b)
	if math.IsNaN(fa) || math.IsNaN(fb) || fa*fb > 0 {
		return 0, false
	}
	if fa == 0 {
		return a, true
	}
	if fb == 0 {
		return b, true
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	d := b - a
	bisected := true

	for i := 0; i < maxIter; i++ {
		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant step.
			s = b - fb*(b-a)/(fb-fa)
		}

		lowBound := (3*a + b) / 4
		useBisection := false
		if (s-lowBound)*(s-b) >= 0 {
			useBisection = true
		} else if bisected && math.Abs(s-b) >= math.Abs(b-c)/2 {
			useBisection = true
		} else if !bisected && math.Abs(s-b) >= math.Abs(d)/2 {
			useBisection = true
		}
		if useBisection {
			s = (a + b) / 2
			bisected = true
		} else {
			bisected = false
		}

		fs := f(s)
		if math.IsNaN(fs) {
			return 0, false
		}
		d = c - b
		c, fc = b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
		if fb == 0 || math.Abs(b-a) < tol {
			return b, true
		}
	}
	if math.Abs(fb) < math.Sqrt(tol) {
		return b, true
	}
	return 0, false
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	factor := math.Pow(10, float64(places))
	return math.Round(x*factor) / factor
}

func containsWithin(xs []float64, x, tol float64) bool {
	for _, v := range xs {
		if math.Abs(v-x) < tol {
			return true
		}
	}
	return false
}

func sortedUnique(xs []float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	sort.Float64s(xs)
	out := xs[:1]
	for _, v := range xs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
