package numeric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ODEFunc is the right-hand side of a first-order initial value problem
// dy/dx = f(x, y).
type ODEFunc func(x, y float64) float64

// Curve is a sampled solution y(x) on a uniform grid.
type Curve struct {
	X []float64
	Y []float64
	// Evals counts right-hand side evaluations.
	Evals int
}

// ErrUnstable indicates the adaptive integrator could not proceed.
var ErrUnstable = errors.New("numeric: integration step size underflow")

// Euler integrates with the fixed-step explicit Euler method:
// h = (xEnd-x0)/(numPoints-1), y += h*f(x, y).
//
// Evaluation failures are not guarded: a NaN at one point propagates
// through every later sample. That mirrors the documented behavior of
// the tool contract and is deliberately not "fixed" here.
func Euler(f ODEFunc, x0, xEnd, y0 float64, numPoints int) Curve {
	if numPoints < 2 {
		numPoints = 2
	}
	xs := make([]float64, numPoints)
	floats.Span(xs, x0, xEnd)
	ys := make([]float64, numPoints)
	ys[0] = y0

	h := (xEnd - x0) / float64(numPoints-1)
	for i := 1; i < numPoints; i++ {
		slope := f(xs[i-1], ys[i-1])
		ys[i] = ys[i-1] + h*slope
	}
	return Curve{X: xs, Y: ys, Evals: numPoints - 1}
}

// Dormand-Prince 5(4) tableau.
var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	// Fifth-order weights (identical to the last tableau row).
	dpB5 = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	// Fourth-order weights for the embedded error estimate.
	dpB4 = [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40}
)

// rkKnot is one accepted integration point with its derivative, kept
// for dense output.
type rkKnot struct {
	x, y, dy float64
}

// RK45 integrates with the adaptive Dormand-Prince embedded 5(4) pair
// and resamples the solution onto a uniform numPoints grid, so the
// output spacing is independent of the adaptive internal step sequence.
// The per-step error is controlled by tol (used as both relative and
// absolute tolerance) and steps never exceed maxStep.
func RK45(f ODEFunc, x0, xEnd, y0 float64, numPoints int, maxStep, tol float64) (Curve, error) {
	if numPoints < 2 {
		numPoints = 2
	}
	if tol <= 0 {
		tol = 1e-6
	}
	span := xEnd - x0
	if span == 0 {
		xs := make([]float64, numPoints)
		ys := make([]float64, numPoints)
		floats.Span(xs, x0, xEnd)
		for i := range ys {
			ys[i] = y0
		}
		return Curve{X: xs, Y: ys}, nil
	}
	dir := 1.0
	if span < 0 {
		dir = -1
	}
	if maxStep <= 0 {
		maxStep = math.Abs(span)
	}

	evals := 0
	rhs := func(x, y float64) float64 {
		evals++
		return f(x, y)
	}

	x, y := x0, y0
	dy := rhs(x, y)
	if !isFinite(dy) {
		return Curve{}, fmt.Errorf("derivative undefined at initial condition x=%g, y=%g", x, y)
	}
	knots := []rkKnot{{x: x, y: y, dy: dy}}

	h := math.Min(maxStep, math.Abs(span)/10) * dir
	minStep := 1e-14 * math.Abs(span)
	var k [7]float64

	for dir*(xEnd-x) > 1e-300 {
		if dir*(x+h-xEnd) > 0 {
			h = xEnd - x
		}

		k[0] = dy
		failed := false
		for i := 1; i < 7; i++ {
			yi := y
			for j := 0; j < i; j++ {
				yi += h * dpA[i][j] * k[j]
			}
			k[i] = rhs(x+dpC[i]*h, yi)
			if !isFinite(k[i]) {
				failed = true
				break
			}
		}

		if !failed {
			var y5, y4 float64
			y5, y4 = y, y
			for i := 0; i < 7; i++ {
				y5 += h * dpB5[i] * k[i]
				y4 += h * dpB4[i] * k[i]
			}
			errEst := math.Abs(y5 - y4)
			scale := tol + tol*math.Max(math.Abs(y), math.Abs(y5))
			if errEst <= scale {
				// Accept. k[6] is f at the new point (FSAL).
				x += h
				y = y5
				dy = k[6]
				knots = append(knots, rkKnot{x: x, y: y, dy: dy})
				if !isFinite(y) {
					return Curve{}, fmt.Errorf("solution became non-finite at x=%g", x)
				}
				factor := 5.0
				if errEst > 0 {
					factor = 0.9 * math.Pow(scale/errEst, 0.2)
					factor = math.Min(5, math.Max(0.2, factor))
				}
				h *= factor
			} else {
				factor := 0.9 * math.Pow(scale/errEst, 0.2)
				h *= math.Max(0.1, factor)
			}
		} else {
			h *= 0.5
		}

		if math.Abs(h) > maxStep {
			h = maxStep * dir
		}
		if math.Abs(h) < minStep {
			return Curve{}, ErrUnstable
		}
	}

	xs := make([]float64, numPoints)
	floats.Span(xs, x0, xEnd)
	ys := densify(knots, xs)
	return Curve{X: xs, Y: ys, Evals: evals}, nil
}

// densify evaluates the solution at arbitrary grid points by cubic
// Hermite interpolation between accepted steps, using the stored
// derivatives at each knot.
func densify(knots []rkKnot, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	j := 0
	last := len(knots) - 1
	for i, x := range xs {
		for j < last-1 && !between(knots[j].x, knots[j+1].x, x) {
			j++
		}
		a, b := knots[j], knots[j+1]
		h := b.x - a.x
		if h == 0 {
			ys[i] = a.y
			continue
		}
		t := (x - a.x) / h
		h00 := (1 + 2*t) * (1 - t) * (1 - t)
		h10 := t * (1 - t) * (1 - t)
		h01 := t * t * (3 - 2*t)
		h11 := t * t * (t - 1)
		ys[i] = h00*a.y + h10*h*a.dy + h01*b.y + h11*h*b.dy
	}
	return ys
}

func between(a, b, x float64) bool {
	if a <= b {
		return x >= a && x <= b
	}
	return x <= a && x >= b
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
