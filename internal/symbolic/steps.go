package symbolic

import (
	"fmt"
	"math"
)

// Narrate produces a pedagogical walkthrough for solving e = 0 with
// respect to name. The narration is advisory: it never changes which
// solutions are computed.
func Narrate(e Expr, name string) []string {
	steps := []string{fmt.Sprintf("Starting with expression: %s = 0", e)}

	coeffs, isPoly := PolyCoeffs(e, name)

	switch {
	case isPoly:
		steps = append(steps, narratePolynomial(e, name, coeffs)...)
	case hasTrig(e):
		steps = append(steps,
			"This is a trigonometric equation",
			"For trigonometric equations, I'll look for values where the expression equals zero")
	case ContainsCall(e, "log"):
		steps = append(steps,
			"This is a logarithmic equation",
			"For logarithmic equations, I'll apply properties of logarithms to isolate the variable")
	case ContainsCall(e, "exp"):
		steps = append(steps,
			"This is an exponential equation",
			"For exponential equations, I'll apply properties of exponents to isolate the variable")
	default:
		steps = append(steps, "General approach: isolating the variable")
	}

	steps = append(steps, "Finally, solving the equation")
	return steps
}

func hasTrig(e Expr) bool {
	for _, fn := range []string{"sin", "cos", "tan"} {
		if ContainsCall(e, fn) {
			return true
		}
	}
	return false
}

func narratePolynomial(e Expr, name string, coeffs []float64) []string {
	degree := len(coeffs) - 1
	steps := []string{fmt.Sprintf("This is a polynomial equation of degree %d", degree)}

	collected := Collect(e, name)
	if collected.String() != e.String() {
		steps = append(steps, fmt.Sprintf("Rearranging to standard form: %s = 0", collected))
	}

	switch degree {
	case 1:
		b, a := coeffs[0], coeffs[1]
		steps = append(steps,
			fmt.Sprintf("For linear equations a*%s + b = 0, the solution is %s = -b/a", name, name),
			fmt.Sprintf("Here a = %s and b = %s", trim(a), trim(b)),
			fmt.Sprintf("Substituting: %s = %s/%s = %s", name, trim(-b), trim(a), trim(-b/a)))
	case 2:
		c, b, a := coeffs[0], coeffs[1], coeffs[2]
		disc := b*b - 4*a*c
		steps = append(steps,
			fmt.Sprintf("For quadratic equations a*%s^2 + b*%s + c = 0, we can use the quadratic formula:", name, name),
			fmt.Sprintf("%s = (-b ± √(b² - 4ac)) / (2a)", name),
			fmt.Sprintf("Here a = %s, b = %s, c = %s", trim(a), trim(b), trim(c)),
			fmt.Sprintf("Calculate the discriminant: b² - 4ac = %s", trim(disc)))
		switch {
		case disc > 0:
			root := math.Sqrt(disc)
			steps = append(steps,
				"Discriminant > 0, so there are two real solutions",
				fmt.Sprintf("%s₁ = (%s + √%s) / %s = %s", name, trim(-b), trim(disc), trim(2*a), trim((-b+root)/(2*a))),
				fmt.Sprintf("%s₂ = (%s - √%s) / %s = %s", name, trim(-b), trim(disc), trim(2*a), trim((-b-root)/(2*a))))
		case disc == 0:
			steps = append(steps,
				"Discriminant = 0, so there is one repeated solution",
				fmt.Sprintf("%s = %s / %s = %s", name, trim(-b), trim(2*a), trim(-b/(2*a))))
		default:
			steps = append(steps, "Discriminant < 0, so there are two complex solutions")
		}
	}
	return steps
}

// trim formats a coefficient the way it would appear in hand-written
// algebra (no exponent notation for typical magnitudes).
func trim(v float64) string {
	return fmt.Sprintf("%g", v)
}
