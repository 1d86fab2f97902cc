package symbolic

import (
	"math"
)

// maxExpandExponent bounds how far integer powers of sums are
// multiplied out.
const maxExpandExponent = 16

// Expand distributes products over sums and multiplies out small
// positive integer powers of sums, returning canonical form.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case Add:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = Expand(t)
		}
		return Sum(terms...)
	case Mul:
		acc := Expr(Num{Value: 1})
		for _, f := range v.Factors {
			acc = distribute(acc, Expand(f))
		}
		return acc
	case Pow:
		base := Expand(v.Base)
		if n, ok := v.Exp.(Num); ok && n.Value == math.Trunc(n.Value) && n.Value >= 2 && n.Value <= maxExpandExponent {
			if _, isAdd := base.(Add); isAdd {
				acc := base
				for i := 1; i < int(n.Value); i++ {
					acc = distribute(acc, base)
				}
				return acc
			}
		}
		return Power(base, v.Exp)
	}
	return e
}

// distribute multiplies two expanded expressions, spreading sums.
func distribute(a, b Expr) Expr {
	aTerms := addTerms(a)
	bTerms := addTerms(b)
	products := make([]Expr, 0, len(aTerms)*len(bTerms))
	for _, at := range aTerms {
		for _, bt := range bTerms {
			products = append(products, Product(at, bt))
		}
	}
	return Sum(products...)
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(Add); ok {
		return a.Terms
	}
	return []Expr{e}
}

// PolyCoeffs reports the numeric coefficients of e as a polynomial in
// the named symbol, ascending by degree, after expansion. It fails when
// any term is not a numeric multiple of a nonnegative integer power of
// the symbol — including terms that carry other free symbols or
// function applications.
func PolyCoeffs(e Expr, name string) ([]float64, bool) {
	expanded := Expand(e)
	coeffs := map[int]float64{}
	maxDeg := 0
	for _, term := range addTerms(expanded) {
		deg, c, ok := monomial(term, name)
		if !ok {
			return nil, false
		}
		coeffs[deg] += c
		if deg > maxDeg {
			maxDeg = deg
		}
	}
	out := make([]float64, maxDeg+1)
	for deg, c := range coeffs {
		out[deg] = c
	}
	return out, true
}

// monomial decomposes a canonical term into degree and coefficient.
func monomial(term Expr, name string) (int, float64, bool) {
	switch v := term.(type) {
	case Num:
		return 0, v.Value, true
	case Var:
		if v.Name == name {
			return 1, 1, true
		}
		return 0, 0, false
	case Pow:
		deg, ok := powerDegree(v, name)
		return deg, 1, ok
	case Mul:
		coeff := 1.0
		deg := 0
		for _, f := range v.Factors {
			switch fv := f.(type) {
			case Num:
				coeff *= fv.Value
			case Var:
				if fv.Name != name {
					return 0, 0, false
				}
				deg++
			case Pow:
				d, ok := powerDegree(fv, name)
				if !ok {
					return 0, 0, false
				}
				deg += d
			default:
				return 0, 0, false
			}
		}
		return deg, coeff, true
	}
	return 0, 0, false
}

func powerDegree(p Pow, name string) (int, bool) {
	b, ok := p.Base.(Var)
	if !ok || b.Name != name {
		return 0, false
	}
	n, ok := p.Exp.(Num)
	if !ok || n.Value != math.Trunc(n.Value) || n.Value < 0 {
		return 0, false
	}
	return int(n.Value), true
}

// Degree reports the polynomial degree of e in the named symbol, or -1
// when e is not a polynomial in it.
func Degree(e Expr, name string) int {
	coeffs, ok := PolyCoeffs(e, name)
	if !ok {
		return -1
	}
	for i := len(coeffs) - 1; i >= 0; i-- {
		if coeffs[i] != 0 {
			return i
		}
	}
	return 0
}

// Collect rewrites a polynomial in the named symbol into standard form,
// highest degree first. Non-polynomials are returned unchanged.
func Collect(e Expr, name string) Expr {
	coeffs, ok := PolyCoeffs(e, name)
	if !ok {
		return e
	}
	terms := []Expr{}
	for deg := len(coeffs) - 1; deg >= 0; deg-- {
		c := coeffs[deg]
		if c == 0 {
			continue
		}
		switch deg {
		case 0:
			terms = append(terms, Number(c))
		case 1:
			terms = append(terms, Product(Number(c), Symbol(name)))
		default:
			terms = append(terms, Product(Number(c), Power(Symbol(name), Number(float64(deg)))))
		}
	}
	if len(terms) == 0 {
		return Num{}
	}
	if len(terms) == 1 {
		return terms[0]
	}
	// Terms are already canonical and ordered; keep the order.
	return Add{Terms: terms}
}
