// Package symbolic implements a small computer-algebra layer: canonical
// expression trees with deterministic simplification, differentiation,
// rule-based integration, polynomial analysis, and equation solving
// with closed forms for low degrees.
//
// Expressions are built from five node kinds (numbers, symbols, n-ary
// sums and products, powers, and function applications) held in a
// canonical form: sums and products are flattened, numeric parts are
// folded, and like terms are collected. Construction always returns
// simplified trees, so two equal expressions print identically.
package symbolic

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Expr is a symbolic expression in canonical form.
type Expr interface {
	String() string
	walk(fn func(Expr))
}

// Num is a numeric literal.
type Num struct {
	Value float64
}

// Var is a free symbol.
type Var struct {
	Name string
}

// Add is a flattened n-ary sum.
type Add struct {
	Terms []Expr
}

// Mul is a flattened n-ary product. A numeric coefficient, when
// present, is always the first factor.
type Mul struct {
	Factors []Expr
}

// Pow is base raised to an exponent.
type Pow struct {
	Base, Exp Expr
}

// Call is a function application from the fixed symbol table.
type Call struct {
	Name string
	Arg  Expr
}

// Number builds a numeric literal.
func Number(v float64) Expr { return Num{Value: v} }

// Symbol builds a free symbol.
func Symbol(name string) Expr { return Var{Name: name} }

// Sum builds a canonical sum: nested sums are flattened, numerics are
// folded, and like terms are collected by summing coefficients.
func Sum(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(Add); ok {
			flat = append(flat, inner.Terms...)
		} else {
			flat = append(flat, t)
		}
	}

	numSum := 0.0
	type group struct {
		coeff float64
		base  Expr
	}
	order := []string{}
	groups := map[string]*group{}

	for _, t := range flat {
		if n, ok := t.(Num); ok {
			numSum += n.Value
			continue
		}
		coeff, base := splitCoeff(t)
		key := base.String()
		g, seen := groups[key]
		if !seen {
			g = &group{base: base}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff += coeff
	}

	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		switch {
		case g.coeff == 0:
		case g.coeff == 1:
			out = append(out, g.base)
		default:
			out = append(out, scale(g.coeff, g.base))
		}
	}
	if numSum != 0 {
		out = append(out, Num{Value: numSum})
	}

	switch len(out) {
	case 0:
		return Num{}
	case 1:
		return out[0]
	}
	return Add{Terms: out}
}

// Product builds a canonical product: nested products are flattened,
// numerics fold into a leading coefficient, and repeated bases merge
// into powers when their exponents are numeric.
func Product(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(Mul); ok {
			flat = append(flat, inner.Factors...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := 1.0
	type group struct {
		base   Expr
		expSum float64
		fixed  []Expr // factors whose exponent is symbolic; kept as-is
	}
	order := []string{}
	groups := map[string]*group{}

	for _, f := range flat {
		if n, ok := f.(Num); ok {
			coeff *= n.Value
			continue
		}
		base, exp := f, 1.0
		symbolicExp := false
		if p, ok := f.(Pow); ok {
			if n, ok := p.Exp.(Num); ok {
				base, exp = p.Base, n.Value
			} else {
				symbolicExp = true
			}
		}
		key := base.String()
		if symbolicExp {
			key = f.String()
		}
		g, seen := groups[key]
		if !seen {
			g = &group{base: base}
			groups[key] = g
			order = append(order, key)
		}
		if symbolicExp {
			g.fixed = append(g.fixed, f)
		} else {
			g.expSum += exp
		}
	}

	if coeff == 0 {
		return Num{}
	}

	out := []Expr{}
	for _, key := range order {
		g := groups[key]
		out = append(out, g.fixed...)
		switch g.expSum {
		case 0:
			// exponents cancelled; base**0 contributes nothing
		case 1:
			out = append(out, g.base)
		default:
			out = append(out, Power(g.base, Num{Value: g.expSum}))
		}
	}

	switch {
	case len(out) == 0:
		return Num{Value: coeff}
	case coeff == 1 && len(out) == 1:
		return out[0]
	case coeff == 1:
		return Mul{Factors: out}
	}
	return Mul{Factors: append([]Expr{Num{Value: coeff}}, out...)}
}

// Power builds a canonical power: numeric bases and exponents fold,
// trivial exponents collapse, and numeric nested powers combine.
func Power(base, exp Expr) Expr {
	if bn, ok := base.(Num); ok {
		if en, ok := exp.(Num); ok {
			v := math.Pow(bn.Value, en.Value)
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return Num{Value: v}
			}
		}
		if bn.Value == 1 {
			return Num{Value: 1}
		}
	}
	if en, ok := exp.(Num); ok {
		switch en.Value {
		case 0:
			return Num{Value: 1}
		case 1:
			return base
		}
		if inner, ok := base.(Pow); ok {
			if ie, ok := inner.Exp.(Num); ok {
				return Power(inner.Base, Num{Value: ie.Value * en.Value})
			}
		}
	}
	return Pow{Base: base, Exp: exp}
}

// Fn builds a function application, folding numeric arguments.
func Fn(name string, arg Expr) Expr {
	if n, ok := arg.(Num); ok {
		if f, known := callTable[name]; known {
			v := f(n.Value)
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return Num{Value: v}
			}
		}
	}
	return Call{Name: name, Arg: arg}
}

var callTable = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"log":   math.Log,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
}

// splitCoeff decomposes a term into a numeric coefficient and its
// remaining symbolic part.
func splitCoeff(e Expr) (float64, Expr) {
	m, ok := e.(Mul)
	if !ok {
		return 1, e
	}
	if n, isNum := m.Factors[0].(Num); isNum {
		rest := m.Factors[1:]
		if len(rest) == 1 {
			return n.Value, rest[0]
		}
		return n.Value, Mul{Factors: rest}
	}
	return 1, e
}

// scale multiplies a canonical base term by a numeric coefficient
// without re-running full product canonicalization.
func scale(coeff float64, base Expr) Expr {
	if coeff == 1 {
		return base
	}
	if m, ok := base.(Mul); ok {
		return Mul{Factors: append([]Expr{Num{Value: coeff}}, m.Factors...)}
	}
	return Mul{Factors: []Expr{Num{Value: coeff}, base}}
}

// Subst replaces every occurrence of the named symbol and
// re-canonicalizes the result.
func Subst(e Expr, name string, replacement Expr) Expr {
	switch v := e.(type) {
	case Num:
		return v
	case Var:
		if v.Name == name {
			return replacement
		}
		return v
	case Add:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = Subst(t, name, replacement)
		}
		return Sum(terms...)
	case Mul:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factors[i] = Subst(f, name, replacement)
		}
		return Product(factors...)
	case Pow:
		return Power(Subst(v.Base, name, replacement), Subst(v.Exp, name, replacement))
	case Call:
		return Fn(v.Name, Subst(v.Arg, name, replacement))
	}
	return e
}

// Eval numerically evaluates an expression under an environment.
// Unbound symbols evaluate to NaN.
func Eval(e Expr, env map[string]float64) float64 {
	switch v := e.(type) {
	case Num:
		return v.Value
	case Var:
		if val, ok := env[v.Name]; ok {
			return val
		}
		return math.NaN()
	case Add:
		sum := 0.0
		for _, t := range v.Terms {
			sum += Eval(t, env)
		}
		return sum
	case Mul:
		prod := 1.0
		for _, f := range v.Factors {
			prod *= Eval(f, env)
		}
		return prod
	case Pow:
		return math.Pow(Eval(v.Base, env), Eval(v.Exp, env))
	case Call:
		if f, ok := callTable[v.Name]; ok {
			return f(Eval(v.Arg, env))
		}
		return math.NaN()
	}
	return math.NaN()
}

// EvalAt evaluates a one-variable expression at a point.
func EvalAt(e Expr, name string, x float64) float64 {
	return Eval(e, map[string]float64{name: x})
}

// Constant reports the numeric value of a fully folded expression.
func Constant(e Expr) (float64, bool) {
	if n, ok := e.(Num); ok {
		return n.Value, true
	}
	return 0, false
}

// FreeSymbols returns the sorted free symbol names of an expression.
func FreeSymbols(e Expr) []string {
	seen := map[string]struct{}{}
	e.walk(func(node Expr) {
		if v, ok := node.(Var); ok {
			seen[v.Name] = struct{}{}
		}
	})
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ContainsSymbol reports whether the named symbol occurs in e.
func ContainsSymbol(e Expr, name string) bool {
	found := false
	e.walk(func(node Expr) {
		if v, ok := node.(Var); ok && v.Name == name {
			found = true
		}
	})
	return found
}

// ContainsCall reports whether any of the named functions occur in e.
func ContainsCall(e Expr, names ...string) bool {
	found := false
	e.walk(func(node Expr) {
		if c, ok := node.(Call); ok {
			for _, n := range names {
				if c.Name == n {
					found = true
				}
			}
		}
	})
	return found
}

func (n Num) walk(fn func(Expr)) { fn(n) }
func (v Var) walk(fn func(Expr)) { fn(v) }
func (a Add) walk(fn func(Expr)) {
	fn(a)
	for _, t := range a.Terms {
		t.walk(fn)
	}
}
func (m Mul) walk(fn func(Expr)) {
	fn(m)
	for _, f := range m.Factors {
		f.walk(fn)
	}
}
func (p Pow) walk(fn func(Expr)) {
	fn(p)
	p.Base.walk(fn)
	p.Exp.walk(fn)
}
func (c Call) walk(fn func(Expr)) {
	fn(c)
	c.Arg.walk(fn)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n Num) String() string { return formatFloat(n.Value) }

func (v Var) String() string { return v.Name }

func (a Add) String() string {
	var b strings.Builder
	for i, t := range a.Terms {
		if i == 0 {
			b.WriteString(t.String())
			continue
		}
		if neg, ok := negated(t); ok {
			b.WriteString(" - ")
			b.WriteString(neg.String())
		} else {
			b.WriteString(" + ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

// negated reports the positive form of a term with a negative numeric
// coefficient, for "a - b" style printing.
func negated(e Expr) (Expr, bool) {
	switch v := e.(type) {
	case Num:
		if v.Value < 0 {
			return Num{Value: -v.Value}, true
		}
	case Mul:
		if n, ok := v.Factors[0].(Num); ok && n.Value < 0 {
			return scale(-n.Value, Mul{Factors: v.Factors[1:]}.compact()), true
		}
	}
	return nil, false
}

// compact unwraps a single-factor product left over from slicing.
func (m Mul) compact() Expr {
	if len(m.Factors) == 1 {
		return m.Factors[0]
	}
	return m
}

func (m Mul) String() string {
	parts := make([]string, 0, len(m.Factors))
	for i, f := range m.Factors {
		s := f.String()
		switch v := f.(type) {
		case Add:
			s = "(" + s + ")"
		case Num:
			if v.Value < 0 && i > 0 {
				s = "(" + s + ")"
			}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "*")
}

func (p Pow) String() string {
	base := p.Base.String()
	switch v := p.Base.(type) {
	case Add, Mul, Pow:
		base = "(" + base + ")"
	case Num:
		if v.Value < 0 {
			base = "(" + base + ")"
		}
	}
	exp := p.Exp.String()
	switch v := p.Exp.(type) {
	case Add, Mul, Pow:
		exp = "(" + exp + ")"
	case Num:
		if v.Value < 0 {
			exp = "(" + exp + ")"
		}
	}
	return base + "**" + exp
}

func (c Call) String() string { return c.Name + "(" + c.Arg.String() + ")" }
