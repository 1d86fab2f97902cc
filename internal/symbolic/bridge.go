package symbolic

import (
	"math"

	"github.com/solvekit/mathtools/internal/expr"
)

// FromAST converts a parsed expression tree into canonical symbolic
// form. Square roots become half powers and ln is folded into log so
// the rule sets only see one spelling of each operation.
func FromAST(n expr.Node) Expr {
	switch v := n.(type) {
	case expr.Num:
		return Number(v.Value)
	case expr.Variable:
		return Symbol(v.Name)
	case expr.Neg:
		return Product(Number(-1), FromAST(v.X))
	case expr.Binary:
		l, r := FromAST(v.L), FromAST(v.R)
		switch v.Op {
		case "+":
			return Sum(l, r)
		case "-":
			return Sum(l, Product(Number(-1), r))
		case "*":
			return Product(l, r)
		case "/":
			return Product(l, Power(r, Number(-1)))
		case "**":
			return Power(l, r)
		}
	case expr.Call:
		arg := FromAST(v.Arg)
		switch v.Name {
		case "sqrt":
			return Power(arg, Number(0.5))
		case "ln":
			return Fn("log", arg)
		}
		return Fn(v.Name, arg)
	}
	return Number(math.NaN())
}

// Parse parses normalized expression text into canonical symbolic form.
func Parse(src string) (Expr, error) {
	node, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	return FromAST(node), nil
}
