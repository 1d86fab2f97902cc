package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Env binds free variable names to values for evaluation.
type Env map[string]float64

// Node is a parsed expression.
type Node interface {
	// Eval interprets the node. Unbound variables evaluate to NaN.
	Eval(env Env) float64
	String() string
}

// functions is the closed symbol table of callable names.
var functions = map[string]func(float64) float64{
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
	"log":   math.Log, // natural log
	"ln":    math.Log,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
}

// constants are resolved to literals at parse time.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// IsFunction reports whether name is a known callable.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// Num is a numeric literal.
type Num struct {
	Value float64
}

func (n Num) Eval(Env) float64 { return n.Value }

func (n Num) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Variable is a free variable resolved from the environment.
type Variable struct {
	Name string
}

func (v Variable) Eval(env Env) float64 {
	if val, ok := env[v.Name]; ok {
		return val
	}
	return math.NaN()
}

func (v Variable) String() string { return v.Name }

// Neg is unary negation.
type Neg struct {
	X Node
}

func (n Neg) Eval(env Env) float64 { return -n.X.Eval(env) }

func (n Neg) String() string { return "-" + paren(n.X) }

// Binary is a binary operation: "+", "-", "*", "/", or "**".
type Binary struct {
	Op   string
	L, R Node
}

func (b Binary) Eval(env Env) float64 {
	l, r := b.L.Eval(env), b.R.Eval(env)
	switch b.Op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	case "**":
		return math.Pow(l, r)
	}
	return math.NaN()
}

func (b Binary) String() string {
	return paren(b.L) + " " + b.Op + " " + paren(b.R)
}

// Call applies a symbol-table function to its argument.
type Call struct {
	Name string
	Arg  Node
	fn   func(float64) float64
}

func (c Call) Eval(env Env) float64 { return c.fn(c.Arg.Eval(env)) }

func (c Call) String() string { return c.Name + "(" + c.Arg.String() + ")" }

func paren(n Node) string {
	switch n.(type) {
	case Num, Variable, Call:
		return n.String()
	}
	return "(" + n.String() + ")"
}

// Vars returns the free variable names of an expression.
func Vars(n Node) map[string]struct{} {
	vars := map[string]struct{}{}
	collectVars(n, vars)
	return vars
}

func collectVars(n Node, vars map[string]struct{}) {
	switch v := n.(type) {
	case Variable:
		vars[v.Name] = struct{}{}
	case Neg:
		collectVars(v.X, vars)
	case Binary:
		collectVars(v.L, vars)
		collectVars(v.R, vars)
	case Call:
		collectVars(v.Arg, vars)
	}
}

// Compile1 parses src into a single-variable function of varName.
func Compile1(src, varName string) (func(float64) float64, error) {
	node, err := Parse(src)
	if err != nil {
		return nil, err
	}
	env := Env{}
	return func(x float64) float64 {
		env[varName] = x
		return node.Eval(env)
	}, nil
}

// Compile2 parses src into a two-variable function of xName and yName.
func Compile2(src, xName, yName string) (func(x, y float64) float64, error) {
	node, err := Parse(src)
	if err != nil {
		return nil, err
	}
	env := Env{}
	return func(x, y float64) float64 {
		env[xName] = x
		env[yName] = y
		return node.Eval(env)
	}, nil
}

// ParseError reports where parsing failed.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

func errorf(pos int, format string, args ...interface{}) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp     // + - * / **
	tokLParen // (
	tokRParen // )
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	c := l.src[l.pos]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		seenDot := false
		for l.pos < len(l.src) {
			ch := l.src[l.pos]
			if ch == '.' {
				if seenDot {
					break
				}
				seenDot = true
			} else if ch < '0' || ch > '9' {
				break
			}
			l.pos++
		}
		text := l.src[start:l.pos]
		if text == "." {
			return token{}, errorf(start, "malformed number %q", text)
		}
		return token{kind: tokNumber, text: text, pos: start}, nil
	case isLetter(c):
		for l.pos < len(l.src) && (isLetter(l.src[l.pos]) || l.src[l.pos] >= '0' && l.src[l.pos] <= '9') {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	case c == '*':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '*' {
			l.pos++
			return token{kind: tokOp, text: "**", pos: start}, nil
		}
		return token{kind: tokOp, text: "*", pos: start}, nil
	case c == '+' || c == '-' || c == '/':
		l.pos++
		return token{kind: tokOp, text: string(c), pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	}
	return token{}, errorf(start, "unexpected character %q", string(c))
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

type parser struct {
	lex  lexer
	tok  token
	serr error
}

func (p *parser) advance() {
	if p.serr != nil {
		return
	}
	tok, err := p.lex.next()
	if err != nil {
		p.serr = err
		return
	}
	p.tok = tok
}

// Parse parses src into an AST.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errorf(0, "empty expression")
	}
	p := &parser{lex: lexer{src: src}}
	p.advance()
	node, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.serr != nil {
		return nil, p.serr
	}
	if p.tok.kind != tokEOF {
		return nil, errorf(p.tok.pos, "unexpected %q", p.tok.text)
	}
	return node, nil
}

// parseSum := parseProduct (("+"|"-") parseProduct)*
func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.serr == nil && p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		p.advance()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, L: left, R: right}
	}
	return left, p.serr
}

// parseProduct := parseUnary (("*"|"/") parseUnary)*
func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.serr == nil && p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/") {
		op := p.tok.text
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, L: left, R: right}
	}
	return left, p.serr
}

// parseUnary := ("+"|"-") parseUnary | parsePower
func (p *parser) parseUnary() (Node, error) {
	if p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			return Neg{X: operand}, nil
		}
		return operand, nil
	}
	return p.parsePower()
}

// parsePower := parsePrimary ["**" parseUnary]
//
// Exponentiation is right-associative and its exponent may carry a sign,
// so x**-2 and 2**3**2 parse the usual way.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.serr == nil && p.tok.kind == tokOp && p.tok.text == "**" {
		p.advance()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Binary{Op: "**", L: base, R: exp}, nil
	}
	return base, p.serr
}

// parsePrimary := NUMBER | IDENT | IDENT "(" parseSum ")" | "(" parseSum ")"
func (p *parser) parsePrimary() (Node, error) {
	if p.serr != nil {
		return nil, p.serr
	}
	switch p.tok.kind {
	case tokNumber:
		val, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, errorf(p.tok.pos, "malformed number %q", p.tok.text)
		}
		p.advance()
		return Num{Value: val}, p.serr
	case tokIdent:
		name := p.tok.text
		pos := p.tok.pos
		p.advance()
		if p.serr == nil && p.tok.kind == tokLParen {
			fn, ok := functions[name]
			if !ok {
				return nil, errorf(pos, "unknown function %q", name)
			}
			p.advance()
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if p.tok.kind != tokRParen {
				return nil, errorf(p.tok.pos, "expected closing parenthesis")
			}
			p.advance()
			return Call{Name: name, Arg: arg, fn: fn}, p.serr
		}
		if val, ok := constants[name]; ok {
			return Num{Value: val}, p.serr
		}
		return Variable{Name: name}, p.serr
	case tokLParen:
		p.advance()
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, errorf(p.tok.pos, "expected closing parenthesis")
		}
		p.advance()
		return inner, p.serr
	case tokEOF:
		return nil, errorf(p.tok.pos, "unexpected end of expression")
	}
	return nil, errorf(p.tok.pos, "unexpected %q", p.tok.text)
}
