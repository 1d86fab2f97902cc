// Package expr implements a small infix expression language: the four
// arithmetic operators, ** exponentiation, unary minus, parentheses,
// numeric literals, free variables, and calls into a fixed table of
// math functions.
//
// Input text is attacker-controllable, so it is parsed with a
// recursive-descent parser into an AST and interpreted over a closed
// symbol table. There is no dynamic code execution of any kind; an
// identifier is either a known function name, a known constant, or a
// free variable bound at evaluation time.
//
// Evaluation never panics: domain errors (log of a negative, 0/0)
// produce NaN or Inf, which callers treat as "undefined at this point".
package expr
