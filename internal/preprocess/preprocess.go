// Package preprocess normalizes free-form equation text into the form
// the expression parser accepts.
package preprocess

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// digitLetter matches a digit immediately followed by a letter, the
	// implicit-multiplication case "2x". Matches are non-overlapping, so
	// multi-digit coefficients are handled one boundary at a time.
	digitLetter = regexp.MustCompile(`(\d)([a-zA-Z])`)

	// adjacentGroups matches back-to-back parenthesized groups ")(".
	adjacentGroups = regexp.MustCompile(`\)\(`)

	// identifiers matches alphabetic tokens for variable inference.
	identifiers = regexp.MustCompile(`[a-zA-Z]+`)
)

// knownFunctions are identifier tokens that are not variables.
var knownFunctions = map[string]struct{}{
	"sin":  {},
	"cos":  {},
	"tan":  {},
	"log":  {},
	"exp":  {},
	"sqrt": {},
	"pi":   {},
}

// Normalize rewrites equation text into parseable form:
// caret exponentiation becomes **, "2x" becomes "2*x", and ")(" becomes
// ")*(". It is idempotent on already-normalized input.
//
// Implicit multiplication between a letter and a following digit, or
// between two adjacent letters, is deliberately not handled: "xy" could
// be one variable or two.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "^", "**")
	s = digitLetter.ReplaceAllString(s, "${1}*${2}")
	s = adjacentGroups.ReplaceAllString(s, ")*(")
	return s
}

// SplitEquation reduces an equation to "expression = 0" form. Text with
// an equality sign becomes "(lhs) - (rhs)"; text without one is assumed
// to already equal zero. Both sides are normalized.
func SplitEquation(eq string) string {
	if left, right, ok := strings.Cut(eq, "="); ok {
		return "(" + Normalize(strings.TrimSpace(left)) + ") - (" + Normalize(strings.TrimSpace(right)) + ")"
	}
	return Normalize(eq)
}

// Sides splits an equation on its first equality sign and normalizes
// both sides. Absent an equality, the right side is the literal zero.
func Sides(eq string) (left, right string) {
	if l, r, ok := strings.Cut(eq, "="); ok {
		return Normalize(strings.TrimSpace(l)), Normalize(strings.TrimSpace(r))
	}
	return Normalize(strings.TrimSpace(eq)), "0"
}

// StripDerivativeLHS extracts the right-hand side of a first-order ODE
// written as "dy/dx = f(x,y)" or "y' = f(x,y)". Text without an
// equality, or whose left side is not a derivative, passes through
// unchanged apart from normalization.
func StripDerivativeLHS(eq string) string {
	if left, right, ok := strings.Cut(eq, "="); ok {
		if strings.Contains(left, "dy/dx") || strings.Contains(left, "y'") {
			return Normalize(strings.TrimSpace(right))
		}
		return Normalize(strings.TrimSpace(left))
	}
	return Normalize(strings.TrimSpace(eq))
}

// InferVariables collects the candidate variable names of a set of
// equations: every alphabetic token that is not a known function name,
// sorted for a stable order. The resolved order must stay fixed through
// coefficient extraction and result assembly.
func InferVariables(equations []string) []string {
	seen := map[string]struct{}{}
	for _, eq := range equations {
		for _, tok := range identifiers.FindAllString(eq, -1) {
			if _, known := knownFunctions[tok]; known {
				continue
			}
			seen[tok] = struct{}{}
		}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}
