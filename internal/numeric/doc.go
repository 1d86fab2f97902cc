// Package numeric implements the numeric strategies behind the solver
// tools: seeded local root finding with a bracketed fallback scan, and
// initial value problem integration (adaptive Dormand-Prince and fixed
// step Euler).
//
// Functions under search are treated as black boxes that may return NaN
// or Inf anywhere; a failed attempt is skipped, never fatal. Only
// structural problems (bad expression text, unsupported method) surface
// as errors from the calling layer.
package numeric
