package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the tagged union written to stdout by every tool.
// Exactly one concrete type is an error; all others are success payloads.
type Response interface {
	isResponse()
}

// ErrorResponse is the failure variant. It marshals to {"error": message}
// with no other keys.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (ErrorResponse) isResponse() {}

// Errorf builds an ErrorResponse from a format string.
func Errorf(format string, args ...interface{}) ErrorResponse {
	return ErrorResponse{Error: fmt.Sprintf(format, args...)}
}

// StepLog is an ordered, append-only trace of human-readable solve steps.
// It is purely observational and never consumed programmatically.
// A nil StepLog marshals to null, which is how suppressed narration is
// reported.
type StepLog []string

// Add appends a formatted step.
func (s *StepLog) Add(format string, args ...interface{}) {
	*s = append(*s, fmt.Sprintf(format, args...))
}

// Extend appends a batch of steps.
func (s *StepLog) Extend(steps []string) {
	*s = append(*s, steps...)
}

// VarMap holds per-variable solution values in a fixed order. It marshals
// to a JSON object whose keys appear in the resolved variable order, so
// the coefficient-to-variable mapping established during extraction is
// preserved all the way into the response.
type VarMap struct {
	Names  []string
	Values []float64
}

// Set appends a variable binding.
func (m *VarMap) Set(name string, value float64) {
	m.Names = append(m.Names, name)
	m.Values = append(m.Values, value)
}

// Get returns the value bound to name.
func (m *VarMap) Get(name string) (float64, bool) {
	for i, n := range m.Names {
		if n == name {
			return m.Values[i], true
		}
	}
	return 0, false
}

// MarshalJSON writes the bindings as an object in insertion order.
func (m VarMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range m.Names {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Values[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON restores the bindings. Key order follows the document.
func (m *VarMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("types: VarMap expects a JSON object")
	}
	m.Names = nil
	m.Values = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var value float64
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(keyTok.(string), value)
	}
	_, err = dec.Token()
	return err
}

// EquationSolution reports the roots of a single-variable equation.
type EquationSolution struct {
	Solutions  []float64 `json:"solutions"`
	Expression string    `json:"expression"`
	Variable   string    `json:"variable"`
	Steps      StepLog   `json:"steps"`
}

func (EquationSolution) isResponse() {}

// SystemSolution reports the solution of a linear system together with
// the extracted matrix and constant vector.
type SystemSolution struct {
	Solution  VarMap      `json:"solution"`
	Variables []string    `json:"variables"`
	Matrix    [][]float64 `json:"matrix,omitempty"`
	Constants []float64   `json:"constants,omitempty"`
	Steps     StepLog     `json:"steps"`
}

func (SystemSolution) isResponse() {}

// ODESolution reports a sampled solution curve for an initial value
// problem.
type ODESolution struct {
	X        []float64 `json:"x"`
	Y        []float64 `json:"y"`
	Equation string    `json:"equation"`
	Method   string    `json:"method"`
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Steps    StepLog   `json:"steps"`
}

func (ODESolution) isResponse() {}

// DerivativeResult reports a symbolic derivative.
type DerivativeResult struct {
	Original   string  `json:"original"`
	Derivative string  `json:"derivative"`
	Variable   string  `json:"variable"`
	Order      int     `json:"order"`
	Steps      StepLog `json:"steps"`
}

func (DerivativeResult) isResponse() {}

// IntegralResult reports a symbolic integral. Limits is nil for an
// indefinite integral.
type IntegralResult struct {
	Original string    `json:"original"`
	Integral string    `json:"integral"`
	Variable string    `json:"variable"`
	Limits   []float64 `json:"limits"`
	Steps    StepLog   `json:"steps"`
}

func (IntegralResult) isResponse() {}

// FunctionAnalysis summarizes one plotted function: approximate zeros,
// the y-intercept when x=0 is in range, and a symmetry classification
// ("even", "odd", or empty).
type FunctionAnalysis struct {
	Function   string    `json:"function"`
	Zeros      []float64 `json:"zeros,omitempty"`
	YIntercept *float64  `json:"yIntercept,omitempty"`
	Symmetry   string    `json:"symmetry,omitempty"`
}

// PlotResult reports the rendered image location and per-function
// analysis.
type PlotResult struct {
	ImagePath string             `json:"imagePath"`
	Analysis  []FunctionAnalysis `json:"analysis,omitempty"`
}

func (PlotResult) isResponse() {}
