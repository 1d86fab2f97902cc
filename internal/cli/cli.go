// Package cli implements the shared entrypoint of the math tools: one
// JSON object as the sole argument, one JSON object on stdout.
//
// Exit codes follow the wire contract: malformed or missing input is a
// non-zero exit, while operation failures still exit zero with an
// {"error": ...} body.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/solvekit/mathtools/internal/config"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/types"
)

// Ops is the dispatch surface every tool exposes.
type Ops interface {
	Execute(params map[string]interface{}) types.Response
	GetTools() []types.Tool
}

// App wires one tool's dispatcher into the common argv/stdout plumbing.
type App struct {
	// NewOps builds the tool's dispatcher from loaded configuration.
	NewOps func(*config.Config, *logging.Logger) Ops
	// NoInputMessage is the error body for a missing argument.
	NoInputMessage string
	// BadInputFormat is the error format for undecodable JSON. It takes
	// the decode error as its single verb.
	BadInputFormat string
	// Stdout overrides the response destination. Tests use a buffer;
	// nil means os.Stdout.
	Stdout io.Writer
}

// Run executes one request and returns the process exit code.
func (a App) Run(args []string) int {
	out := a.Stdout
	if out == nil {
		out = os.Stdout
	}

	cfg := config.LoadOrDefault()
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ops := a.NewOps(cfg, log)

	if len(args) > 0 && args[0] == "--tools" {
		emitJSON(out, ops.GetTools())
		return 0
	}
	if len(args) < 1 {
		emitJSON(out, types.Errorf("%s", a.NoInputMessage))
		return 1
	}

	var params map[string]interface{}
	if err := json.Unmarshal([]byte(args[0]), &params); err != nil {
		emitJSON(out, types.Errorf(a.BadInputFormat, err))
		return 1
	}

	emitJSON(out, ops.Execute(params))
	return 0
}

// newLogger builds the stderr diagnostic logger. Stdout carries only
// the JSON response.
func newLogger(cfg *config.Config) *logging.Logger {
	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return logging.NewDefault()
	}
	return log
}

func emitJSON(out io.Writer, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintln(out, `{"error":"failed to encode response"}`)
		return
	}
	fmt.Fprintln(out, string(data))
}
