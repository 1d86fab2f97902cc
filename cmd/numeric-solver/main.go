// Command numeric-solver solves equations, linear systems and ODE
// initial value problems numerically.
//
// It takes a single JSON object as its argument and writes a single
// JSON object to stdout. The "type" field selects the operation:
// "linear_system", "ode", or a single-equation solve by default.
package main

import (
	"os"

	"github.com/solvekit/mathtools/internal/cli"
	"github.com/solvekit/mathtools/internal/config"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/solver"
)

func main() {
	app := cli.App{
		NewOps: func(cfg *config.Config, log *logging.Logger) cli.Ops {
			return solver.NewNumericOps(cfg, log)
		},
		NoInputMessage: "No input data provided",
		BadInputFormat: "Error processing input: %v",
	}
	os.Exit(app.Run(os.Args[1:]))
}
