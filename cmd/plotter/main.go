// Command plotter renders functions of x to a PNG chart and reports
// zeros, y-intercepts and symmetry per curve.
//
// It takes a single JSON object as its argument and writes a single
// JSON object to stdout.
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
			return solver.NewPlotOps(cfg, log)
		},
		NoInputMessage: "No plot data provided",
		BadInputFormat: "Failed to process plot data: %v",
	}
	os.Exit(app.Run(os.Args[1:]))
}
