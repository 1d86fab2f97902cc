package solver

import (
	"github.com/solvekit/mathtools/internal/config"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/plot"
	"github.com/solvekit/mathtools/internal/types"
)

// PlotOps answers chart rendering requests.
type PlotOps struct {
	cfg *config.Config
	log *logging.Logger
}

// NewPlotOps creates the plot dispatcher.
func NewPlotOps(cfg *config.Config, log *logging.Logger) *PlotOps {
	return &PlotOps{cfg: cfg, log: log}
}

// Execute renders the requested functions to a PNG image.
func (o *PlotOps) Execute(params map[string]interface{}) types.Response {
	functions, ok := GetStrings(params, "functions")
	if !ok || len(functions) == 0 {
		return types.Errorf("No functions provided")
	}
	xRange, ok := GetRange(params, "xRange", [2]float64{-10, 10})
	if !ok {
		return types.Errorf("xRange must be [min, max]")
	}

	var yRange *[2]float64
	if v, present := params["yRange"]; present && v != nil {
		r, ok := GetRange(params, "yRange", [2]float64{})
		if !ok {
			return types.Errorf("yRange must be [min, max]")
		}
		yRange = &r
	}

	req := plot.Request{
		Functions:  functions,
		XRange:     xRange,
		YRange:     yRange,
		Title:      stringOr(params, "title", "Function Plot"),
		OutputPath: stringOr(params, "outputPath", o.cfg.Plot.OutputPath),
		Width:      numberOr(params, "width", o.cfg.Plot.Width),
		Height:     numberOr(params, "height", o.cfg.Plot.Height),
	}

	result, err := plot.Render(req, o.cfg.Plot.Samples, o.log)
	if err != nil {
		return types.Errorf("%v", err)
	}
	return *result
}

// GetTools returns the operation metadata for the plotter.
func (o *PlotOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "plot",
			Name:        "Plot Functions",
			Description: "Render functions of x to a PNG chart with zero and symmetry analysis",
			Parameters: []types.Parameter{
				{Name: "functions", Type: "string[]", Description: "Functions of x to draw", Required: true},
				{Name: "xRange", Type: "number[]", Description: "Horizontal extent (default [-10, 10])"},
				{Name: "yRange", Type: "number[]", Description: "Vertical extent; auto-scaled when absent"},
				{Name: "title", Type: "string", Description: "Chart title (default \"Function Plot\")"},
				{Name: "outputPath", Type: "string", Description: "Image destination (default plot.png)"},
				{Name: "width", Type: "number", Description: "Image width in pixels (default 800)"},
				{Name: "height", Type: "number", Description: "Image height in pixels (default 600)"},
			},
			Returns: "imagePath, analysis",
		},
	}
}
