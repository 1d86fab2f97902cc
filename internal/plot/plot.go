// Package plot renders function graphs to PNG images and reports a
// lightweight analysis (zeros, y-intercept, symmetry) per curve.
package plot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	vgplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/solvekit/mathtools/internal/expr"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/numeric"
	"github.com/solvekit/mathtools/internal/preprocess"
	"github.com/solvekit/mathtools/internal/types"
)

// Request describes one rendering job. Functions are raw user strings;
// each is normalized and compiled independently so one bad function
// does not sink the whole chart.
type Request struct {
	Functions  []string
	XRange     [2]float64
	YRange     *[2]float64 // nil means auto-scale
	Title      string
	OutputPath string
	Width      float64 // pixels at 100 DPI
	Height     float64
}

// Render draws every parseable function in req onto a single chart,
// saves it under req.OutputPath and returns the analysis collected
// along the way. Functions that fail to parse are logged and skipped.
func Render(req Request, samples int, log *logging.Logger) (*types.PlotResult, error) {
	if len(req.Functions) == 0 {
		return nil, fmt.Errorf("no functions provided")
	}
	if req.XRange[1] <= req.XRange[0] {
		return nil, fmt.Errorf("invalid x range [%g, %g]", req.XRange[0], req.XRange[1])
	}
	if samples < 2 {
		samples = 1000
	}

	p := vgplot.New()
	p.Title.Text = req.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())
	addAxisLines(p, req.XRange)

	xs := make([]float64, samples)
	floats.Span(xs, req.XRange[0], req.XRange[1])

	var allY []float64
	var analyses []types.FunctionAnalysis

	for i, src := range req.Functions {
		f, err := expr.Compile1(preprocess.Normalize(src), "x")
		if err != nil {
			log.Warn("error plotting function", zap.String("function", src), zap.Error(err))
			continue
		}

		ys := make([]float64, samples)
		for j, x := range xs {
			ys[j] = f(x)
		}
		for _, y := range ys {
			if !math.IsNaN(y) && !math.IsInf(y, 0) {
				allY = append(allY, y)
			}
		}

		line, err := plotter.NewLine(finiteXYs(xs, ys))
		if err != nil {
			log.Warn("error plotting function", zap.String("function", src), zap.Error(err))
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("f%d(x) = %s", i+1, src), line)

		a := analyze(src, f, xs, ys, req.XRange)
		if len(a.Zeros) > 0 {
			markZeros(p, a.Zeros)
		}
		analyses = append(analyses, a)
	}

	applyYRange(p, req.YRange, allY)

	if dir := filepath.Dir(req.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	w := vg.Length(req.Width/100) * vg.Inch
	h := vg.Length(req.Height/100) * vg.Inch
	if err := p.Save(w, h, req.OutputPath); err != nil {
		return nil, fmt.Errorf("saving plot: %w", err)
	}

	return &types.PlotResult{ImagePath: req.OutputPath, Analysis: analyses}, nil
}

// analyze inspects one sampled curve for zeros, its y-intercept and
// approximate even/odd symmetry.
func analyze(src string, f func(float64) float64, xs, ys []float64, xRange [2]float64) types.FunctionAnalysis {
	a := types.FunctionAnalysis{Function: src}

	for i := 0; i+1 < len(ys); i++ {
		y1, y2 := ys[i], ys[i+1]
		if !isFinite(y1) || !isFinite(y2) {
			continue
		}
		if math.Signbit(y1) == math.Signbit(y2) {
			continue
		}
		// Linear interpolation between the bracketing samples.
		x1, x2 := xs[i], xs[i+1]
		zero := x1 - y1*(x2-x1)/(y2-y1)
		a.Zeros = append(a.Zeros, numeric.Round(zero, 2))
	}

	if xRange[0] <= 0 && 0 <= xRange[1] {
		if y0 := f(0); isFinite(y0) {
			v := numeric.Round(y0, 2)
			a.YIntercept = &v
		}
	}

	a.Symmetry = detectSymmetry(f, xRange)
	return a
}

// detectSymmetry samples ten points in [0, min(5, xmax)] and compares
// f(t) against f(-t) with a 1% relative tolerance. Non-finite samples
// are ignored rather than counted against either hypothesis.
func detectSymmetry(f func(float64) float64, xRange [2]float64) string {
	upper := math.Min(5, xRange[1])
	if upper <= 0 {
		return ""
	}
	probes := make([]float64, 10)
	floats.Span(probes, 0, upper)

	even, odd := true, true
	for _, t := range probes {
		if t == 0 || -t < xRange[0] || t > xRange[1] {
			continue
		}
		pos, neg := f(t), f(-t)
		if math.IsNaN(pos) || math.IsNaN(neg) {
			continue
		}
		if !approxEqual(pos, neg) {
			even = false
		}
		if !approxEqual(pos, -neg) {
			odd = false
		}
	}
	switch {
	case even:
		return "even"
	case odd:
		return "odd"
	default:
		return ""
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-2*math.Abs(b)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if isFinite(ys[i]) {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	return pts
}

// markZeros draws small red markers where a curve crosses the x axis.
func markZeros(p *vgplot.Plot, zeros []float64) {
	pts := make(plotter.XYs, len(zeros))
	for i, z := range zeros {
		pts[i] = plotter.XY{X: z, Y: 0}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)
}

// addAxisLines draws faint x=0 and y=0 reference lines.
func addAxisLines(p *vgplot.Plot, xRange [2]float64) {
	grey := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	if h, err := plotter.NewLine(plotter.XYs{{X: xRange[0], Y: 0}, {X: xRange[1], Y: 0}}); err == nil {
		h.Color = grey
		p.Add(h)
	}
	if xRange[0] <= 0 && 0 <= xRange[1] {
		if v, err := plotter.NewLine(plotter.XYs{{X: 0, Y: -1}, {X: 0, Y: 1}}); err == nil {
			v.Color = grey
			p.Add(v)
		}
	}
}

// applyYRange sets the vertical extent: an explicit range wins,
// otherwise the sampled values are clipped to their interquartile
// fences before padding, so a single asymptote cannot flatten every
// other curve into a line.
func applyYRange(p *vgplot.Plot, explicit *[2]float64, values []float64) {
	if explicit != nil {
		p.Y.Min, p.Y.Max = explicit[0], explicit[1]
		return
	}
	if len(values) == 0 {
		return
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, v := range sorted {
		if v > lower && v < upper {
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}
	if yMin > yMax {
		return
	}
	pad := 0.1 * (yMax - yMin)
	p.Y.Min, p.Y.Max = yMin-pad, yMax+pad
}
