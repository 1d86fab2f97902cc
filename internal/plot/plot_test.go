package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vgplot "gonum.org/v1/plot"

	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/types"
)

func render(t *testing.T, req Request) *types.PlotResult {
	t.Helper()
	result, err := Render(req, 1000, logging.NewNop())
	require.NoError(t, err)
	return result
}

func TestRenderWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	result := render(t, Request{
		Functions:  []string{"x^2 - 4"},
		XRange:     [2]float64{-10, 10},
		Title:      "Test",
		OutputPath: out,
		Width:      800,
		Height:     600,
	})

	assert.Equal(t, out, result.ImagePath)
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderCreatesOutputDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "chart.png")
	render(t, Request{
		Functions:  []string{"x"},
		XRange:     [2]float64{-1, 1},
		OutputPath: out,
		Width:      400,
		Height:     300,
	})

	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestRenderAnalysis(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	result := render(t, Request{
		Functions:  []string{"x^2 - 4", "x^3"},
		XRange:     [2]float64{-10, 10},
		OutputPath: out,
		Width:      800,
		Height:     600,
	})
	require.Len(t, result.Analysis, 2)

	parabola := result.Analysis[0]
	assert.Equal(t, "x^2 - 4", parabola.Function)
	assert.Equal(t, []float64{-2, 2}, parabola.Zeros)
	require.NotNil(t, parabola.YIntercept)
	assert.Equal(t, -4.0, *parabola.YIntercept)
	assert.Equal(t, "even", parabola.Symmetry)

	cubic := result.Analysis[1]
	assert.Equal(t, "odd", cubic.Symmetry)
	require.NotNil(t, cubic.YIntercept)
	assert.Equal(t, 0.0, *cubic.YIntercept)
}

func TestRenderSkipsBadFunctions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	result := render(t, Request{
		Functions:  []string{"nope(x)", "x + 1"},
		XRange:     [2]float64{-5, 5},
		OutputPath: out,
		Width:      400,
		Height:     300,
	})

	// The unparseable function is skipped; the good one still renders.
	require.Len(t, result.Analysis, 1)
	assert.Equal(t, "x + 1", result.Analysis[0].Function)
}

func TestRenderNoYInterceptOutsideRange(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	result := render(t, Request{
		Functions:  []string{"x"},
		XRange:     [2]float64{1, 10},
		OutputPath: out,
		Width:      400,
		Height:     300,
	})
	require.Len(t, result.Analysis, 1)
	assert.Nil(t, result.Analysis[0].YIntercept)
}

func TestRenderValidation(t *testing.T) {
	_, err := Render(Request{XRange: [2]float64{-1, 1}}, 1000, logging.NewNop())
	assert.Error(t, err, "no functions")

	_, err = Render(Request{Functions: []string{"x"}, XRange: [2]float64{2, -2}}, 1000, logging.NewNop())
	assert.Error(t, err, "inverted range")
}

func newPlot(t *testing.T) *vgplot.Plot {
	t.Helper()
	return vgplot.New()
}

func TestApplyYRange(t *testing.T) {
	t.Run("explicit range wins", func(t *testing.T) {
		p := newPlot(t)
		applyYRange(p, &[2]float64{-3, 3}, []float64{-1000, 0, 1000})
		assert.Equal(t, -3.0, p.Y.Min)
		assert.Equal(t, 3.0, p.Y.Max)
	})

	t.Run("interquartile fences drop asymptote blowups", func(t *testing.T) {
		// The bulk of the curve plus a single near-pole sample. Without
		// trimming, the pole value would set Y.Max and flatten the rest.
		values := make([]float64, 0, 21)
		for v := 1.0; v <= 20; v++ {
			values = append(values, v)
		}
		values = append(values, 1e6)

		p := newPlot(t)
		applyYRange(p, nil, values)
		assert.Less(t, p.Y.Max, 100.0, "pole sample must not drive the scale")
		assert.Less(t, p.Y.Min, 1.0, "padding extends below the bulk minimum")
		assert.Greater(t, p.Y.Max, 20.0, "padding extends above the bulk maximum")
	})

	t.Run("empty samples leave the scale alone", func(t *testing.T) {
		p := newPlot(t)
		min, max := p.Y.Min, p.Y.Max
		applyYRange(p, nil, nil)
		assert.Equal(t, min, p.Y.Min)
		assert.Equal(t, max, p.Y.Max)
	})
}

func TestRenderAutoScalesAcrossAsymptote(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reciprocal.png")
	result := render(t, Request{
		Functions:  []string{"1/x"},
		XRange:     [2]float64{-5, 5},
		OutputPath: out,
		Width:      800,
		Height:     600,
	})
	assert.Equal(t, out, result.ImagePath)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDetectSymmetry(t *testing.T) {
	even := detectSymmetry(func(x float64) float64 { return x * x }, [2]float64{-10, 10})
	assert.Equal(t, "even", even)

	odd := detectSymmetry(func(x float64) float64 { return x * x * x }, [2]float64{-10, 10})
	assert.Equal(t, "odd", odd)

	neither := detectSymmetry(func(x float64) float64 { return x + 1 }, [2]float64{-10, 10})
	assert.Equal(t, "", neither)
}
