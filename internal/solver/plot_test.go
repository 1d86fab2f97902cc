package solver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvekit/mathtools/internal/config"
	"github.com/solvekit/mathtools/internal/logging"
	"github.com/solvekit/mathtools/internal/types"
)

func newPlot() *PlotOps {
	return NewPlotOps(config.Default(), logging.NewNop())
}

func TestPlotExecute(t *testing.T) {
	ops := newPlot()

	t.Run("renders and analyzes", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "parabola.png")
		resp := ops.Execute(map[string]interface{}{
			"functions":  []interface{}{"x^2 - 4"},
			"xRange":     []interface{}{-5.0, 5.0},
			"outputPath": out,
		})
		result, ok := resp.(types.PlotResult)
		require.True(t, ok, "got %#v", resp)
		assert.Equal(t, out, result.ImagePath)

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))

		require.Len(t, result.Analysis, 1)
		a := result.Analysis[0]
		assert.Equal(t, "x^2 - 4", a.Function)
		assert.Equal(t, []float64{-2, 2}, a.Zeros)
		require.NotNil(t, a.YIntercept)
		assert.InDelta(t, -4, *a.YIntercept, 1e-9)
		assert.Equal(t, "even", a.Symmetry)
	})

	t.Run("serializes without steps", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "line.png")
		resp := ops.Execute(map[string]interface{}{
			"functions":  []interface{}{"x"},
			"outputPath": out,
		})
		result, ok := resp.(types.PlotResult)
		require.True(t, ok)

		data, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"imagePath"`)
		assert.NotContains(t, string(data), `"steps"`)
		assert.NotContains(t, string(data), `"error"`)
	})

	t.Run("no functions provided", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{})
		errResp, ok := resp.(types.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, "No functions provided", errResp.Error)
	})

	t.Run("malformed xRange", func(t *testing.T) {
		resp := ops.Execute(map[string]interface{}{
			"functions": []interface{}{"x"},
			"xRange":    []interface{}{1.0},
		})
		errResp, ok := resp.(types.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, "xRange must be [min, max]", errResp.Error)
	})

	t.Run("null yRange means auto-scale", func(t *testing.T) {
		var params map[string]interface{}
		payload := `{"functions":["x"],"yRange":null}`
		require.NoError(t, json.Unmarshal([]byte(payload), &params))
		params["outputPath"] = filepath.Join(t.TempDir(), "auto.png")

		resp := ops.Execute(params)
		_, ok := resp.(types.PlotResult)
		require.True(t, ok, "got %#v", resp)
	})

	t.Run("explicit yRange honored", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "clamped.png")
		resp := ops.Execute(map[string]interface{}{
			"functions":  []interface{}{"x^3"},
			"yRange":     []interface{}{-1.0, 1.0},
			"outputPath": out,
		})
		_, ok := resp.(types.PlotResult)
		require.True(t, ok, "got %#v", resp)
		_, err := os.Stat(out)
		assert.NoError(t, err)
	})
}

func TestPlotGetTools(t *testing.T) {
	tools := newPlot().GetTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "plot", tools[0].ID)
}
