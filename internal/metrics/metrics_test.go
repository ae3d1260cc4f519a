package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-filter-studio/internal/core"
)

func ramp(t *testing.T, w, h int, offset int) core.PixelBuffer {
	t.Helper()
	samples := make([]uint8, w*h)
	for i := range samples {
		samples[i] = uint8((i*3 + offset) % 200)
	}
	b, err := core.NewPixelBuffer(w, h, core.Gray, samples)
	require.NoError(t, err)
	return b
}

func TestIdenticalImages(t *testing.T) {
	e := NewEvaluator()
	b := ramp(t, 24, 16, 0)

	values := e.CalculateAll(b, b.Clone())
	assert.Equal(t, 0.0, values["mse"])
	assert.True(t, math.IsInf(values["psnr"], 1))
	assert.Equal(t, 1.0, values["ssim"])
	assert.Equal(t, 0.0, values["mean_shift"])

	report := e.GenerateReport(b, b)
	assert.True(t, report.Comparable)
	assert.Equal(t, "identical", report.Level)
	assert.InDelta(t, 100, report.Score, 1e-9)
}

func TestUniformOffset(t *testing.T) {
	e := NewEvaluator()
	a, err := core.NewFilled(8, 8, core.Gray, 100)
	require.NoError(t, err)
	b, err := core.NewFilled(8, 8, core.Gray, 110)
	require.NoError(t, err)

	mse, err := e.Calculate("mse", a, b)
	require.NoError(t, err)
	assert.Equal(t, 100.0, mse)

	psnr, err := e.Calculate("psnr", a, b)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(25.5), psnr, 1e-9)

	shift, err := e.Calculate("mean_shift", a, b)
	require.NoError(t, err)
	assert.Equal(t, 10.0, shift)
}

func TestSSIMDropsForDifferentStructure(t *testing.T) {
	e := NewEvaluator()
	a := ramp(t, 32, 32, 0)
	b := a.MapSamples(func(v uint8) uint8 { return 255 - v })

	ssim, err := e.Calculate("ssim", a, b)
	require.NoError(t, err)
	assert.Less(t, ssim, 0.5)

	report := e.GenerateReport(a, b)
	assert.NotEqual(t, "identical", report.Level)
	assert.Less(t, report.Score, 100.0)
}

func TestColorAndGrayCompareOnLuma(t *testing.T) {
	e := NewEvaluator()
	gray, err := core.NewFilled(6, 6, core.Gray, 128)
	require.NoError(t, err)
	color, err := core.NewFilled(6, 6, core.Color, 128)
	require.NoError(t, err)

	mse, err := e.Calculate("mse", gray, color)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mse)
}

func TestDimensionMismatch(t *testing.T) {
	e := NewEvaluator()
	a := ramp(t, 10, 10, 0)
	b := ramp(t, 5, 5, 0)

	_, err := e.Calculate("psnr", a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	values := e.CalculateAll(a, b)
	assert.NotContains(t, values, "psnr")
	assert.Contains(t, values, "mean_shift")

	report := e.GenerateReport(a, b)
	assert.False(t, report.Comparable)
	assert.Equal(t, "resized", report.Level)
}

func TestUnknownMetric(t *testing.T) {
	e := NewEvaluator()
	b := ramp(t, 4, 4, 0)
	_, err := e.Calculate("f_measure", b, b)
	require.ErrorIs(t, err, ErrUnknownMetric)
	assert.Equal(t, []string{"mean_shift", "mse", "psnr", "ssim"}, e.Names())
}
