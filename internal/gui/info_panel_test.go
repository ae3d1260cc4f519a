package gui

import (
	"math"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-filter-studio/internal/core"
	"image-filter-studio/internal/editor"
	"image-filter-studio/internal/metrics"
)

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "-", formatMetric(12, false))
	assert.Equal(t, "∞", formatMetric(math.Inf(1), true))
	assert.Equal(t, "0.987", formatMetric(0.98712, true))
}

func TestInfoPanelRowsFollowEvaluator(t *testing.T) {
	app := test.NewApp()
	t.Cleanup(app.Quit)

	evaluator := metrics.NewEvaluator()
	ip := NewInfoPanel(evaluator)

	require.Len(t, ip.metricValues, len(evaluator.Names()))
	for _, name := range evaluator.Names() {
		assert.Contains(t, ip.metricValues, name)
	}

	b, err := core.NewFilled(8, 8, core.Color, 90)
	require.NoError(t, err)
	ip.Update(editor.Snapshot{
		State:    core.StateLoaded,
		Original: b,
		Current:  b,
		Report:   evaluator.GenerateReport(b, b),
	})
	assert.Equal(t, "∞", ip.metricValues["psnr"].Text)
	assert.Equal(t, "0.000", ip.metricValues["mse"].Text)
}
