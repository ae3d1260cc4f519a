package gui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-filter-studio/internal/config"
	"image-filter-studio/internal/core"
	"image-filter-studio/internal/editor"
	"image-filter-studio/internal/io"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	return NewApplication(app, config.Default(), logger)
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	b, err := core.NewFilled(600, 300, core.Color, 128)
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "gray.png")
	require.NoError(t, io.NewImageLoader(logger).Encode(b, path))
	return path
}

func TestActionsDisabledUntilLoad(t *testing.T) {
	a := newTestApplication(t)

	for _, btn := range a.toolbar.imageButtons {
		assert.True(t, btn.Disabled(), btn.Text)
	}
	assert.False(t, a.toolbar.openBtn.Disabled())
	assert.Equal(t, "State: EMPTY", a.infoPanel.stateLabel.Text)

	a.handle(editor.Apply("invert", nil))
	assert.Equal(t, core.StateEmpty, a.session.State())
	assert.Equal(t, "No image loaded", a.statusLabel.Text)
}

func TestLoadApplyResetUpdatesWidgets(t *testing.T) {
	a := newTestApplication(t)
	a.handle(editor.Load(writeTestImage(t)))

	require.Equal(t, core.StateLoaded, a.session.State())
	for _, btn := range a.toolbar.imageButtons {
		assert.False(t, btn.Disabled(), btn.Text)
	}

	// Previews are bounded while the stored buffer keeps its size.
	bounds := a.canvas.originalImage.Image.Bounds()
	assert.Equal(t, 400, bounds.Dx())
	assert.Equal(t, 200, bounds.Dy())
	orig, _ := a.session.Original()
	assert.Equal(t, 600, orig.Width())

	for _, btn := range a.toolbar.imageButtons {
		if btn.Text == "Invert Colors" {
			test.Tap(btn)
		}
	}
	assert.Equal(t, core.StateModified, a.session.State())
	assert.Equal(t, "Applied: Invert", a.statusLabel.Text)
	assert.Equal(t, "State: MODIFIED", a.infoPanel.stateLabel.Text)

	test.Tap(a.toolbar.resetBtn)
	assert.Equal(t, core.StateLoaded, a.session.State())
	assert.Equal(t, "Reset to original image", a.statusLabel.Text)
}

func TestPreviewSizeFollowsConfig(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	cfg := config.Default()
	cfg.Preview.MaxEdge = 256
	a := NewApplication(app, cfg, logger)

	assert.Equal(t, fyne.NewSize(128, 128), a.canvas.originalImage.MinSize())
	assert.Equal(t, fyne.NewSize(128, 128), a.canvas.currentImage.MinSize())
}
