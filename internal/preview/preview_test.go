package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-filter-studio/internal/core"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 400, 100, 50},
		{400, 400, 400, 400, 400},
		{800, 400, 400, 400, 200},
		{400, 1000, 400, 160, 400},
		{1001, 3, 400, 400, 1},
		{3000, 2000, 400, 400, 267},
		{50, 50, 0, 50, 50},
	}
	for _, tt := range tests {
		w, h := FitSize(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantW, w, "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "%dx%d", tt.w, tt.h)
	}
}

func TestToImageReordersChannels(t *testing.T) {
	b, err := core.NewPixelBuffer(1, 1, core.Color, []uint8{10, 20, 30})
	require.NoError(t, err)

	img := ToImage(b)
	assert.Equal(t, color.RGBA{R: 30, G: 20, B: 10, A: 255}, img.At(0, 0))
}

func TestToImageGray(t *testing.T) {
	b, err := core.NewPixelBuffer(2, 1, core.Gray, []uint8{5, 250})
	require.NoError(t, err)

	img := ToImage(b)
	require.IsType(t, &image.Gray{}, img)
	assert.Equal(t, color.Gray{Y: 250}, img.At(1, 0))
}

func TestThumbnailBoundsAndNoMutation(t *testing.T) {
	b, err := core.NewFilled(900, 300, core.Color, 77)
	require.NoError(t, err)
	snapshot := b.Clone()

	thumb := Thumbnail(b, DefaultMaxEdge)
	assert.Equal(t, image.Rect(0, 0, 400, 133), thumb.Bounds())
	r, g, bl, _ := thumb.At(200, 60).RGBA()
	assert.Equal(t, uint32(77), r>>8)
	assert.Equal(t, uint32(77), g>>8)
	assert.Equal(t, uint32(77), bl>>8)

	assert.True(t, b.Equal(snapshot))
	assert.Equal(t, 900, b.Width())
}

func TestThumbnailSmallImageKeepsSize(t *testing.T) {
	b, err := core.NewFilled(40, 30, core.Gray, 1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), Thumbnail(b, DefaultMaxEdge).Bounds())
}
