package io

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-filter-studio/internal/core"
)

func newTestLoader() (*ImageLoader, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewImageLoader(logger), hook
}

func gradient(t *testing.T, w, h int, mode core.ChannelMode) core.PixelBuffer {
	t.Helper()
	samples := make([]uint8, w*h*mode.Channels())
	for i := range samples {
		samples[i] = uint8((i * 37) % 256)
	}
	b, err := core.NewPixelBuffer(w, h, mode, samples)
	require.NoError(t, err)
	return b
}

func TestRoundTripPreservesModeAndOrder(t *testing.T) {
	loader, hook := newTestLoader()
	dir := t.TempDir()

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		for _, mode := range []core.ChannelMode{core.Gray, core.Color} {
			b := gradient(t, 7, 5, mode)
			path := filepath.Join(dir, mode.String()+ext)

			require.NoError(t, loader.Encode(b, path), path)
			back, err := loader.Decode(path)
			require.NoError(t, err, path)

			assert.Equal(t, mode, back.Mode(), path)
			assert.True(t, b.Equal(back), "%s must round-trip exactly", path)
		}
	}

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Image loaded successfully", hook.LastEntry().Message)
}

func TestDecodeErrors(t *testing.T) {
	loader, _ := newTestLoader()
	dir := t.TempDir()

	_, err := loader.Decode(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, ErrDecode)

	_, err = loader.Decode(filepath.Join(dir, "notes.txt"))
	require.ErrorIs(t, err, ErrDecode)

	garbage := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o600))
	_, err = loader.Decode(garbage)
	require.ErrorIs(t, err, ErrDecode)
}

func TestEncodeErrors(t *testing.T) {
	loader, _ := newTestLoader()
	dir := t.TempDir()
	b := gradient(t, 4, 4, core.Color)

	err := loader.Encode(b, filepath.Join(dir, "lossy.jpg"))
	require.ErrorIs(t, err, ErrEncode)

	err = loader.Encode(core.PixelBuffer{}, filepath.Join(dir, "empty.png"))
	require.ErrorIs(t, err, ErrEncode)

	err = loader.Encode(b, filepath.Join(dir, "no", "such", "dir", "out.png"))
	require.ErrorIs(t, err, ErrEncode)
}

func TestRejectedSaveLeavesFilesAlone(t *testing.T) {
	loader, _ := newTestLoader()
	dir := t.TempDir()
	b := gradient(t, 4, 4, core.Color)

	fresh := filepath.Join(dir, "out.jpg")
	require.ErrorIs(t, loader.Encode(b, fresh), ErrEncode)
	assert.NoFileExists(t, fresh)

	existing := filepath.Join(dir, "photo.jpg")
	original := []byte("previous contents")
	require.NoError(t, os.WriteFile(existing, original, 0o600))
	require.ErrorIs(t, loader.Encode(b, existing), ErrEncode)

	kept, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, original, kept)
}

func TestEncodeToFallsBackToPNG(t *testing.T) {
	loader, hook := newTestLoader()
	b := gradient(t, 6, 3, core.Gray)

	// A save dialog has already created the file before the image is encoded.
	path := filepath.Join(t.TempDir(), "photo.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)

	format, err := loader.EncodeTo(b, path, f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, ".png", format)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned, "fallback must be logged as a warning")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	back, err := loader.Decode(path)
	require.NoError(t, err)
	assert.True(t, b.Equal(back))
}

func TestEncodeToKeepsSupportedFormat(t *testing.T) {
	loader, _ := newTestLoader()
	b := gradient(t, 5, 5, core.Color)

	var out bytes.Buffer
	format, err := loader.EncodeTo(b, "/any/where/result.BMP", &out)
	require.NoError(t, err)
	assert.Equal(t, ".bmp", format)
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("BM")))
}

func TestEncodeBytesRejectsEmpty(t *testing.T) {
	loader, _ := newTestLoader()
	_, err := loader.EncodeBytes(core.PixelBuffer{}, ".png")
	require.ErrorIs(t, err, ErrEncode)

	var out bytes.Buffer
	_, err = loader.EncodeTo(core.PixelBuffer{}, "out.png", &out)
	require.ErrorIs(t, err, ErrEncode)
	assert.Zero(t, out.Len())
}

func TestFormatLists(t *testing.T) {
	loader, _ := newTestLoader()
	assert.Contains(t, loader.SupportedFormats(), ".jpg")
	assert.NotContains(t, loader.SaveFormats(), ".jpg")
	assert.True(t, isSupported("/tmp/Photo.PNG", loader.SaveFormats()))
}
