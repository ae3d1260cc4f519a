package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invertFilter(b PixelBuffer) PixelBuffer {
	return b.MapSamples(func(v uint8) uint8 { return 255 - v })
}

func testBuffer(t *testing.T) PixelBuffer {
	t.Helper()
	samples := make([]uint8, 3*2*3)
	for i := range samples {
		samples[i] = uint8(i * 11)
	}
	b, err := NewPixelBuffer(3, 2, Color, samples)
	require.NoError(t, err)
	return b
}

func TestSessionStartsEmpty(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateEmpty, s.State())
	assert.False(t, s.HasImage())

	_, ok := s.Current()
	assert.False(t, ok)
	_, ok = s.Original()
	assert.False(t, ok)
}

func TestSessionApplyOnEmptyIsNoop(t *testing.T) {
	s := NewSession()
	called := false
	err := s.Apply(func(b PixelBuffer) PixelBuffer {
		called = true
		return b
	})
	require.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, called)
	assert.Equal(t, StateEmpty, s.State())

	require.ErrorIs(t, s.Reset(), ErrInvalidState)
	assert.Equal(t, StateEmpty, s.State())
}

func TestSessionLoadApplyReset(t *testing.T) {
	s := NewSession()
	b := testBuffer(t)

	require.NoError(t, s.Load(b))
	assert.Equal(t, StateLoaded, s.State())

	cur, ok := s.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(b))

	require.NoError(t, s.Apply(invertFilter))
	assert.Equal(t, StateModified, s.State())
	cur, _ = s.Current()
	assert.False(t, cur.Equal(b))

	orig, ok := s.Original()
	require.True(t, ok)
	assert.True(t, orig.Equal(b), "apply must never touch the original")

	require.NoError(t, s.Apply(invertFilter))
	require.NoError(t, s.Apply(invertFilter))
	require.NoError(t, s.Reset())
	assert.Equal(t, StateLoaded, s.State())
	cur, _ = s.Current()
	assert.True(t, cur.Equal(orig))
}

func TestSessionApplyBackToOriginalIsLoaded(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(testBuffer(t)))

	require.NoError(t, s.Apply(invertFilter))
	require.NoError(t, s.Apply(invertFilter))
	assert.Equal(t, StateLoaded, s.State())
}

func TestSessionLoadReplacesOriginal(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(testBuffer(t)))
	require.NoError(t, s.Apply(invertFilter))

	next, err := NewFilled(5, 5, Gray, 42)
	require.NoError(t, err)
	require.NoError(t, s.Load(next))
	assert.Equal(t, StateLoaded, s.State())

	orig, _ := s.Original()
	cur, _ := s.Current()
	assert.True(t, orig.Equal(next))
	assert.True(t, cur.Equal(next))
}

func TestSessionRejectsEmptyBuffers(t *testing.T) {
	s := NewSession()
	require.ErrorIs(t, s.Load(PixelBuffer{}), ErrInvalidBuffer)
	assert.Equal(t, StateEmpty, s.State())

	require.NoError(t, s.Load(testBuffer(t)))
	err := s.Apply(func(PixelBuffer) PixelBuffer { return PixelBuffer{} })
	require.ErrorIs(t, err, ErrInvalidBuffer)
	assert.Equal(t, StateLoaded, s.State())
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(testBuffer(t)))
	s.Clear()
	assert.Equal(t, StateEmpty, s.State())
	require.ErrorIs(t, s.Apply(invertFilter), ErrInvalidState)
}
