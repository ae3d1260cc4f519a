// Core pixel buffer value type shared by every pipeline stage
package core

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// ErrInvalidBuffer is returned when pixel data does not match its declared shape.
var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// MaxDimension bounds width and height to keep allocations sane.
const MaxDimension = 16384

// ChannelMode tags how many samples each pixel carries.
type ChannelMode int

const (
	// Gray is a single 8-bit intensity sample per pixel.
	Gray ChannelMode = iota + 1
	// Color is three 8-bit samples per pixel in B,G,R order.
	Color
)

// Channels returns the number of samples per pixel for the mode.
func (m ChannelMode) Channels() int {
	switch m {
	case Gray:
		return 1
	case Color:
		return 3
	default:
		return 0
	}
}

func (m ChannelMode) String() string {
	switch m {
	case Gray:
		return "GRAY"
	case Color:
		return "COLOR"
	default:
		return fmt.Sprintf("ChannelMode(%d)", int(m))
	}
}

// PixelBuffer is an immutable 8-bit raster. The zero value is an empty buffer
// and is never produced by the constructors.
type PixelBuffer struct {
	width   int
	height  int
	mode    ChannelMode
	samples []uint8
}

// Filter maps one buffer to a new one without touching its input.
type Filter func(PixelBuffer) PixelBuffer

// NewPixelBuffer validates the shape and copies samples into a new buffer.
func NewPixelBuffer(width, height int, mode ChannelMode, samples []uint8) (PixelBuffer, error) {
	if err := validateShape(width, height, mode); err != nil {
		return PixelBuffer{}, err
	}

	want := width * height * mode.Channels()
	if len(samples) != want {
		return PixelBuffer{}, fmt.Errorf("%w: %d samples for %dx%d %s, want %d",
			ErrInvalidBuffer, len(samples), width, height, mode, want)
	}

	data := make([]uint8, want)
	copy(data, samples)
	return PixelBuffer{width: width, height: height, mode: mode, samples: data}, nil
}

// NewFilled creates a buffer where every sample equals value.
func NewFilled(width, height int, mode ChannelMode, value uint8) (PixelBuffer, error) {
	if err := validateShape(width, height, mode); err != nil {
		return PixelBuffer{}, err
	}

	data := bytes.Repeat([]byte{value}, width*height*mode.Channels())
	return PixelBuffer{width: width, height: height, mode: mode, samples: data}, nil
}

func validateShape(width, height int, mode ChannelMode) error {
	if mode.Channels() == 0 {
		return fmt.Errorf("%w: unknown channel mode %d", ErrInvalidBuffer, int(mode))
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrInvalidBuffer, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: image too large: %dx%d (max: %d)", ErrInvalidBuffer, width, height, MaxDimension)
	}
	return nil
}

// wrap adopts samples without copying. Callers must hand over exclusive ownership.
func wrap(width, height int, mode ChannelMode, samples []uint8) PixelBuffer {
	return PixelBuffer{width: width, height: height, mode: mode, samples: samples}
}

func (b PixelBuffer) Width() int        { return b.width }
func (b PixelBuffer) Height() int       { return b.height }
func (b PixelBuffer) Mode() ChannelMode { return b.mode }
func (b PixelBuffer) Channels() int     { return b.mode.Channels() }

// Bounds returns the buffer extent anchored at the origin.
func (b PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// IsEmpty reports whether b is the zero value.
func (b PixelBuffer) IsEmpty() bool {
	return b.samples == nil
}

// Len returns the total sample count.
func (b PixelBuffer) Len() int {
	return len(b.samples)
}

// Samples returns a copy of the interleaved sample data.
func (b PixelBuffer) Samples() []uint8 {
	out := make([]uint8, len(b.samples))
	copy(out, b.samples)
	return out
}

// At returns sample c of the pixel at (x, y).
func (b PixelBuffer) At(x, y, c int) uint8 {
	return b.samples[(y*b.width+x)*b.mode.Channels()+c]
}

// Pixel returns all samples of the pixel at (x, y).
func (b PixelBuffer) Pixel(x, y int) []uint8 {
	n := b.mode.Channels()
	i := (y*b.width + x) * n
	out := make([]uint8, n)
	copy(out, b.samples[i:i+n])
	return out
}

// Clone returns an independent copy with its own sample storage.
func (b PixelBuffer) Clone() PixelBuffer {
	if b.IsEmpty() {
		return PixelBuffer{}
	}
	return wrap(b.width, b.height, b.mode, b.Samples())
}

// Equal reports value equality of shape, mode and samples.
func (b PixelBuffer) Equal(o PixelBuffer) bool {
	return b.width == o.width &&
		b.height == o.height &&
		b.mode == o.mode &&
		bytes.Equal(b.samples, o.samples)
}

// MapSamples applies fn to every sample and returns the result as a new buffer.
func (b PixelBuffer) MapSamples(fn func(uint8) uint8) PixelBuffer {
	out := make([]uint8, len(b.samples))
	for i, v := range b.samples {
		out[i] = fn(v)
	}
	return wrap(b.width, b.height, b.mode, out)
}

// MapPixels applies fn to each pixel's samples. fn writes into dst, which has
// the same length as src.
func (b PixelBuffer) MapPixels(fn func(dst, src []uint8)) PixelBuffer {
	n := b.mode.Channels()
	out := make([]uint8, len(b.samples))
	for i := 0; i < len(b.samples); i += n {
		fn(out[i:i+n], b.samples[i:i+n])
	}
	return wrap(b.width, b.height, b.mode, out)
}

func (b PixelBuffer) String() string {
	return fmt.Sprintf("%dx%d %s", b.width, b.height, b.mode)
}
