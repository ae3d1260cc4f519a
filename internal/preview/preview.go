// Package preview turns pixel buffers into bounded display images. It never
// modifies the buffers it is given.
package preview

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"image-filter-studio/internal/core"
)

// DefaultMaxEdge is the longest preview side in pixels.
const DefaultMaxEdge = 400

// FitSize shrinks w x h so the longer side is at most maxEdge, keeping the
// aspect ratio. Images that already fit are returned unchanged.
func FitSize(w, h, maxEdge int) (int, int) {
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return w, h
	}

	scale := math.Min(float64(maxEdge)/float64(w), float64(maxEdge)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	return max(min(nw, maxEdge), 1), max(min(nh, maxEdge), 1)
}

// ToImage converts b to a Go image at full size. GRAY becomes *image.Gray and
// COLOR becomes *image.RGBA with the B,G,R samples reordered.
func ToImage(b core.PixelBuffer) image.Image {
	if b.IsEmpty() {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	samples := b.Samples()
	if b.Mode() == core.Gray {
		return &image.Gray{Pix: samples, Stride: b.Width(), Rect: b.Bounds()}
	}

	img := image.NewRGBA(b.Bounds())
	for i, j := 0, 0; i < len(samples); i, j = i+3, j+4 {
		img.Pix[j+0] = samples[i+2]
		img.Pix[j+1] = samples[i+1]
		img.Pix[j+2] = samples[i+0]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Thumbnail renders b with its longer side capped at maxEdge.
func Thumbnail(b core.PixelBuffer, maxEdge int) image.Image {
	full := ToImage(b)
	bounds := full.Bounds()

	w, h := FitSize(bounds.Dx(), bounds.Dy(), maxEdge)
	if w == bounds.Dx() && h == bounds.Dy() {
		return full
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), full, bounds, draw.Src, nil)
	return dst
}
