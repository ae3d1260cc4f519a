// Geometric transforms: rotation, scaling and mirroring
package algorithms

import (
	"image"

	"gocv.io/x/gocv"

	"image-filter-studio/internal/core"
)

// Rotate turns b by angle degrees counter-clockwise about its integer center.
// The canvas keeps the input size so corners may be clipped.
func Rotate(b core.PixelBuffer, angle float64) core.PixelBuffer {
	w, h := b.Width(), b.Height()
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		m := gocv.GetRotationMatrix2D(image.Pt(w/2, h/2), angle, 1.0)
		defer m.Close()
		return gocv.WarpAffine(src, dst, m, image.Pt(w, h))
	})
}

// ScaledSize returns floor(w*scale) x floor(h*scale), never below 1x1.
func ScaledSize(w, h int, scale float64) (int, int) {
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	return max(nw, 1), max(nh, 1)
}

// Resize scales both axes by scale using bilinear interpolation.
func Resize(b core.PixelBuffer, scale float64) core.PixelBuffer {
	nw, nh := ScaledSize(b.Width(), b.Height(), scale)
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.Resize(src, dst, image.Pt(nw, nh), 0, 0, gocv.InterpolationLinear)
	})
}

// FlipHorizontal mirrors b across its vertical axis.
func FlipHorizontal(b core.PixelBuffer) core.PixelBuffer {
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.Flip(src, dst, 1)
	})
}

// FlipVertical mirrors b across its horizontal axis.
func FlipVertical(b core.PixelBuffer) core.PixelBuffer {
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.Flip(src, dst, 0)
	})
}
