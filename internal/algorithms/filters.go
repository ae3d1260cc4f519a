// Neighbourhood and point filters built on OpenCV
package algorithms

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"image-filter-studio/internal/core"
)

const (
	blurKernelSize = 7
	cannyLow       = 50
	cannyHigh      = 150
)

var sharpenKernel = [3][3]float32{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// withMat runs op on a Mat copy of b and converts the result back. OpenCV
// failures on a valid buffer are invariant violations and panic with the cause.
func withMat(b core.PixelBuffer, op func(src gocv.Mat, dst *gocv.Mat) error) core.PixelBuffer {
	src := b.ToMat()
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := op(src, &dst); err != nil {
		panic(fmt.Sprintf("algorithms: OpenCV failed on %s: %v", b, err))
	}
	return core.MustFromMat(dst)
}

// Invert complements every sample.
func Invert(b core.PixelBuffer) core.PixelBuffer {
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.BitwiseNot(src, dst)
	})
}

// Blur applies a 7x7 Gaussian with sigma derived from the kernel size.
func Blur(b core.PixelBuffer) core.PixelBuffer {
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.GaussianBlur(src, dst, image.Pt(blurKernelSize, blurKernelSize), 0, 0, gocv.BorderDefault)
	})
}

// Sharpen convolves with a 3x3 Laplacian-boosted kernel. Output is COLOR and
// saturated to [0,255].
func Sharpen(b core.PixelBuffer) core.PixelBuffer {
	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()
	for row := range sharpenKernel {
		for col, v := range sharpenKernel[row] {
			kernel.SetFloatAt(row, col, v)
		}
	}

	return withMat(ToColor(b), func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.Filter2D(src, dst, -1, kernel, image.Pt(-1, -1), 0, gocv.BorderDefault)
	})
}

// Edges runs Canny (50/150) on the gray version of b and returns a binary map.
func Edges(b core.PixelBuffer) core.PixelBuffer {
	return withMat(ToGray(b), func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.Canny(src, dst, cannyLow, cannyHigh)
	})
}
