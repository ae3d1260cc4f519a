// Color space conversions and tone filters
package algorithms

import (
	"fmt"
	"image"
	"runtime"

	"gocv.io/x/gocv"

	"image-filter-studio/internal/core"
)

const (
	claheClipLimit = 4.0
	claheTileGrid  = 8
)

// sepiaMatrix rows produce output channels 0..2 from the stored channel triple.
var sepiaMatrix = [3][3]float64{
	{0.272, 0.534, 0.131},
	{0.349, 0.686, 0.168},
	{0.393, 0.769, 0.189},
}

// ToColor promotes a GRAY buffer to COLOR by replicating the sample. COLOR
// input is returned unchanged.
func ToColor(b core.PixelBuffer) core.PixelBuffer {
	if b.Mode() == core.Color {
		return b
	}
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.CvtColor(src, dst, gocv.ColorGrayToBGR)
	})
}

// ToGray converts COLOR to GRAY with standard luma weights. GRAY input is
// returned unchanged.
func ToGray(b core.PixelBuffer) core.PixelBuffer {
	if b.Mode() == core.Gray {
		return b
	}
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.CvtColor(src, dst, gocv.ColorBGRToGray)
	})
}

// Grayscale converts COLOR to GRAY, or equalizes the histogram of an image
// that is already GRAY.
func Grayscale(b core.PixelBuffer) core.PixelBuffer {
	if b.Mode() == core.Color {
		return ToGray(b)
	}
	return withMat(b, func(src gocv.Mat, dst *gocv.Mat) error {
		return gocv.EqualizeHist(src, dst)
	})
}

// Contrast applies CLAHE to the L channel in Lab space.
func Contrast(b core.PixelBuffer) core.PixelBuffer {
	return withMat(ToColor(b), func(src gocv.Mat, dst *gocv.Mat) error {
		lab := gocv.NewMat()
		defer lab.Close()
		if err := gocv.CvtColor(src, &lab, gocv.ColorBGRToLab); err != nil {
			return err
		}

		planes := gocv.Split(lab)
		defer closeAll(planes)

		clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileGrid, claheTileGrid))
		defer clahe.Close()

		equalized := gocv.NewMat()
		defer equalized.Close()
		if err := clahe.Apply(planes[0], &equalized); err != nil {
			return err
		}

		merged := gocv.NewMat()
		defer merged.Close()
		if err := gocv.Merge([]gocv.Mat{equalized, planes[1], planes[2]}, &merged); err != nil {
			return err
		}

		return gocv.CvtColor(merged, dst, gocv.ColorLabToBGR)
	})
}

// Sepia mixes channels through a fixed matrix in float64, caps at 255 and
// truncates toward zero.
func Sepia(b core.PixelBuffer) core.PixelBuffer {
	return ToColor(b).MapPixels(func(dst, src []uint8) {
		c0, c1, c2 := float64(src[0]), float64(src[1]), float64(src[2])
		for i, row := range sepiaMatrix {
			v := row[0]*c0 + row[1]*c1 + row[2]*c2
			if v > 255 {
				v = 255
			}
			dst[i] = uint8(v)
		}
	})
}

// Brightness shifts the HSV value channel by delta with saturation at 0 and 255.
func Brightness(b core.PixelBuffer, delta int) core.PixelBuffer {
	return withMat(ToColor(b), func(src gocv.Mat, dst *gocv.Mat) error {
		hsv := gocv.NewMat()
		defer hsv.Close()
		if err := gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV); err != nil {
			return err
		}

		planes := gocv.Split(hsv)
		defer closeAll(planes)

		values := planes[2].ToBytes()
		for i, v := range values {
			values[i] = shiftSaturating(v, delta)
		}

		shifted, err := gocv.NewMatFromBytes(planes[2].Rows(), planes[2].Cols(), gocv.MatTypeCV8UC1, values)
		if err != nil {
			return fmt.Errorf("rebuilding value channel: %w", err)
		}
		defer shifted.Close()

		merged := gocv.NewMat()
		defer merged.Close()
		err = gocv.Merge([]gocv.Mat{planes[0], planes[1], shifted}, &merged)
		runtime.KeepAlive(values)
		if err != nil {
			return err
		}

		return gocv.CvtColor(merged, dst, gocv.ColorHSVToBGR)
	})
}

// shiftSaturating adds delta to v, clamping to [0,255] instead of wrapping.
func shiftSaturating(v uint8, delta int) uint8 {
	switch {
	case delta > 0:
		if int(v) > 255-delta {
			return 255
		}
		return v + uint8(delta)
	case delta < 0:
		if int(v) < -delta {
			return 0
		}
		return v - uint8(-delta)
	default:
		return v
	}
}

func closeAll(mats []gocv.Mat) {
	for _, m := range mats {
		m.Close()
	}
}
