package core

import (
	"fmt"
	"runtime"

	"gocv.io/x/gocv"
)

// ToMat copies the buffer into a new OpenCV Mat. The caller owns the Mat and
// must Close it.
func (b PixelBuffer) ToMat() gocv.Mat {
	if b.IsEmpty() {
		return gocv.NewMat()
	}

	matType := gocv.MatTypeCV8UC1
	if b.mode == Color {
		matType = gocv.MatTypeCV8UC3
	}

	// The Mat header borrows data, so clone before the slice can be collected.
	data := b.Samples()
	view, err := gocv.NewMatFromBytes(b.height, b.width, matType, data)
	if err != nil {
		panic(fmt.Sprintf("core: wrapping %s as Mat: %v", b, err))
	}
	defer view.Close()

	mat := view.Clone()
	runtime.KeepAlive(data)
	return mat
}

// FromMat copies an 8-bit 1, 3 or 4 channel Mat into a buffer. Four channel
// input is treated as BGRA and its alpha is dropped.
func FromMat(mat gocv.Mat) (PixelBuffer, error) {
	if mat.Empty() {
		return PixelBuffer{}, fmt.Errorf("%w: empty Mat", ErrInvalidBuffer)
	}

	var mode ChannelMode
	switch mat.Type() {
	case gocv.MatTypeCV8UC1:
		mode = Gray
	case gocv.MatTypeCV8UC3:
		mode = Color
	case gocv.MatTypeCV8UC4:
		bgr := gocv.NewMat()
		defer bgr.Close()
		if err := gocv.CvtColor(mat, &bgr, gocv.ColorBGRAToBGR); err != nil {
			return PixelBuffer{}, fmt.Errorf("%w: dropping alpha: %w", ErrInvalidBuffer, err)
		}
		return FromMat(bgr)
	default:
		return PixelBuffer{}, fmt.Errorf("%w: unsupported Mat type %v (%d channels)",
			ErrInvalidBuffer, mat.Type(), mat.Channels())
	}

	if err := validateShape(mat.Cols(), mat.Rows(), mode); err != nil {
		return PixelBuffer{}, err
	}

	data := mat.ToBytes()
	if len(data) != mat.Cols()*mat.Rows()*mode.Channels() {
		return PixelBuffer{}, fmt.Errorf("%w: Mat holds %d bytes for %dx%d %s",
			ErrInvalidBuffer, len(data), mat.Cols(), mat.Rows(), mode)
	}
	return wrap(mat.Cols(), mat.Rows(), mode, data), nil
}

// MustFromMat is FromMat for Mats produced by OpenCV from a valid buffer,
// where a shape mismatch means a broken invariant rather than bad input.
func MustFromMat(mat gocv.Mat) PixelBuffer {
	b, err := FromMat(mat)
	if err != nil {
		panic(fmt.Sprintf("core: %v", err))
	}
	return b
}
