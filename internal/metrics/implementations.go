// Concrete implementations of quality metrics
package metrics

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"image-filter-studio/internal/algorithms"
	"image-filter-studio/internal/core"
)

// grayPair reduces both buffers to GRAY after checking they share a size.
func grayPair(original, processed core.PixelBuffer) (core.PixelBuffer, core.PixelBuffer, error) {
	if original.IsEmpty() || processed.IsEmpty() {
		return core.PixelBuffer{}, core.PixelBuffer{}, fmt.Errorf("empty images")
	}
	if original.Width() != processed.Width() || original.Height() != processed.Height() {
		return core.PixelBuffer{}, core.PixelBuffer{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			original.Width(), original.Height(), processed.Width(), processed.Height())
	}
	return algorithms.ToGray(original), algorithms.ToGray(processed), nil
}

func meanSquaredError(a, b core.PixelBuffer) float64 {
	sa, sb := a.Samples(), b.Samples()
	sum := 0.0
	for i := range sa {
		diff := float64(sa[i]) - float64(sb[i])
		sum += diff * diff
	}
	return sum / float64(len(sa))
}

// MSE implements Mean Squared Error on luma
type MSE struct{}

func NewMSE() *MSE { return &MSE{} }

func (m *MSE) Calculate(original, processed core.PixelBuffer) (float64, error) {
	g1, g2, err := grayPair(original, processed)
	if err != nil {
		return 0, err
	}
	return meanSquaredError(g1, g2), nil
}

func (m *MSE) GetName() string              { return "MSE" }
func (m *MSE) GetDescription() string       { return "Mean Squared Error" }
func (m *MSE) GetRange() (float64, float64) { return 0, 65025 }
func (m *MSE) IsHigherBetter() bool         { return false }

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

func NewPSNR() *PSNR { return &PSNR{} }

func (p *PSNR) Calculate(original, processed core.PixelBuffer) (float64, error) {
	g1, g2, err := grayPair(original, processed)
	if err != nil {
		return 0, err
	}

	mse := meanSquaredError(g1, g2)
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}
	return 20 * math.Log10(255.0/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string              { return "PSNR" }
func (p *PSNR) GetDescription() string       { return "Peak Signal-to-Noise Ratio" }
func (p *PSNR) GetRange() (float64, float64) { return 0, 60 }
func (p *PSNR) IsHigherBetter() bool         { return true }

// SSIM implements Structural Similarity Index metric
type SSIM struct{}

func NewSSIM() *SSIM { return &SSIM{} }

func (s *SSIM) Calculate(original, processed core.PixelBuffer) (float64, error) {
	g1, g2, err := grayPair(original, processed)
	if err != nil {
		return 0, err
	}
	if g1.Equal(g2) {
		return 1, nil
	}

	m1 := g1.ToMat()
	defer m1.Close()
	m2 := g2.ToMat()
	defer m2.Close()

	return s.calculateSSIM(m1, m2), nil
}

func (s *SSIM) calculateSSIM(img1, img2 gocv.Mat) float64 {
	const (
		C1 = 6.5025  // (0.01 * 255)^2
		C2 = 58.5225 // (0.03 * 255)^2
	)
	window := image.Pt(11, 11)

	f1 := gocv.NewMat()
	defer f1.Close()
	img1.ConvertTo(&f1, gocv.MatTypeCV32F)

	f2 := gocv.NewMat()
	defer f2.Close()
	img2.ConvertTo(&f2, gocv.MatTypeCV32F)

	blur := func(src gocv.Mat) gocv.Mat {
		dst := gocv.NewMat()
		gocv.GaussianBlur(src, &dst, window, 1.5, 1.5, gocv.BorderDefault)
		return dst
	}
	product := func(a, b gocv.Mat) gocv.Mat {
		dst := gocv.NewMat()
		gocv.Multiply(a, b, &dst)
		return dst
	}

	mu1 := blur(f1)
	defer mu1.Close()
	mu2 := blur(f2)
	defer mu2.Close()

	mu1Sq := product(mu1, mu1)
	defer mu1Sq.Close()
	mu2Sq := product(mu2, mu2)
	defer mu2Sq.Close()
	mu1Mu2 := product(mu1, mu2)
	defer mu1Mu2.Close()

	f1Sq := product(f1, f1)
	defer f1Sq.Close()
	f2Sq := product(f2, f2)
	defer f2Sq.Close()
	f1f2 := product(f1, f2)
	defer f1f2.Close()

	sigma1Sq := blur(f1Sq)
	defer sigma1Sq.Close()
	gocv.Subtract(sigma1Sq, mu1Sq, &sigma1Sq)

	sigma2Sq := blur(f2Sq)
	defer sigma2Sq.Close()
	gocv.Subtract(sigma2Sq, mu2Sq, &sigma2Sq)

	sigma12 := blur(f1f2)
	defer sigma12.Close()
	gocv.Subtract(sigma12, mu1Mu2, &sigma12)

	// (2*mu1*mu2 + C1) * (2*sigma12 + C2)
	numerator1 := mu1Mu2.Clone()
	defer numerator1.Close()
	numerator1.MultiplyFloat(2)
	numerator1.AddFloat(C1)

	numerator2 := sigma12.Clone()
	defer numerator2.Close()
	numerator2.MultiplyFloat(2)
	numerator2.AddFloat(C2)

	numerator := product(numerator1, numerator2)
	defer numerator.Close()

	// (mu1^2 + mu2^2 + C1) * (sigma1^2 + sigma2^2 + C2)
	denominator1 := gocv.NewMat()
	defer denominator1.Close()
	gocv.Add(mu1Sq, mu2Sq, &denominator1)
	denominator1.AddFloat(C1)

	denominator2 := gocv.NewMat()
	defer denominator2.Close()
	gocv.Add(sigma1Sq, sigma2Sq, &denominator2)
	denominator2.AddFloat(C2)

	denominator := product(denominator1, denominator2)
	defer denominator.Close()

	ssimMap := gocv.NewMat()
	defer ssimMap.Close()
	gocv.Divide(numerator, denominator, &ssimMap)

	return ssimMap.Mean().Val1
}

func (s *SSIM) GetName() string              { return "SSIM" }
func (s *SSIM) GetDescription() string       { return "Structural Similarity Index" }
func (s *SSIM) GetRange() (float64, float64) { return 0, 1 }
func (s *SSIM) IsHigherBetter() bool         { return true }

// MeanShift reports the change in average luma. It works across sizes.
type MeanShift struct{}

func NewMeanShift() *MeanShift { return &MeanShift{} }

func (m *MeanShift) Calculate(original, processed core.PixelBuffer) (float64, error) {
	if original.IsEmpty() || processed.IsEmpty() {
		return 0, fmt.Errorf("empty images")
	}
	return meanLuma(processed) - meanLuma(original), nil
}

func meanLuma(b core.PixelBuffer) float64 {
	samples := algorithms.ToGray(b).Samples()
	sum := 0.0
	for _, v := range samples {
		sum += float64(v)
	}
	return sum / float64(len(samples))
}

func (m *MeanShift) GetName() string              { return "Mean Shift" }
func (m *MeanShift) GetDescription() string       { return "Change in average brightness" }
func (m *MeanShift) GetRange() (float64, float64) { return -255, 255 }
func (m *MeanShift) IsHigherBetter() bool         { return false }
