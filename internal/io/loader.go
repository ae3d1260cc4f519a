// Image decoding and encoding at the file boundary
package io

import (
	"errors"
	"fmt"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-filter-studio/internal/core"
)

var (
	ErrDecode = errors.New("decode failed")
	ErrEncode = errors.New("encode failed")
)

var (
	loadFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}
	saveFormats = []string{".png", ".tiff", ".tif", ".bmp"}
)

const defaultSaveFormat = ".png"

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// Decode reads path into a buffer. Single channel sources stay GRAY, everything
// else becomes BGR COLOR.
func (il *ImageLoader) Decode(path string) (core.PixelBuffer, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !isSupported(path, loadFormats) {
		return core.PixelBuffer{}, fmt.Errorf("%w: unsupported image format: %s", ErrDecode, path)
	}

	if _, err := os.Stat(path); err != nil {
		return core.PixelBuffer{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	mat := gocv.IMRead(path, gocv.IMReadAnyColor)
	defer mat.Close()
	if mat.Empty() {
		return core.PixelBuffer{}, fmt.Errorf("%w: failed to load image: %s", ErrDecode, path)
	}

	buf, err := core.FromMat(mat)
	if err != nil {
		return core.PixelBuffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width(),
		"height":   buf.Height(),
		"mode":     buf.Mode().String(),
	}).Info("Image loaded successfully")

	return buf, nil
}

// Encode writes b to path in a lossless format chosen by the extension. The
// image is encoded in memory first, so a rejected save never touches path.
func (il *ImageLoader) Encode(b core.PixelBuffer, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if info, err := os.Stat(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrEncode, filepath.Dir(path))
	}

	data, err := il.EncodeBytes(b, filepath.Ext(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	il.logSaved(b, path, filepath.Ext(path))
	return nil
}

// EncodeTo writes b to w in the format named by name's extension. Writers
// handed out by file dialogs have already created the file, so an unsupported
// extension falls back to PNG instead of leaving it empty. It returns the
// extension actually used.
func (il *ImageLoader) EncodeTo(b core.PixelBuffer, name string, w goio.Writer) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !isSupported(name, saveFormats) {
		il.logger.WithFields(logrus.Fields{
			"filepath":  name,
			"extension": ext,
		}).Warn("Unsupported save format, writing PNG instead")
		ext = defaultSaveFormat
	}

	data, err := il.EncodeBytes(b, ext)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrEncode, name, err)
	}

	il.logSaved(b, name, ext)
	return ext, nil
}

// EncodeBytes encodes b as ext, which must be one of SaveFormats.
func (il *ImageLoader) EncodeBytes(b core.PixelBuffer, ext string) ([]byte, error) {
	if b.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot save empty image", ErrEncode)
	}

	ext = strings.ToLower(ext)
	if !isSupported(ext, saveFormats) {
		return nil, fmt.Errorf("%w: unsupported or lossy format: %q (use %s)",
			ErrEncode, ext, strings.Join(saveFormats, ", "))
	}

	mat := b.ToMat()
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.FileExt(ext), mat)
	if buf != nil {
		defer buf.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncode, ext, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: encoder produced no data for %s", ErrEncode, ext)
	}

	// GetBytes aliases native memory released by Close.
	return append([]byte(nil), buf.GetBytes()...), nil
}

func (il *ImageLoader) logSaved(b core.PixelBuffer, target, ext string) {
	il.logger.WithFields(logrus.Fields{
		"filepath": target,
		"format":   ext,
		"width":    b.Width(),
		"height":   b.Height(),
		"mode":     b.Mode().String(),
	}).Info("Image saved successfully")
}

// SupportedFormats lists the extensions Decode accepts.
func (il *ImageLoader) SupportedFormats() []string {
	return append([]string(nil), loadFormats...)
}

// SaveFormats lists the extensions Encode accepts.
func (il *ImageLoader) SaveFormats() []string {
	return append([]string(nil), saveFormats...)
}

func isSupported(path string, formats []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range formats {
		if ext == format {
			return true
		}
	}
	return false
}
