// Side-by-side original and current previews
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-filter-studio/internal/editor"
	"image-filter-studio/internal/preview"
)

// ImageCanvas shows the original next to the working image
type ImageCanvas struct {
	split         *container.Split
	originalImage *canvas.Image
	currentImage  *canvas.Image
}

// NewImageCanvas sizes both previews for thumbnails of at most maxEdge.
func NewImageCanvas(maxEdge int) *ImageCanvas {
	ic := &ImageCanvas{
		originalImage: newPreviewImage(maxEdge),
		currentImage:  newPreviewImage(maxEdge),
	}

	ic.split = container.NewHSplit(
		widget.NewCard("Original Image", "", ic.originalImage),
		widget.NewCard("Modified Image", "", ic.currentImage),
	)
	ic.split.SetOffset(0.5)
	return ic
}

func newPreviewImage(maxEdge int) *canvas.Image {
	img := canvas.NewImageFromImage(placeholder())
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	edge := float32(maxEdge) / 2
	img.SetMinSize(fyne.NewSize(edge, edge))
	return img
}

func placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 240, 240, 240, 255
	}
	return img
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.split
}

// Update renders thumbnails of the snapshot buffers.
func (ic *ImageCanvas) Update(snap editor.Snapshot, maxEdge int) {
	if snap.Original.IsEmpty() {
		ic.setImage(ic.originalImage, placeholder())
		ic.setImage(ic.currentImage, placeholder())
		return
	}

	ic.setImage(ic.originalImage, preview.Thumbnail(snap.Original, maxEdge))
	ic.setImage(ic.currentImage, preview.Thumbnail(snap.Current, maxEdge))
}

func (ic *ImageCanvas) setImage(target *canvas.Image, img image.Image) {
	target.Image = img
	target.Refresh()
}
