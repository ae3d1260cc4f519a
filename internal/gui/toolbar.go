// Toolbar with file actions and one button per filter
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"image-filter-studio/internal/editor"
)

const filterColumns = 5

type Toolbar struct {
	container *fyne.Container

	openBtn  *widget.Button
	saveBtn  *widget.Button
	resetBtn *widget.Button
	quitBtn  *widget.Button

	// Disabled until an image is loaded
	imageButtons []*widget.Button
}

func NewToolbar(actions []editor.Action, menu *MenuHandler, handle func(editor.Event)) *Toolbar {
	tb := &Toolbar{}

	tb.openBtn = widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), menu.OpenImage)
	tb.openBtn.Importance = widget.HighImportance
	tb.saveBtn = widget.NewButtonWithIcon("Save Image", theme.DocumentSaveIcon(), menu.SaveImage)
	tb.resetBtn = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), func() {
		handle(editor.Reset())
	})
	tb.quitBtn = widget.NewButtonWithIcon("Quit", theme.CancelIcon(), func() {
		handle(editor.Quit())
	})
	tb.imageButtons = append(tb.imageButtons, tb.saveBtn, tb.resetBtn)

	filterButtons := make([]fyne.CanvasObject, 0, len(actions))
	for _, action := range actions {
		ev := action.Event()
		btn := widget.NewButton(action.Label, func() {
			handle(ev)
		})
		tb.imageButtons = append(tb.imageButtons, btn)
		filterButtons = append(filterButtons, btn)
	}

	fileRow := container.NewHBox(tb.openBtn, tb.saveBtn, widget.NewSeparator(), tb.resetBtn, tb.quitBtn)
	tb.container = container.NewVBox(
		fileRow,
		widget.NewSeparator(),
		container.NewGridWithColumns(filterColumns, filterButtons...),
		widget.NewSeparator(),
	)
	return tb
}

func (tb *Toolbar) GetContainer() fyne.CanvasObject {
	return tb.container
}

// SetImageLoaded enables or disables every action that needs an image.
func (tb *Toolbar) SetImageLoaded(loaded bool) {
	for _, btn := range tb.imageButtons {
		if loaded {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}
