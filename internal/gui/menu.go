// Menu handler and file dialogs
package gui

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"image-filter-studio/internal/algorithms"
	"image-filter-studio/internal/editor"
	"image-filter-studio/internal/io"
)

// MenuHandler owns the main menu and the open/save dialogs
type MenuHandler struct {
	window fyne.Window
	loader *io.ImageLoader
	handle func(editor.Event)

	saveItem  *fyne.MenuItem
	resetItem *fyne.MenuItem
	mainMenu  *fyne.MainMenu
}

func NewMenuHandler(window fyne.Window, loader *io.ImageLoader, handle func(editor.Event)) *MenuHandler {
	return &MenuHandler{
		window: window,
		loader: loader,
		handle: handle,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	if mh.mainMenu != nil {
		return mh.mainMenu
	}

	mh.saveItem = fyne.NewMenuItem("Save Image...", mh.SaveImage)
	mh.resetItem = fyne.NewMenuItem("Reset to Original", func() {
		mh.handle(editor.Reset())
	})

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.OpenImage),
		mh.saveItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.handle(editor.Quit())
		}),
	)
	editMenu := fyne.NewMenu("Edit", mh.resetItem)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Filter Reference", mh.showFilterReference),
		fyne.NewMenuItem("About", mh.showAbout),
	)

	mh.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
	return mh.mainMenu
}

// SetImageLoaded toggles the menu entries that need an image.
func (mh *MenuHandler) SetImageLoaded(loaded bool) {
	if mh.mainMenu == nil {
		return
	}
	mh.saveItem.Disabled = !loaded
	mh.resetItem.Disabled = !loaded
	mh.mainMenu.Refresh()
}

func (mh *MenuHandler) OpenImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mh.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mh.handle(editor.Load(path))
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.loader.SupportedFormats()))
	fileDialog.Show()
}

func (mh *MenuHandler) SaveImage() {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mh.window)
			return
		}
		if writer == nil {
			return
		}
		// The dialog has already created the file, so encode straight into it.
		mh.handle(editor.SaveTo(writer.URI().Path(), writer))
		if err := writer.Close(); err != nil {
			dialog.ShowError(err, mh.window)
		}
	}, mh.window)

	fileDialog.SetFileName("filtered_image.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.loader.SaveFormats()))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Image Filter Studio"),
		widget.NewSeparator(),
		widget.NewLabel("Load an image, apply filters one at a time,"),
		widget.NewLabel("compare with the original and save the result."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 240))
	aboutDialog.Show()
}

func (mh *MenuHandler) showFilterReference() {
	text := widget.NewLabel(filterReference())
	text.TextStyle = fyne.TextStyle{Monospace: true}

	refDialog := dialog.NewCustom("Filter Reference", "Close", container.NewVScroll(text), mh.window)
	refDialog.Resize(fyne.NewSize(640, 480))
	refDialog.Show()
}

// filterReference lists every registered filter by category, with the
// accepted range of each parameter.
func filterReference() string {
	groups := algorithms.ByCategory()
	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	for _, category := range categories {
		fmt.Fprintf(&sb, "%s\n", category)
		for _, name := range groups[category] {
			algorithm, _ := algorithms.Get(name)
			fmt.Fprintf(&sb, "  %s: %s\n", algorithm.GetName(), algorithm.GetDescription())
			for _, p := range algorithm.GetParameterInfo() {
				fmt.Fprintf(&sb, "    %s (%s, %s, default %g): %s\n",
					p.Name, p.Type, p.Range(), p.Default, p.Description)
			}
		}
	}
	return sb.String()
}
