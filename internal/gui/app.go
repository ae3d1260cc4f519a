// Main application window wiring the editor to fyne widgets
package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-filter-studio/internal/config"
	"image-filter-studio/internal/core"
	"image-filter-studio/internal/editor"
	"image-filter-studio/internal/io"
)

// Application represents the main application window
type Application struct {
	app    fyne.App
	window fyne.Window
	logger logrus.FieldLogger
	cfg    config.Config

	// Core components
	session    *core.Session
	loader     *io.ImageLoader
	controller *editor.Controller

	// GUI components
	canvas      *ImageCanvas
	toolbar     *Toolbar
	infoPanel   *InfoPanel
	menuHandler *MenuHandler
	statusLabel *widget.Label
}

func NewApplication(app fyne.App, cfg config.Config, logger logrus.FieldLogger) *Application {
	window := app.NewWindow(cfg.Window.Title)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.refresh()

	return a
}

func (a *Application) initializeCore() {
	a.session = core.NewSession()
	a.loader = io.NewImageLoader(a.logger)
	a.controller = editor.NewController(a.session, a.loader, a.logger)
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas(a.cfg.Preview.MaxEdge)
	a.infoPanel = NewInfoPanel(a.controller.Evaluator())
	a.menuHandler = NewMenuHandler(a.window, a.loader, a.handle)
	a.toolbar = NewToolbar(editor.DefaultActions(a.cfg.Filters), a.menuHandler, a.handle)
	a.statusLabel = widget.NewLabel("Load an image to begin")
}

func (a *Application) setupLayout() {
	center := container.NewBorder(
		nil,
		a.statusLabel,
		nil,
		container.NewVScroll(a.infoPanel.GetContainer()),
		container.NewPadded(a.canvas.GetContainer()),
	)

	content := container.NewBorder(
		a.toolbar.GetContainer(),
		nil,
		nil,
		nil,
		center,
	)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(content)
}

// handle dispatches one event and brings the window up to date.
func (a *Application) handle(ev editor.Event) {
	outcome, err := a.controller.Dispatch(ev)
	if err != nil {
		if errors.Is(err, core.ErrInvalidState) {
			a.updateStatusMessage("No image loaded")
			return
		}
		a.showError(err)
		return
	}

	if outcome.Quit {
		a.app.Quit()
		return
	}
	if outcome.Refresh {
		a.refresh()
	}
	if outcome.Message != "" {
		a.updateStatusMessage(outcome.Message)
	}
}

func (a *Application) refresh() {
	snap := a.controller.Snapshot()
	a.canvas.Update(snap, a.cfg.Preview.MaxEdge)
	a.infoPanel.Update(snap)

	hasImage := snap.State != core.StateEmpty
	a.toolbar.SetImageLoaded(hasImage)
	a.menuHandler.SetImageLoaded(hasImage)
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.handle(editor.Quit())
	})

	a.window.ShowAndRun()
}

func (a *Application) showError(err error) {
	a.logger.WithError(err).Error("GUI: Action failed")
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}
