package app

import (
	"fmt"
	"io"

	"anlage-v/internal/config"
	"anlage-v/internal/controllers"
	"anlage-v/internal/form"
	"anlage-v/internal/logger"
	"anlage-v/internal/models"
	"anlage-v/internal/printing"
	"anlage-v/internal/shutdown"
	"anlage-v/internal/views"
	"anlage-v/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Anlage V"
	AppID      = "de.anlagev.viewer"
	AppVersion = "1.0.0"

	MaxWindowHeight = 900
	ScrollBarWidth  = 16
	ChromeHeight    = 90
)

// Application is the composition root. It owns every component; nothing is
// held in package state.
type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *config.Config
	logger     logger.Logger
	layout     *form.Layout
	form       *models.FormContainer
	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

// NewApplication creates the fyne application and wires all components.
func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	return newApplication(fyneApp, cfg, log)
}

func newApplication(fyneApp fyne.App, cfg *config.Config, log logger.Logger) (*Application, error) {
	layout, err := form.Load(cfg.LayoutFile)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	window := fyneApp.NewWindow(AppName)
	window.Resize(windowSize(layout))
	window.CenterOnScreen()
	window.SetMaster()

	pageOne, pageTwo := components.NewFormPages(layout)
	formContainer := models.NewFormContainer(pageOne, pageTwo)

	sequencer := printing.NewSequencer(formContainer, log)
	pdfOpts := printing.PDFOptions{PaperSize: cfg.PaperSize, DPI: cfg.DPI}
	newDriver := func(target io.WriteCloser) printing.Driver {
		return printing.NewPDFDriver(target, pdfOpts, log)
	}

	controller := controllers.NewMainController(formContainer, sequencer, newDriver, log, cfg.Copies)
	view := views.NewMainView(window, pageOne, pageTwo)
	controller.SetMainView(view)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		config:     cfg,
		logger:     log,
		layout:     layout,
		form:       formContainer,
		controller: controller,
		view:       view,
		shutdown:   shutdownMgr,
	}

	application.setupWindowEvents()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version": AppVersion,
		"layout":  layout.Name,
		"fields":  len(layout.Pages[0].Fields) + len(layout.Pages[1].Fields),
		"paper":   cfg.PaperSize,
		"dpi":     cfg.DPI,
	})

	return application, nil
}

// windowSize fits the page width and caps the height; the form scrolls.
func windowSize(l *form.Layout) fyne.Size {
	height := l.Height + ChromeHeight
	if height > MaxWindowHeight {
		height = MaxWindowHeight
	}
	return fyne.NewSize(l.Width+ScrollBarWidth, height)
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(a.requestClose)
}

// requestClose stops running print jobs, then closes the window.
func (a *Application) requestClose() {
	a.logger.Info("Application", "shutdown requested", nil)
	a.shutdown.Shutdown()
	a.view.Close()
}

// Run shows the window and blocks in the fyne event loop.
func (a *Application) Run() error {
	a.shutdown.Listen(func() {
		fyne.Do(func() {
			a.shutdown.Shutdown()
			a.fyneApp.Quit()
		})
	})

	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}

// Export prints every page to path without showing the window.
func (a *Application) Export(path string) error {
	defer a.shutdown.Shutdown()
	return a.controller.Export(path)
}

func (a *Application) Form() *models.FormContainer {
	return a.form
}

func (a *Application) View() *views.MainView {
	return a.view
}
