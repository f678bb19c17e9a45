package views

import (
	"fmt"

	"anlage-v/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// MainView is the form window: toolbar, both pages stacked, status bar.
type MainView struct {
	// UI Components
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	statusBar     *components.StatusBar
	pages         [2]*components.FormPage

	// Event handlers - connected to controller
	printHandler    func()
	printAllHandler func()
	pageHandler     func()
}

// NewMainView lays out the window around the two pages. Page visibility is
// owned by the form container, not by the view.
func NewMainView(window fyne.Window, one, two *components.FormPage) *MainView {
	view := &MainView{
		window: window,
		pages:  [2]*components.FormPage{one, two},
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	formArea := container.NewScroll(container.NewStack(
		mv.pages[0].Container,
		mv.pages[1].Container,
	))

	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),   // top
		mv.statusBar.GetContainer(), // bottom
		nil,                         // left
		nil,                         // right
		formArea,                    // center
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects internal component events
func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetPrintHandler(func() {
		if mv.printHandler != nil {
			mv.printHandler()
		}
	})

	mv.toolbar.SetPrintAllHandler(func() {
		if mv.printAllHandler != nil {
			mv.printAllHandler()
		}
	})

	mv.toolbar.SetPageHandler(func() {
		if mv.pageHandler != nil {
			mv.pageHandler()
		}
	})
}

// Event handler setters - called by controller

func (mv *MainView) SetPrintHandler(handler func()) {
	mv.printHandler = handler
}

func (mv *MainView) SetPrintAllHandler(handler func()) {
	mv.printAllHandler = handler
}

func (mv *MainView) SetPageHandler(handler func()) {
	mv.pageHandler = handler
}

// UI update methods - called by controller

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// UpdatePage shows the on-screen page in the status bar; idx is 0-based.
func (mv *MainView) UpdatePage(idx int) {
	if idx < 0 || idx >= len(mv.pages) {
		return
	}
	mv.statusBar.SetPage(idx+1, len(mv.pages), mv.pages[idx].Title())
}

// SetPrinting locks the print buttons while a job is running
func (mv *MainView) SetPrinting(active bool) {
	mv.toolbar.SetPrinting(active)
}

// ShowError displays an error dialog, prefixing the message with title.
func (mv *MainView) ShowError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
}

// ShowPrintDialog asks for the PDF file a job prints into. A cancelled
// dialog reports a nil writer.
func (mv *MainView) ShowPrintDialog(defaultName string, callback func(fyne.URIWriteCloser, error)) {
	d := dialog.NewFileSave(callback, mv.window)
	d.SetFileName(defaultName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}

// Show displays the main window
func (mv *MainView) Show() {
	mv.window.Show()
}

// Close closes the main window
func (mv *MainView) Close() {
	mv.window.Close()
}

func (mv *MainView) GetStatusBar() *components.StatusBar {
	return mv.statusBar
}
