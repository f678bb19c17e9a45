package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the print and page buttons
type Toolbar struct {
	container      *fyne.Container
	printButton    *widget.Button
	printAllButton *widget.Button
	pageButton     *widget.Button

	// Event handlers
	printHandler    func()
	printAllHandler func()
	pageHandler     func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

// createComponents initializes all toolbar components
func (t *Toolbar) createComponents() {
	t.printButton = widget.NewButtonWithIcon("Print", theme.DocumentPrintIcon(), nil)
	t.printButton.Importance = widget.HighImportance

	t.printAllButton = widget.NewButtonWithIcon("Print all", theme.DocumentPrintIcon(), nil)

	t.pageButton = widget.NewButtonWithIcon("Page", theme.NavigateNextIcon(), nil)
}

// buildLayout constructs the toolbar layout
func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.printButton,
		t.printAllButton,
		widget.NewSeparator(),
		t.pageButton,
	)
}

// setupEventHandlers connects button events
func (t *Toolbar) setupEventHandlers() {
	t.printButton.OnTapped = func() {
		if t.printHandler != nil {
			t.printHandler()
		}
	}

	t.printAllButton.OnTapped = func() {
		if t.printAllHandler != nil {
			t.printAllHandler()
		}
	}

	t.pageButton.OnTapped = func() {
		if t.pageHandler != nil {
			t.pageHandler()
		}
	}
}

func (t *Toolbar) SetPrintHandler(handler func()) {
	t.printHandler = handler
}

func (t *Toolbar) SetPrintAllHandler(handler func()) {
	t.printAllHandler = handler
}

func (t *Toolbar) SetPageHandler(handler func()) {
	t.pageHandler = handler
}

// SetPrinting disables the print buttons while a job runs
func (t *Toolbar) SetPrinting(active bool) {
	if active {
		t.printButton.Disable()
		t.printAllButton.Disable()
	} else {
		t.printButton.Enable()
		t.printAllButton.Enable()
	}
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
