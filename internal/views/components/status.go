package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the shown page and the last action
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	pageInfo    *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.pageInfo = widget.NewLabel("Page 1 / 2")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.pageInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetPage shows which page is on screen; page is 1-based.
func (sb *StatusBar) SetPage(page, total int, title string) {
	info := fmt.Sprintf("Page %d / %d", page, total)
	if title != "" {
		info += " - " + title
	}
	sb.pageInfo.SetText(info)
}

func (sb *StatusBar) GetPageInfo() string {
	return sb.pageInfo.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
