package models

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
)

// PageIndex identifies one of the two pages of the form.
type PageIndex int

const (
	PageOne PageIndex = iota
	PageTwo
)

var ErrInvalidPage = errors.New("invalid page index")

func (p PageIndex) Valid() bool {
	return p == PageOne || p == PageTwo
}

func (p PageIndex) Other() PageIndex {
	if p == PageOne {
		return PageTwo
	}
	return PageOne
}

// String returns the 1-based label used in the UI.
func (p PageIndex) String() string {
	return fmt.Sprintf("%d", int(p)+1)
}

// Page is a displayable form page. Show, Hide and Visible come from
// fyne.CanvasObject; Snapshot builds an independent, visible copy for
// rendering off screen.
type Page interface {
	fyne.CanvasObject
	Snapshot() fyne.CanvasObject
}

// FormContainer owns the two pages and decides which one is on screen.
// Exactly one page is visible at any time and shown always names it.
//
// It is not synchronised; all calls come from the UI goroutine.
type FormContainer struct {
	pages     [2]Page
	shown     PageIndex
	onChanged func(PageIndex)
}

// NewFormContainer starts with PageOne visible and PageTwo hidden.
func NewFormContainer(one, two Page) *FormContainer {
	fc := &FormContainer{pages: [2]Page{one, two}, shown: PageOne}
	one.Show()
	two.Hide()
	return fc
}

// SetOnChanged registers a callback fired after the shown page changes.
func (fc *FormContainer) SetOnChanged(fn func(PageIndex)) {
	fc.onChanged = fn
}

// Toggle hides the shown page and reveals the other one.
func (fc *FormContainer) Toggle() {
	fc.switchTo(fc.shown.Other())
}

// GetPage returns page idx and, if it is not the shown page, makes it the
// shown page first. Fetching page B while A is displayed hides A.
// Use Snapshot when only a renderable copy is needed.
func (fc *FormContainer) GetPage(idx PageIndex) (Page, error) {
	if !idx.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, idx)
	}
	if idx != fc.shown {
		fc.switchTo(idx)
	}
	return fc.pages[idx], nil
}

// Show makes page idx the visible page. It is a no-op when idx is already shown.
func (fc *FormContainer) Show(idx PageIndex) error {
	if !idx.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPage, idx)
	}
	if idx != fc.shown {
		fc.switchTo(idx)
	}
	return nil
}

// Snapshot returns a renderable copy of page idx without touching visibility.
func (fc *FormContainer) Snapshot(idx PageIndex) (fyne.CanvasObject, error) {
	if !idx.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, idx)
	}
	return fc.pages[idx].Snapshot(), nil
}

func (fc *FormContainer) Current() PageIndex {
	return fc.shown
}

// Visible reports the visibility flag of page idx.
func (fc *FormContainer) Visible(idx PageIndex) bool {
	if !idx.Valid() {
		return false
	}
	return fc.pages[idx].Visible()
}

func (fc *FormContainer) switchTo(idx PageIndex) {
	fc.pages[fc.shown].Hide()
	fc.pages[idx].Show()
	fc.shown = idx

	if fc.onChanged != nil {
		fc.onChanged(idx)
	}
}
