// Package printing walks print jobs over a page driver.
package printing

import (
	"errors"

	"fyne.io/fyne/v2"
)

var (
	// ErrJobStart covers every reason a job could not begin: no printer,
	// a cancelled print dialog, bad job parameters.
	ErrJobStart = errors.New("print job could not be started")
	// ErrJobAborted wraps driver failures after the job started.
	ErrJobAborted = errors.New("print job aborted")

	ErrNoTarget      = errors.New("no print target selected")
	ErrInvalidCopies = errors.New("copies must be at least 1")
	ErrNotStarted    = errors.New("print job not started")
	ErrPageOpen      = errors.New("page already open")
	ErrNoPage        = errors.New("no page open")
	ErrReleased      = errors.New("driver released")
)

// Driver paginates rendered widgets onto an output device.
//
// Calls follow StartJob, then (StartPage, PrintableArea, SetOrigin,
// RenderWidget, EndPage) per page, then EndJob. Release frees the device and
// must be called exactly once whatever happened before.
type Driver interface {
	StartJob(copies int) error
	StartPage() error
	PrintableArea() (width, height float32)
	SetOrigin(x, y float32)
	RenderWidget(obj fyne.CanvasObject, x, y float32) error
	EndPage() error
	EndJob() error
	Release()
}
