package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"anlage-v/internal/logger"
	"anlage-v/internal/models"
	"anlage-v/internal/printing"

	"fyne.io/fyne/v2"
)

const defaultPrintName = "anlage-v.pdf"

// View is the part of the main view the controller drives.
type View interface {
	SetPrintHandler(handler func())
	SetPrintAllHandler(handler func())
	SetPageHandler(handler func())
	UpdateStatus(status string)
	UpdatePage(idx int)
	SetPrinting(active bool)
	ShowError(title string, err error)
	ShowPrintDialog(defaultName string, callback func(fyne.URIWriteCloser, error))
}

// DriverFactory opens a print driver on target. A nil target means the
// print dialog was cancelled.
type DriverFactory func(target io.WriteCloser) printing.Driver

// EventHandler reacts to controller events.
type EventHandler func(data interface{}) error

// MainController wires user actions to the form container and the print
// sequencer. All methods run on the UI goroutine.
type MainController struct {
	form      *models.FormContainer
	sequencer *printing.Sequencer
	newDriver DriverFactory
	logger    logger.Logger
	copies    int

	// Views
	mainView View

	// State management
	printing bool
	ctx      context.Context
	cancel   context.CancelFunc

	// Event handlers
	eventHandlers map[string][]EventHandler
}

// NewMainController creates a new main controller
func NewMainController(
	form *models.FormContainer,
	sequencer *printing.Sequencer,
	newDriver DriverFactory,
	log logger.Logger,
	copies int,
) *MainController {
	ctx, cancel := context.WithCancel(context.Background())

	controller := &MainController{
		form:          form,
		sequencer:     sequencer,
		newDriver:     newDriver,
		logger:        log,
		copies:        copies,
		ctx:           ctx,
		cancel:        cancel,
		eventHandlers: make(map[string][]EventHandler),
	}

	controller.initializeEventHandlers()
	return controller
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	view.UpdatePage(int(mc.form.Current()))
}

// TogglePage flips the on-screen page.
func (mc *MainController) TogglePage() {
	mc.form.Toggle()
}

// ShowPage switches to page idx on explicit user request.
func (mc *MainController) ShowPage(idx models.PageIndex) error {
	return mc.form.Show(idx)
}

// PrintCurrentPage asks for a target and prints the page on screen.
func (mc *MainController) PrintCurrentPage() {
	mc.requestPrint(printing.SinglePage(mc.form.Current(), mc.copies))
}

// PrintAllPages asks for a target and prints both pages.
func (mc *MainController) PrintAllPages() {
	mc.requestPrint(printing.AllPages(mc.copies))
}

func (mc *MainController) requestPrint(job printing.Job) {
	if mc.printing || mc.mainView == nil {
		return
	}

	mc.printing = true
	mc.mainView.SetPrinting(true)

	mc.mainView.ShowPrintDialog(defaultPrintName, func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mc.finishPrint()
			mc.handleError("Print dialog failed", err)
			return
		}

		var target io.WriteCloser
		if writer != nil {
			target = writer
		}

		err = mc.Print(target, job)
		mc.finishPrint()
		mc.reportPrint(job, err)
	})
}

func (mc *MainController) finishPrint() {
	mc.printing = false
	if mc.mainView != nil {
		mc.mainView.SetPrinting(false)
	}
}

// Print runs job into target. The driver is released, and target closed,
// before Print returns.
func (mc *MainController) Print(target io.WriteCloser, job printing.Job) error {
	drv := mc.newDriver(target)
	err := mc.sequencer.Print(mc.ctx, drv, job)

	if err != nil {
		mc.emitEvent("print_failed", err)
		return err
	}

	mc.emitEvent("print_completed", job)
	return nil
}

// Export prints all pages into a new PDF file at path.
func (mc *MainController) Export(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", printing.ErrJobStart, err)
	}

	if err := mc.Print(file, printing.AllPages(mc.copies)); err != nil {
		_ = os.Remove(path)
		return err
	}

	mc.logger.Info("MainController", "form exported", map[string]interface{}{"path": path})
	return nil
}

func (mc *MainController) reportPrint(job printing.Job, err error) {
	if mc.mainView == nil {
		return
	}

	switch {
	case err == nil:
		mc.mainView.UpdateStatus(fmt.Sprintf("Printed %d page(s)", len(job.Pages)*job.Copies))
	case errors.Is(err, printing.ErrNoTarget):
		mc.mainView.UpdateStatus("Print cancelled")
	case errors.Is(err, printing.ErrJobStart):
		mc.mainView.UpdateStatus("Print failed")
		mc.handleError("Print could not start", err)
	default:
		mc.mainView.UpdateStatus("Print aborted")
		mc.handleError("Print aborted", err)
	}
}

// Event system methods

// initializeEventHandlers sets up default event handlers
func (mc *MainController) initializeEventHandlers() {
	mc.addEventListener("page_changed", mc.onPageChanged)
	mc.addEventListener("print_completed", mc.onPrintCompleted)
	mc.addEventListener("print_failed", mc.onPrintFailed)

	mc.form.SetOnChanged(func(idx models.PageIndex) {
		mc.emitEvent("page_changed", idx)
	})
}

// setupViewEventHandlers connects view events to controller methods
func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetPrintHandler(mc.PrintCurrentPage)
	mc.mainView.SetPrintAllHandler(mc.PrintAllPages)
	mc.mainView.SetPageHandler(mc.TogglePage)
}

// AddEventListener adds an event handler for a specific event type
func (mc *MainController) AddEventListener(eventType string, handler EventHandler) {
	mc.addEventListener(eventType, handler)
}

func (mc *MainController) addEventListener(eventType string, handler EventHandler) {
	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

// emitEvent runs all handlers for eventType in registration order
func (mc *MainController) emitEvent(eventType string, data interface{}) {
	for _, handler := range mc.eventHandlers[eventType] {
		if err := handler(data); err != nil {
			mc.logger.Error("MainController", "event handler failed", err, map[string]interface{}{"event": eventType})
		}
	}
}

// Event handlers

func (mc *MainController) onPageChanged(data interface{}) error {
	idx, ok := data.(models.PageIndex)
	if !ok {
		return fmt.Errorf("invalid data type for page_changed event")
	}

	if mc.mainView != nil {
		mc.mainView.UpdatePage(int(idx))
	}
	mc.logger.Debug("MainController", "page shown", map[string]interface{}{"page": idx.String()})
	return nil
}

func (mc *MainController) onPrintCompleted(data interface{}) error {
	job, ok := data.(printing.Job)
	if !ok {
		return fmt.Errorf("invalid data type for print_completed event")
	}

	mc.logger.Info("MainController", "print completed", map[string]interface{}{
		"pages":  len(job.Pages),
		"copies": job.Copies,
	})
	return nil
}

func (mc *MainController) onPrintFailed(data interface{}) error {
	err, ok := data.(error)
	if !ok {
		return fmt.Errorf("invalid data type for print_failed event")
	}

	if errors.Is(err, printing.ErrNoTarget) {
		mc.logger.Info("MainController", "print cancelled", nil)
		return nil
	}
	mc.logger.Error("MainController", "print failed", err, nil)
	return nil
}

// handleError shows an error dialog
func (mc *MainController) handleError(title string, err error) {
	if mc.mainView != nil {
		mc.mainView.ShowError(title, err)
	}
}

// Shutdown aborts a running print job between pages.
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.logger.Debug("MainController", "shutdown completed", nil)
}
