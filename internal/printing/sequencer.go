package printing

import (
	"context"
	"errors"
	"fmt"

	"anlage-v/internal/logger"
	"anlage-v/internal/models"

	"fyne.io/fyne/v2"
)

var ErrEmptyJob = errors.New("print job has no pages")

// PageSource hands out renderable copies of form pages.
// *models.FormContainer satisfies it.
type PageSource interface {
	Snapshot(idx models.PageIndex) (fyne.CanvasObject, error)
}

// Job lists the pages to print, in order.
type Job struct {
	Copies int
	Pages  []models.PageIndex
}

// AllPages prints both pages in form order.
func AllPages(copies int) Job {
	return Job{Copies: copies, Pages: []models.PageIndex{models.PageOne, models.PageTwo}}
}

// SinglePage prints one page.
func SinglePage(idx models.PageIndex, copies int) Job {
	return Job{Copies: copies, Pages: []models.PageIndex{idx}}
}

// Sequencer drives a Driver through one job. It reads pages through
// snapshots only, so the on-screen page never changes while printing.
type Sequencer struct {
	source PageSource
	logger logger.Logger
}

func NewSequencer(source PageSource, log logger.Logger) *Sequencer {
	return &Sequencer{source: source, logger: log}
}

// Print runs job on drv and releases drv before returning.
// A failed StartJob, or a ctx already done, returns an error wrapping
// ErrJobStart with no page operations issued; any later failure wraps
// ErrJobAborted.
func (s *Sequencer) Print(ctx context.Context, drv Driver, job Job) error {
	defer drv.Release()

	if len(job.Pages) == 0 {
		return fmt.Errorf("%w: %w", ErrJobStart, ErrEmptyJob)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrJobStart, err)
	}

	if err := drv.StartJob(job.Copies); err != nil {
		s.logger.Warning("PrintSequencer", "job start failed", map[string]interface{}{
			"error":  err.Error(),
			"copies": job.Copies,
		})
		return fmt.Errorf("%w: %w", ErrJobStart, err)
	}

	s.logger.Debug("PrintSequencer", "job started", map[string]interface{}{
		"pages":  len(job.Pages),
		"copies": job.Copies,
	})

	for _, idx := range job.Pages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrJobAborted, err)
		}
		if err := s.printPage(drv, idx); err != nil {
			s.logger.Error("PrintSequencer", "page failed, job aborted", err, map[string]interface{}{"page": idx.String()})
			return fmt.Errorf("%w: page %s: %w", ErrJobAborted, idx, err)
		}
	}

	if err := drv.EndJob(); err != nil {
		return fmt.Errorf("%w: %w", ErrJobAborted, err)
	}

	s.logger.Info("PrintSequencer", "job completed", map[string]interface{}{
		"pages":  len(job.Pages),
		"copies": job.Copies,
	})
	return nil
}

// printPage centres the snapshot of page idx on the printable area.
func (s *Sequencer) printPage(drv Driver, idx models.PageIndex) error {
	obj, err := s.source.Snapshot(idx)
	if err != nil {
		return err
	}

	size := obj.Size()
	if size.Width == 0 && size.Height == 0 {
		size = obj.MinSize()
		obj.Resize(size)
	}

	if err := drv.StartPage(); err != nil {
		return err
	}

	width, height := drv.PrintableArea()
	drv.SetOrigin(width/2, height/2)

	if err := drv.RenderWidget(obj, -size.Width/2, -size.Height/2); err != nil {
		return err
	}

	return drv.EndPage()
}
