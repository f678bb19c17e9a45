package printing

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"testing"

	"anlage-v/internal/logger"
	"anlage-v/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	test.NewApp()
	os.Exit(m.Run())
}

// recordingDriver logs every call and can fail a named call.
type recordingDriver struct {
	calls    []string
	failOn   string
	released int
}

func (d *recordingDriver) record(call string) error {
	d.calls = append(d.calls, call)
	if call == d.failOn {
		return fmt.Errorf("%s failed", call)
	}
	return nil
}

func (d *recordingDriver) StartJob(copies int) error { return d.record("startJob") }
func (d *recordingDriver) StartPage() error          { return d.record("startPage") }
func (d *recordingDriver) PrintableArea() (float32, float32) {
	_ = d.record("printableArea")
	return 600, 800
}
func (d *recordingDriver) SetOrigin(x, y float32) {
	_ = d.record(fmt.Sprintf("origin(%g,%g)", x, y))
}
func (d *recordingDriver) RenderWidget(obj fyne.CanvasObject, x, y float32) error {
	return d.record(fmt.Sprintf("render(%s,%g,%g)", obj.(*canvas.Text).Text, x, y))
}
func (d *recordingDriver) EndPage() error { return d.record("endPage") }
func (d *recordingDriver) EndJob() error  { return d.record("endJob") }
func (d *recordingDriver) Release()       { d.released++ }

type fakePage struct {
	*canvas.Rectangle
	label string
}

func (p *fakePage) Snapshot() fyne.CanvasObject {
	t := canvas.NewText(p.label, color.Black)
	t.Resize(fyne.NewSize(100, 200))
	return t
}

func newForm() (*models.FormContainer, *fakePage, *fakePage) {
	one := &fakePage{Rectangle: canvas.NewRectangle(color.Transparent), label: "one"}
	two := &fakePage{Rectangle: canvas.NewRectangle(color.Transparent), label: "two"}
	return models.NewFormContainer(one, two), one, two
}

func TestPrintAllPagesSequence(t *testing.T) {
	fc, one, two := newForm()
	drv := &recordingDriver{}

	err := NewSequencer(fc, logger.Nop{}).Print(context.Background(), drv, AllPages(1))
	require.NoError(t, err)

	want := []string{
		"startJob",
		"startPage", "printableArea", "origin(300,400)", "render(one,-50,-100)", "endPage",
		"startPage", "printableArea", "origin(300,400)", "render(two,-50,-100)", "endPage",
		"endJob",
	}
	assert.Equal(t, want, drv.calls)
	assert.Equal(t, 1, drv.released)

	// Printing page two while page one is on screen leaves the screen alone.
	assert.Equal(t, models.PageOne, fc.Current())
	assert.True(t, one.Visible())
	assert.False(t, two.Visible())
}

func TestPrintJobStartFailure(t *testing.T) {
	fc, one, two := newForm()
	require.NoError(t, fc.Show(models.PageTwo))
	drv := &recordingDriver{failOn: "startJob"}

	err := NewSequencer(fc, logger.Nop{}).Print(context.Background(), drv, AllPages(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrJobStart))
	assert.False(t, errors.Is(err, ErrJobAborted))

	assert.Equal(t, []string{"startJob"}, drv.calls)
	assert.Equal(t, 1, drv.released)
	assert.Equal(t, models.PageTwo, fc.Current())
	assert.False(t, one.Visible())
	assert.True(t, two.Visible())
}

func TestPrintPageFailureAbortsJob(t *testing.T) {
	for _, call := range []string{"startPage", "render(one,-50,-100)", "endPage", "endJob"} {
		t.Run(call, func(t *testing.T) {
			fc, _, _ := newForm()
			drv := &recordingDriver{failOn: call}

			err := NewSequencer(fc, logger.Nop{}).Print(context.Background(), drv, AllPages(1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrJobAborted))
			assert.Equal(t, call, drv.calls[len(drv.calls)-1], "no calls after the failure")
			assert.Equal(t, 1, drv.released)
			assert.Equal(t, models.PageOne, fc.Current())
		})
	}
}

func TestPrintSinglePage(t *testing.T) {
	fc, _, _ := newForm()
	drv := &recordingDriver{}

	err := NewSequencer(fc, logger.Nop{}).Print(context.Background(), drv, SinglePage(models.PageTwo, 2))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"startJob", "startPage", "printableArea", "origin(300,400)", "render(two,-50,-100)", "endPage", "endJob",
	}, drv.calls)
}

func TestPrintInvalidPage(t *testing.T) {
	fc, _, _ := newForm()
	drv := &recordingDriver{}

	err := NewSequencer(fc, logger.Nop{}).Print(context.Background(), drv, SinglePage(models.PageIndex(2), 1))
	assert.True(t, errors.Is(err, ErrJobAborted))
	assert.True(t, errors.Is(err, models.ErrInvalidPage))
	assert.Equal(t, []string{"startJob"}, drv.calls)
	assert.Equal(t, 1, drv.released)
}

func TestPrintEmptyJob(t *testing.T) {
	fc, _, _ := newForm()
	drv := &recordingDriver{}

	err := NewSequencer(fc, logger.Nop{}).Print(context.Background(), drv, Job{Copies: 1})
	assert.True(t, errors.Is(err, ErrJobStart))
	assert.True(t, errors.Is(err, ErrEmptyJob))
	assert.Empty(t, drv.calls)
	assert.Equal(t, 1, drv.released)
}

func TestPrintCancelledContext(t *testing.T) {
	fc, _, _ := newForm()
	drv := &recordingDriver{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSequencer(fc, logger.Nop{}).Print(ctx, drv, AllPages(1))
	assert.True(t, errors.Is(err, ErrJobStart))
	assert.False(t, errors.Is(err, ErrJobAborted))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, drv.calls)
	assert.Equal(t, 1, drv.released)
}

// cancelOnStartPage cancels the job from inside the first page.
type cancelOnStartPage struct {
	recordingDriver
	cancel context.CancelFunc
}

func (d *cancelOnStartPage) StartPage() error {
	d.cancel()
	return d.recordingDriver.StartPage()
}

func TestPrintCancelledBetweenPages(t *testing.T) {
	fc, _, _ := newForm()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	drv := &cancelOnStartPage{cancel: cancel}

	err := NewSequencer(fc, logger.Nop{}).Print(ctx, drv, AllPages(1))
	assert.True(t, errors.Is(err, ErrJobAborted))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{
		"startJob", "startPage", "printableArea", "origin(300,400)", "render(one,-50,-100)", "endPage",
	}, drv.calls)
	assert.Equal(t, 1, drv.released)
}

func TestSnapshotWithoutSizeUsesMinSize(t *testing.T) {
	src := sizedSource{obj: canvas.NewText("unsized", color.Black)}
	drv := &captureDriver{}

	err := NewSequencer(src, logger.Nop{}).Print(context.Background(), drv, SinglePage(models.PageOne, 1))
	require.NoError(t, err)
	assert.Equal(t, src.obj.MinSize(), src.obj.Size())
}

type sizedSource struct{ obj fyne.CanvasObject }

func (s sizedSource) Snapshot(models.PageIndex) (fyne.CanvasObject, error) { return s.obj, nil }

type captureDriver struct{ recordingDriver }

func (d *captureDriver) RenderWidget(fyne.CanvasObject, float32, float32) error { return nil }
