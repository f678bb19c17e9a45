package printing

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"anlage-v/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/software"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const pointsPerInch = 72

// PDFOptions controls page geometry of the PDF printer.
type PDFOptions struct {
	PaperSize string
	DPI       int
}

// PDFDriver "prints" into a PDF document. Each page is rasterized at DPI
// and the finished job is written to the target in EndJob.
//
// Geometry is in points. Widgets larger than the printable area are
// scaled down around the origin to fit.
type PDFDriver struct {
	target  io.WriteCloser
	opts    PDFOptions
	dim     *types.Dim
	logger  logger.Logger
	started bool
	copies  int

	page     *image.NRGBA
	originX  float32
	originY  float32
	pages    [][]byte
	released bool
}

// NewPDFDriver prepares a driver writing to target. A nil target stands for
// a cancelled print dialog and makes StartJob fail.
func NewPDFDriver(target io.WriteCloser, opts PDFOptions, log logger.Logger) *PDFDriver {
	return &PDFDriver{target: target, opts: opts, logger: log}
}

func (d *PDFDriver) StartJob(copies int) error {
	switch {
	case d.released:
		return ErrReleased
	case d.target == nil:
		return ErrNoTarget
	case copies < 1:
		return ErrInvalidCopies
	case d.opts.DPI <= 0:
		return fmt.Errorf("invalid dpi %d", d.opts.DPI)
	}

	dim, ok := types.PaperSize[d.opts.PaperSize]
	if !ok {
		return fmt.Errorf("unknown paper size %q", d.opts.PaperSize)
	}

	d.dim = dim
	d.copies = copies
	d.started = true
	d.pages = nil
	return nil
}

func (d *PDFDriver) StartPage() error {
	if !d.started {
		return ErrNotStarted
	}
	if d.page != nil {
		return ErrPageOpen
	}

	w, h := d.toPixels(float32(d.dim.Width)), d.toPixels(float32(d.dim.Height))
	d.page = image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(d.page, d.page.Bounds(), image.White, image.Point{}, draw.Src)
	d.originX, d.originY = 0, 0
	return nil
}

// PrintableArea is the whole sheet in points; the PDF has no hardware margins.
func (d *PDFDriver) PrintableArea() (width, height float32) {
	if d.dim == nil {
		return 0, 0
	}
	return float32(d.dim.Width), float32(d.dim.Height)
}

func (d *PDFDriver) SetOrigin(x, y float32) {
	d.originX, d.originY = x, y
}

// RenderWidget rasterizes obj with its top left corner at (x, y) relative
// to the origin.
func (d *PDFDriver) RenderWidget(obj fyne.CanvasObject, x, y float32) error {
	if d.page == nil {
		return ErrNoPage
	}

	size := obj.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("widget has empty size %vx%v", size.Width, size.Height)
	}

	areaW, areaH := d.PrintableArea()
	fit := float32(math.Min(1, math.Min(float64(areaW/size.Width), float64(areaH/size.Height))))

	c := software.NewCanvas()
	c.SetPadded(false)
	c.SetScale(float32(d.opts.DPI) / pointsPerInch * fit)
	c.SetContent(obj)
	c.Resize(size)
	raster := c.Capture()

	at := image.Pt(d.toPixels(d.originX+x*fit), d.toPixels(d.originY+y*fit))
	dst := raster.Bounds().Sub(raster.Bounds().Min).Add(at)
	draw.Draw(d.page, dst, raster, raster.Bounds().Min, draw.Over)
	return nil
}

func (d *PDFDriver) EndPage() error {
	if d.page == nil {
		return ErrNoPage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, d.page); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	d.pages = append(d.pages, buf.Bytes())
	d.page = nil
	return nil
}

// EndJob writes every page copies times, collated, as one PDF.
func (d *PDFDriver) EndJob() error {
	if !d.started {
		return ErrNotStarted
	}
	if d.page != nil {
		return ErrPageOpen
	}

	imgs := make([]io.Reader, 0, len(d.pages)*d.copies)
	for i := 0; i < d.copies; i++ {
		for _, p := range d.pages {
			imgs = append(imgs, bytes.NewReader(p))
		}
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.PageDim = d.dim
	imp.PageSize = d.opts.PaperSize
	imp.Pos = types.Full

	if err := api.ImportImages(nil, d.target, imgs, imp, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	d.logger.Debug("PDFDriver", "pdf written", map[string]interface{}{
		"pages":  len(imgs),
		"paper":  d.opts.PaperSize,
		"dpi":    d.opts.DPI,
		"copies": d.copies,
	})

	d.started = false
	return nil
}

// Release closes the target and drops buffered pages. Later calls are no-ops.
func (d *PDFDriver) Release() {
	if d.released {
		return
	}
	d.released = true
	d.started = false
	d.page = nil
	d.pages = nil

	if d.target != nil {
		if err := d.target.Close(); err != nil {
			d.logger.Error("PDFDriver", "closing print target failed", err, nil)
		}
	}
}

func (d *PDFDriver) toPixels(points float32) int {
	return int(math.Round(float64(points) * float64(d.opts.DPI) / pointsPerInch))
}
