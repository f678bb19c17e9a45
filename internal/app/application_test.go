package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"anlage-v/internal/config"
	"anlage-v/internal/logger"
	"anlage-v/internal/models"
	"anlage-v/internal/printing"

	"fyne.io/fyne/v2/test"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	a, err := newApplication(test.NewTempApp(t), cfg, logger.Nop{})
	require.NoError(t, err)
	return a
}

func TestApplicationStartsOnPageOne(t *testing.T) {
	a := newTestApplication(t, config.DefaultConfig())

	assert.Equal(t, models.PageOne, a.Form().Current())
	assert.True(t, a.Form().Visible(models.PageOne))
	assert.False(t, a.Form().Visible(models.PageTwo))
	assert.Equal(t, "Page 1 / 2 - Seite 1", a.View().GetStatusBar().GetPageInfo())
	assert.NotNil(t, a.window.Content())
}

func TestPageButtonSwitchesPages(t *testing.T) {
	a := newTestApplication(t, config.DefaultConfig())

	for _, want := range []models.PageIndex{models.PageTwo, models.PageOne, models.PageTwo} {
		a.controller.TogglePage()
		assert.Equal(t, want, a.Form().Current())
	}
	assert.Equal(t, "Page 2 / 2 - Seite 2", a.View().GetStatusBar().GetPageInfo())
}

func TestExportHeadless(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DPI = 72
	cfg.Copies = 2
	a := newTestApplication(t, cfg)
	require.NoError(t, a.Form().Show(models.PageTwo))

	path := filepath.Join(t.TempDir(), "anlage-v.pdf")
	require.NoError(t, a.Export(path))

	n, err := api.PageCountFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, models.PageTwo, a.Form().Current())
}

func TestCloseShutsDownBeforePrinting(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DPI = 72
	a := newTestApplication(t, cfg)

	a.requestClose()

	select {
	case <-a.shutdown.Done():
	default:
		t.Fatal("shutdown did not run")
	}

	path := filepath.Join(t.TempDir(), "late.pdf")
	err := a.controller.Export(path)
	assert.True(t, errors.Is(err, printing.ErrJobStart))
	assert.NoFileExists(t, path)
}

func TestCustomLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := `
name: Mini
width: 300
height: 200
pages:
  - id: a
    title: A
    fields: [{id: f, x: 10, y: 10, width: 80, value: "x"}]
  - id: b
    title: B
    fields: []
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg := config.DefaultConfig()
	cfg.LayoutFile = path
	a := newTestApplication(t, cfg)

	assert.Equal(t, "Mini", a.layout.Name)
	assert.Equal(t, float32(300+ScrollBarWidth), windowSize(a.layout).Width)
	assert.Equal(t, float32(200+ChromeHeight), windowSize(a.layout).Height)
}

func TestBadLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LayoutFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := newApplication(test.NewTempApp(t), cfg, logger.Nop{})
	assert.Error(t, err)
}

func TestWindowSizeCapsHeight(t *testing.T) {
	a := newTestApplication(t, config.DefaultConfig())
	size := windowSize(a.layout)

	assert.Equal(t, float32(624+ScrollBarWidth), size.Width)
	assert.Equal(t, float32(MaxWindowHeight), size.Height)
}
