package components

import (
	"image/color"

	"anlage-v/internal/form"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var (
	fieldBackground = color.NRGBA{R: 0xee, G: 0xf2, B: 0xf7, A: 0xff}
	fieldText       = color.NRGBA{A: 0xff}
)

const fieldInset float32 = 3

// DisplayField is a read-only value on the form: a flat box with one line
// of fixed-size text. The value is set once at construction.
type DisplayField struct {
	widget.BaseWidget
	id    string
	value string
	width float32
}

// NewDisplayField creates a field from its layout descriptor.
func NewDisplayField(f form.Field) *DisplayField {
	df := &DisplayField{
		id:    f.ID,
		value: f.Value,
		width: f.Width,
	}
	df.ExtendBaseWidget(df)
	return df
}

func (f *DisplayField) ID() string {
	return f.id
}

func (f *DisplayField) Value() string {
	return f.value
}

// CreateRenderer creates the renderer for DisplayField
func (f *DisplayField) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(fieldBackground)
	text := canvas.NewText(f.value, fieldText)
	text.TextSize = form.FieldTextSize

	return &displayFieldRenderer{
		field:   f,
		bg:      bg,
		text:    text,
		objects: []fyne.CanvasObject{bg, text},
	}
}

type displayFieldRenderer struct {
	field   *DisplayField
	bg      *canvas.Rectangle
	text    *canvas.Text
	objects []fyne.CanvasObject
}

func (r *displayFieldRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	avail := size.Width - 2*fieldInset
	r.text.Text = clipText(r.field.value, avail, r.text.TextSize, r.text.TextStyle)

	textMin := r.text.MinSize()
	r.text.Resize(fyne.NewSize(avail, textMin.Height))
	r.text.Move(fyne.NewPos(fieldInset, (size.Height-textMin.Height)/2))
}

func (r *displayFieldRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.field.width, form.FieldHeight)
}

func (r *displayFieldRenderer) Refresh() {
	r.Layout(r.field.Size())
	canvas.Refresh(r.field)
}

func (r *displayFieldRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *displayFieldRenderer) Destroy() {}

// clipText cuts s to the longest prefix that fits width, like a fixed-width
// output box. Whole runes are dropped from the end.
func clipText(s string, width, textSize float32, style fyne.TextStyle) string {
	if fyne.MeasureText(s, textSize, style).Width <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && fyne.MeasureText(string(runes), textSize, style).Width > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
