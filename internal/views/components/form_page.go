package components

import (
	"image/color"

	"anlage-v/internal/form"
	"anlage-v/internal/views/layout"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// FormPage is one sheet of the form: a white page with display fields at
// their layout coordinates. It satisfies models.Page.
type FormPage struct {
	*fyne.Container
	desc   form.PageLayout
	size   fyne.Size
	fields []*DisplayField
}

// NewFormPage builds a page from its descriptor. size is the sheet size in
// form pixels.
func NewFormPage(desc form.PageLayout, size fyne.Size) *FormPage {
	p := &FormPage{desc: desc, size: size}

	placements := make([]layout.Placement, 0, len(desc.Fields))
	objects := make([]fyne.CanvasObject, 0, len(desc.Fields)+1)
	objects = append(objects, canvas.NewRectangle(color.White))

	for _, f := range desc.Fields {
		df := NewDisplayField(f)
		p.fields = append(p.fields, df)
		objects = append(objects, df)
		placements = append(placements, layout.Placement{
			Pos:  fyne.NewPos(f.X, f.Y),
			Size: fyne.NewSize(f.Width, form.FieldHeight),
		})
	}

	p.Container = container.New(layout.NewPlacedLayout(size, placements), objects...)
	p.Container.Resize(size)
	return p
}

// NewFormPages builds both pages of l.
func NewFormPages(l *form.Layout) (*FormPage, *FormPage) {
	size := fyne.NewSize(l.Width, l.Height)
	return NewFormPage(l.Pages[0], size), NewFormPage(l.Pages[1], size)
}

// Snapshot builds a fresh, visible copy of the page for printing. The copy
// shares no objects with the on-screen page.
func (p *FormPage) Snapshot() fyne.CanvasObject {
	return NewFormPage(p.desc, p.size).Container
}

func (p *FormPage) Fields() []*DisplayField {
	return p.fields
}

// Field looks up a display field by id.
func (p *FormPage) Field(id string) (*DisplayField, bool) {
	for _, f := range p.fields {
		if f.ID() == id {
			return f, true
		}
	}
	return nil, false
}

func (p *FormPage) Title() string {
	return p.desc.Title
}
