package layout

import (
	"fyne.io/fyne/v2"
)

// Placement is the fixed rectangle of one object.
type Placement struct {
	Pos  fyne.Position
	Size fyne.Size
}

// PlacedLayout pins every object to a fixed rectangle regardless of the
// container size. Objects beyond the placements stretch over the whole
// container, which is how a page background is laid out.
type PlacedLayout struct {
	placements []Placement
	size       fyne.Size
}

// NewPlacedLayout creates a layout for a page of the given size.
// placements[i] applies to the i-th object after the backgrounds.
func NewPlacedLayout(size fyne.Size, placements []Placement) *PlacedLayout {
	return &PlacedLayout{
		placements: placements,
		size:       size,
	}
}

func (pl *PlacedLayout) Layout(objects []fyne.CanvasObject, containerSize fyne.Size) {
	backgrounds := len(objects) - len(pl.placements)
	if backgrounds < 0 {
		backgrounds = 0
	}

	for i, obj := range objects {
		if i < backgrounds {
			obj.Resize(containerSize)
			obj.Move(fyne.NewPos(0, 0))
			continue
		}

		p := pl.placements[i-backgrounds]
		obj.Resize(p.Size)
		obj.Move(p.Pos)
	}
}

// MinSize is always the page size so scrolling containers keep the page intact.
func (pl *PlacedLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return pl.size
}
