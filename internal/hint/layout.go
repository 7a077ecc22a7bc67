package hint

import (
	"math"

	"github.com/mj1618/winhint/internal/model"
)

// Extents are the ink metrics of a rendered label, as reported by the
// rendering backend. Bearings are offsets from the drawing origin to the
// top-left corner of the ink box; YBearing is negative above the baseline.
type Extents struct {
	Width    float64
	Height   float64
	XBearing float64
	YBearing float64
}

// Placement is where a label box goes on screen and where, relative to the
// box, the text origin has to be put so the ink ends up centred.
type Placement struct {
	Rect  model.Rect `yaml:"rect"   json:"rect"`
	DrawX float64    `yaml:"draw_x" json:"draw_x"`
	DrawY float64    `yaml:"draw_y" json:"draw_y"`
}

// Resolver places label boxes one at a time, nudging each new box to the
// right until it clears every box placed before it in the same pass.
type Resolver struct {
	Margin float64
	placed []model.Rect
}

// NewResolver returns a Resolver that pads every box by margin (a factor of
// the text size, split evenly on both sides).
func NewResolver(margin float64) *Resolver {
	return &Resolver{Margin: margin}
}

// Place sizes a box for ext, anchors it at (x, y) and shifts it right while
// it overlaps an earlier box. When several earlier boxes overlap, the most
// recently placed one decides the shift.
func (r *Resolver) Place(x, y int, ext Extents) Placement {
	factor := 1 + r.Margin
	boxW := ext.Width * factor
	boxH := ext.Height * factor
	marginW := (boxW - ext.Width) / 2
	marginH := (boxH - ext.Height) / 2

	rect := model.Rect{
		X:      x,
		Y:      y,
		Width:  int(math.Round(boxW)),
		Height: int(math.Round(boxH)),
	}
	for {
		hit, ok := r.lastOverlap(rect)
		if !ok {
			break
		}
		rect.X += hit.Width
	}
	r.placed = append(r.placed, rect)

	return Placement{
		Rect:  rect,
		DrawX: marginW - ext.XBearing,
		DrawY: marginH - ext.YBearing,
	}
}

// lastOverlap returns the most recently placed rectangle overlapping rect.
// Any rectangle it returns is non-empty, so shifting by its width always
// moves rect strictly right.
func (r *Resolver) lastOverlap(rect model.Rect) (model.Rect, bool) {
	for i := len(r.placed) - 1; i >= 0; i-- {
		if r.placed[i].Overlaps(rect) {
			return r.placed[i], true
		}
	}
	return model.Rect{}, false
}

// Placed returns the rectangles placed so far in this pass.
func (r *Resolver) Placed() []model.Rect {
	return append([]model.Rect(nil), r.placed...)
}

// Reset starts a new pass.
func (r *Resolver) Reset() {
	r.placed = r.placed[:0]
}
