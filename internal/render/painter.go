package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/winhint/internal/hint"
)

// Painter draws one label image per table entry.
type Painter struct {
	font  *Font
	theme Theme
}

// NewPainter returns a Painter drawing with f in the colours of theme.
func NewPainter(f *Font, theme Theme) *Painter {
	return &Painter{font: f, theme: theme}
}

// Theme returns the painter's colours.
func (p *Painter) Theme() Theme {
	return p.theme
}

// Label renders the hint for e sized to its placement rect. The part of the
// label matching pressed is drawn in the alternate text colour.
//
// The background is painted opaque; its alpha is applied as window opacity
// by the overlay.
func (p *Painter) Label(e hint.Entry, pressed string) *image.RGBA {
	pal := p.theme.Palette(e.Window.Focused)
	r := e.Placement.Rect
	img := image.NewRGBA(image.Rect(0, 0, max(r.Width, 1), max(r.Height, 1)))

	bg := pal.Background
	bg.A = 255
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	matched, rest := "", e.Label
	if pressed != "" && strings.HasPrefix(e.Label, pressed) {
		matched, rest = pressed, e.Label[len(pressed):]
	}

	d := &font.Drawer{
		Dst:  img,
		Face: p.font.Face(),
		Dot: fixed.Point26_6{
			X: toFixed(e.Placement.DrawX),
			Y: toFixed(e.Placement.DrawY),
		},
	}
	drawRun(d, matched, pal.TextAlt)
	drawRun(d, rest, pal.Text)
	return img
}

// drawRun draws s at the drawer's dot and advances it.
func drawRun(d *font.Drawer, s string, c color.Color) {
	if s == "" {
		return
	}
	d.Src = image.NewUniform(c)
	d.DrawString(s)
}
