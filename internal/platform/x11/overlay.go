package x11

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/render"
	"github.com/mj1618/winhint/internal/session"
)

// GrabTimeout bounds how long Open keeps retrying the keyboard grab. Right
// after a hotkey fires the window manager may still hold it.
const GrabTimeout = time.Second

const overlayEvents = xproto.EventMaskExposure |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress

type keyLookup func(state uint16, code xproto.Keycode) string

// keyNames resolves keycodes with the modifier state of the press, so
// shifted characters such as "A" can be typed. The name chosen at press
// time is reported again on release even if a modifier went up first.
type keyNames struct {
	lookup keyLookup
	held   map[xproto.Keycode]string
}

func newKeyNames(lookup keyLookup) *keyNames {
	return &keyNames{lookup: lookup, held: make(map[xproto.Keycode]string)}
}

func (k *keyNames) press(state uint16, code xproto.Keycode) string {
	name := k.lookup(state, code)
	k.held[code] = name
	return name
}

func (k *keyNames) release(state uint16, code xproto.Keycode) string {
	if name, ok := k.held[code]; ok {
		delete(k.held, code)
		return name
	}
	return k.lookup(state, code)
}

// Overlay is a set of override-redirect windows, one per hint.
type Overlay struct {
	d       *Display
	painter *render.Painter
	windows map[string]*xwindow.Window
	keys    *keyNames
	log     *slog.Logger
}

// OpenOverlay maps a hint window for every entry of table and grabs the
// keyboard and pointer.
func OpenOverlay(d *Display, table *hint.Table, p *render.Painter, log *slog.Logger) (*Overlay, error) {
	if log == nil {
		log = slog.Default()
	}
	xu := d.X
	o := &Overlay{
		d:       d,
		painter: p,
		windows: make(map[string]*xwindow.Window, table.Len()),
		keys:    newKeyNames(func(state uint16, code xproto.Keycode) string {
			return keybind.LookupString(xu, state, code)
		}),
		log: log,
	}

	black := xu.Screen().BlackPixel
	for _, e := range table.Entries() {
		win, err := xwindow.Generate(xu)
		if err != nil {
			o.destroyWindows()
			return nil, fmt.Errorf("generate window id: %w", err)
		}
		r := e.Placement.Rect
		err = win.CreateChecked(xu.RootWin(), r.X, r.Y, r.Width, r.Height,
			xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
			black, 1, uint32(overlayEvents))
		if err != nil {
			o.destroyWindows()
			return nil, fmt.Errorf("create hint window %q: %w", e.Label, err)
		}
		o.windows[e.Label] = win

		opacity := p.Theme().Palette(e.Window.Focused).Opacity()
		if err := ewmh.WmWindowOpacitySet(xu, win.Id, opacity); err != nil {
			log.Warn("couldn't set window opacity", "label", e.Label, "err", err)
		}
		log.Debug("spawned hint window", "label", e.Label, "window", e.Window.ID, "rect", r)
		win.Map()
	}

	if err := o.grab(); err != nil {
		o.destroyWindows()
		return nil, err
	}
	return o, nil
}

func (o *Overlay) grab() error {
	c := o.d.X.Conn()
	root := o.d.X.RootWin()

	deadline := time.Now().Add(GrabTimeout)
	for {
		reply, err := xproto.GrabKeyboard(c, false, root, xproto.TimeCurrentTime,
			xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
		if err == nil && reply.Status == xproto.GrabStatusSuccess {
			break
		}
		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("couldn't grab keyboard: %w", err)
			}
			return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	reply, err := xproto.GrabPointer(c, false, root, uint16(xproto.EventMaskButtonPress),
		xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone, xproto.CursorNone,
		xproto.TimeCurrentTime).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		// Without the pointer grab a click just doesn't abort.
		o.log.Warn("couldn't grab pointer", "err", err)
	}
	return nil
}

// Draw repaints every hint window with pressed highlighted.
func (o *Overlay) Draw(table *hint.Table, pressed string) error {
	for _, e := range table.Entries() {
		win, ok := o.windows[e.Label]
		if !ok {
			continue
		}
		ximg := xgraphics.NewConvert(o.d.X, o.painter.Label(e, pressed))
		if err := ximg.XSurfaceSet(win.Id); err != nil {
			ximg.Destroy()
			return fmt.Errorf("surface for %q: %w", e.Label, err)
		}
		ximg.XDraw()
		ximg.XPaint(win.Id)
		ximg.Destroy()
	}
	return nil
}

// NextEvent blocks for the next X event the session cares about.
func (o *Overlay) NextEvent() (session.Event, error) {
	for {
		ev, xerr := o.d.X.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return session.Event{Kind: session.EventClosed}, nil
		}
		if xerr != nil {
			o.log.Warn("X error", "err", xerr)
			continue
		}
		if sev, ok := translate(ev, o.keys); ok {
			return sev, nil
		}
	}
}

// Close releases the grabs and destroys the hint windows.
func (o *Overlay) Close() error {
	c := o.d.X.Conn()
	xproto.UngrabKeyboard(c, xproto.TimeCurrentTime)
	xproto.UngrabPointer(c, xproto.TimeCurrentTime)
	o.destroyWindows()
	// Round trip so the ungrab reaches the server before the caller
	// focuses another window.
	if _, err := xproto.GetInputFocus(c).Reply(); err != nil {
		return fmt.Errorf("sync after ungrab: %w", err)
	}
	return nil
}

func (o *Overlay) destroyWindows() {
	for label, w := range o.windows {
		w.Destroy()
		delete(o.windows, label)
	}
}

func translate(ev xgb.Event, keys *keyNames) (session.Event, bool) {
	switch e := ev.(type) {
	case xproto.ExposeEvent:
		if e.Count != 0 {
			return session.Event{}, false
		}
		return session.Event{Kind: session.EventExpose}, true
	case xproto.KeyPressEvent:
		return session.Event{Kind: session.EventKeyPress, Key: keys.press(e.State, e.Detail)}, true
	case xproto.KeyReleaseEvent:
		return session.Event{Kind: session.EventKeyRelease, Key: keys.release(e.State, e.Detail)}, true
	case xproto.ButtonPressEvent:
		return session.Event{Kind: session.EventButtonPress}, true
	}
	return session.Event{}, false
}
