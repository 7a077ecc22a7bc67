package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/platform"
)

// BackendName is the registered backend name.
const BackendName = "ewmh"

const (
	allDesktops = 0xFFFFFFFF
	stateHidden = "_NET_WM_STATE_HIDDEN"
)

func init() {
	platform.Register(BackendName, func() (platform.Backend, error) {
		d, err := Connect("")
		if err != nil {
			return nil, err
		}
		return NewBackend(d), nil
	})
}

// Backend lists windows through the EWMH hints any compliant window manager
// maintains on the root window.
type Backend struct {
	d *Display
}

// NewBackend returns a backend using d.
func NewBackend(d *Display) *Backend {
	return &Backend{d: d}
}

func (b *Backend) Name() string { return BackendName }

// Display returns the connection, for opening an overlay on it.
func (b *Backend) Display() *Display { return b.d }

func (b *Backend) Close() error { return b.d.Close() }

// ListWindows returns the managed windows in stacking order.
func (b *Backend) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	xu := b.d.X
	ids, err := ewmh.ClientListStackingGet(xu)
	if err != nil {
		return nil, fmt.Errorf("error getting windows stack list: %w", err)
	}

	current, err := ewmh.CurrentDesktopGet(xu)
	if err != nil {
		slog.Debug("no current desktop, listing all", "err", err)
		opts.AllDesktops = true
	}
	active, err := ewmh.ActiveWindowGet(xu)
	if err != nil {
		slog.Debug("no active window", "err", err)
	}

	var windows []model.Window
	for _, id := range ids {
		if !opts.AllDesktops {
			desk, err := ewmh.WmDesktopGet(xu, id)
			if err == nil && !OnDesktop(desk, current) {
				continue
			}
			attrs, err := xproto.GetWindowAttributes(xu.Conn(), id).Reply()
			if err != nil {
				slog.Warn("skipping window without attributes", "window", id, "err", err)
				continue
			}
			if attrs.MapState != xproto.MapStateViewable {
				continue
			}
		}
		if states, err := ewmh.WmStateGet(xu, id); err == nil && Hidden(states) {
			continue
		}

		geom, err := xwindow.New(xu, id).DecorGeometry()
		if err != nil {
			slog.Warn("skipping window without geometry", "window", id, "err", err)
			continue
		}
		title, _ := ewmh.WmNameGet(xu, id)
		windows = append(windows, model.Window{
			ID:      model.WindowID(id),
			Title:   title,
			X:       geom.X(),
			Y:       geom.Y(),
			Width:   geom.Width(),
			Height:  geom.Height(),
			Focused: id == active,
		})
	}
	return platform.Filter(windows, opts), nil
}

// FocusWindow asks the window manager to activate id.
func (b *Backend) FocusWindow(id model.WindowID) error {
	if err := ewmh.ActiveWindowReq(b.d.X, xproto.Window(id)); err != nil {
		return fmt.Errorf("focus window %d: %w", id, err)
	}
	return nil
}

// OnDesktop reports whether a window on desk is shown on the current desktop.
func OnDesktop(desk, current uint) bool {
	return desk == current || desk == allDesktops
}

// Hidden reports whether _NET_WM_STATE marks the window as minimized.
func Hidden(states []string) bool {
	for _, s := range states {
		if s == stateHidden {
			return true
		}
	}
	return false
}
