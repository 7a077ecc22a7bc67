// Package x11 talks to an X server: the ewmh backend lists and focuses
// windows, and Overlay shows the hints and reads the keyboard.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Display is an open X connection shared by the backend and the overlay.
type Display struct {
	X *xgbutil.XUtil
}

// Connect opens the named display; an empty name uses $DISPLAY.
func Connect(name string) (*Display, error) {
	xu, err := xgbutil.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("no Xorg connection: %w", err)
	}
	keybind.Initialize(xu)
	return &Display{X: xu}, nil
}

// Close drops the connection.
func (d *Display) Close() error {
	d.X.Conn().Close()
	return nil
}
