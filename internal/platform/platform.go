// Package platform abstracts the window manager the hints are drawn for.
package platform

import "github.com/mj1618/winhint/internal/model"

// WindowLister enumerates the windows that can receive a hint.
type WindowLister interface {
	// ListWindows returns the visible windows, filtered by opts.
	ListWindows(opts ListOptions) ([]model.Window, error)
}

// WindowManager changes which window has input focus.
type WindowManager interface {
	FocusWindow(id model.WindowID) error
}

// Backend is one way of talking to the window manager.
type Backend interface {
	WindowLister
	WindowManager

	// Name is the name the backend is registered under.
	Name() string
	Close() error
}
