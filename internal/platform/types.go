package platform

import (
	"strings"

	"github.com/mj1618/winhint/internal/model"
)

// ListOptions controls window listing.
type ListOptions struct {
	AllDesktops bool   // Include windows on other desktops
	Title       string // Only windows whose title contains this (case-insensitive)
}

// Filter returns the windows matching the options that can be applied
// without asking the window manager.
func Filter(windows []model.Window, opts ListOptions) []model.Window {
	if opts.Title == "" {
		return windows
	}
	want := strings.ToLower(opts.Title)
	var out []model.Window
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), want) {
			out = append(out, w)
		}
	}
	return out
}
