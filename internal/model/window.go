package model

import (
	"fmt"
	"sort"
)

// WindowID identifies a window for the backend that listed it.
type WindowID int64

// Window is a snapshot of a visible window taken once at startup.
type Window struct {
	ID      WindowID `yaml:"id"              json:"id"`
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	X       int      `yaml:"x"               json:"x"`
	Y       int      `yaml:"y"               json:"y"`
	Width   int      `yaml:"width"           json:"width"`
	Height  int      `yaml:"height"          json:"height"`
	Focused bool     `yaml:"focused,omitempty" json:"focused,omitempty"`
}

// Bounds returns the window geometry as a Rect.
func (w Window) Bounds() Rect {
	return Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

func (w Window) String() string {
	return fmt.Sprintf("window %d (%d,%d %dx%d)", w.ID, w.X, w.Y, w.Width, w.Height)
}

// SortByPosition sorts windows row-major (top to bottom, then left to right)
// so hint assignment follows the visual order. Ties fall back to the ID.
func SortByPosition(windows []Window) {
	sort.SliceStable(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.ID < b.ID
	})
}
