// Package stdin provides a backend that reads hint definitions as JSON
// from standard input, for scripts that do their own window discovery.
//
// The input is an array of objects:
//
//	[{"value": 4194307, "pos": [0, 20], "highlight": true, "title": "xterm"}]
//
// value is printed when the hint is selected, pos is where the hint goes
// and highlight marks the focused window. title, width and height are
// optional.
package stdin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/platform"
)

// Name is the registered backend name.
const Name = "stdin"

func init() {
	platform.Register(Name, func() (platform.Backend, error) {
		return New(os.Stdin), nil
	})
}

// HintDef is one entry of the input array.
type HintDef struct {
	Value     int64  `json:"value"`
	Pos       [2]int `json:"pos"`
	Highlight bool   `json:"highlight,omitempty"`
	Title     string `json:"title,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// Window converts a definition to a window snapshot.
func (d HintDef) Window() model.Window {
	return model.Window{
		ID:      model.WindowID(d.Value),
		Title:   d.Title,
		X:       d.Pos[0],
		Y:       d.Pos[1],
		Width:   d.Width,
		Height:  d.Height,
		Focused: d.Highlight,
	}
}

// Backend serves the windows decoded from its reader. The input is read on
// the first listing and reused afterwards.
type Backend struct {
	r io.Reader

	once    sync.Once
	windows []model.Window
	err     error
}

// New returns a backend reading definitions from r.
func New(r io.Reader) *Backend {
	return &Backend{r: r}
}

func (b *Backend) Name() string { return Name }

func (b *Backend) Close() error { return nil }

// ListWindows decodes the input. AllDesktops has no meaning here.
func (b *Backend) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	b.once.Do(func() {
		b.windows, b.err = Decode(b.r)
	})
	if b.err != nil {
		return nil, b.err
	}
	return platform.Filter(append([]model.Window(nil), b.windows...), opts), nil
}

// FocusWindow does nothing; the caller acts on the printed value.
func (b *Backend) FocusWindow(model.WindowID) error {
	return nil
}

// Decode reads a JSON array of hint definitions.
func Decode(r io.Reader) ([]model.Window, error) {
	var defs []HintDef
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return nil, fmt.Errorf("couldn't parse hints: %w", err)
	}
	windows := make([]model.Window, len(defs))
	for i, d := range defs {
		windows[i] = d.Window()
	}
	return windows, nil
}
