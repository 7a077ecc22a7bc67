// Package render draws hint labels into images for the overlay windows and
// measures them for the layout resolver.
package render

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/winhint/internal/hint"
)

// DefaultFontSize is the label size in pixels when none is configured.
const DefaultFontSize = 72

// Font is a sized face used both to measure and to draw labels. Measure is
// safe for concurrent use; the face returned by Face is not.
type Font struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

// LoadFont opens the TrueType or OpenType file at path at the given pixel
// size. An empty path selects the embedded Go Mono face.
func LoadFont(path string, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", fontName(path), err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Font{face: face, size: size}, nil
}

func fontName(path string) string {
	if path == "" {
		return "Go Mono"
	}
	return path
}

// Face returns the underlying face for drawing.
func (f *Font) Face() font.Face {
	return f.face
}

// Size returns the pixel size the face was created with.
func (f *Font) Size() float64 {
	return f.size
}

// Measure returns the ink box of text relative to the drawing origin.
func (f *Font) Measure(text string) (hint.Extents, error) {
	if text == "" {
		return hint.Extents{}, errors.New("measure empty text")
	}
	f.mu.Lock()
	bounds, _ := font.BoundString(f.face, text)
	f.mu.Unlock()
	return hint.Extents{
		Width:    toFloat(bounds.Max.X - bounds.Min.X),
		Height:   toFloat(bounds.Max.Y - bounds.Min.Y),
		XBearing: toFloat(bounds.Min.X),
		YBearing: toFloat(bounds.Min.Y),
	}, nil
}

// Close releases the face.
func (f *Font) Close() error {
	return f.face.Close()
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
