package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Colors holds the configured colours in CSS notation.
type Colors struct {
	Text              string `yaml:"textcolor"           json:"textcolor"`
	TextAlt           string `yaml:"textcoloralt"        json:"textcoloralt"`
	Background        string `yaml:"bgcolor"             json:"bgcolor"`
	TextCurrent       string `yaml:"textcolorcurrent"    json:"textcolorcurrent"`
	TextCurrentAlt    string `yaml:"textcolorcurrentalt" json:"textcolorcurrentalt"`
	BackgroundCurrent string `yaml:"bgcolorcurrent"      json:"bgcolorcurrent"`
}

// DefaultColors returns the stock colour scheme.
func DefaultColors() Colors {
	return Colors{
		Text:              "#dddddd",
		TextAlt:           "#666666",
		Background:        "rgba(30, 30, 30, 0.9)",
		TextCurrent:       "#333333",
		TextCurrentAlt:    "#999999",
		BackgroundCurrent: "rgba(200, 200, 200, 0.9)",
	}
}

// Palette is the set of colours for one kind of window.
type Palette struct {
	Text       color.NRGBA
	TextAlt    color.NRGBA
	Background color.NRGBA
}

// Theme picks a palette depending on whether the window has focus.
type Theme struct {
	Normal  Palette
	Current Palette
}

// ParseTheme parses every colour in c.
func ParseTheme(c Colors) (Theme, error) {
	var t Theme
	fields := []struct {
		name string
		src  string
		dst  *color.NRGBA
	}{
		{"textcolor", c.Text, &t.Normal.Text},
		{"textcoloralt", c.TextAlt, &t.Normal.TextAlt},
		{"bgcolor", c.Background, &t.Normal.Background},
		{"textcolorcurrent", c.TextCurrent, &t.Current.Text},
		{"textcolorcurrentalt", c.TextCurrentAlt, &t.Current.TextAlt},
		{"bgcolorcurrent", c.BackgroundCurrent, &t.Current.Background},
	}
	for _, f := range fields {
		col, err := ParseColor(f.src)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return t, nil
}

// Palette returns the colours for a window.
func (t Theme) Palette(focused bool) Palette {
	if focused {
		return t.Current
	}
	return t.Normal
}

// Opacity returns the background alpha in [0, 1].
func (p Palette) Opacity() float64 {
	return float64(p.Background.A) / 255
}

// ParseColor parses #rgb, #rrggbb, rgb(r, g, b) and rgba(r, g, b, a) where
// a is in [0, 1].
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s, "rgba(", 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s, "rgb(", 3)
	}
	return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
}

func parseFunc(s, prefix string, n int) (color.NRGBA, error) {
	args := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")"), ",")
	if len(args) != n {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: want %d components", s, n)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(args[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid colour %q: component %d out of range", s, i+1)
		}
		rgb[i] = uint8(v)
	}
	alpha := uint8(255)
	if n == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("invalid colour %q: alpha must be in [0, 1]", s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}
