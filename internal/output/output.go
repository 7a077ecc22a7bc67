// Package output writes command results to stdout.
package output

import (
	"fmt"
	"io"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %q (expected yaml or json)", s)
	}
}

// ListResult is the output of the `list` command.
type ListResult struct {
	Backend string         `yaml:"backend" json:"backend"`
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// HintsResult is the output of the `hints` command.
type HintsResult struct {
	Chars string       `yaml:"chars" json:"chars"`
	Hints []hint.Entry `yaml:"hints" json:"hints"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return writeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintSelection writes the selected window id as a bare line, the form
// scripts read from the interactive command.
func PrintSelection(w io.Writer, id model.WindowID) error {
	_, err := fmt.Fprintln(w, int64(id))
	return err
}
