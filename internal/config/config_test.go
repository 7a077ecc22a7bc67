package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/sequence"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("winhint", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WINHINT_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c, err := Load(newFlags(t))
	if err != nil {
		t.Fatal(err)
	}
	if c.Chars != "asdfjkl" || c.Margin != 0.2 || c.FontSize != 72 {
		t.Errorf("got %+v", c)
	}
	if c.Backend != "auto" || !c.Focus || c.LogLevel != "warn" {
		t.Errorf("got %+v", c)
	}
	if len(c.ExitKeys) != 0 {
		t.Errorf("exit keys = %v, want none", c.ExitKeys)
	}
	if c.Colors.Background != "rgba(30, 30, 30, 0.9)" {
		t.Errorf("bgcolor = %q", c.Colors.Background)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "chars: abc\nmargin: 0.1\nfont-size: 30\nexit-keys:\n  - Control_L+g\n  - Super_L+w q\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WINHINT_CONFIG", path)
	t.Setenv("WINHINT_MARGIN", "0.5")

	c, err := Load(newFlags(t, "--font-size", "20"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Chars != "abc" {
		t.Errorf("chars = %q, want file value abc", c.Chars)
	}
	if c.Margin != 0.5 {
		t.Errorf("margin = %g, want env value 0.5", c.Margin)
	}
	if c.FontSize != 20 {
		t.Errorf("font-size = %g, want flag value 20", c.FontSize)
	}
	if len(c.ExitKeys) != 2 || c.ExitKeys[1] != "Super_L+w q" {
		t.Errorf("exit keys = %q", c.ExitKeys)
	}
	seqs, err := c.ExitSequences()
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs[1]) != 2 {
		t.Errorf("second exit sequence = %v, want two chords", seqs[1])
	}
}

func TestLoad_ConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "other.yaml")
	if err := os.WriteFile(path, []byte("backend: stdin\nfocus: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(newFlags(t, "--config", path))
	if err != nil {
		t.Fatal(err)
	}
	if c.Backend != "stdin" || c.Focus {
		t.Errorf("got backend=%q focus=%v", c.Backend, c.Focus)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("WINHINT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(newFlags(t)); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_ExitKeyFlags(t *testing.T) {
	isolate(t)
	c, err := Load(newFlags(t, "-e", "Control_L+g", "-e", "Escape"))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.ExitKeys) != 2 || c.ExitKeys[0] != "Control_L+g" {
		t.Errorf("exit keys = %q", c.ExitKeys)
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load(newFlags(t))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"empty chars", func(c *Config) { c.Chars = "" }, hint.ErrEmptyAlphabet},
		{"negative margin", func(c *Config) { c.Margin = -0.1 }, nil},
		{"zero font size", func(c *Config) { c.FontSize = 0 }, nil},
		{"empty backend", func(c *Config) { c.Backend = "" }, nil},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, nil},
		{"malformed exit keys", func(c *Config) { c.ExitKeys = []string{"Control_L+"} }, sequence.ErrMalformed},
		{"bad colour", func(c *Config) { c.Colors.Text = "#zzz" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			c.ExitKeys = append([]string(nil), base.ExitKeys...)
			tt.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("got %v, want %v", err, tt.is)
			}
		})
	}
}
