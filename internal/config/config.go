// Package config merges defaults, the config file, WINHINT_ environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/logging"
	"github.com/mj1618/winhint/internal/render"
	"github.com/mj1618/winhint/internal/sequence"
)

// EnvPrefix prefixes every environment override, e.g. WINHINT_FONT_SIZE.
const EnvPrefix = "WINHINT"

// Config holds application configuration.
type Config struct {
	Chars    string
	Margin   float64
	ExitKeys []string
	Font     string
	FontSize float64
	Colors   render.Colors
	Backend  string
	Focus    bool
	LogLevel string
}

// RegisterFlags defines every config key as a flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := render.DefaultColors()
	fs.String("config", "", "Config file (default $WINHINT_CONFIG or ~/.config/winhint/config.yaml)")
	fs.StringP("chars", "c", "asdfjkl", "Characters to build hints from")
	fs.Float64P("margin", "m", 0.2, "Padding around the hint text, as a factor of its size")
	fs.StringArrayP("exit-keys", "e", nil, `Key sequence that aborts, e.g. "Control_L+g" (repeatable)`)
	fs.String("font", "", "TrueType/OpenType font file (default Go Mono)")
	fs.Float64("font-size", render.DefaultFontSize, "Hint font size in pixels")
	fs.String("textcolor", d.Text, "Hint text colour")
	fs.String("textcoloralt", d.TextAlt, "Colour of the already typed part of a hint")
	fs.String("bgcolor", d.Background, "Hint background colour")
	fs.String("textcolorcurrent", d.TextCurrent, "Hint text colour on the focused window")
	fs.String("textcolorcurrentalt", d.TextCurrentAlt, "Typed-part colour on the focused window")
	fs.String("bgcolorcurrent", d.BackgroundCurrent, "Hint background colour on the focused window")
	fs.String("backend", "auto", `Window backend: ewmh, stdin or auto`)
	fs.Bool("focus", true, "Focus the selected window")
	fs.String("log-level", "warn", "Log level: debug, info, warn or error")
}

// Load reads configuration from file and env. Env var overrides use prefix WINHINT_.
// Flags that were set on the command line take precedence over both.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	v.SetConfigType("yaml")
	cfgPath := os.Getenv(EnvPrefix + "_CONFIG")
	if f := fs.Lookup("config"); f != nil && f.Changed {
		cfgPath = f.Value.String()
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "winhint"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		Chars:    v.GetString("chars"),
		Margin:   v.GetFloat64("margin"),
		ExitKeys: v.GetStringSlice("exit-keys"),
		Font:     v.GetString("font"),
		FontSize: v.GetFloat64("font-size"),
		Colors: render.Colors{
			Text:              v.GetString("textcolor"),
			TextAlt:           v.GetString("textcoloralt"),
			Background:        v.GetString("bgcolor"),
			TextCurrent:       v.GetString("textcolorcurrent"),
			TextCurrentAlt:    v.GetString("textcolorcurrentalt"),
			BackgroundCurrent: v.GetString("bgcolorcurrent"),
		},
		Backend:  v.GetString("backend"),
		Focus:    v.GetBool("focus"),
		LogLevel: v.GetString("log-level"),
	}, nil
}

// ExitSequences parses the configured exit keys.
func (c Config) ExitSequences() ([]sequence.Sequence, error) {
	return sequence.ParseAll(c.ExitKeys)
}

// Theme parses the configured colours.
func (c Config) Theme() (render.Theme, error) {
	return render.ParseTheme(c.Colors)
}

// Validate reports the first setting that would make a run fail.
func (c Config) Validate() error {
	if len(hint.NormalizeAlphabet(c.Chars)) == 0 {
		return fmt.Errorf("chars: %w", hint.ErrEmptyAlphabet)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %g", c.Margin)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font-size must be positive, got %g", c.FontSize)
	}
	if c.Backend == "" {
		return errors.New("backend must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.ExitSequences(); err != nil {
		return err
	}
	if _, err := c.Theme(); err != nil {
		return err
	}
	return nil
}
