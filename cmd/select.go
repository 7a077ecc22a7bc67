package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mj1618/winhint/internal/output"
	"github.com/mj1618/winhint/internal/platform"
	"github.com/mj1618/winhint/internal/platform/x11"
	"github.com/mj1618/winhint/internal/render"
	"github.com/mj1618/winhint/internal/session"
)

// displayer is implemented by backends that already hold an X connection.
type displayer interface {
	Display() *x11.Display
}

func runSelect(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	log := slog.Default()

	backend, err := platform.Open(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	font, err := render.LoadFont(cfg.Font, cfg.FontSize)
	if err != nil {
		return err
	}
	defer font.Close()

	table, err := buildTable(cfg, backend, platform.ListOptions{}, font)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		log.Warn("no windows to hint")
		return nil
	}
	log.Debug("built hint table", "windows", table.Len(), "font", cfg.Font, "size", font.Size())

	theme, err := cfg.Theme()
	if err != nil {
		return err
	}
	exits, err := cfg.ExitSequences()
	if err != nil {
		return err
	}

	var display *x11.Display
	if d, ok := backend.(displayer); ok {
		display = d.Display()
	} else {
		display, err = x11.Connect("")
		if err != nil {
			return err
		}
		defer display.Close()
	}

	overlay, err := x11.OpenOverlay(display, table, render.NewPainter(font, theme), log)
	if err != nil {
		return err
	}
	sess := session.New(table, session.Options{Chars: cfg.Chars, ExitKeys: exits, Logger: log})
	res, runErr := sess.Run(cmd.Context(), overlay, overlay)
	if err := overlay.Close(); err != nil {
		log.Warn("couldn't close overlay", "err", err)
	}
	if runErr != nil {
		return runErr
	}
	if !res.Selected {
		return nil
	}

	if err := output.PrintSelection(cmd.OutOrStdout(), res.Window.ID); err != nil {
		return err
	}
	if cfg.Focus {
		if err := backend.FocusWindow(res.Window.ID); err != nil {
			return fmt.Errorf("couldn't focus window: %w", err)
		}
	}
	return nil
}
