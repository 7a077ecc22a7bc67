package session

import (
	"context"
	"fmt"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/model"
)

// EventKind identifies an input event delivered by the display.
type EventKind int

const (
	// EventExpose asks for the hints to be repainted.
	EventExpose EventKind = iota
	EventKeyPress
	EventKeyRelease
	EventButtonPress
	// EventClosed means the display connection went away.
	EventClosed
)

// Event is one input event with its key already resolved to a name.
type Event struct {
	Kind EventKind
	Key  string
}

// EventSource blocks until the next input event is available.
type EventSource interface {
	NextEvent() (Event, error)
}

// Renderer paints every hint, highlighting the typed prefix.
type Renderer interface {
	Draw(table *hint.Table, pressed string) error
}

// Result is the outcome of a finished run.
type Result struct {
	Window   model.Window
	Selected bool
}

// Run drives the session from src until it selects a window or aborts.
// Aborting is not an error; the returned Result then has Selected false.
// A failed repaint ends the run with an error.
func (s *Session) Run(ctx context.Context, src EventSource, r Renderer) (Result, error) {
	var result Result
	closed := false
	for !closed {
		if ctx.Err() != nil {
			s.log.Info("selection cancelled", "err", ctx.Err())
			return Result{}, nil
		}

		ev, err := src.NextEvent()
		if err != nil {
			return Result{}, fmt.Errorf("wait for event: %w", err)
		}

		switch ev.Kind {
		case EventClosed:
			closed = true
		case EventExpose:
			if err := r.Draw(s.table, s.pressed); err != nil {
				return Result{}, fmt.Errorf("draw hints: %w", err)
			}
		case EventButtonPress:
			s.ButtonPress()
			closed = true
		case EventKeyRelease:
			s.KeyRelease(ev.Key)
		case EventKeyPress:
			v := s.KeyPress(ev.Key)
			switch v.Action {
			case Redraw:
				if err := r.Draw(s.table, s.pressed); err != nil {
					return Result{}, fmt.Errorf("draw hints: %w", err)
				}
			case Accept:
				result = Result{Window: v.Window, Selected: true}
				closed = true
			case Abort:
				closed = true
			}
		}
	}
	return result, nil
}
