// Package session runs one window selection: it owns the typed hint keys
// and the exit-chord tracker and turns each key event into a verdict.
package session

import (
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/sequence"
)

// EscapeKey aborts the selection whenever it is pressed.
const EscapeKey = "Escape"

// Action tells the event loop what to do after a key event.
type Action int

const (
	// Ignore means keep waiting without redrawing.
	Ignore Action = iota
	// Redraw means the typed prefix changed and the hints must be repainted.
	Redraw
	// Accept means a window was selected.
	Accept
	// Abort means stop without selecting anything.
	Abort
)

func (a Action) String() string {
	switch a {
	case Redraw:
		return "redraw"
	case Accept:
		return "accept"
	case Abort:
		return "abort"
	default:
		return "ignore"
	}
}

// Verdict is the outcome of one key event.
type Verdict struct {
	Action Action
	// Window is set when Action is Accept.
	Window model.Window
}

// Options configure a Session.
type Options struct {
	// Chars is the hint alphabet the table was built with.
	Chars string
	// ExitKeys are chord sequences that abort the selection.
	ExitKeys []sequence.Sequence
	Logger   *slog.Logger
}

// Session holds the mutable state of one selection. It is not safe for
// concurrent use; the event loop owns it.
type Session struct {
	table    *hint.Table
	alphabet map[rune]bool
	exits    *sequence.Tracker
	log      *slog.Logger

	pressed string
}

// New starts a session over a built label table.
func New(table *hint.Table, opts Options) *Session {
	alphabet := make(map[rune]bool)
	for _, r := range hint.NormalizeAlphabet(opts.Chars) {
		alphabet[r] = true
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		table:    table,
		alphabet: alphabet,
		exits:    sequence.NewTracker(opts.ExitKeys),
		log:      logger,
	}
}

// Table returns the label table the session matches against.
func (s *Session) Table() *hint.Table {
	return s.table
}

// Pressed returns the hint keys typed so far.
func (s *Session) Pressed() string {
	return s.pressed
}

// KeyPress handles a key going down. sym is the resolved key name, either a
// printable character such as "a" or a keysym name such as "Control_L".
func (s *Session) KeyPress(sym string) Verdict {
	if sym == "" {
		s.log.Warn("discarding key press without a symbol")
		return Verdict{Action: Ignore}
	}

	s.exits.Press(sym)
	if sym == EscapeKey {
		s.log.Info("escape pressed")
		return Verdict{Action: Abort}
	}
	if s.exits.Matches() {
		s.log.Info("exit sequence matched", "sequence", s.exits.Live().String())
		return Verdict{Action: Abort}
	}

	if !s.isHintKey(sym) {
		s.log.Warn("pressed key is not a hint character", "key", sym)
		return Verdict{Action: Ignore}
	}
	if s.exits.InProgress() {
		s.log.Debug("exit sequence in progress, not adding key", "key", sym)
		return Verdict{Action: Ignore}
	}

	s.pressed += sym
	s.log.Info("current key sequence", "pressed", s.pressed)

	switch s.table.Match(s.pressed) {
	case hint.MatchExact:
		entry, _ := s.table.Lookup(s.pressed)
		s.log.Info("found matching window", "label", entry.Label, "window", entry.Window.ID)
		return Verdict{Action: Accept, Window: entry.Window}
	case hint.MatchPrefix:
		return Verdict{Action: Redraw}
	default:
		s.log.Warn("no more matches possible with current key sequence", "pressed", s.pressed)
		// A dead end only ends the run when no exit keys are configured;
		// otherwise the key is dropped and the session keeps waiting.
		if len(s.exits.Targets()) == 0 {
			return Verdict{Action: Abort}
		}
		s.pressed = s.pressed[:len(s.pressed)-len(sym)]
		return Verdict{Action: Ignore}
	}
}

// KeyRelease handles a key going up.
func (s *Session) KeyRelease(sym string) {
	if sym == "" {
		return
	}
	s.exits.Release(sym)
}

// ButtonPress handles a mouse button press, which always aborts.
func (s *Session) ButtonPress() Verdict {
	s.log.Info("mouse button pressed, aborting")
	return Verdict{Action: Abort}
}

func (s *Session) isHintKey(sym string) bool {
	r, size := utf8.DecodeRuneInString(sym)
	return size == len(sym) && r != utf8.RuneError && s.alphabet[r]
}
