package session

import (
	"testing"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/sequence"
)

type cellMeasurer struct{}

func (cellMeasurer) Measure(text string) (hint.Extents, error) {
	return hint.Extents{Width: float64(8 * len(text)), Height: 16, YBearing: -12}, nil
}

func buildTable(t *testing.T, chars string, n int) *hint.Table {
	t.Helper()
	var windows []model.Window
	for i := 0; i < n; i++ {
		windows = append(windows, model.Window{
			ID: model.WindowID(100 + i), X: (i % 4) * 200, Y: (i / 4) * 200, Width: 200, Height: 200,
		})
	}
	table, err := hint.BuildTable(windows, chars, 0.2, cellMeasurer{})
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func exitKeys(t *testing.T, specs ...string) []sequence.Sequence {
	t.Helper()
	seqs, err := sequence.ParseAll(specs)
	if err != nil {
		t.Fatal(err)
	}
	return seqs
}

func typeLabel(s *Session, label string) Verdict {
	var v Verdict
	for _, r := range label {
		v = s.KeyPress(string(r))
		s.KeyRelease(string(r))
		if v.Action == Accept || v.Action == Abort {
			return v
		}
	}
	return v
}

func TestKeyPress_FullLabelSelectsWindow(t *testing.T) {
	table := buildTable(t, "ab", 5)
	for _, e := range table.Entries() {
		s := New(table, Options{Chars: "ab"})
		v := typeLabel(s, e.Label)
		if v.Action != Accept {
			t.Fatalf("label %q: got %s, want accept", e.Label, v.Action)
		}
		if v.Window.ID != e.Window.ID {
			t.Errorf("label %q: got window %d, want %d", e.Label, v.Window.ID, e.Window.ID)
		}
	}
}

func TestKeyPress_SharedPrefixRedraws(t *testing.T) {
	table := buildTable(t, "asdfjkl", 8)
	s := New(table, Options{Chars: "asdfjkl"})

	v := s.KeyPress("l")
	if v.Action != Redraw {
		t.Fatalf("got %s, want redraw", v.Action)
	}
	if s.Pressed() != "l" {
		t.Errorf("pressed = %q, want %q", s.Pressed(), "l")
	}
	v = s.KeyPress("s")
	if v.Action != Accept {
		t.Fatalf("got %s, want accept", v.Action)
	}
	want, _ := table.Lookup("ls")
	if v.Window.ID != want.Window.ID {
		t.Errorf("got window %d, want %d", v.Window.ID, want.Window.ID)
	}
}

func TestKeyPress_DeadEndWithoutExitKeysAborts(t *testing.T) {
	table := buildTable(t, "asdfjkl", 8)
	s := New(table, Options{Chars: "asdfjkl"})

	s.KeyPress("l")
	if v := s.KeyPress("l"); v.Action != Abort {
		t.Errorf("got %s, want abort", v.Action)
	}
}

func TestKeyPress_DeadEndWithExitKeysRollsBack(t *testing.T) {
	table := buildTable(t, "asdfjkl", 8)
	s := New(table, Options{Chars: "asdfjkl", ExitKeys: exitKeys(t, "Control_L+g")})

	s.KeyPress("l")
	s.KeyRelease("l")
	if v := s.KeyPress("l"); v.Action != Ignore {
		t.Fatalf("got %s, want ignore", v.Action)
	}
	if s.Pressed() != "l" {
		t.Errorf("pressed = %q, want rollback to %q", s.Pressed(), "l")
	}
	s.KeyRelease("l")
	if v := s.KeyPress("d"); v.Action != Ignore {
		t.Fatalf("got %s, want ignore for dead end ld", v.Action)
	}
	if v := s.KeyPress("s"); v.Action != Accept {
		t.Errorf("got %s, want accept after rollback", v.Action)
	}
}

func TestKeyPress_EscapeAbortsAnytime(t *testing.T) {
	table := buildTable(t, "asdfjkl", 8)

	s := New(table, Options{Chars: "asdfjkl"})
	if v := s.KeyPress("Escape"); v.Action != Abort {
		t.Errorf("fresh session: got %s, want abort", v.Action)
	}

	s = New(table, Options{Chars: "asdfjkl", ExitKeys: exitKeys(t, "Control_L+g")})
	s.KeyPress("l")
	if v := s.KeyPress("Escape"); v.Action != Abort {
		t.Errorf("mid-sequence: got %s, want abort", v.Action)
	}
}

func TestKeyPress_ExitChordAborts(t *testing.T) {
	table := buildTable(t, "asdfjkl", 3)
	s := New(table, Options{Chars: "asdfjkl", ExitKeys: exitKeys(t, "Control_L+g")})

	if v := s.KeyPress("Control_L"); v.Action != Ignore {
		t.Fatalf("Control_L: got %s, want ignore", v.Action)
	}
	if v := s.KeyPress("g"); v.Action != Abort {
		t.Fatalf("Control_L+g: got %s, want abort", v.Action)
	}
}

func TestKeyPress_ReleasedChordDoesNotFalselyExit(t *testing.T) {
	table := buildTable(t, "asdfjkl", 3)
	s := New(table, Options{Chars: "asdfjkl", ExitKeys: exitKeys(t, "Control_L+g")})

	s.KeyPress("g")
	s.KeyRelease("g")
	if v := s.KeyPress("Control_L"); v.Action != Ignore {
		t.Fatalf("got %s, want ignore", v.Action)
	}
	if v := s.KeyPress("h"); v.Action != Ignore {
		t.Fatalf("unrelated key after releasing g: got %s, want ignore", v.Action)
	}
}

func TestKeyPress_NonAlphabetKeyIgnored(t *testing.T) {
	table := buildTable(t, "asdfjkl", 3)
	s := New(table, Options{Chars: "asdfjkl"})

	for _, k := range []string{"Shift_L", "x", "Return", "as"} {
		if v := s.KeyPress(k); v.Action != Ignore {
			t.Errorf("%q: got %s, want ignore", k, v.Action)
		}
		s.KeyRelease(k)
	}
	if s.Pressed() != "" {
		t.Errorf("pressed = %q, want empty", s.Pressed())
	}
	if v := s.KeyPress("a"); v.Action != Accept {
		t.Errorf("got %s, want accept", v.Action)
	}
}

func TestKeyPress_EmptySymbolDiscarded(t *testing.T) {
	table := buildTable(t, "asdfjkl", 3)
	s := New(table, Options{Chars: "asdfjkl"})
	if v := s.KeyPress(""); v.Action != Ignore {
		t.Errorf("got %s, want ignore", v.Action)
	}
	s.KeyRelease("")
}

func TestKeyPress_HintKeysHeldInExitChordAreNotTyped(t *testing.T) {
	table := buildTable(t, "ab", 3)
	s := New(table, Options{Chars: "ab", ExitKeys: exitKeys(t, "Shift_L+a Shift_L+b")})

	s.KeyPress("Shift_L")
	if v := s.KeyPress("a"); v.Action != Ignore {
		t.Fatalf("got %s, want ignore while chord in progress", v.Action)
	}
	if s.Pressed() != "" {
		t.Errorf("pressed = %q, want empty", s.Pressed())
	}
	s.KeyRelease("a")
	s.KeyRelease("Shift_L")
	s.KeyPress("Shift_L")
	if v := s.KeyPress("b"); v.Action != Abort {
		t.Errorf("got %s, want abort", v.Action)
	}
}

func TestKeyPress_UppercaseAlphabet(t *testing.T) {
	table := buildTable(t, "ASDF", 6)
	for _, e := range table.Entries() {
		s := New(table, Options{Chars: "ASDF", ExitKeys: exitKeys(t, "Control_L+g")})
		s.KeyPress("Shift_L")
		v := typeLabel(s, e.Label)
		if v.Action != Accept || v.Window.ID != e.Window.ID {
			t.Errorf("label %q: got %s for window %d, want accept for %d", e.Label, v.Action, v.Window.ID, e.Window.ID)
		}
	}

	s := New(table, Options{Chars: "ASDF"})
	if v := s.KeyPress("a"); v.Action != Ignore {
		t.Errorf("lowercase key: got %s, want ignore", v.Action)
	}
}

func TestButtonPressAborts(t *testing.T) {
	s := New(buildTable(t, "ab", 2), Options{Chars: "ab"})
	if v := s.ButtonPress(); v.Action != Abort {
		t.Errorf("got %s, want abort", v.Action)
	}
}
