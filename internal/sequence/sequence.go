// Package sequence parses chorded key sequences such as "Control_L+g" or
// "Shift_L+a Shift_L+b" and tracks the keys a user is holding to detect them.
package sequence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformed is returned for sequences that cannot be parsed.
var ErrMalformed = errors.New("malformed key sequence")

// KeySeparator joins the keys of one chord.
const KeySeparator = "+"

// Combo is a set of keys held at the same time.
type Combo map[string]bool

// NewCombo returns a combo holding keys.
func NewCombo(keys ...string) Combo {
	c := make(Combo, len(keys))
	for _, k := range keys {
		c[k] = true
	}
	return c
}

// Equal reports whether both combos hold exactly the same keys.
func (c Combo) Equal(o Combo) bool {
	if len(c) != len(o) {
		return false
	}
	for k := range c {
		if !o[k] {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every key of c is also in o.
func (c Combo) SubsetOf(o Combo) bool {
	for k := range c {
		if !o[k] {
			return false
		}
	}
	return true
}

// Keys returns the keys in sorted order.
func (c Combo) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c Combo) clone() Combo {
	out := make(Combo, len(c))
	for k := range c {
		out[k] = true
	}
	return out
}

func (c Combo) String() string {
	return strings.Join(c.Keys(), KeySeparator)
}

// Sequence is an ordered list of chords.
type Sequence []Combo

// Equal reports whether both sequences have the same chords in the same order.
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Keys returns the number of keys across all chords.
func (s Sequence) Keys() int {
	n := 0
	for _, c := range s {
		n += len(c)
	}
	return n
}

// partialOf reports whether s could still grow into target: every chord but
// the last matches exactly and the last one is a subset of its counterpart.
func (s Sequence) partialOf(target Sequence) bool {
	if len(s) == 0 || len(s) > len(target) {
		return false
	}
	last := len(s) - 1
	for i := 0; i < last; i++ {
		if !s[i].Equal(target[i]) {
			return false
		}
	}
	return s[last].SubsetOf(target[last])
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Parse reads a sequence of whitespace-separated chords whose keys are
// joined by "+", e.g. "Control_L+g" or "Shift_L+a Shift_L+b".
func Parse(s string) (Sequence, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrMalformed)
	}
	seq := make(Sequence, 0, len(fields))
	for _, chord := range fields {
		keys := strings.Split(chord, KeySeparator)
		combo := make(Combo, len(keys))
		for _, k := range keys {
			if k == "" {
				return nil, fmt.Errorf("%w: empty key in chord %q", ErrMalformed, chord)
			}
			combo[k] = true
		}
		seq = append(seq, combo)
	}
	return seq, nil
}

// ParseAll parses one sequence per entry of specs.
func ParseAll(specs []string) ([]Sequence, error) {
	seqs := make([]Sequence, 0, len(specs))
	for _, spec := range specs {
		seq, err := Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("exit keys %q: %w", spec, err)
		}
		seqs = append(seqs, seq)
	}
	return seqs, nil
}
