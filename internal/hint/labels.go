// Package hint assigns hint labels to windows and lays the labels out on
// screen without overlap.
package hint

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyAlphabet is returned when labels are requested from an empty alphabet.
	ErrEmptyAlphabet = errors.New("hint alphabet is empty")
	// ErrAlphabetTooSmall is returned when more than one label is requested
	// from an alphabet with a single distinct character.
	ErrAlphabetTooSmall = errors.New("hint alphabet needs at least 2 distinct characters")
	// ErrExhausted is returned by Next once every planned label is in use.
	ErrExhausted = errors.New("no hint labels left")
)

// NormalizeAlphabet returns the distinct characters of chars in order of
// first appearance.
func NormalizeAlphabet(chars string) []rune {
	seen := make(map[rune]bool, len(chars))
	var out []rune
	for _, r := range chars {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// Generator hands out the labels of a minimal prefix-free code sized for a
// fixed number of windows.
type Generator struct {
	labels  []string
	planned map[string]bool
}

// NewGenerator plans total labels over the distinct characters of chars.
func NewGenerator(chars string, total int) (*Generator, error) {
	alphabet := NormalizeAlphabet(chars)
	switch {
	case total > 0 && len(alphabet) == 0:
		return nil, ErrEmptyAlphabet
	case total > 1 && len(alphabet) < 2:
		return nil, fmt.Errorf("%w: got %q for %d windows", ErrAlphabetTooSmall, string(alphabet), total)
	}
	labels := planLabels(alphabet, total)
	planned := make(map[string]bool, len(labels))
	for _, l := range labels {
		planned[l] = true
	}
	return &Generator{labels: labels, planned: planned}, nil
}

// Next returns the first planned label that neither is in used nor shares a
// prefix relation with a label in used.
func (g *Generator) Next(used map[string]bool) (string, error) {
	// Planned labels are prefix-free among themselves; only labels handed
	// out by someone else need the prefix check.
	var foreign []string
	for label, ok := range used {
		if ok && !g.planned[label] {
			foreign = append(foreign, label)
		}
	}
	for _, candidate := range g.labels {
		if used[candidate] || collides(candidate, foreign) {
			continue
		}
		return candidate, nil
	}
	return "", ErrExhausted
}

func collides(candidate string, others []string) bool {
	for _, label := range others {
		if strings.HasPrefix(candidate, label) || strings.HasPrefix(label, candidate) {
			return true
		}
	}
	return false
}

// Generate returns n distinct, prefix-free labels over chars.
func Generate(chars string, n int) ([]string, error) {
	g, err := NewGenerator(chars, n)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool, n)
	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		label, err := g.Next(used)
		if err != nil {
			return nil, err
		}
		used[label] = true
		labels = append(labels, label)
	}
	return labels, nil
}

// planLabels lays out the leaves of a K-ary tree with total leaves and
// minimal total depth. All leaves sit at depth d-1 or d, where d is the
// smallest depth with K^d >= total. The last m nodes at depth d-1 are
// expanded; every expansion but the final one uses all K children.
func planLabels(alphabet []rune, total int) []string {
	if total <= 0 {
		return nil
	}
	k := len(alphabet)
	if total <= k {
		labels := make([]string, total)
		for i := range labels {
			labels[i] = string(alphabet[i])
		}
		return labels
	}

	level := []string{""}
	for len(level)*k < total {
		level = extend(level, alphabet)
	}

	expand := ceilDiv(total-len(level), k-1)
	keep := len(level) - expand
	labels := append(make([]string, 0, total), level[:keep]...)
	for i, prefix := range level[keep:] {
		children := k
		if i == expand-1 {
			children = total - len(labels)
		}
		for _, r := range alphabet[:children] {
			labels = append(labels, prefix+string(r))
		}
	}
	return labels
}

func extend(level []string, alphabet []rune) []string {
	next := make([]string, 0, len(level)*len(alphabet))
	for _, prefix := range level {
		for _, r := range alphabet {
			next = append(next, prefix+string(r))
		}
	}
	return next
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
