package sequence

// Tracker follows key presses and releases and reports when the keys typed
// so far form one of the target sequences.
//
// The live sequence is a list of chords. A press joins the newest chord
// while any of its keys is still held and starts a new chord otherwise. A
// release removes the key from the newest chord; once its last key is
// released the chord is frozen as it was just before releasing began.
type Tracker struct {
	targets []Sequence
	maxLen  int

	done Sequence
	held Combo
	peak Combo
}

// NewTracker returns a tracker watching for targets.
func NewTracker(targets []Sequence) *Tracker {
	t := &Tracker{targets: targets}
	for _, s := range targets {
		if len(s) > t.maxLen {
			t.maxLen = len(s)
		}
	}
	return t
}

// Targets returns the sequences the tracker watches for.
func (t *Tracker) Targets() []Sequence {
	return t.targets
}

// Press records key going down.
func (t *Tracker) Press(key string) {
	if len(t.held) > 0 {
		t.held[key] = true
		t.peak = nil
		return
	}
	t.held = NewCombo(key)
	t.peak = nil
	t.trim()
}

// Release records key going up. Keys that were not recorded as held, for
// instance because they went down before tracking started, are ignored.
func (t *Tracker) Release(key string) {
	if !t.held[key] {
		return
	}
	if t.peak == nil {
		t.peak = t.held.clone()
	}
	delete(t.held, key)
	if len(t.held) > 0 {
		return
	}
	t.done = append(t.done, t.peak)
	t.held = nil
	t.peak = nil
	if t.maxLen > 0 && len(t.done) > t.maxLen {
		t.done = t.done[len(t.done)-t.maxLen:]
	}
}

// trim drops leading chords until the live sequence could still become a
// target, so earlier unrelated keys never block a later match.
func (t *Tracker) trim() {
	for len(t.done) > 0 && !t.partial() {
		t.done = t.done[1:]
	}
}

func (t *Tracker) partial() bool {
	live := t.Live()
	for _, target := range t.targets {
		if live.partialOf(target) {
			return true
		}
	}
	return false
}

// Live returns a copy of the live sequence, newest chord last.
func (t *Tracker) Live() Sequence {
	live := make(Sequence, 0, len(t.done)+1)
	for _, c := range t.done {
		live = append(live, c.clone())
	}
	if len(t.held) > 0 {
		live = append(live, t.held.clone())
	}
	return live
}

// Matches reports whether the live sequence equals one of the targets.
func (t *Tracker) Matches() bool {
	live := t.Live()
	for _, target := range t.targets {
		if live.Equal(target) {
			return true
		}
	}
	return false
}

// InProgress reports whether the user is part-way through a target that
// spans more than one key, e.g. holding Control_L of "Control_L+g" and
// then pressing another key of the chord.
func (t *Tracker) InProgress() bool {
	live := t.Live()
	if live.Keys() < 2 {
		return false
	}
	for _, target := range t.targets {
		if live.partialOf(target) && !live.Equal(target) {
			return true
		}
	}
	return false
}

// Reset forgets all recorded keys.
func (t *Tracker) Reset() {
	t.done = nil
	t.held = nil
	t.peak = nil
}
