package tui

import (
	"time"

	"github.com/vovakirdan/berrynoid/internal/core"
)

// Terminals report key repeats but never key releases. A held key is
// considered released once no repeat arrived within the window: the
// first window covers the terminal's initial repeat delay.
const (
	holdFirstRepeat = 550 * time.Millisecond
	holdRepeat      = 120 * time.Millisecond
)

// holdTracker synthesizes release events for the movement keys.
type holdTracker struct {
	first    time.Duration
	repeat   time.Duration
	deadline map[core.Action]time.Time
}

func newHoldTracker() *holdTracker {
	return &holdTracker{
		first:    holdFirstRepeat,
		repeat:   holdRepeat,
		deadline: make(map[core.Action]time.Time),
	}
}

// opposite returns the other movement action.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// press registers a key event for a movement action. It reports whether
// this is a fresh press, as opposed to a repeat of a held key.
func (h *holdTracker) press(a core.Action, now time.Time) bool {
	if _, held := h.deadline[a]; held {
		h.deadline[a] = now.Add(h.repeat)
		return false
	}
	h.deadline[a] = now.Add(h.first)
	return true
}

// release forgets a held action. It reports whether it was held.
func (h *holdTracker) release(a core.Action) bool {
	if _, held := h.deadline[a]; !held {
		return false
	}
	delete(h.deadline, a)
	return true
}

// expired releases and returns the actions whose window has passed,
// in action order.
func (h *holdTracker) expired(now time.Time) []core.Action {
	var out []core.Action
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight} {
		if d, held := h.deadline[a]; held && !now.Before(d) {
			delete(h.deadline, a)
			out = append(out, a)
		}
	}
	return out
}

// releaseAll releases and returns every held action, in action order.
func (h *holdTracker) releaseAll() []core.Action {
	var out []core.Action
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight} {
		if h.release(a) {
			out = append(out, a)
		}
	}
	return out
}
