package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/berrynoid/internal/core"
)

// prompt is one modal message waiting for the player.
type prompt struct {
	msg     string
	confirm bool
	event   core.InputEvent // input that asked, replayed on "yes"
}

// promptHost implements core.Host on top of the runner's modal.
//
// A game asks Confirm synchronously, but the answer arrives with a later
// key press. The first call opens the modal and answers no; once the
// player says yes the runner arms the answer and dispatches the same
// event again, and Confirm returns the armed answer.
type promptHost struct {
	logger  *log.Logger
	queue   []prompt
	current core.InputEvent // event being dispatched
	armed   bool
	answer  bool
	cursor  bool
}

func newPromptHost(logger *log.Logger) *promptHost {
	return &promptHost{logger: logger, cursor: true}
}

// Alert queues an informational modal.
func (h *promptHost) Alert(msg string) {
	h.logger.Debug("alert", "msg", msg)
	h.queue = append(h.queue, prompt{msg: msg})
}

// Confirm returns the armed answer, or opens a modal and answers no.
func (h *promptHost) Confirm(msg string) bool {
	if h.armed {
		h.armed = false
		return h.answer
	}
	h.logger.Debug("confirm", "msg", msg, "event", h.current)
	h.queue = append(h.queue, prompt{msg: msg, confirm: true, event: h.current})
	return false
}

// ShowCursor marks the terminal cursor visible.
func (h *promptHost) ShowCursor() { h.cursor = true }

// HideCursor marks the terminal cursor hidden.
func (h *promptHost) HideCursor() { h.cursor = false }

// arm sets the answer the next Confirm returns.
func (h *promptHost) arm(answer bool) {
	h.armed = true
	h.answer = answer
}

// disarm drops an answer nobody asked for.
func (h *promptHost) disarm() {
	h.armed = false
}

// open reports whether a modal is showing.
func (h *promptHost) open() bool {
	return len(h.queue) > 0
}

// top returns the modal on screen.
func (h *promptHost) top() prompt {
	return h.queue[0]
}

// close removes the modal on screen and returns it.
func (h *promptHost) close() prompt {
	p := h.queue[0]
	h.queue = h.queue[1:]
	return p
}
