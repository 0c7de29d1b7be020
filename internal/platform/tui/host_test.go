package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/berrynoid/internal/core"
)

func TestPromptHostConfirmTwoPhase(t *testing.T) {
	h := newPromptHost(log.New(io.Discard))
	h.current = core.Press(core.ActionAbandon)

	assert.False(t, h.Confirm("Sure?"))
	require.True(t, h.open())
	p := h.top()
	assert.True(t, p.confirm)
	assert.Equal(t, "Sure?", p.msg)
	assert.Equal(t, core.Press(core.ActionAbandon), p.event)

	h.close()
	assert.False(t, h.open())

	h.arm(true)
	assert.True(t, h.Confirm("Sure?"))
	assert.False(t, h.open())

	// The armed answer is used once.
	assert.False(t, h.Confirm("Sure?"))
	assert.True(t, h.open())
}

func TestPromptHostAlertsQueue(t *testing.T) {
	h := newPromptHost(log.New(io.Discard))

	h.Alert("one")
	h.Alert("two")
	assert.Equal(t, "one", h.close().msg)
	assert.Equal(t, "two", h.top().msg)
	assert.False(t, h.top().confirm)
}

func TestPromptHostCursor(t *testing.T) {
	h := newPromptHost(log.New(io.Discard))
	assert.True(t, h.cursor)

	h.HideCursor()
	assert.False(t, h.cursor)
	h.ShowCursor()
	assert.True(t, h.cursor)
}
