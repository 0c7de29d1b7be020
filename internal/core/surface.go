package core

import "time"

// Sprite is a drawable image as understood by a text surface: a glyph
// repeated over the destination rectangle, in one color.
type Sprite struct {
	Glyph rune
	Color Color
}

// IsZero reports whether the sprite was never set.
func (s Sprite) IsZero() bool {
	return s.Glyph == 0
}

// Surface is the render target a game draws into, in world units.
// Implementations project world coordinates onto whatever they display.
type Surface interface {
	FillRect(r Rect, glyph rune, c Color)
	FillCircle(cx, cy, radius float64, glyph rune, c Color)
	DrawImage(img Sprite, dst Rect)
	DrawText(x, y float64, text string, c Color)
	DrawTextCentered(y float64, text string, c Color)
}

// Host provides the blocking user-facing primitives a game needs.
// Confirm returns the user's answer; Alert only informs.
type Host interface {
	Alert(msg string)
	Confirm(msg string) bool
	ShowCursor()
	HideCursor()
}

// Clock is the frame clock a runner samples once per tick.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// NopHost answers every confirmation with a fixed value and ignores alerts.
// Headless runs and tests use it.
type NopHost struct {
	Answer bool
}

// Alert discards the message.
func (h NopHost) Alert(string) {}

// Confirm returns the fixed Answer.
func (h NopHost) Confirm(string) bool { return h.Answer }

// ShowCursor does nothing.
func (h NopHost) ShowCursor() {}

// HideCursor does nothing.
func (h NopHost) HideCursor() {}
