package tui

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when the game cannot take over a terminal.
var ErrNotTerminal = errors.New("tui: stdin and stdout must be a terminal")

// CheckEnvironment verifies that the process can run the interactive
// game: both ends attached to a terminal whose size can be read.
func CheckEnvironment() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	if _, _, err := term.GetSize(int(os.Stdout.Fd())); err != nil {
		return fmt.Errorf("tui: cannot read terminal size: %w", err)
	}
	return nil
}

// TerminalSize returns the terminal size, or 80x24 when it is unknown.
func TerminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func sizeHint(width, height, minW, minH int) string {
	return fmt.Sprintf("%dx%d, need at least %dx%d", width, height, minW, minH)
}
