package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/berrynoid/internal/core"
	"github.com/vovakirdan/berrynoid/internal/games/berrynoid"
)

// ModeSelection holds the user's choice from the mode menu.
type ModeSelection struct {
	Mode berrynoid.Mode
}

// GameID returns the registry ID of the selected mode.
func (s ModeSelection) GameID() string {
	if s.Mode == berrynoid.ModeEndless {
		return berrynoid.IDEndless
	}
	return berrynoid.IDCampaign
}

// ModeMenuModel lets users choose the game mode and browse the layouts.
type ModeMenuModel struct {
	layouts      []berrynoid.Layout
	cursor       int
	layoutCursor int
	inLayouts    bool
	width        int
	height       int
	selection    ModeSelection
	choosing     bool
	quitting     bool
}

// Menu entries
const (
	entryCampaign = iota
	entryEndless
	entryLayouts
	entryCount
)

// NewModeMenuModel creates a mode menu over the layouts that will be played.
func NewModeMenuModel(layouts []berrynoid.Layout, width, height int) ModeMenuModel {
	return ModeMenuModel{
		layouts:  layouts,
		width:    width,
		height:   height,
		choosing: true,
	}
}

// Init initializes the model.
func (m ModeMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := MapKeyToMenuAction(msg)
		if m.inLayouts {
			return m.handleLayoutsKey(action)
		}
		return m.handleModeKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ModeMenuModel) handleModeKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < entryCount-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case entryCampaign:
			m.choosing = false
			m.selection = ModeSelection{Mode: berrynoid.ModeCampaign}
			return m, tea.Quit
		case entryEndless:
			m.choosing = false
			m.selection = ModeSelection{Mode: berrynoid.ModeEndless}
			return m, tea.Quit
		case entryLayouts:
			m.inLayouts = true
			m.layoutCursor = 0
		}
	}

	return m, nil
}

func (m ModeMenuModel) handleLayoutsKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.layoutCursor > 0 {
			m.layoutCursor--
		}
	case MenuActionDown:
		if m.layoutCursor < len(m.layouts)-1 {
			m.layoutCursor++
		}
	case MenuActionBack, MenuActionSelect:
		m.inLayouts = false
	}

	return m, nil
}

// View renders the mode selection or the layout browser.
func (m ModeMenuModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	if m.inLayouts {
		return m.viewLayouts()
	}
	return m.viewModes()
}

func (m ModeMenuModel) viewModes() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B E R R Y N O I D", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	modes := []string{
		fmt.Sprintf("Campaign (%d levels)", len(m.layouts)),
		"Endless Mode",
		"Browse Layouts...",
	}

	for i, mode := range modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc/Q: Quit", m.width))

	return b.String()
}

func (m ModeMenuModel) viewLayouts() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("LAYOUTS", m.width))
	b.WriteString("\n\n")

	for i, l := range m.layouts {
		cursor := "  "
		if i == m.layoutCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %-12s %3d blocks", cursor, i+1, l.Name, l.Breakable())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.layoutCursor < len(m.layouts) {
		b.WriteString("\n")
		for _, row := range strings.Split(m.layouts[m.layoutCursor].String(), "\n") {
			b.WriteString(centerText(row, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m ModeMenuModel) Selected() *ModeSelection {
	if m.choosing || m.quitting {
		return nil
	}
	return &m.selection
}

// centerText pads text on the left to center it in width columns.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunModeMenu runs the mode menu and returns the selection, nil when the
// user quit.
func RunModeMenu(layouts []berrynoid.Layout, rt core.RuntimeConfig) (*ModeSelection, error) {
	model := NewModeMenuModel(layouts, rt.ScreenW, rt.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(ModeMenuModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
