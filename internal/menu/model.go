// ABOUTME: Bubbletea model for the vertical audio test menu
// ABOUTME: Lists the test cues, triggers the selected one and shows the last status
package menu

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
)

// Item is one menu entry
type Item int

const (
	ItemTestVertical Item = iota
	ItemTestDown
	ItemQuit
)

// Items is the menu in display order
var Items = []Item{ItemTestVertical, ItemTestDown, ItemQuit}

func (i Item) String() string {
	switch i {
	case ItemTestVertical:
		return "Test Vertical Audio"
	case ItemTestDown:
		return "Test Down Audio"
	case ItemQuit:
		return "Quit"
	default:
		return "unknown"
	}
}

// Direction is the cue an item triggers; ok is false for non-audio items
func (i Item) Direction() (dir sound.Direction, ok bool) {
	switch i {
	case ItemTestVertical:
		return sound.Up, true
	case ItemTestDown:
		return sound.Down, true
	default:
		return sound.Up, false
	}
}

// Trigger is what the model needs from a Controller
type Trigger interface {
	Trigger(dir sound.Direction) error
	Finished() <-chan uuid.UUID
}

// finishedMsg reports that a test cue was stopped
type finishedMsg uuid.UUID

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// Model represents the test menu state
type Model struct {
	trigger  Trigger
	cursor   int
	status   string
	failed   bool
	quitting bool
}

// NewModel creates a menu model driving trigger
func NewModel(trigger Trigger) Model {
	return Model{trigger: trigger, status: "Ready"}
}

// Init starts listening for finished cues
func (m Model) Init() tea.Cmd {
	return m.waitFinished()
}

func (m Model) waitFinished() tea.Cmd {
	if m.trigger == nil {
		return nil
	}
	ch := m.trigger.Finished()
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return finishedMsg(id)
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case finishedMsg:
		m.status = "Stopped test sound"
		m.failed = false
		return m, m.waitFinished()
	}
	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(Items)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.selectItem(Items[m.cursor])
	}
	return m, nil
}

func (m Model) selectItem(item Item) (tea.Model, tea.Cmd) {
	dir, ok := item.Direction()
	if !ok {
		m.quitting = true
		return m, tea.Quit
	}

	err := m.trigger.Trigger(dir)
	switch {
	case err == nil:
		m.status = fmt.Sprintf("Playing %s sound", dir)
		m.failed = false
	case errors.Is(err, ErrAlreadyPlaying):
		m.status = "Audio is already playing"
		m.failed = false
	default:
		m.status = err.Error()
		m.failed = true
	}
	return m, nil
}

// View renders the menu
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Vertical Audio"))
	b.WriteString("\n")

	for i, item := range Items {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + item.String()))
		} else {
			b.WriteString(itemStyle.Render("  " + item.String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(itemStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/↓:Select  enter:Play  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the highlighted item
func (m Model) Selected() Item { return Items[m.cursor] }

// Status returns the last status line
func (m Model) Status() string { return m.status }

// Run starts the menu on the terminal and blocks until the user quits
func Run(trigger Trigger, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(trigger), opts...)
	_, err := p.Run()
	return err
}
