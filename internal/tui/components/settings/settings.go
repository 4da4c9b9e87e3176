package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/debounce"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Width(22)

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

const (
	fieldPrepTime = iota
	fieldAutoRest
	fieldSkipLog
	fieldCount
)

// SavedMsg reports settings that were written to the store
type SavedMsg struct {
	Settings models.Settings
}

// committedMsg carries a prep time the debouncer let through
type committedMsg struct {
	value int
}

// waitExpiredMsg ends a waiter that saw no commit, so no goroutine outlives the screen
type waitExpiredMsg struct{}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	store    storage.Provider
	settings models.Settings
	input    textinput.Model
	debounce *debounce.Debouncer[int]
	waiting  bool
	focus    int
	keys     KeyMap
	err      error
}

func New(store storage.Provider, current models.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(constants.DefaultPrepTime)
	ti.CharLimit = 5
	ti.Width = 8
	ti.SetValue(strconv.Itoa(current.PrepTime))
	ti.Focus()

	return Model{
		store:    store,
		settings: current,
		input:    ti,
		debounce: debounce.New[int](constants.SettingsDebounce),
		keys:     DefaultKeyMap(),
	}
}

func (m Model) Settings() models.Settings { return m.settings }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// wait blocks for the next commit, giving up after a few debounce windows
func (m Model) wait() tea.Cmd {
	ch := m.debounce.C()
	return func() tea.Msg {
		select {
		case v := <-ch:
			return committedMsg{value: v}
		case <-time.After(4 * constants.SettingsDebounce):
			return waitExpiredMsg{}
		}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case committedMsg:
		m.waiting = false
		var cmd tea.Cmd
		// a value overtaken by newer input or a flush is dropped
		if n, err := strconv.Atoi(strings.TrimSpace(m.input.Value())); err == nil && n == msg.value {
			cmd = m.save(func(s *models.Settings) { s.PrepTime = msg.value })
		}
		if m.debounce.Pending() {
			m.waiting = true
			return m, tea.Batch(cmd, m.wait())
		}
		return m, cmd

	case waitExpiredMsg:
		m.waiting = false
		if m.debounce.Pending() {
			m.waiting = true
			return m, m.wait()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		}

		if m.focus != fieldPrepTime {
			if key.Matches(msg, m.keys.Toggle) {
				return m, m.save(func(s *models.Settings) {
					if m.focus == fieldAutoRest {
						s.AutoRest = !s.AutoRest
					} else {
						s.SkipLog = !s.SkipLog
					}
				})
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, tea.Batch(cmd, m.push())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// push queues the prep field for commit; anything but a positive integer cancels
// the pending value
func (m *Model) push() tea.Cmd {
	n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil || n <= 0 {
		m.debounce.Cancel()
		m.err = fmt.Errorf("prep time must be a whole number of seconds greater than 0")
		return nil
	}
	m.err = nil
	if n == m.settings.PrepTime {
		m.debounce.Cancel()
		return nil
	}
	m.debounce.Push(n)
	if m.waiting {
		return nil
	}
	m.waiting = true
	return m.wait()
}

// Flush writes a prep time still waiting in the debouncer. Call it before leaving the screen.
func (m Model) Flush() (Model, tea.Cmd) {
	v, ok := m.debounce.Flush()
	if !ok {
		return m, nil
	}
	return m, m.save(func(s *models.Settings) { s.PrepTime = v })
}

func (m *Model) save(change func(*models.Settings)) tea.Cmd {
	next := m.settings
	change(&next)
	if err := storage.SaveSettings(m.store, next); err != nil {
		logger.Error("Failed to save settings", "error", err)
		m.err = fmt.Errorf("failed to save settings: %w", err)
		return nil
	}
	m.settings = next
	return func() tea.Msg { return SavedMsg{Settings: next} }
}

func (m *Model) setFocus(i int) {
	m.focus = i
	if i == fieldPrepTime {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Settings"))
	b.WriteString("\n")

	row := func(i int, label, value string) {
		cursor := "  "
		l := labelStyle.Render(label)
		if i == m.focus {
			cursor = focusedStyle.Render("> ")
			l = focusedStyle.Render(labelStyle.Render(label))
		}
		b.WriteString(cursor + l + value + "\n")
	}

	row(fieldPrepTime, "Prep time (seconds)", m.input.View())
	row(fieldAutoRest, "Auto rest", checkbox(m.settings.AutoRest))
	row(fieldSkipLog, "Skip quick log", checkbox(m.settings.SkipLog))

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.debounce.Pending():
		b.WriteString(hintStyle.Render("saving..."))
	default:
		b.WriteString(hintStyle.Render("changes are saved automatically"))
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
