package sessionlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/stats"
	"github.com/julianstephens/gymsimple/internal/timer"
)

type OpenSessionMsg struct {
	Session models.WorkoutSession
}

type DeleteSessionMsg struct {
	ID string
}

type Item struct {
	Session models.WorkoutSession
}

func (i Item) Title() string {
	return i.Session.Date.Local().Format("Mon Jan 2 2006, 15:04")
}

func (i Item) Description() string {
	s := stats.Summarize(i.Session)
	return fmt.Sprintf("%d exercises | %d sets | %d reps | %s",
		len(i.Session.Exercises), s.TotalSets, s.TotalReps, timer.FormatClock(int(s.Duration.Seconds())))
}

func (i Item) FilterValue() string { return i.Session.Date.Format("2006-01-02") }

type KeyMap struct {
	Open   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "review"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(sessions []models.WorkoutSession, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Delete}
	}

	m := Model{list: l, keys: keys}
	m.SetSessions(sessions)
	return m
}

func (m *Model) SetSessions(sessions []models.WorkoutSession) {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = Item{Session: s}
	}
	m.list.SetItems(items)
}

func (m Model) Len() int { return len(m.list.Items()) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenSessionMsg(i) }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteSessionMsg{ID: i.Session.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No workouts yet.\n  Select exercises and press 'p' to start one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
