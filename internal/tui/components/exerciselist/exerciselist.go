package exerciselist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/gymsimple/internal/models"
)

type AddExerciseMsg struct{}

type EditExerciseMsg struct {
	Exercise models.ExerciseDetails
}

type DeleteExerciseMsg struct {
	ID string
}

type ToggleSelectionMsg struct {
	ID string
}

// SelectAllMsg selects every exercise matching the list's current filter text
type SelectAllMsg struct {
	Search string
}

type ClearSelectionMsg struct{}

type PlayMsg struct{}

type EnduranceMsg struct{}

type Item struct {
	Exercise models.ExerciseDetails
}

func (i Item) Title() string {
	if order, ok := i.Exercise.Order(); ok && i.Exercise.Selected {
		return fmt.Sprintf("[%d] %s", order, i.Exercise.Name)
	}
	return "[ ] " + i.Exercise.Name
}

func (i Item) Description() string {
	e := i.Exercise
	weight := "bodyweight"
	if e.Weight.Value > 0 {
		weight = strconv.FormatFloat(e.Weight.Value, 'f', -1, 64) + " " + string(e.Weight.Unit)
	}
	desc := fmt.Sprintf("%d x %d | %ds rest | %s", e.TargetSets, e.TargetReps, e.TargetRestTime, weight)
	if len(e.Tags) > 0 {
		desc += " | #" + strings.Join(e.Tags, " #")
	}
	return desc
}

func (i Item) FilterValue() string { return i.Exercise.Name }

type KeyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Select    key.Binding
	SelectAll key.Binding
	Clear     key.Binding
	Play      key.Binding
	Endurance key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "select all"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear selection"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play"),
		),
		Endurance: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "endurance"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(exercises []models.ExerciseDetails, width, height int) Model {
	l := list.New(items(exercises), list.NewDefaultDelegate(), width, height)
	l.Title = "Exercises"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Select, keys.Play}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Select, keys.SelectAll, keys.Clear, keys.Play, keys.Endurance}
	}

	return Model{list: l, keys: keys}
}

func items(exercises []models.ExerciseDetails) []list.Item {
	out := make([]list.Item, len(exercises))
	for i, e := range exercises {
		out[i] = Item{Exercise: e}
	}
	return out
}

// SetExercises replaces the items and keeps the cursor in range
func (m *Model) SetExercises(exercises []models.ExerciseDetails) {
	m.list.SetItems(items(exercises))
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Len() int { return len(m.list.Items()) }

// Filtering reports whether the filter prompt has focus
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddExerciseMsg{} }
		case key.Matches(msg, m.keys.Play):
			return m, func() tea.Msg { return PlayMsg{} }
		case key.Matches(msg, m.keys.Endurance):
			return m, func() tea.Msg { return EnduranceMsg{} }
		case key.Matches(msg, m.keys.Clear):
			return m, func() tea.Msg { return ClearSelectionMsg{} }
		case key.Matches(msg, m.keys.SelectAll):
			search := m.list.FilterValue()
			return m, func() tea.Msg { return SelectAllMsg{Search: search} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditExerciseMsg(i) }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteExerciseMsg{ID: i.Exercise.ID} }
			}
		case key.Matches(msg, m.keys.Select):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleSelectionMsg{ID: i.Exercise.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No exercises yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
