package endurance

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gymsimple/internal/timer"
	"github.com/julianstephens/gymsimple/internal/workout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	stationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type TickMsg struct {
	ID   int
	Time time.Time
}

// QuitMsg is sent when the circuit is abandoned. Nothing is recorded.
type QuitMsg struct {
	Rounds  int
	Elapsed string
}

type KeyMap struct {
	Complete key.Binding
	Skip     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "complete set"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip countdown"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

type Model struct {
	id          int
	circuit     *workout.Endurance
	keys        KeyMap
	bar         progress.Model
	confirmQuit bool
	width       int
	height      int
}

func New(id int, circuit *workout.Endurance) Model {
	return Model{
		id:      id,
		circuit: circuit,
		keys:    DefaultKeyMap(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Circuit() *workout.Endurance { return m.circuit }

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || m.circuit.Phase() == workout.PhaseQuit {
			return m, nil
		}
		m.circuit.Tick()
		return m, m.tick()

	case tea.KeyMsg:
		if m.confirmQuit {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.confirmQuit = false
				m.circuit.Quit()
				rounds, elapsed := m.circuit.Round(), m.circuit.Elapsed()
				return m, func() tea.Msg { return QuitMsg{Rounds: rounds, Elapsed: elapsed} }
			case key.Matches(msg, m.keys.Cancel):
				m.confirmQuit = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.confirmQuit = true
		case key.Matches(msg, m.keys.Skip):
			_ = m.circuit.Skip()
		case key.Matches(msg, m.keys.Complete):
			// enter during a countdown skips it, so one key drives the whole circuit
			if m.circuit.Phase() == workout.PhasePerformSet {
				_ = m.circuit.CompleteSet()
			} else {
				_ = m.circuit.Skip()
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	c := m.circuit
	station := c.Current()

	body := []string{
		dimStyle.Render(fmt.Sprintf("Round %d  •  Total %s", c.Round(), c.Elapsed())),
	}

	switch c.Phase() {
	case workout.PhasePrep:
		body = append(body, titleStyle.Render("Get Ready"), stationStyle.Render(station.Name), m.countdownView())
	case workout.PhaseRest:
		body = append(body, titleStyle.Render("Rest"), dimStyle.Render("Up next"),
			stationStyle.Render(station.Name), m.countdownView())
	case workout.PhasePerformSet:
		body = append(body, titleStyle.Render("Go!"), stationStyle.Render(station.Name),
			countStyle.Render(fmt.Sprintf("%d %s", station.Reps, station.Unit())),
			dimStyle.Render("enter: set complete"))
	case workout.PhaseQuit:
		body = append(body, titleStyle.Render("Circuit ended"))
	}

	if m.confirmQuit {
		body = append(body, "", warnStyle.Render("End the circuit? Nothing will be saved."), "[y] Yes  [n] No")
	}

	return lipgloss.Place(m.width, max(m.height, 1),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body...),
	)
}

func (m Model) countdownView() string {
	c := m.circuit
	return lipgloss.JoinVertical(lipgloss.Center,
		countStyle.Render(timer.FormatClock(c.Remaining())),
		m.bar.ViewAs(c.Progress()),
	)
}
