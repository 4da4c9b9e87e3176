package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/tui/components/endurance"
	"github.com/julianstephens/gymsimple/internal/tui/components/play"
	"github.com/julianstephens/gymsimple/internal/tui/components/sessionview"
	"github.com/julianstephens/gymsimple/internal/workout"
)

// WorkoutModel runs a single workout as its own program, for `gymsimple play`
type WorkoutModel struct {
	player   play.Model
	help     help.Model
	session  *models.WorkoutSession
	finished bool
}

func NewWorkoutModel(runner *workout.Runner) WorkoutModel {
	return WorkoutModel{player: play.New(1, runner), help: help.New()}
}

// Session returns the saved session once the program has exited after a completed workout
func (m WorkoutModel) Session() (models.WorkoutSession, bool) {
	if m.session == nil {
		return models.WorkoutSession{}, false
	}
	return *m.session, true
}

func (m WorkoutModel) Init() tea.Cmd {
	return m.player.Init()
}

func (m WorkoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.player.SetSize(msg.Width, max(msg.Height-2, 0))
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			r := m.player.Runner()
			if r.Phase().Terminal() {
				// finished before the FinishedMsg arrived
				if s, ok := r.Session(); ok {
					m.session = &s
				}
			} else if err := r.Quit(); err != nil && !errors.Is(err, workout.ErrFinished) {
				logger.Debug("Failed to quit workout", "phase", r.Phase(), "error", err)
			}
			m.finished = true
			return m, tea.Quit
		}
	case play.FinishedMsg:
		if msg.Completed {
			m.session = &msg.Session
		}
		m.finished = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.player, cmd = m.player.Update(msg)
	return m, cmd
}

func (m WorkoutModel) View() string {
	if m.finished {
		if m.session != nil {
			return sessionview.Render(*m.session) + "\n"
		}
		return ""
	}
	k := m.player.Keys()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.player.View(),
		m.help.ShortHelpView([]key.Binding{k.Advance, k.Skip, k.Pause, k.Quit}),
	)
}

// EnduranceModel runs the endless circuit as its own program
type EnduranceModel struct {
	circuit endurance.Model
	result  *endurance.QuitMsg
}

func NewEnduranceModel() EnduranceModel {
	return EnduranceModel{circuit: endurance.New(1, workout.NewEndurance())}
}

// Result reports the rounds and time of the finished circuit
func (m EnduranceModel) Result() (endurance.QuitMsg, bool) {
	if m.result == nil {
		return endurance.QuitMsg{}, false
	}
	return *m.result, true
}

func (m EnduranceModel) Init() tea.Cmd {
	return m.circuit.Init()
}

func (m EnduranceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.circuit.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			c := m.circuit.Circuit()
			c.Quit()
			m.result = &endurance.QuitMsg{Rounds: c.Round(), Elapsed: c.Elapsed()}
			return m, tea.Quit
		}
	case endurance.QuitMsg:
		m.result = &msg
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.circuit, cmd = m.circuit.Update(msg)
	return m, cmd
}

func (m EnduranceModel) View() string {
	if m.result != nil {
		return ""
	}
	return m.circuit.View()
}
