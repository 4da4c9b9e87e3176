package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/gymsimple/internal/catalog"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/tui/components/endurance"
	"github.com/julianstephens/gymsimple/internal/tui/components/exerciselist"
	"github.com/julianstephens/gymsimple/internal/tui/components/play"
	"github.com/julianstephens/gymsimple/internal/tui/components/sessionlist"
	"github.com/julianstephens/gymsimple/internal/tui/components/settings"
	"github.com/julianstephens/gymsimple/internal/validation"
	"github.com/julianstephens/gymsimple/internal/workout"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateEditing(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StatePlay:
		return m.updatePlay(msg)
	case StateEndurance:
		return m.updateEndurance(msg)
	case StateSessionDetail:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
			m.state = StateSessions
			return m, nil
		}
		var cmd tea.Cmd
		m.sessionView, cmd = m.sessionView.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// the filter prompt owns the keyboard while it is open
		if m.state == StateExercises && m.exerciseList.Filtering() {
			break
		}
		switch {
		case msg.String() == "ctrl+c" || (key.Matches(msg, m.keys.Quit) && m.state != StateSettings):
			if m.state == StateSettings {
				m.settingsModel, _ = m.settingsModel.Flush()
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m.switchTab((m.state + 1) % tabCount)
		case key.Matches(msg, m.keys.ShiftTab):
			return m.switchTab((m.state - 1 + tabCount) % tabCount)
		}

	case exerciselist.AddExerciseMsg:
		return m.openForm("", defaultExercise())

	case exerciselist.EditExerciseMsg:
		return m.openForm(msg.Exercise.ID, msg.Exercise)

	case exerciselist.DeleteExerciseMsg:
		m.exerciseToDelete = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case exerciselist.ToggleSelectionMsg:
		if _, err := m.catalog.ToggleSelection(msg.ID); err != nil {
			m.status = fmt.Sprintf("Failed to update selection: %v", err)
			return m, nil
		}
		m.refreshExercises()
		return m, nil

	case exerciselist.SelectAllMsg:
		n, err := m.catalog.SelectAll(catalog.Filter{Search: msg.Search})
		if err != nil {
			m.status = fmt.Sprintf("Failed to update selection: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Selected %d exercise(s)", n)
		m.refreshExercises()
		return m, nil

	case exerciselist.ClearSelectionMsg:
		if err := m.catalog.ClearSelection(); err != nil {
			m.status = fmt.Sprintf("Failed to clear selection: %v", err)
			return m, nil
		}
		m.status = "Selection cleared"
		m.refreshExercises()
		return m, nil

	case exerciselist.PlayMsg:
		return m.startWorkout()

	case exerciselist.EnduranceMsg:
		m.playerSeq++
		m.circuit = endurance.New(m.playerSeq, workout.NewEndurance())
		m.circuit.SetSize(m.width, m.contentHeight())
		m.status = ""
		m.state = StateEndurance
		return m, m.circuit.Init()

	case sessionlist.OpenSessionMsg:
		m.sessionView.SetSession(msg.Session)
		m.state = StateSessionDetail
		return m, nil

	case sessionlist.DeleteSessionMsg:
		m.sessionToDelete = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case settings.SavedMsg:
		m.status = "Settings saved"
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateExercises:
		m.exerciseList, cmd = m.exerciseList.Update(msg)
	case StateSessions:
		m.sessionList, cmd = m.sessionList.Update(msg)
	case StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	listHeight := m.contentHeight()
	m.exerciseList.SetSize(width-h, listHeight-v)
	m.sessionList.SetSize(width-h, listHeight-v)
	m.sessionView.SetSize(width-h, listHeight-v)
	m.player.SetSize(width, listHeight)
	m.circuit.SetSize(width, listHeight)
}

// contentHeight leaves room for the tabs, status line and help
func (m Model) contentHeight() int {
	return max(m.height-4, 0)
}

func (m Model) switchTab(next SessionState) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.state == StateSettings {
		m.settingsModel, cmd = m.settingsModel.Flush()
	}
	m.status = ""
	m.state = next
	return m, cmd
}

func (m Model) openForm(id string, e models.ExerciseDetails) (tea.Model, tea.Cmd) {
	known, err := m.catalog.Tags()
	if err != nil {
		logger.Warn("Failed to load tags for form", "error", err)
	}
	for _, t := range e.Tags {
		if !slices.Contains(known, t) {
			known = append(known, t)
		}
	}

	m.editingID = id
	m.exerciseForm = newExerciseFormModel(e)
	m.form = NewExerciseForm(m.exerciseForm, known)
	m.formError = ""
	m.previousState = m.state
	m.state = StateEditing
	return m, m.form.Init()
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveExerciseForm(); err != nil {
			// stay in the form so the entry can be corrected
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.refreshExercises()
		m.state = m.previousState
	case huh.StateAborted:
		m.formError = ""
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) saveExerciseForm() error {
	e, result := validation.New().ParseExerciseForm(m.exerciseForm.ExerciseForm)
	if result.HasConflicts() {
		return result.Err()
	}
	e.Tags = m.exerciseForm.AllTags()

	if m.editingID == "" {
		saved, err := m.catalog.Add(e)
		if err != nil {
			return err
		}
		m.status = fmt.Sprintf("Added %s", saved.Name)
		return nil
	}
	e.ID = m.editingID
	if err := m.catalog.Update(e); err != nil {
		return err
	}
	m.status = fmt.Sprintf("Updated %s", e.Name)
	return nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch msgKey.String() {
	case "y", "Y":
		if m.exerciseToDelete != "" {
			if err := m.catalog.Delete(m.exerciseToDelete); err != nil {
				m.status = fmt.Sprintf("Failed to delete exercise: %v", err)
			} else {
				m.status = "Exercise deleted"
				m.refreshExercises()
			}
		} else if m.sessionToDelete != "" {
			if err := m.sessions.Delete(m.sessionToDelete); err != nil {
				m.status = fmt.Sprintf("Failed to delete session: %v", err)
			} else {
				m.status = "Session deleted"
				m.refreshSessions()
			}
		}
	case "n", "N", "esc", "q":
	default:
		return m, nil
	}

	m.exerciseToDelete = ""
	m.sessionToDelete = ""
	m.state = m.previousState
	return m, nil
}

func (m Model) startWorkout() (tea.Model, tea.Cmd) {
	selected, err := m.catalog.Selected()
	if err != nil {
		m.status = fmt.Sprintf("Failed to load selection: %v", err)
		return m, nil
	}
	current, err := storage.GetSettings(m.store)
	if err != nil {
		m.status = fmt.Sprintf("Failed to load settings: %v", err)
		return m, nil
	}

	runner, err := workout.New(selected, current, m.sessions)
	if errors.Is(err, workout.ErrNoExercises) {
		m.status = "Select at least one exercise to start a workout"
		return m, nil
	}
	if err != nil {
		m.status = fmt.Sprintf("Failed to start workout: %v", err)
		return m, nil
	}

	m.playerSeq++
	m.player = play.New(m.playerSeq, runner)
	m.player.SetSize(m.width, m.contentHeight())
	m.status = ""
	m.state = StatePlay
	return m, m.player.Init()
}

func (m Model) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(play.FinishedMsg); ok {
		m.refreshSessions()
		if msg.Completed {
			m.sessionView.SetSession(msg.Session)
			m.state = StateSessionDetail
			return m, nil
		}
		m.status = "Workout abandoned"
		m.state = StateExercises
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.player, cmd = m.player.Update(msg)
	return m, cmd
}

func (m Model) updateEndurance(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(endurance.QuitMsg); ok {
		m.status = fmt.Sprintf("Circuit ended after %s (round %d)", msg.Elapsed, msg.Rounds)
		m.state = StateExercises
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.circuit, cmd = m.circuit.Update(msg)
	return m, cmd
}
