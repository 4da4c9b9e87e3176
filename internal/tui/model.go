package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/gymsimple/internal/catalog"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/sessions"
	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/tui/components/endurance"
	"github.com/julianstephens/gymsimple/internal/tui/components/exerciselist"
	"github.com/julianstephens/gymsimple/internal/tui/components/play"
	"github.com/julianstephens/gymsimple/internal/tui/components/sessionlist"
	"github.com/julianstephens/gymsimple/internal/tui/components/sessionview"
	"github.com/julianstephens/gymsimple/internal/tui/components/settings"
	"github.com/julianstephens/gymsimple/internal/validation"
)

type SessionState int

const (
	StateExercises SessionState = iota
	StateSessions
	StateSettings
	StateEditing
	StateConfirmDelete
	StatePlay
	StateEndurance
	StateSessionDetail
)

// tabCount is the number of states reachable with tab
const tabCount = 3

type Model struct {
	store             storage.Provider
	catalog           *catalog.Catalog
	sessions          *sessions.Store
	state             SessionState
	previousState     SessionState
	keys              KeyMap
	help              help.Model
	exerciseList      exerciselist.Model
	sessionList       sessionlist.Model
	sessionView       sessionview.Model
	settingsModel     settings.Model
	player            play.Model
	circuit           endurance.Model
	playerSeq         int // tags tick messages so a finished player's ticks are dropped
	form              *huh.Form
	exerciseForm      *ExerciseFormModel
	editingID         string // empty while adding
	formError         string
	exerciseToDelete  string
	sessionToDelete   string
	status            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider) Model {
	cat := catalog.New(store)
	ss := sessions.New(store)

	exercises, err := cat.List()
	if err != nil {
		logger.Error("Failed to load exercises", "error", err)
		exercises = []models.ExerciseDetails{}
	}
	history, err := ss.List()
	if err != nil {
		logger.Error("Failed to load sessions", "error", err)
		history = []models.WorkoutSession{}
	}
	current, err := storage.GetSettings(store)
	if err != nil {
		logger.Error("Failed to load settings", "error", err)
	}

	m := Model{
		store:         store,
		catalog:       cat,
		sessions:      ss,
		state:         StateExercises,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		exerciseList:  exerciselist.New(exercises, 0, 0),
		sessionList:   sessionlist.New(history, 0, 0),
		sessionView:   sessionview.New(0, 0),
		settingsModel: settings.New(store, current),
	}
	m.updateValidationStatus()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StatePlay:
		k := m.player.Keys()
		return []key.Binding{k.Advance, k.Skip, k.Pause, k.Quit}
	case StateEndurance:
		k := m.circuit.Keys()
		return []key.Binding{k.Complete, k.Skip, k.Quit}
	case StateSessionDetail:
		return []key.Binding{m.keys.Back, m.keys.Up, m.keys.Down}
	}

	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateExercises:
		k := m.exerciseList.Keys()
		keys = append(keys, k.Add, k.Select, k.Play)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	switch m.state {
	case StatePlay:
		k := m.player.Keys()
		return [][]key.Binding{
			{k.Advance, k.Skip, k.Pause, k.Quit},
			{k.PrevSet, k.NextSet, k.RateDown, k.RateUp, k.Retry},
		}
	case StateEndurance, StateSessionDetail:
		return [][]key.Binding{m.ShortHelp()}
	}

	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateExercises:
		k := m.exerciseList.Keys()
		actions = []key.Binding{k.Add, k.Edit, k.Delete, k.Select, k.SelectAll, k.Clear, k.Play, k.Endurance}
	case StateSessions:
		actions = []key.Binding{m.keys.Enter, m.keys.Delete}
	case StateSettings:
		k := m.settingsModel.Keys()
		actions = []key.Binding{k.Up, k.Down, k.Toggle}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.settingsModel.Init()
}

func (m *Model) refreshExercises() {
	exercises, err := m.catalog.List()
	if err != nil {
		m.status = fmt.Sprintf("Failed to load exercises: %v", err)
		return
	}
	m.exerciseList.SetExercises(exercises)
	m.updateValidationStatus()
}

func (m *Model) refreshSessions() {
	history, err := m.sessions.List()
	if err != nil {
		m.status = fmt.Sprintf("Failed to load sessions: %v", err)
		return
	}
	m.sessionList.SetSessions(history)
}

// updateValidationStatus checks the stored selection order and updates the warning banner
func (m *Model) updateValidationStatus() {
	exercises, err := m.catalog.List()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	result := validation.New().ValidateSelection(exercises)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d selection warning(s), press c to reset", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
