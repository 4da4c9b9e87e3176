package play

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/timer"
	"github.com/julianstephens/gymsimple/internal/workout"
)

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true).
			Padding(1, 0)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// TickMsg drives the runner once a second. Ticks from an earlier player are ignored.
type TickMsg struct {
	ID   int
	Time time.Time
}

// FinishedMsg is sent once the workout is saved or abandoned
type FinishedMsg struct {
	Session   models.WorkoutSession
	Completed bool
}

type KeyMap struct {
	Advance  key.Binding
	Skip     key.Binding
	Pause    key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	PrevSet  key.Binding
	NextSet  key.Binding
	RateDown key.Binding
	RateUp   key.Binding
	Retry    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit workout"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		PrevSet: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "prev set"),
		),
		NextSet: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓", "next set"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "rating -"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "rating +"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry save"),
		),
	}
}

type Model struct {
	id          int
	runner      *workout.Runner
	keys        KeyMap
	bar         progress.Model
	focus       int // set being edited in the log
	confirmQuit bool
	err         error
	width       int
	height      int
}

// New wraps a started runner. id tags this player's ticks.
func New(id int, runner *workout.Runner) Model {
	return Model{
		id:     id,
		runner: runner,
		keys:   DefaultKeyMap(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Runner() *workout.Runner { return m.runner }

func (m Model) Err() error { return m.err }

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
	ctx := context.Background()

	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || m.runner.Phase().Terminal() {
			return m, nil
		}
		m.setErr(m.runner.Tick(ctx))
		if cmd := m.finished(); cmd != nil {
			return m, cmd
		}
		return m, m.tick()

	case tea.KeyMsg:
		if m.confirmQuit {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.confirmQuit = false
				m.setErr(m.runner.Quit())
				return m, m.finished()
			case key.Matches(msg, m.keys.Cancel):
				m.confirmQuit = false
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.confirmQuit = true
			return m, nil
		}
		m.handleKey(ctx, msg)
		return m, m.finished()
	}
	return m, nil
}

func (m *Model) handleKey(ctx context.Context, msg tea.KeyMsg) {
	r := m.runner
	if r.Phase() == workout.PhaseFinalizing {
		if key.Matches(msg, m.keys.Retry, m.keys.Advance) {
			m.setErr(r.Finalize(ctx))
		}
		return
	}

	if r.Phase() == workout.PhaseLog && m.handleLogKey(msg) {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Advance):
		m.setErr(r.Advance(ctx))
		m.focus = 0
	case key.Matches(msg, m.keys.Skip):
		if r.Phase() != workout.PhaseLog {
			m.setErr(r.Skip(ctx))
		}
	case key.Matches(msg, m.keys.Pause):
		m.setErr(r.TogglePause())
	}
}

// handleLogKey edits the focused rep entry and the rating; it reports whether the key was consumed
func (m *Model) handleLogKey(msg tea.KeyMsg) bool {
	r := m.runner
	reps := r.ActualReps()

	switch {
	case key.Matches(msg, m.keys.PrevSet):
		if m.focus > 0 {
			m.focus--
		}
		return true
	case key.Matches(msg, m.keys.NextSet):
		if m.focus < len(reps)-1 {
			m.focus++
		}
		return true
	case key.Matches(msg, m.keys.RateDown):
		if r.Rating() > 1 {
			m.setErr(r.SetRating(r.Rating() - 1))
		}
		return true
	case key.Matches(msg, m.keys.RateUp):
		if r.Rating() < constants.MaxRating {
			m.setErr(r.SetRating(r.Rating() + 1))
		}
		return true
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if cur := reps[m.focus]; cur != "" {
			m.setErr(r.SetActualReps(m.focus, cur[:len(cur)-1]))
		}
		return true
	case tea.KeyRunes:
		s := string(msg.Runes)
		if strings.Trim(s, "0123456789") != "" {
			return false
		}
		m.setErr(r.SetActualReps(m.focus, reps[m.focus]+s))
		return true
	}
	return false
}

func (m *Model) setErr(err error) {
	// an incomplete log is shown by the disabled submit hint, not as an error
	if errors.Is(err, workout.ErrLogIncomplete) {
		err = nil
	}
	m.err = err
}

func (m Model) finished() tea.Cmd {
	r := m.runner
	if !r.Phase().Terminal() {
		return nil
	}
	session, ok := r.Session()
	return func() tea.Msg { return FinishedMsg{Session: session, Completed: ok} }
}

func (m Model) View() string {
	r := m.runner
	ex := r.Exercise()

	var body []string
	header := fmt.Sprintf("Exercise %d of %d", r.ExerciseIndex()+1, len(r.Exercises()))
	body = append(body, dimStyle.Render(header), nameStyle.Render(ex.Name))

	switch r.Phase() {
	case workout.PhasePrep:
		body = append(body, phaseStyle.Render("Get Ready"), m.countdownView(),
			dimStyle.Render(fmt.Sprintf("%d sets x %d reps", ex.TargetSets, ex.TargetReps)))
	case workout.PhasePerformSet:
		body = append(body, phaseStyle.Render(fmt.Sprintf("Set %d of %d", r.SetIndex()+1, ex.TargetSets)),
			clockStyle.Render(fmt.Sprintf("%d reps", ex.TargetReps)))
		if r.Counting() {
			body = append(body, m.countdownView())
		}
		label := "enter: set complete"
		if r.IsLastSet() {
			label = "enter: finish exercise"
		}
		body = append(body, dimStyle.Render(label))
	case workout.PhaseRest:
		body = append(body, phaseStyle.Render("Rest"), m.countdownView(),
			dimStyle.Render(fmt.Sprintf("Next: set %d of %d", r.SetIndex()+2, ex.TargetSets)))
	case workout.PhaseLog:
		body = append(body, m.logView()...)
	case workout.PhaseFinalizing:
		body = append(body, phaseStyle.Render("Saving workout..."),
			dimStyle.Render("r: retry"))
	case workout.PhaseComplete:
		body = append(body, phaseStyle.Render("Workout Complete!"))
	case workout.PhaseQuit:
		body = append(body, phaseStyle.Render("Workout abandoned"))
	}

	if m.confirmQuit {
		body = append(body, "", errorStyle.Render("Quit workout? Progress will be lost."), "[y] Yes  [n] No")
	}
	if m.err != nil {
		body = append(body, "", errorStyle.Render(m.err.Error()))
	}

	return lipgloss.Place(m.width, max(m.height, 1),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body...),
	)
}

func (m Model) countdownView() string {
	r := m.runner
	clock := timer.FormatClock(r.Remaining())
	if r.Paused() {
		clock += " (paused)"
	}
	return lipgloss.JoinVertical(lipgloss.Center, clockStyle.Render(clock), m.bar.ViewAs(r.Progress()))
}

func (m Model) logView() []string {
	r := m.runner
	ex := r.Exercise()
	lines := []string{phaseStyle.Render("Log your sets")}

	for i, reps := range r.ActualReps() {
		line := fmt.Sprintf("Set %d: %-4s / %d", i+1, reps, ex.TargetReps)
		if i == m.focus {
			line = focusStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	stars := strings.Repeat("★", r.Rating()) + strings.Repeat("☆", constants.MaxRating-r.Rating())
	lines = append(lines, "", "How hard was it? "+stars+" ("+strconv.Itoa(r.Rating())+"/5)")

	hint := "rate with ←/→ to continue"
	if r.CanSubmitLog() {
		hint = "enter: submit"
		if r.IsLastExercise() {
			hint = "enter: finish workout"
		}
	}
	return append(lines, dimStyle.Render(hint))
}
