package play

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/workout"
)

type memSessions struct {
	saved []models.WorkoutSession
}

func (m *memSessions) Append(_ context.Context, s models.WorkoutSession) error {
	m.saved = append(m.saved, s)
	return nil
}

func newPlayer(t *testing.T, settings models.Settings) (Model, *memSessions) {
	t.Helper()
	sessions := &memSessions{}
	exercises := []models.ExerciseDetails{{
		ID:             "bench",
		Name:           "Bench Press",
		TargetSets:     2,
		TargetReps:     5,
		TargetRestTime: 30,
		Selected:       true,
	}}
	r, err := workout.New(exercises, settings, sessions)
	require.NoError(t, err)
	m := New(7, r)
	m.SetSize(80, 24)
	return m, sessions
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	return m.Update(k)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickFromOtherPlayerIgnored(t *testing.T) {
	m, _ := newPlayer(t, models.Settings{PrepTime: 10})
	before := m.Runner().Remaining()

	m, cmd := m.Update(TickMsg{ID: 1, Time: time.Now()})
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.Runner().Remaining())

	m, cmd = m.Update(TickMsg{ID: 7, Time: time.Now()})
	assert.NotNil(t, cmd)
	assert.Equal(t, before-1, m.Runner().Remaining())
}

func TestFullWorkoutThroughKeys(t *testing.T) {
	m, sessions := newPlayer(t, models.Settings{PrepTime: 10})
	require.Equal(t, workout.PhasePrep, m.Runner().Phase())

	m, _ = press(m, runes("s"))
	assert.Equal(t, workout.PhasePerformSet, m.Runner().Phase())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, workout.PhaseRest, m.Runner().Phase())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, workout.PhaseLog, m.Runner().Phase())
	assert.Contains(t, m.View(), "Log your sets")

	// submit is refused until rated
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.NoError(t, m.Err())
	assert.Equal(t, workout.PhaseLog, m.Runner().Phase())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = press(m, runes("3"))
	assert.Equal(t, []string{"5", "3"}, m.Runner().ActualReps())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.Runner().Rating())

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(FinishedMsg)
	require.True(t, ok)
	assert.True(t, msg.Completed)
	require.Len(t, sessions.saved, 1)
	assert.Equal(t, msg.Session.ID, sessions.saved[0].ID)

	sets := sessions.saved[0].Exercises[0].Sets
	assert.Equal(t, 5, sets[0].ActualReps)
	assert.Equal(t, 3, sets[1].ActualReps)
	assert.Equal(t, 2, sessions.saved[0].Exercises[0].Rating)
	assert.Contains(t, m.View(), "Workout Complete!")
}

func TestQuitNeedsConfirmation(t *testing.T) {
	m, sessions := newPlayer(t, models.Settings{PrepTime: 10})

	m, cmd := press(m, runes("q"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Quit workout?")

	m, _ = press(m, runes("n"))
	assert.NotContains(t, m.View(), "Quit workout?")
	assert.Equal(t, workout.PhasePrep, m.Runner().Phase())

	m, _ = press(m, runes("q"))
	m, cmd = press(m, runes("y"))
	require.NotNil(t, cmd)
	msg := cmd().(FinishedMsg)
	assert.False(t, msg.Completed)
	assert.Equal(t, workout.PhaseQuit, m.Runner().Phase())
	assert.Empty(t, sessions.saved)
}

func TestPauseToggle(t *testing.T) {
	m, _ := newPlayer(t, models.Settings{PrepTime: 10})

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.True(t, m.Runner().Paused())
	assert.Contains(t, m.View(), "(paused)")

	m, _ = m.Update(TickMsg{ID: 7})
	assert.Equal(t, 10, m.Runner().Remaining())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.False(t, m.Runner().Paused())
}
