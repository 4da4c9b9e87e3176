package workout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/gymsimple/internal/models"
)

type fakeSessions struct {
	saved []models.WorkoutSession
	err   error
}

func (f *fakeSessions) Append(_ context.Context, s models.WorkoutSession) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func ex(name string, sets, reps, rest int) models.ExerciseDetails {
	return models.ExerciseDetails{
		ID:             "cat-" + name,
		Name:           name,
		TargetSets:     sets,
		TargetReps:     reps,
		TargetRestTime: rest,
		Weight:         models.Weight{Value: 40, Unit: models.WeightKg},
		Selected:       true,
	}
}

type harness struct {
	runner   *Runner
	sessions *fakeSessions
	clock    *fakeClock
}

func newHarness(t *testing.T, settings models.Settings, exercises ...models.ExerciseDetails) *harness {
	t.Helper()
	h := &harness{
		sessions: &fakeSessions{},
		clock:    &fakeClock{now: time.Date(2024, 7, 1, 6, 30, 0, 0, time.UTC)},
	}
	r, err := New(exercises, settings, h.sessions, WithClock(h.clock.Now), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	h.runner = r
	return h
}

func (h *harness) ticks(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		h.clock.now = h.clock.now.Add(time.Second)
		require.NoError(t, h.runner.Tick(context.Background()))
	}
}

func manual(prep int) models.Settings {
	return models.Settings{PrepTime: prep, AutoRest: false, SkipLog: false}
}

func TestNew_NoExercises(t *testing.T) {
	r, err := New(nil, models.DefaultSettings(), &fakeSessions{})
	assert.ErrorIs(t, err, ErrNoExercises)
	assert.Nil(t, r)
}

func TestRunner_EndToEnd(t *testing.T) {
	h := newHarness(t, manual(5), ex("Squat", 2, 10, 15))
	r := h.runner
	ctx := context.Background()

	assert.Equal(t, PhasePrep, r.Phase())
	assert.Equal(t, 5, r.Remaining())
	h.ticks(t, 4)
	assert.Equal(t, PhasePrep, r.Phase())
	h.ticks(t, 1)
	assert.Equal(t, PhasePerformSet, r.Phase())
	assert.Equal(t, 0, r.SetIndex())
	assert.False(t, r.Counting(), "no auto-rest countdown without autoRest")

	require.NoError(t, r.Advance(ctx))
	assert.Equal(t, PhaseRest, r.Phase())
	assert.Equal(t, 15, r.Remaining())
	h.ticks(t, 15)
	assert.Equal(t, PhasePerformSet, r.Phase())
	assert.Equal(t, 1, r.SetIndex())
	assert.True(t, r.IsLastSet())

	require.NoError(t, r.Advance(ctx))
	assert.Equal(t, PhaseLog, r.Phase())
	assert.Equal(t, []string{"10", "10"}, r.ActualReps())
	assert.False(t, r.CanSubmitLog(), "rating is required")

	require.NoError(t, r.SetActualReps(1, "8"))
	require.NoError(t, r.SetRating(4))
	assert.True(t, r.CanSubmitLog())

	h.clock.now = h.clock.now.Add(time.Minute)
	require.NoError(t, r.SubmitLog(ctx))
	assert.Equal(t, PhaseComplete, r.Phase())
	assert.True(t, r.Completed())

	select {
	case <-r.Done():
	default:
		t.Fatal("Done channel should be closed")
	}

	require.Len(t, h.sessions.saved, 1)
	saved := h.sessions.saved[0]
	assert.Equal(t, "id-2", saved.ID)
	assert.Equal(t, time.Date(2024, 7, 1, 6, 30, 0, 0, time.UTC), saved.Date)
	assert.Equal(t, h.clock.now, saved.EndDate)
	require.Len(t, saved.Exercises, 1)
	data := saved.Exercises[0]
	assert.Equal(t, "id-1", data.ID)
	assert.Equal(t, "Squat", data.Name)
	assert.Equal(t, 15, data.RestTime)
	assert.Equal(t, 4, data.Rating)
	assert.Equal(t, []models.Set{{TargetReps: 10, ActualReps: 10}, {TargetReps: 10, ActualReps: 8}}, data.Sets)

	total := 0
	for _, s := range data.Sets {
		total += s.ActualReps
	}
	assert.Equal(t, 18, total)

	got, ok := r.Session()
	assert.True(t, ok)
	assert.Equal(t, saved, got)

	assert.ErrorIs(t, r.Tick(ctx), ErrFinished)
}

func TestRunner_SkipRestIncrementsSetOnce(t *testing.T) {
	h := newHarness(t, manual(3), ex("Row", 3, 8, 60))
	r := h.runner
	ctx := context.Background()

	require.NoError(t, r.Skip(ctx))
	assert.Equal(t, PhasePerformSet, r.Phase())
	require.NoError(t, r.Advance(ctx))
	assert.Equal(t, PhaseRest, r.Phase())

	h.ticks(t, 10)
	require.NoError(t, r.Skip(ctx))
	assert.Equal(t, PhasePerformSet, r.Phase())
	assert.Equal(t, 1, r.SetIndex())

	// Ticks after the skipped countdown must not advance again
	h.ticks(t, 60)
	assert.Equal(t, PhasePerformSet, r.Phase())
	assert.Equal(t, 1, r.SetIndex())
}

func TestRunner_PauseFreezesCountdown(t *testing.T) {
	h := newHarness(t, manual(10), ex("Curl", 2, 12, 30))
	r := h.runner

	h.ticks(t, 2)
	require.NoError(t, r.Pause())
	assert.True(t, r.Paused())
	h.ticks(t, 3)
	assert.Equal(t, 8, r.Remaining())
	assert.Equal(t, PhasePrep, r.Phase())

	require.NoError(t, r.TogglePause())
	assert.False(t, r.Paused())
	h.ticks(t, 1)
	assert.Equal(t, 7, r.Remaining())

	require.NoError(t, r.Skip(context.Background()))
	require.NoError(t, r.Advance(context.Background()))
	require.NoError(t, r.Pause())
	h.ticks(t, 5)
	assert.Equal(t, 30, r.Remaining())
	require.NoError(t, r.Resume())
	h.ticks(t, 5)
	assert.Equal(t, 25, r.Remaining())
}

func TestRunner_SkipClearsPause(t *testing.T) {
	h := newHarness(t, manual(10), ex("Dip", 2, 5, 20))
	r := h.runner
	ctx := context.Background()

	require.NoError(t, r.Pause())
	require.NoError(t, r.Skip(ctx))
	require.NoError(t, r.Advance(ctx))
	assert.Equal(t, PhaseRest, r.Phase())
	assert.False(t, r.Paused(), "a new countdown starts running")
}

func TestRunner_AutoRest(t *testing.T) {
	settings := models.Settings{PrepTime: 0, AutoRest: true}
	h := newHarness(t, settings, ex("Lunge", 2, 4, 10))
	r := h.runner

	assert.Equal(t, PhasePerformSet, r.Phase(), "zero prep goes straight to the set")
	assert.Equal(t, 12, r.Remaining(), "auto-rest waits three seconds per rep")

	h.ticks(t, 11)
	assert.Equal(t, PhasePerformSet, r.Phase())
	h.ticks(t, 1)
	assert.Equal(t, PhaseRest, r.Phase())

	h.ticks(t, 10)
	assert.Equal(t, PhasePerformSet, r.Phase())
	assert.Equal(t, 1, r.SetIndex())

	require.NoError(t, r.Pause())
	h.ticks(t, 20)
	assert.Equal(t, PhasePerformSet, r.Phase(), "auto-rest is frozen while paused")
	require.NoError(t, r.Resume())
	h.ticks(t, 12)
	assert.Equal(t, PhaseLog, r.Phase())
}

func TestRunner_SkipLogRecordsTargets(t *testing.T) {
	settings := models.Settings{PrepTime: 1, SkipLog: true}
	h := newHarness(t, settings, ex("Press", 1, 6, 30), ex("Pull", 2, 5, 30))
	r := h.runner
	ctx := context.Background()

	require.NoError(t, r.Skip(ctx))
	require.NoError(t, r.Advance(ctx))
	assert.Equal(t, PhasePrep, r.Phase(), "the log is bypassed")
	assert.Equal(t, 1, r.ExerciseIndex())
	assert.Equal(t, 0, r.SetIndex())

	require.NoError(t, r.Skip(ctx))
	require.NoError(t, r.Advance(ctx))
	require.NoError(t, r.Skip(ctx))
	require.NoError(t, r.Advance(ctx))
	assert.Equal(t, PhaseComplete, r.Phase(), "the last exercise still saves the session")

	require.Len(t, h.sessions.saved, 1)
	saved := h.sessions.saved[0]
	require.Len(t, saved.Exercises, 2)
	for _, data := range saved.Exercises {
		assert.Zero(t, data.Rating)
		for _, s := range data.Sets {
			assert.Equal(t, s.TargetReps, s.ActualReps)
		}
	}
	assert.Len(t, saved.Exercises[0].Sets, 1)
	assert.Len(t, saved.Exercises[1].Sets, 2)
}

func TestRunner_LogValidation(t *testing.T) {
	h := newHarness(t, manual(0), ex("Plank", 3, 1, 10))
	r := h.runner
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, r.Advance(ctx))
		require.NoError(t, r.Skip(ctx))
	}
	require.NoError(t, r.Advance(ctx))
	require.Equal(t, PhaseLog, r.Phase())
	assert.Len(t, r.ActualReps(), 3, "one entry per target set")

	require.NoError(t, r.SetRating(3))
	for _, bad := range []string{"", "-1", "1.5", "x"} {
		require.NoError(t, r.SetActualReps(2, bad))
		assert.False(t, r.CanSubmitLog(), "reps %q must block submit", bad)
		assert.ErrorIs(t, r.SubmitLog(ctx), ErrLogIncomplete)
	}

	require.NoError(t, r.SetActualReps(2, "0"))
	assert.True(t, r.CanSubmitLog())
	assert.Error(t, r.SetActualReps(3, "1"))
	assert.Error(t, r.SetRating(6))

	require.NoError(t, r.SetRating(0))
	assert.False(t, r.CanSubmitLog())
	assert.Empty(t, h.sessions.saved)
}

func TestRunner_EventsOutsideTheirPhase(t *testing.T) {
	h := newHarness(t, manual(5), ex("Squat", 1, 5, 10))
	r := h.runner

	assert.ErrorIs(t, r.SetRating(3), ErrInvalidEvent)
	assert.ErrorIs(t, r.SetActualReps(0, "5"), ErrInvalidEvent)
	assert.ErrorIs(t, r.SubmitLog(context.Background()), ErrInvalidEvent)
	assert.ErrorIs(t, r.Finalize(context.Background()), ErrInvalidEvent)
	assert.ErrorIs(t, r.Dispatch(context.Background(), Event{Type: EventType(99)}), ErrInvalidEvent)
}

func TestRunner_MultipleExercisesResetSetIndex(t *testing.T) {
	h := newHarness(t, manual(2), ex("A", 2, 5, 10), ex("B", 1, 5, 10))
	r := h.runner
	ctx := context.Background()

	h.ticks(t, 2)
	require.NoError(t, r.Advance(ctx))
	require.NoError(t, r.Skip(ctx))
	require.NoError(t, r.Advance(ctx))
	require.NoError(t, r.SetRating(5))
	require.NoError(t, r.Advance(ctx), "advance submits the log")

	assert.Equal(t, PhasePrep, r.Phase())
	assert.Equal(t, "B", r.Exercise().Name)
	assert.Equal(t, 0, r.SetIndex())
	assert.Equal(t, 2, r.Remaining(), "prep runs once per exercise")
	assert.True(t, r.IsLastExercise())
	assert.Len(t, r.Recorded(), 1)
}

func TestRunner_FinalizeFailureIsRetryable(t *testing.T) {
	h := newHarness(t, models.Settings{PrepTime: 0, SkipLog: true}, ex("Squat", 1, 5, 10))
	r := h.runner
	ctx := context.Background()

	h.sessions.err = errors.New("disk full")
	err := r.Advance(ctx)
	require.ErrorContains(t, err, "disk full")
	assert.Equal(t, PhaseFinalizing, r.Phase())
	assert.False(t, r.Completed())
	assert.Len(t, r.Recorded(), 1)
	_, ok := r.Session()
	assert.False(t, ok)

	require.NoError(t, r.Tick(ctx), "ticks are harmless while finalizing")
	assert.ErrorIs(t, r.Advance(ctx), ErrInvalidEvent)

	h.sessions.err = nil
	require.NoError(t, r.Finalize(ctx))
	assert.Equal(t, PhaseComplete, r.Phase())
	require.Len(t, h.sessions.saved, 1)
	assert.Equal(t, "id-2", h.sessions.saved[0].ID)
}

func TestRunner_QuitDiscards(t *testing.T) {
	h := newHarness(t, models.Settings{PrepTime: 0, SkipLog: true}, ex("A", 1, 5, 10), ex("B", 1, 5, 10))
	r := h.runner

	require.NoError(t, r.Advance(context.Background()))
	assert.Len(t, r.Recorded(), 1)

	require.NoError(t, r.Quit())
	assert.Equal(t, PhaseQuit, r.Phase())
	assert.Empty(t, r.Recorded())
	assert.Empty(t, h.sessions.saved)
	assert.False(t, r.Completed())
	<-r.Done()

	assert.ErrorIs(t, r.Quit(), ErrFinished)
}

func TestPhaseStrings(t *testing.T) {
	assert.Equal(t, "prep", PhasePrep.String())
	assert.Equal(t, "finalizing", PhaseFinalizing.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.Equal(t, "submit-log", EventSubmitLog.String())
	assert.True(t, PhaseQuit.Terminal())
	assert.False(t, PhaseFinalizing.Terminal())
}
