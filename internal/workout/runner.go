// Package workout drives a guided workout: prep, sets, rests and the quick log,
// ending in a saved session.
package workout

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/timer"
	"github.com/julianstephens/gymsimple/internal/validation"
)

var (
	ErrNoExercises   = errors.New("no exercises selected")
	ErrLogIncomplete = errors.New("every set needs a rep count of 0 or more and the exercise needs a rating")
	ErrInvalidEvent  = errors.New("event not valid in the current phase")
	ErrFinished      = errors.New("workout already finished")
)

// SessionAppender persists a finished session
type SessionAppender interface {
	Append(ctx context.Context, session models.WorkoutSession) error
}

// Option configures a Runner
type Option func(*Runner)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithIDGenerator replaces the uuid generator used for session and exercise ids
func WithIDGenerator(newID func() string) Option {
	return func(r *Runner) {
		r.newID = newID
	}
}

// Runner is the workout state machine. It is not safe for concurrent use;
// every event is expected to arrive from one event loop.
type Runner struct {
	exercises []models.ExerciseDetails
	settings  models.Settings
	sessions  SessionAppender
	now       func() time.Time
	newID     func() string

	phase         Phase
	exerciseIndex int
	setIndex      int
	countdown     *timer.Countdown // prep, rest or auto-rest; nil when nothing is counting
	actualReps    []string
	rating        int
	completed     []models.ExerciseData
	startedAt     time.Time
	session       *models.WorkoutSession
	done          chan struct{}
}

// New starts a workout over exercises, which must already be in play order
func New(exercises []models.ExerciseDetails, settings models.Settings, sessions SessionAppender, opts ...Option) (*Runner, error) {
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	r := &Runner{
		exercises: slices.Clone(exercises),
		settings:  settings,
		sessions:  sessions,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.startedAt = r.now()
	r.enterPrep()
	logger.Debug("Workout started", "exercises", len(r.exercises), "prep", settings.PrepTime, "autoRest", settings.AutoRest, "skipLog", settings.SkipLog)
	return r, nil
}

// Dispatch applies one event
func (r *Runner) Dispatch(ctx context.Context, ev Event) error {
	if r.phase.Terminal() {
		return ErrFinished
	}

	switch ev.Type {
	case EventTick:
		return r.tick(ctx)
	case EventAdvance:
		return r.advance(ctx)
	case EventSkip:
		return r.skip(ctx)
	case EventPause:
		if r.countdown != nil {
			r.countdown.Pause()
		}
		return nil
	case EventResume:
		if r.countdown != nil {
			r.countdown.Resume()
		}
		return nil
	case EventTogglePause:
		if r.countdown != nil {
			r.countdown.Toggle()
		}
		return nil
	case EventSetActualReps:
		return r.setActualReps(ev.Set, ev.Reps)
	case EventSetRating:
		return r.setRating(ev.Rating)
	case EventSubmitLog:
		return r.submitLog(ctx)
	case EventFinalize:
		if r.phase != PhaseFinalizing {
			return fmt.Errorf("%w: finalize during %s", ErrInvalidEvent, r.phase)
		}
		return r.finalize(ctx)
	case EventQuit:
		r.quit()
		return nil
	default:
		return fmt.Errorf("%w: unknown event %d", ErrInvalidEvent, ev.Type)
	}
}

func (r *Runner) Tick(ctx context.Context) error { return r.Dispatch(ctx, Event{Type: EventTick}) }
func (r *Runner) Advance(ctx context.Context) error { return r.Dispatch(ctx, Event{Type: EventAdvance}) }
func (r *Runner) Skip(ctx context.Context) error { return r.Dispatch(ctx, Event{Type: EventSkip}) }
func (r *Runner) Pause() error { return r.Dispatch(context.Background(), Event{Type: EventPause}) }
func (r *Runner) Resume() error { return r.Dispatch(context.Background(), Event{Type: EventResume}) }
func (r *Runner) TogglePause() error { return r.Dispatch(context.Background(), Event{Type: EventTogglePause}) }
func (r *Runner) SubmitLog(ctx context.Context) error {
	return r.Dispatch(ctx, Event{Type: EventSubmitLog})
}
func (r *Runner) Finalize(ctx context.Context) error {
	return r.Dispatch(ctx, Event{Type: EventFinalize})
}
func (r *Runner) Quit() error { return r.Dispatch(context.Background(), Event{Type: EventQuit}) }

func (r *Runner) SetActualReps(set int, reps string) error {
	return r.Dispatch(context.Background(), Event{Type: EventSetActualReps, Set: set, Reps: reps})
}

func (r *Runner) SetRating(rating int) error {
	return r.Dispatch(context.Background(), Event{Type: EventSetRating, Rating: rating})
}

func (r *Runner) tick(ctx context.Context) error {
	if r.countdown == nil || !r.countdown.Tick() {
		return nil
	}
	return r.countdownExpired(ctx)
}

// advance is the forward control: it skips prep and rest countdowns, completes
// the current set, or submits the log
func (r *Runner) advance(ctx context.Context) error {
	switch r.phase {
	case PhasePrep, PhaseRest:
		return r.skip(ctx)
	case PhasePerformSet:
		r.countdown = nil
		return r.finishSet(ctx)
	case PhaseLog:
		return r.submitLog(ctx)
	default:
		return fmt.Errorf("%w: advance during %s", ErrInvalidEvent, r.phase)
	}
}

func (r *Runner) skip(ctx context.Context) error {
	switch r.phase {
	case PhasePrep, PhaseRest:
		r.countdown.Skip()
		return r.countdownExpired(ctx)
	case PhasePerformSet:
		return r.advance(ctx)
	default:
		return fmt.Errorf("%w: skip during %s", ErrInvalidEvent, r.phase)
	}
}

func (r *Runner) countdownExpired(ctx context.Context) error {
	switch r.phase {
	case PhasePrep:
		r.enterPerformSet()
	case PhaseRest:
		r.setIndex++
		r.enterPerformSet()
	case PhasePerformSet:
		r.countdown = nil
		return r.finishSet(ctx)
	}
	return nil
}

func (r *Runner) enterPrep() {
	r.phase = PhasePrep
	r.setIndex = 0
	r.countdown = timer.NewCountdown(r.settings.PrepTime, nil)
	r.countdown.Start()
	if r.countdown.Done() {
		r.enterPerformSet()
	}
}

func (r *Runner) enterPerformSet() {
	r.phase = PhasePerformSet
	r.countdown = nil
	if r.settings.AutoRest {
		r.countdown = timer.NewCountdown(r.current().TargetReps*constants.AutoRestPerRep, nil)
		r.countdown.Start()
	}
}

func (r *Runner) enterRest() {
	r.phase = PhaseRest
	r.countdown = timer.NewCountdown(r.current().TargetRestTime, nil)
	r.countdown.Start()
	if r.countdown.Done() {
		r.setIndex++
		r.enterPerformSet()
	}
}

func (r *Runner) finishSet(ctx context.Context) error {
	if r.setIndex < r.current().TargetSets-1 {
		r.enterRest()
		return nil
	}

	if r.settings.SkipLog {
		ex := r.current()
		reps := make([]int, ex.TargetSets)
		for i := range reps {
			reps[i] = ex.TargetReps
		}
		r.record(reps, 0)
		return r.nextExercise(ctx)
	}
	r.enterLog()
	return nil
}

func (r *Runner) enterLog() {
	ex := r.current()
	r.phase = PhaseLog
	r.countdown = nil
	r.rating = 0
	r.actualReps = make([]string, ex.TargetSets)
	for i := range r.actualReps {
		r.actualReps[i] = strconv.Itoa(ex.TargetReps)
	}
}

func (r *Runner) setActualReps(set int, reps string) error {
	if r.phase != PhaseLog {
		return fmt.Errorf("%w: set reps during %s", ErrInvalidEvent, r.phase)
	}
	if set < 0 || set >= len(r.actualReps) {
		return fmt.Errorf("set %d out of range 0..%d", set, len(r.actualReps)-1)
	}
	r.actualReps[set] = reps
	return nil
}

func (r *Runner) setRating(rating int) error {
	if r.phase != PhaseLog {
		return fmt.Errorf("%w: rate during %s", ErrInvalidEvent, r.phase)
	}
	if rating < 0 || rating > constants.MaxRating {
		return fmt.Errorf("rating must be between 0 and %d", constants.MaxRating)
	}
	r.rating = rating
	return nil
}

// CanSubmitLog reports whether every rep entry is a whole number >= 0 and a rating is set
func (r *Runner) CanSubmitLog() bool {
	if r.phase != PhaseLog || r.rating < 1 {
		return false
	}
	for _, s := range r.actualReps {
		if _, ok := validation.ParseReps(s); !ok {
			return false
		}
	}
	return true
}

func (r *Runner) submitLog(ctx context.Context) error {
	if r.phase != PhaseLog {
		return fmt.Errorf("%w: submit during %s", ErrInvalidEvent, r.phase)
	}
	if !r.CanSubmitLog() {
		return ErrLogIncomplete
	}

	reps := make([]int, len(r.actualReps))
	for i, s := range r.actualReps {
		reps[i], _ = validation.ParseReps(s)
	}
	r.record(reps, r.rating)
	r.actualReps = nil
	r.rating = 0
	return r.nextExercise(ctx)
}

func (r *Runner) record(actual []int, rating int) {
	ex := r.current()
	sets := make([]models.Set, len(actual))
	for i, n := range actual {
		sets[i] = models.Set{TargetReps: ex.TargetReps, ActualReps: n}
	}
	r.completed = append(r.completed, models.ExerciseData{
		ID:       r.newID(),
		Name:     ex.Name,
		Weight:   ex.Weight,
		Sets:     sets,
		RestTime: ex.TargetRestTime,
		Rating:   rating,
	})
}

func (r *Runner) nextExercise(ctx context.Context) error {
	if r.exerciseIndex < len(r.exercises)-1 {
		r.exerciseIndex++
		r.enterPrep()
		return nil
	}
	return r.finalize(ctx)
}

// finalize saves the session. On failure the phase stays PhaseFinalizing with
// everything recorded so far, and Finalize may be called again.
func (r *Runner) finalize(ctx context.Context) error {
	r.phase = PhaseFinalizing
	r.countdown = nil

	if r.session == nil {
		r.session = &models.WorkoutSession{
			ID:        r.newID(),
			Date:      r.startedAt,
			Exercises: slices.Clone(r.completed),
			EndDate:   r.now(),
		}
	}

	if err := r.sessions.Append(ctx, *r.session); err != nil {
		logger.Error("Failed to save workout session", "id", r.session.ID, "error", err)
		return fmt.Errorf("failed to save workout session: %w", err)
	}

	r.phase = PhaseComplete
	close(r.done)
	logger.Info("Workout complete", "id", r.session.ID, "duration", r.session.Duration())
	return nil
}

func (r *Runner) quit() {
	r.phase = PhaseQuit
	r.countdown = nil
	r.completed = nil
	r.actualReps = nil
	r.session = nil
	close(r.done)
	logger.Debug("Workout quit")
}

func (r *Runner) current() models.ExerciseDetails {
	return r.exercises[r.exerciseIndex]
}

// Phase returns the current phase
func (r *Runner) Phase() Phase { return r.phase }

// Exercise returns the exercise being played
func (r *Runner) Exercise() models.ExerciseDetails { return r.current() }

// Exercises returns the play order
func (r *Runner) Exercises() []models.ExerciseDetails { return slices.Clone(r.exercises) }

func (r *Runner) ExerciseIndex() int { return r.exerciseIndex }
func (r *Runner) SetIndex() int { return r.setIndex }
func (r *Runner) Settings() models.Settings { return r.settings }
func (r *Runner) StartedAt() time.Time { return r.startedAt }
func (r *Runner) Rating() int { return r.rating }
func (r *Runner) ActualReps() []string { return slices.Clone(r.actualReps) }
func (r *Runner) IsLastExercise() bool { return r.exerciseIndex == len(r.exercises)-1 }
func (r *Runner) IsLastSet() bool { return r.setIndex == r.current().TargetSets-1 }
func (r *Runner) Completed() bool { return r.phase == PhaseComplete }
func (r *Runner) Done() <-chan struct{} { return r.done }
func (r *Runner) Recorded() []models.ExerciseData { return slices.Clone(r.completed) }

// Remaining returns the seconds left on the active countdown, 0 when none is running
func (r *Runner) Remaining() int {
	if r.countdown == nil {
		return 0
	}
	return r.countdown.Remaining()
}

// Counting reports whether a countdown is active in the current phase
func (r *Runner) Counting() bool { return r.countdown != nil && !r.countdown.Done() }

// Paused reports whether the active countdown is frozen
func (r *Runner) Paused() bool { return r.countdown != nil && r.countdown.Paused() }

// Session returns the saved session once the workout is complete
func (r *Runner) Session() (models.WorkoutSession, bool) {
	if r.phase != PhaseComplete || r.session == nil {
		return models.WorkoutSession{}, false
	}
	return *r.session, true
}

// Progress returns the elapsed fraction of the active countdown, 0 when none is running
func (r *Runner) Progress() float64 {
	if r.countdown == nil {
		return 0
	}
	return r.countdown.Progress()
}
