package workout

import (
	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/timer"
)

// EnduranceExercise is one station of the endless rotation
type EnduranceExercise struct {
	Name     string
	Reps     int
	RestTime int
	Timed    bool // Reps counts seconds instead of repetitions
}

// Unit returns the label shown under the target count
func (e EnduranceExercise) Unit() string {
	if e.Timed {
		return "seconds"
	}
	return "reps"
}

// EnduranceRotation is the fixed station order; it wraps forever
var EnduranceRotation = []EnduranceExercise{
	{Name: "Push-ups", Reps: constants.EnduranceReps, RestTime: constants.EnduranceRestTime},
	{Name: "Burpees", Reps: constants.EnduranceReps, RestTime: constants.EnduranceRestTime},
	{Name: "Mountain Climbers", Reps: constants.EnduranceReps, RestTime: constants.EnduranceRestTime},
	{Name: "Jump Squats", Reps: constants.EnduranceReps, RestTime: constants.EnduranceRestTime},
	{Name: "High Knees", Reps: constants.EnduranceReps, RestTime: constants.EnduranceRestTime},
	{Name: "Plank Hold", Reps: 300, RestTime: constants.EnduranceRestTime, Timed: true},
	{Name: "Flutter Kicks", Reps: constants.EnduranceReps, RestTime: constants.EnduranceRestTime},
	{Name: "Jump Lunges", Reps: constants.EnduranceReps, RestTime: constants.EnduranceRestTime},
}

// Endurance is the open-ended circuit mode. It never records a session;
// quitting throws all progress away.
type Endurance struct {
	phase     Phase
	index     int
	round     int
	countdown *timer.Countdown
	stopwatch *timer.Stopwatch
}

// NewEndurance starts the circuit with its short, non-pausable prep
func NewEndurance() *Endurance {
	e := &Endurance{
		phase:     PhasePrep,
		round:     1,
		countdown: timer.NewCountdown(constants.EndurancePrepTime, nil, timer.NotPausable()),
		stopwatch: timer.NewStopwatch(),
	}
	e.countdown.Start()
	logger.Debug("Endurance circuit started")
	return e
}

// Tick advances the total-time stopwatch and the active countdown by one second
func (e *Endurance) Tick() {
	if e.phase == PhaseQuit {
		return
	}
	e.stopwatch.Tick()
	if e.countdown != nil && e.countdown.Tick() {
		e.countdownExpired()
	}
}

// CompleteSet finishes the current station and rests before the next one
func (e *Endurance) CompleteSet() error {
	if e.phase != PhasePerformSet {
		return ErrInvalidEvent
	}

	e.index = (e.index + 1) % len(EnduranceRotation)
	if e.index == 0 {
		e.round++
	}
	e.phase = PhaseRest
	e.countdown = timer.NewCountdown(e.Current().RestTime, nil, timer.NotPausable())
	e.countdown.Start()
	return nil
}

// Skip ends the prep or rest countdown early
func (e *Endurance) Skip() error {
	if e.phase != PhasePrep && e.phase != PhaseRest {
		return ErrInvalidEvent
	}
	e.countdown.Skip()
	e.countdownExpired()
	return nil
}

func (e *Endurance) Quit() {
	e.phase = PhaseQuit
	e.countdown = nil
	logger.Debug("Endurance circuit quit", "round", e.round, "elapsed", e.stopwatch.Elapsed())
}

func (e *Endurance) countdownExpired() {
	e.phase = PhasePerformSet
	e.countdown = nil
}

func (e *Endurance) Phase() Phase { return e.phase }
func (e *Endurance) Round() int { return e.round }

// Current returns the station being performed, or coming up next while resting
func (e *Endurance) Current() EnduranceExercise { return EnduranceRotation[e.index] }

// Remaining returns the seconds left in prep or rest
func (e *Endurance) Remaining() int {
	if e.countdown == nil {
		return 0
	}
	return e.countdown.Remaining()
}

// Elapsed returns the total time as M:SS or H:MM:SS
func (e *Endurance) Elapsed() string { return e.stopwatch.String() }

// Progress returns the elapsed fraction of the prep or rest countdown
func (e *Endurance) Progress() float64 {
	if e.countdown == nil {
		return 0
	}
	return e.countdown.Progress()
}
