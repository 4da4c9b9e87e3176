package workout

// Phase is the single state of a workout player
type Phase int

const (
	PhasePrep Phase = iota
	PhasePerformSet
	PhaseRest
	PhaseLog
	PhaseFinalizing
	PhaseComplete
	PhaseQuit
)

func (p Phase) String() string {
	switch p {
	case PhasePrep:
		return "prep"
	case PhasePerformSet:
		return "perform"
	case PhaseRest:
		return "rest"
	case PhaseLog:
		return "log"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseComplete:
		return "complete"
	case PhaseQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events are accepted
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseQuit
}

// EventType identifies a player input
type EventType int

const (
	EventTick EventType = iota
	EventAdvance
	EventSkip
	EventPause
	EventResume
	EventTogglePause
	EventSetActualReps
	EventSetRating
	EventSubmitLog
	EventFinalize
	EventQuit
)

func (t EventType) String() string {
	switch t {
	case EventTick:
		return "tick"
	case EventAdvance:
		return "advance"
	case EventSkip:
		return "skip"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventTogglePause:
		return "toggle-pause"
	case EventSetActualReps:
		return "set-actual-reps"
	case EventSetRating:
		return "set-rating"
	case EventSubmitLog:
		return "submit-log"
	case EventFinalize:
		return "finalize"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is one input to Runner.Dispatch. Set and Reps are used by
// EventSetActualReps, Rating by EventSetRating.
type Event struct {
	Type   EventType
	Set    int
	Reps   string
	Rating int
}
