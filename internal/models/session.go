package models

import "time"

// Set is one performed set: the target copied at logging time and what was actually done
type Set struct {
	TargetReps int `json:"targetReps"`
	ActualReps int `json:"actualReps"`
}

// ExerciseData is a completed exercise inside a session. ID is generated per
// completion and is unrelated to the catalog id.
type ExerciseData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Weight   Weight `json:"weight"`
	Sets     []Set  `json:"set"`
	RestTime int    `json:"restTime"` // seconds
	Rating   int    `json:"rating"`   // 1-5, 0 = unrated
}

// WorkoutSession is a finished run-through. Sessions are never edited in place.
type WorkoutSession struct {
	ID        string         `json:"id"`
	Date      time.Time      `json:"date"`
	Exercises []ExerciseData `json:"exercises"`
	EndDate   time.Time      `json:"endDate"`
}

// Duration returns the wall-clock length of the session
func (s WorkoutSession) Duration() time.Duration {
	return s.EndDate.Sub(s.Date)
}
