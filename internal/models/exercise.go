package models

import "slices"

// WeightUnit is the unit an exercise weight was entered in
type WeightUnit string

const (
	WeightKg  WeightUnit = "kg"
	WeightLbs WeightUnit = "lbs"
)

// Valid reports whether u is a supported unit
func (u WeightUnit) Valid() bool {
	return u == WeightKg || u == WeightLbs
}

// Weight is a load snapshot. Value travels as a JSON string, the way it was typed.
type Weight struct {
	Value float64    `json:"value,string"`
	Unit  WeightUnit `json:"unit"`
}

// ExerciseDetails is a catalog entry the user can select into a workout.
// The integer targets are persisted as JSON strings for compatibility with
// files exported by the mobile app.
type ExerciseDetails struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	TargetSets     int      `json:"targetSets,string"`
	TargetReps     int      `json:"targetReps,string"`
	TargetRestTime int      `json:"targetRestTime,string"` // seconds
	Weight         Weight   `json:"weight"`
	Selected       bool     `json:"selected"`
	SelectionOrder *int     `json:"selectionOrder,omitempty"` // 1-based rank among selected entries
	Tags           []string `json:"tags,omitempty"`
}

// HasTag reports whether the exercise carries tag
func (e ExerciseDetails) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Order returns the selection order and whether one is set
func (e ExerciseDetails) Order() (int, bool) {
	if e.SelectionOrder == nil {
		return 0, false
	}
	return *e.SelectionOrder, true
}

// OrderPtr returns a pointer to a copy of n, for assigning SelectionOrder
func OrderPtr(n int) *int {
	return &n
}
