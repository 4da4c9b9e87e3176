package validation

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/models"
)

// ExerciseForm holds the raw text of the exercise entry form
type ExerciseForm struct {
	Name           string
	TargetSets     string
	TargetReps     string
	TargetRestTime string
	WeightValue    string
	WeightUnit     string
}

// FormFromExercise pre-fills a form for editing
func FormFromExercise(e models.ExerciseDetails) ExerciseForm {
	return ExerciseForm{
		Name:           e.Name,
		TargetSets:     strconv.Itoa(e.TargetSets),
		TargetReps:     strconv.Itoa(e.TargetReps),
		TargetRestTime: strconv.Itoa(e.TargetRestTime),
		WeightValue:    strconv.FormatFloat(e.Weight.Value, 'f', -1, 64),
		WeightUnit:     string(e.Weight.Unit),
	}
}

// ParseExerciseForm converts form text into exercise fields. Selection state and
// the id are left for the caller; nothing is returned usable when the result has conflicts.
func (v *Validator) ParseExerciseForm(f ExerciseForm) (models.ExerciseDetails, ValidationResult) {
	var result ValidationResult
	var e models.ExerciseDetails

	e.Name = strings.TrimSpace(f.Name)
	e.TargetSets = parseWholeNumber(&result, "targetSets", f.TargetSets, constants.MinTargetSets)
	e.TargetReps = parseWholeNumber(&result, "targetReps", f.TargetReps, constants.MinTargetReps)
	e.TargetRestTime = parseWholeNumber(&result, "targetRestTime", f.TargetRestTime, constants.MinRestTime)
	e.Weight.Value = parseWeight(&result, "weight.value", f.WeightValue)
	e.Weight.Unit = models.WeightUnit(strings.TrimSpace(f.WeightUnit))

	if e.Name == "" {
		result.add(ConflictMissingField, "name", "name is required")
	}
	if !e.Weight.Unit.Valid() {
		result.add(ConflictInvalidUnit, "weight.unit", "unit must be kg or lbs, got %q", f.WeightUnit)
	}
	return e, result
}

// ValidateExercise checks an already typed exercise against the catalog rules
func (v *Validator) ValidateExercise(e models.ExerciseDetails) ValidationResult {
	var result ValidationResult

	if strings.TrimSpace(e.ID) == "" {
		result.add(ConflictMissingField, "id", "id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		result.add(ConflictMissingField, "name", "name is required")
	}
	if e.TargetSets < constants.MinTargetSets {
		result.add(ConflictOutOfRange, "targetSets", "must be at least %d", constants.MinTargetSets)
	}
	if e.TargetReps < constants.MinTargetReps {
		result.add(ConflictOutOfRange, "targetReps", "must be at least %d", constants.MinTargetReps)
	}
	if e.TargetRestTime < constants.MinRestTime {
		result.add(ConflictOutOfRange, "targetRestTime", "must be at least %d seconds", constants.MinRestTime)
	}
	if e.Weight.Value < 0 || math.IsNaN(e.Weight.Value) || math.IsInf(e.Weight.Value, 0) {
		result.add(ConflictOutOfRange, "weight.value", "must be a non-negative number")
	}
	if !e.Weight.Unit.Valid() {
		result.add(ConflictInvalidUnit, "weight.unit", "unit must be kg or lbs, got %q", e.Weight.Unit)
	}
	if order, ok := e.Order(); ok && order < 1 {
		result.add(ConflictSelectionOrder, "selectionOrder", "must be at least 1")
	}
	for i := range result.Conflicts {
		result.Conflicts[i].Items = []string{e.Name}
	}
	return result
}

// ValidateSelection checks that selected exercises carry the unique orders 1..N
func (v *Validator) ValidateSelection(exercises []models.ExerciseDetails) ValidationResult {
	var result ValidationResult

	seen := make(map[int]string)
	selected := 0
	for _, e := range exercises {
		if !e.Selected {
			if _, ok := e.Order(); ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictSelectionOrder,
					Field:       "selectionOrder",
					Description: "unselected exercise still has a selection order",
					Items:       []string{e.Name},
				})
			}
			continue
		}
		selected++
		order, ok := e.Order()
		if !ok {
			continue
		}
		if other, dup := seen[order]; dup {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictSelectionOrder,
				Field:       "selectionOrder",
				Description: "selection order " + strconv.Itoa(order) + " is used twice",
				Items:       []string{other, e.Name},
			})
			continue
		}
		seen[order] = e.Name
	}
	for _, order := range slices.Sorted(maps.Keys(seen)) {
		if order < 1 || order > selected {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictSelectionOrder,
				Field:       "selectionOrder",
				Description: "selection order " + strconv.Itoa(order) + " is outside 1.." + strconv.Itoa(selected),
				Items:       []string{seen[order]},
			})
		}
	}
	return result
}

// CheckField validates one exercise form field on its own, for inline form feedback
func CheckField(field, raw string) error {
	var result ValidationResult
	switch field {
	case "name":
		if strings.TrimSpace(raw) == "" {
			result.add(ConflictMissingField, field, "name is required")
		}
	case "targetSets":
		parseWholeNumber(&result, field, raw, constants.MinTargetSets)
	case "targetReps":
		parseWholeNumber(&result, field, raw, constants.MinTargetReps)
	case "targetRestTime":
		parseWholeNumber(&result, field, raw, constants.MinRestTime)
	case "weight.value":
		parseWeight(&result, field, raw)
	case "weight.unit":
		if !models.WeightUnit(strings.TrimSpace(raw)).Valid() {
			result.add(ConflictInvalidUnit, field, "unit must be kg or lbs, got %q", raw)
		}
	}
	if !result.HasConflicts() {
		return nil
	}
	return result.Conflicts[0]
}

// ParseReps parses an actual-reps entry from the quick log
func ParseReps(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseWholeNumber(result *ValidationResult, field, raw string, minimum int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		result.add(ConflictMissingField, field, "%s is required", field)
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		result.add(ConflictInvalidNumber, field, "must be a whole number, got %q", raw)
		return 0
	}
	if n < minimum {
		result.add(ConflictOutOfRange, field, "must be at least %d", minimum)
	}
	return n
}

// parseWeight accepts an empty value as bodyweight (0)
func parseWeight(result *ValidationResult, field, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		result.add(ConflictInvalidNumber, field, "must be a decimal number, got %q", raw)
		return 0
	}
	if f < 0 {
		result.add(ConflictOutOfRange, field, "must be a non-negative number")
	}
	return f
}
