package validation

import (
	"strconv"
	"strings"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/models"
)

// ValidateSession checks a finished session record
func (v *Validator) ValidateSession(s models.WorkoutSession) ValidationResult {
	var result ValidationResult

	if strings.TrimSpace(s.ID) == "" {
		result.add(ConflictMissingField, "id", "id is required")
	}
	if s.Date.IsZero() {
		result.add(ConflictMissingField, "date", "date is required")
	}
	if s.EndDate.IsZero() {
		result.add(ConflictMissingField, "endDate", "endDate is required")
	}
	if !s.Date.IsZero() && !s.EndDate.IsZero() && s.EndDate.Before(s.Date) {
		result.add(ConflictInvalidDateRange, "endDate", "endDate must not be before date")
	}

	for i, ex := range s.Exercises {
		prefix := "exercises[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(ex.Name) == "" {
			result.add(ConflictMissingField, prefix+".name", "name is required")
		}
		if ex.Rating < 0 || ex.Rating > constants.MaxRating {
			result.add(ConflictOutOfRange, prefix+".rating", "must be between 0 and %d", constants.MaxRating)
		}
		if ex.RestTime < 0 {
			result.add(ConflictOutOfRange, prefix+".restTime", "must not be negative")
		}
		if ex.Weight.Value < 0 {
			result.add(ConflictOutOfRange, prefix+".weight.value", "must be a non-negative number")
		}
		if !ex.Weight.Unit.Valid() {
			result.add(ConflictInvalidUnit, prefix+".weight.unit", "unit must be kg or lbs, got %q", ex.Weight.Unit)
		}
		for j, set := range ex.Sets {
			if set.TargetReps < 0 || set.ActualReps < 0 {
				result.add(ConflictOutOfRange, prefix+".set["+strconv.Itoa(j)+"]", "reps must not be negative")
			}
		}
	}
	return result
}
