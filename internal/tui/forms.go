package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/validation"
)

// ExerciseFormModel backs the add/edit exercise form
type ExerciseFormModel struct {
	validation.ExerciseForm
	Tags    []string
	NewTags string // comma separated
}

func newExerciseFormModel(e models.ExerciseDetails) *ExerciseFormModel {
	return &ExerciseFormModel{
		ExerciseForm: validation.FormFromExercise(e),
		Tags:         append([]string(nil), e.Tags...),
	}
}

// defaultExercise pre-fills the add form
func defaultExercise() models.ExerciseDetails {
	return models.ExerciseDetails{
		TargetSets:     3,
		TargetReps:     10,
		TargetRestTime: 60,
		Weight:         models.Weight{Unit: models.WeightKg},
	}
}

// AllTags returns the picked tags followed by any typed new ones
func (fm *ExerciseFormModel) AllTags() []string {
	tags := append([]string(nil), fm.Tags...)
	for _, t := range strings.Split(fm.NewTags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func checkField(field string) func(string) error {
	return func(s string) error {
		return validation.CheckField(field, s)
	}
}

// NewExerciseForm builds the exercise form; known lists the tag set offered for picking
func NewExerciseForm(fm *ExerciseFormModel, known []string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Value(&fm.Name).
			Validate(checkField("name")),
		huh.NewInput().
			Title("Sets").
			Value(&fm.TargetSets).
			Validate(checkField("targetSets")),
		huh.NewInput().
			Title("Reps").
			Value(&fm.TargetReps).
			Validate(checkField("targetReps")),
		huh.NewInput().
			Title("Rest (seconds)").
			Value(&fm.TargetRestTime).
			Validate(checkField("targetRestTime")),
		huh.NewInput().
			Title("Weight").
			Value(&fm.WeightValue).
			Validate(checkField("weight.value")),
		huh.NewSelect[string]().
			Title("Unit").
			Options(
				huh.NewOption("kg", string(models.WeightKg)),
				huh.NewOption("lbs", string(models.WeightLbs)),
			).
			Value(&fm.WeightUnit),
	}

	if len(known) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Tags").
			Options(huh.NewOptions(known...)...).
			Value(&fm.Tags))
	}
	fields = append(fields, huh.NewInput().
		Title("New tags").
		Description("Comma separated").
		Value(&fm.NewTags))

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}
