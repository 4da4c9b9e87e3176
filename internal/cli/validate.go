package cli

import (
	"fmt"

	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	fmt.Println("Validating exercises, selection and workout history...")
	result, err := validateData(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(result.FormatReport())
	return nil
}

// validateData checks every exercise, the selection order and every session
func validateData(ctx *Context) (validation.ValidationResult, error) {
	var combined validation.ValidationResult

	exercises, err := storage.GetExercises(ctx.Store)
	if err != nil {
		return combined, fmt.Errorf("failed to load exercises: %w", err)
	}
	list, err := storage.GetSessions(ctx.Store)
	if err != nil {
		return combined, fmt.Errorf("failed to load sessions: %w", err)
	}

	validator := validation.New()

	for _, e := range exercises {
		r := validator.ValidateExercise(e)
		combined.Conflicts = append(combined.Conflicts, r.Conflicts...)
	}

	r := validator.ValidateSelection(exercises)
	combined.Conflicts = append(combined.Conflicts, r.Conflicts...)

	for _, s := range list {
		r := validator.ValidateSession(s)
		combined.Conflicts = append(combined.Conflicts, r.Conflicts...)
	}

	return combined, nil
}
