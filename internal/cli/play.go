package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/gymsimple/internal/lock"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/stats"
	"github.com/julianstephens/gymsimple/internal/storage"
	"github.com/julianstephens/gymsimple/internal/tui"
	"github.com/julianstephens/gymsimple/internal/workout"
)

// PlayCmd runs the selected exercises without the full TUI
type PlayCmd struct{}

func (c *PlayCmd) Run(ctx *Context) error {
	l, err := lock.Acquire(ctx.Store.GetConfigPath())
	if errors.Is(err, lock.ErrLocked) {
		return fmt.Errorf("%w, close it first", err)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	selected, err := ctx.Catalog().Selected()
	if err != nil {
		return err
	}
	settings, err := storage.GetSettings(ctx.Store)
	if err != nil {
		return err
	}
	runner, err := workout.New(selected, settings, ctx.Sessions())
	if errors.Is(err, workout.ErrNoExercises) {
		return errors.New("no exercises selected, use 'gymsimple exercise select' first")
	}
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(tui.NewWorkoutModel(runner)).Run()
	if err != nil {
		return fmt.Errorf("error running workout: %w", err)
	}

	session, ok := final.(tui.WorkoutModel).Session()
	if !ok {
		fmt.Println("Workout abandoned. Nothing was saved.")
		return nil
	}
	for _, in := range stats.Insights(session) {
		fmt.Printf("%s %s\n", in.Title, in.Description)
	}
	return nil
}

// EnduranceCmd runs the fixed bodyweight circuit. Nothing is recorded.
type EnduranceCmd struct{}

func (c *EnduranceCmd) Run(ctx *Context) error {
	final, err := tea.NewProgram(tui.NewEnduranceModel()).Run()
	if err != nil {
		return fmt.Errorf("error running endurance circuit: %w", err)
	}
	if result, ok := final.(tui.EnduranceModel).Result(); ok {
		fmt.Printf("Circuit ended after %d round(s) in %s\n", result.Rounds, result.Elapsed)
	}
	return nil
}
