package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/gymsimple/internal/stats"
	"github.com/julianstephens/gymsimple/internal/tui/components/sessionview"
)

type SessionListCmd struct {
	Limit int `help:"Show at most this many sessions, newest first. 0 shows all." default:"10"`
}

func (c *SessionListCmd) Run(ctx *Context) error {
	list, err := ctx.Sessions().List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No workouts recorded yet")
		return nil
	}

	shown := list
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}

	fmt.Println("Workouts:")
	for _, s := range shown {
		sum := stats.Summarize(s)
		fmt.Printf("  %s  %-8s %d exercise(s), %d sets, %d reps  [%s]\n",
			formatDate(s.Date), sum.Duration.Round(time.Second), len(s.Exercises), sum.TotalSets, sum.TotalReps, shortID(s.ID))
	}
	if len(shown) < len(list) {
		fmt.Printf("  ... %d older workout(s)\n", len(list)-len(shown))
	}
	return nil
}

type SessionShowCmd struct {
	ID string `arg:"" help:"Session ID or ID prefix."`
}

func (c *SessionShowCmd) Run(ctx *Context) error {
	s, err := resolveSession(ctx.Sessions(), c.ID)
	if err != nil {
		return err
	}
	fmt.Println(sessionview.Render(s))
	return nil
}

type SessionDeleteCmd struct {
	ID  string `arg:"" help:"Session ID or ID prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *SessionDeleteCmd) Run(ctx *Context) error {
	store := ctx.Sessions()
	s, err := resolveSession(store, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete the workout from %s?", formatDate(s.Date)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := store.Delete(s.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted workout from %s\n", formatDate(s.Date))
	return nil
}

type SessionStatsCmd struct{}

func (c *SessionStatsCmd) Run(ctx *Context) error {
	list, err := ctx.Sessions().List()
	if err != nil {
		return err
	}
	totals := stats.History(list)
	fmt.Printf("Workouts:  %d\n", totals.Workouts)
	fmt.Printf("Exercises: %d\n", totals.Exercises)
	fmt.Printf("Sets:      %d\n", totals.Sets)
	fmt.Printf("Reps:      %d\n", totals.Reps)
	return nil
}
