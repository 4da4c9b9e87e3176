package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/reminders"
	"github.com/julianstephens/gymsimple/internal/scheduler"
)

type ReminderSetCmd struct {
	Day  string `arg:"" help:"Weekday, e.g. monday or mon."`
	Time string `arg:"" help:"Time of day in HH:MM."`
}

func (c *ReminderSetCmd) Run(ctx *Context) error {
	weekday, err := reminders.ParseWeekday(c.Day)
	if err != nil {
		return err
	}
	r, err := ctx.Reminders().Set(context.Background(), weekday, c.Time)
	if err != nil {
		return err
	}
	next := reminders.NextOccurrence(time.Now(), r.Weekday, r.Hour, r.Minute)
	fmt.Printf("Reminder set for %s at %s (next: %s)\n", r.Weekday, r.Clock(), formatDate(next))
	return nil
}

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *Context) error {
	list, err := ctx.Reminders().List(context.Background())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No reminders set")
		return nil
	}

	now := time.Now()
	fmt.Println("Reminders:")
	for _, r := range list {
		next := reminders.NextOccurrence(now, r.Weekday, r.Hour, r.Minute)
		fmt.Printf("  %-9s %s  next %s\n", r.Weekday, r.Clock(), formatDate(next))
	}
	return nil
}

type ReminderClearCmd struct {
	Day string `arg:"" help:"Weekday to clear."`
}

func (c *ReminderClearCmd) Run(ctx *Context) error {
	weekday, err := reminders.ParseWeekday(c.Day)
	if err != nil {
		return err
	}
	cleared, err := ctx.Reminders().Clear(context.Background(), weekday)
	if err != nil {
		return err
	}
	if !cleared {
		fmt.Printf("No reminder set for %s\n", weekday)
		return nil
	}
	fmt.Printf("Cleared reminder for %s\n", weekday)
	return nil
}

// NotifyCmd prints reminders that came due in the last window. It is meant to run from cron.
type NotifyCmd struct {
	Window time.Duration `help:"How far back to look for due reminders." default:"1m"`
	DryRun bool          `help:"List due reminders without the notification bell."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	list, err := ctx.Scheduler.List(context.Background())
	if err != nil {
		return err
	}

	now := time.Now()
	for _, r := range scheduler.Due(list, now.Add(-c.Window), now) {
		if c.DryRun {
			fmt.Printf("due: %s %s %s\n", r.Weekday, r.Clock(), r.Title)
			continue
		}
		title := r.Title
		if title == "" {
			title = constants.ReminderTitle
		}
		fmt.Printf("\a%s\n%s\n", title, r.Message)
	}
	return nil
}
