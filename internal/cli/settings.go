package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/gymsimple/internal/storage"
)

type SettingsCmd struct {
	List     bool  `help:"List current settings."`
	PrepTime *int  `help:"Seconds of countdown before each exercise."`
	AutoRest *bool `help:"Advance sets automatically after target reps x 3 seconds."`
	SkipLog  *bool `help:"Skip the quick log and record target reps."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings, err := storage.GetSettings(ctx.Store)
	if err != nil {
		return err
	}

	if c.List || (c.PrepTime == nil && c.AutoRest == nil && c.SkipLog == nil) {
		fmt.Printf("prep_time: %ds\n", settings.PrepTime)
		fmt.Printf("auto_rest: %t\n", settings.AutoRest)
		fmt.Printf("skip_log: %t\n", settings.SkipLog)
		return nil
	}

	if c.PrepTime != nil {
		if *c.PrepTime <= 0 {
			return errors.New("prep time must be a whole number of seconds greater than 0")
		}
		settings.PrepTime = *c.PrepTime
	}
	if c.AutoRest != nil {
		settings.AutoRest = *c.AutoRest
	}
	if c.SkipLog != nil {
		settings.SkipLog = *c.SkipLog
	}

	if err := storage.SaveSettings(ctx.Store, settings); err != nil {
		return err
	}
	fmt.Println("Settings updated")
	return nil
}
