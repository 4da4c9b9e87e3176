package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/gymsimple/internal/cli"
	"github.com/julianstephens/gymsimple/internal/constants"
	errs "github.com/julianstephens/gymsimple/internal/errors"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data file path. A .json extension selects the JSON store." type:"path" default:"${data}" env:"GYMSIMPLE_DATA"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize gymsimple storage."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Play      cli.PlayCmd      `cmd:"" help:"Run the selected exercises as a workout."`
	Endurance cli.EnduranceCmd `cmd:"" help:"Run the bodyweight endurance circuit."`
	Exercise  struct {
		Add    cli.ExerciseAddCmd    `cmd:"" help:"Add a new exercise."`
		Edit   cli.ExerciseEditCmd   `cmd:"" help:"Edit an existing exercise."`
		Delete cli.ExerciseDeleteCmd `cmd:"" help:"Delete an exercise."`
		List   cli.ExerciseListCmd   `cmd:"" help:"List exercises."`
		Select cli.ExerciseSelectCmd `cmd:"" help:"Toggle exercises in the workout selection."`
		Clear  cli.ExerciseClearCmd  `cmd:"" help:"Clear the workout selection."`
	} `cmd:"" help:"Manage the exercise catalog."`
	Tag struct {
		List   cli.TagListCmd   `cmd:"" help:"List tags."`
		Add    cli.TagAddCmd    `cmd:"" help:"Add a tag."`
		Remove cli.TagRemoveCmd `cmd:"" help:"Remove a tag."`
	} `cmd:"" help:"Manage exercise tags."`
	Session struct {
		List   cli.SessionListCmd   `cmd:"" help:"List recorded workouts."`
		Show   cli.SessionShowCmd   `cmd:"" help:"Show a workout summary."`
		Delete cli.SessionDeleteCmd `cmd:"" help:"Delete a recorded workout."`
		Stats  cli.SessionStatsCmd  `cmd:"" help:"Show totals over all workouts."`
	} `cmd:"" help:"Browse workout history."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change workout settings."`
	Export   cli.ExportCmd   `cmd:"" help:"Export exercises or sessions as JSON."`
	Import   cli.ImportCmd   `cmd:"" help:"Import exercises or sessions from JSON."`
	Reminder struct {
		Set   cli.ReminderSetCmd   `cmd:"" help:"Set the weekly reminder for a weekday."`
		List  cli.ReminderListCmd  `cmd:"" help:"List weekly reminders."`
		Clear cli.ReminderClearCmd `cmd:"" help:"Clear the reminder for a weekday."`
	} `cmd:"" help:"Manage weekly workout reminders."`
	Notify   cli.NotifyCmd `cmd:"" hidden:"" help:"Print reminders that are due. Run from cron."`
	Waitlist struct {
		Serve        cli.WaitlistServeCmd        `cmd:"" help:"Serve the waitlist sign-up endpoint."`
		SetWebhook   cli.WaitlistSetWebhookCmd   `cmd:"" help:"Store the webhook URL in the OS keyring."`
		ClearWebhook cli.WaitlistClearWebhookCmd `cmd:"" help:"Remove the webhook URL from the OS keyring."`
	} `cmd:"" help:"Run the waitlist server."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup file."`
	} `cmd:"" help:"Manage backups."`
	Validate cli.ValidateCmd `cmd:"" help:"Validate exercises, selection and history."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" hidden:"" help:"Debugging helpers."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Simple gym workout tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"version": constants.Version,
			"data":    constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: filepath.Dir(CLI.Data)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store := storage.New(CLI.Data)
	defer store.Close()

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			errs.Fatal(err)
		}
	}

	err := ctx.Run(cli.NewContext(store))
	if err != nil {
		store.Close()
		errs.Fatal(err)
	}
}

// needsStore reports whether the command reads the data file. init creates it and
// the waitlist server never touches it.
func needsStore(command string) bool {
	return command != "init" && !strings.HasPrefix(command, "waitlist")
}
