package constants

import "time"

// StorageKey names a JSON value in the key/value store
type StorageKey string

const (
	AppName           = "gymsimple"
	DefaultConfigPath = "~/.config/gymsimple/gymsimple.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage keys
	KeyExercises       StorageKey = "exercises"
	KeyWorkoutSessions StorageKey = "workout-sessions"
	KeySettings        StorageKey = "settings"
	KeyTags            StorageKey = "tags"
	KeyReminders       StorageKey = "reminders"

	// Export file names
	ExercisesFileName = "exercises.json"
	SessionsFileName  = "workout-sessions.json"

	// Default settings values
	DefaultPrepTime = 60
	DefaultAutoRest = true
	DefaultSkipLog  = false

	// Exercise entry limits
	MinTargetSets  = 1
	MinTargetReps  = 1
	MinRestTime    = 5 // seconds
	MaxRating      = 5
	AutoRestPerRep = 3 // seconds of perform time per target rep when auto rest is on

	// Settings input is committed after this much quiet
	SettingsDebounce = 500 * time.Millisecond

	// Endurance mode constants
	EndurancePrepTime = 5  // seconds
	EnduranceRestTime = 20 // seconds
	EnduranceReps     = 100

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "gymsimple-"

	// Lock constants
	LockfileSuffix = ".lock"

	// Keyring
	KeyringWebhookUser = "waitlist-webhook"

	// Reminder payload defaults
	ReminderTitle   = "Gym Time 🏋️"
	ReminderMessage = "Hit to the gym!"
)
