package models

import "github.com/julianstephens/gymsimple/internal/constants"

// Settings represents the workout player settings
type Settings struct {
	PrepTime int  `json:"prepTime"` // seconds of countdown before each exercise
	AutoRest bool `json:"autoRest"` // advance sets automatically after targetReps x 3 seconds
	SkipLog  bool `json:"skipLog"`  // bypass the quick log and record target reps
}

// DefaultSettings returns the settings used when nothing has been stored yet
func DefaultSettings() Settings {
	return Settings{
		PrepTime: constants.DefaultPrepTime,
		AutoRest: constants.DefaultAutoRest,
		SkipLog:  constants.DefaultSkipLog,
	}
}
