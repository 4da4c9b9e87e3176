package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
)

// New picks the backend from the data path: .json files use the JSON store,
// anything else is opened as SQLite
func New(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

// Get decodes the value under key into out. It reports false when the key is absent.
func Get(p Provider, key constants.StorageKey, out any) (bool, error) {
	data, err := p.GetItem(key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to read storage", "key", key, "error", err)
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Error("Failed to parse stored value", "key", key, "error", err)
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// Set encodes v as JSON under key
func Set(p Provider, key constants.StorageKey, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := p.SetItem(key, data); err != nil {
		logger.Error("Failed to write storage", "key", key, "error", err)
		return err
	}
	return nil
}

func GetExercises(p Provider) ([]models.ExerciseDetails, error) {
	var exercises []models.ExerciseDetails
	if _, err := Get(p, constants.KeyExercises, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func SaveExercises(p Provider, exercises []models.ExerciseDetails) error {
	if exercises == nil {
		exercises = []models.ExerciseDetails{}
	}
	return Set(p, constants.KeyExercises, exercises)
}

func GetSessions(p Provider) ([]models.WorkoutSession, error) {
	var sessions []models.WorkoutSession
	if _, err := Get(p, constants.KeyWorkoutSessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func SaveSessions(p Provider, sessions []models.WorkoutSession) error {
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	return Set(p, constants.KeyWorkoutSessions, sessions)
}

func GetTags(p Provider) ([]string, error) {
	var tags []string
	if _, err := Get(p, constants.KeyTags, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func SaveTags(p Provider, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return Set(p, constants.KeyTags, tags)
}

func GetReminders(p Provider) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if _, err := Get(p, constants.KeyReminders, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func SaveReminders(p Provider, reminders []models.Reminder) error {
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return Set(p, constants.KeyReminders, reminders)
}

// storedSettings tells absent fields apart from zero values
type storedSettings struct {
	PrepTime *int  `json:"prepTime"`
	AutoRest *bool `json:"autoRest"`
	SkipLog  *bool `json:"skipLog"`
}

// GetSettings returns the stored settings with defaults filled in for absent values
func GetSettings(p Provider) (models.Settings, error) {
	settings := models.DefaultSettings()

	var stored storedSettings
	if _, err := Get(p, constants.KeySettings, &stored); err != nil {
		return settings, err
	}
	if stored.PrepTime != nil {
		settings.PrepTime = *stored.PrepTime
	}
	if stored.AutoRest != nil {
		settings.AutoRest = *stored.AutoRest
	}
	if stored.SkipLog != nil {
		settings.SkipLog = *stored.SkipLog
	}
	return settings, nil
}

// SaveSettings writes the full settings record
func SaveSettings(p Provider, settings models.Settings) error {
	return Set(p, constants.KeySettings, settings)
}
