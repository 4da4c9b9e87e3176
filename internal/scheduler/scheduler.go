// Package scheduler records weekly notification triggers and reports which are due.
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
)

// Trigger fires once a week at a wall-clock time
type Trigger struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

// Payload is what the notification shows
type Payload struct {
	Title   string
	Message string
}

// Handle identifies a scheduled trigger for cancellation
type Handle string

// Scheduler is the notification capability. List returns every live trigger.
type Scheduler interface {
	ScheduleWeekly(ctx context.Context, trigger Trigger, payload Payload) (Handle, error)
	Cancel(ctx context.Context, handle Handle) error
	List(ctx context.Context) ([]models.Reminder, error)
}

// ParseClock parses an HH:MM wall-clock time
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

func (t Trigger) Validate() error {
	if t.Weekday < time.Sunday || t.Weekday > time.Saturday {
		return fmt.Errorf("invalid weekday %d", t.Weekday)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("invalid time %02d:%02d", t.Hour, t.Minute)
	}
	return nil
}

func (t Trigger) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At returns the trigger instant on the day of date
func (t Trigger) At(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, date.Location())
}

// NextAfter returns the first firing strictly after instant
func (t Trigger) NextAfter(instant time.Time) time.Time {
	days := (int(t.Weekday) - int(instant.Weekday()) + 7) % 7
	next := t.At(instant.AddDate(0, 0, days))
	if !next.After(instant) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// TriggerOf returns the trigger a stored reminder was scheduled with
func TriggerOf(r models.Reminder) Trigger {
	return Trigger{Weekday: r.Weekday, Hour: r.Hour, Minute: r.Minute}
}

// Due returns the reminders that fired in the window (from, to], earliest first
func Due(reminders []models.Reminder, from, to time.Time) []models.Reminder {
	var due []models.Reminder
	for _, r := range reminders {
		if next := TriggerOf(r).NextAfter(from); !next.After(to) {
			due = append(due, r)
		}
	}
	slices.SortFunc(due, func(a, b models.Reminder) int {
		return TriggerOf(a).NextAfter(from).Compare(TriggerOf(b).NextAfter(from))
	})
	return due
}

// StoreScheduler keeps triggers under the reminders storage key. A cron job running
// the notify command is what actually delivers them.
type StoreScheduler struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *StoreScheduler {
	return &StoreScheduler{store: store, now: time.Now}
}

func (s *StoreScheduler) ScheduleWeekly(ctx context.Context, trigger Trigger, payload Payload) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := trigger.Validate(); err != nil {
		return "", err
	}

	reminders, err := storage.GetReminders(s.store)
	if err != nil {
		return "", err
	}
	r := models.Reminder{
		ID:        uuid.New().String(),
		Weekday:   trigger.Weekday,
		Hour:      trigger.Hour,
		Minute:    trigger.Minute,
		Title:     payload.Title,
		Message:   payload.Message,
		CreatedAt: s.now(),
	}
	if err := storage.SaveReminders(s.store, append(reminders, r)); err != nil {
		return "", fmt.Errorf("failed to save reminder: %w", err)
	}
	logger.Info("Scheduled weekly reminder", "id", r.ID, "weekday", r.Weekday, "time", r.Clock())
	return Handle(r.ID), nil
}

// Cancel removes the trigger; unknown handles are ignored
func (s *StoreScheduler) Cancel(ctx context.Context, handle Handle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	reminders, err := storage.GetReminders(s.store)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(reminders, func(r models.Reminder) bool { return r.ID == string(handle) })
	if err := storage.SaveReminders(s.store, kept); err != nil {
		return fmt.Errorf("failed to cancel reminder: %w", err)
	}
	logger.Debug("Cancelled reminder", "id", handle)
	return nil
}

func (s *StoreScheduler) List(ctx context.Context) ([]models.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return storage.GetReminders(s.store)
}
