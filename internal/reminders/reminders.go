// Package reminders keeps at most one weekly workout reminder per weekday.
package reminders

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/scheduler"
)

type Manager struct {
	sched scheduler.Scheduler
}

func New(sched scheduler.Scheduler) *Manager {
	return &Manager{sched: sched}
}

// Set schedules the weekday reminder at clock (HH:MM), replacing any existing one
func (m *Manager) Set(ctx context.Context, weekday time.Weekday, clock string) (models.Reminder, error) {
	hour, minute, err := scheduler.ParseClock(clock)
	if err != nil {
		return models.Reminder{}, err
	}
	trigger := scheduler.Trigger{Weekday: weekday, Hour: hour, Minute: minute}
	if err := trigger.Validate(); err != nil {
		return models.Reminder{}, err
	}

	if _, err := m.Clear(ctx, weekday); err != nil {
		return models.Reminder{}, err
	}
	payload := scheduler.Payload{Title: constants.ReminderTitle, Message: constants.ReminderMessage}
	handle, err := m.sched.ScheduleWeekly(ctx, trigger, payload)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to schedule reminder: %w", err)
	}
	return models.Reminder{
		ID:      string(handle),
		Weekday: weekday,
		Hour:    hour,
		Minute:  minute,
		Title:   payload.Title,
		Message: payload.Message,
	}, nil
}

// Clear cancels every reminder on weekday and reports whether one existed
func (m *Manager) Clear(ctx context.Context, weekday time.Weekday) (bool, error) {
	list, err := m.sched.List(ctx)
	if err != nil {
		return false, err
	}
	cleared := false
	for _, r := range list {
		if r.Weekday != weekday {
			continue
		}
		if err := m.sched.Cancel(ctx, scheduler.Handle(r.ID)); err != nil {
			return cleared, fmt.Errorf("failed to cancel reminder: %w", err)
		}
		cleared = true
	}
	return cleared, nil
}

// List returns the active reminders, Sunday first
func (m *Manager) List(ctx context.Context) ([]models.Reminder, error) {
	list, err := m.sched.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(list, func(a, b models.Reminder) int {
		if a.Weekday != b.Weekday {
			return int(a.Weekday) - int(b.Weekday)
		}
		return strings.Compare(a.Clock(), b.Clock())
	})
	return list, nil
}

// ForWeekday returns the reminder set for weekday, if any
func (m *Manager) ForWeekday(ctx context.Context, weekday time.Weekday) (models.Reminder, bool, error) {
	list, err := m.sched.List(ctx)
	if err != nil {
		return models.Reminder{}, false, err
	}
	i := slices.IndexFunc(list, func(r models.Reminder) bool { return r.Weekday == weekday })
	if i < 0 {
		return models.Reminder{}, false, nil
	}
	return list[i], true, nil
}

// NextOccurrence returns the reminder time on the next weekday strictly after
// the day of now. A reminder for today's weekday lands a week out.
func NextOccurrence(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	y, m, d := now.AddDate(0, 0, days).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, now.Location())
}

// ParseWeekday accepts full or three-letter English names, any case
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}
