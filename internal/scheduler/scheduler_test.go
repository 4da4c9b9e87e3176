package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/storage"
)

func setupScheduler(t *testing.T) *StoreScheduler {
	t.Helper()
	p := storage.New(filepath.Join(t.TempDir(), "gymsimple.json"))
	if err := p.Init(); err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return New(p)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:30")
	if err != nil || h != 7 || m != 30 {
		t.Fatalf("ParseClock(07:30) = %d, %d, %v", h, m, err)
	}
	for _, bad := range []string{"", "7", "24:00", "12:60", "noon"} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) should fail", bad)
		}
	}
}

func TestTrigger_NextAfter(t *testing.T) {
	// Wednesday
	now := time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		trigger Trigger
		want    time.Time
	}{
		{"later this week", Trigger{time.Friday, 7, 0}, time.Date(2026, 1, 2, 7, 0, 0, 0, time.UTC)},
		{"later today", Trigger{time.Wednesday, 18, 15}, time.Date(2025, 12, 31, 18, 15, 0, 0, time.UTC)},
		{"earlier today", Trigger{time.Wednesday, 9, 0}, time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)},
		{"exactly now", Trigger{time.Wednesday, 10, 0}, time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)},
		{"earlier this week", Trigger{time.Monday, 6, 0}, time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trigger.NextAfter(now); !got.Equal(tt.want) {
				t.Errorf("NextAfter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrigger_Validate(t *testing.T) {
	if err := (Trigger{time.Saturday, 23, 59}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Trigger{time.Weekday(7), 8, 0}).Validate(); err == nil {
		t.Error("weekday 7 should be rejected")
	}
	if err := (Trigger{time.Monday, 25, 0}).Validate(); err == nil {
		t.Error("hour 25 should be rejected")
	}
}

func TestDue(t *testing.T) {
	reminders := []models.Reminder{
		{ID: "mon", Weekday: time.Monday, Hour: 7, Minute: 0},
		{ID: "wed-late", Weekday: time.Wednesday, Hour: 10, Minute: 5},
		{ID: "wed", Weekday: time.Wednesday, Hour: 9, Minute: 55},
	}
	to := time.Date(2025, 12, 31, 10, 10, 0, 0, time.UTC)
	due := Due(reminders, to.Add(-30*time.Minute), to)

	if len(due) != 2 || due[0].ID != "wed" || due[1].ID != "wed-late" {
		t.Fatalf("Due = %+v, want wed then wed-late", due)
	}
	if got := Due(reminders, to, to.Add(time.Minute)); len(got) != 0 {
		t.Errorf("expected nothing due, got %+v", got)
	}
}

func TestStoreScheduler_ScheduleAndCancel(t *testing.T) {
	ctx := context.Background()
	s := setupScheduler(t)
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	h, err := s.ScheduleWeekly(ctx, Trigger{time.Tuesday, 6, 30}, Payload{Title: "Gym", Message: "Go"})
	if err != nil {
		t.Fatalf("ScheduleWeekly failed: %v", err)
	}
	if _, err := s.ScheduleWeekly(ctx, Trigger{time.Thursday, 6, 30}, Payload{}); err != nil {
		t.Fatalf("ScheduleWeekly failed: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(list))
	}
	if list[0].ID != string(h) || list[0].Title != "Gym" || !list[0].CreatedAt.Equal(created) {
		t.Errorf("unexpected first reminder: %+v", list[0])
	}

	if err := s.Cancel(ctx, h); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if err := s.Cancel(ctx, "missing"); err != nil {
		t.Fatalf("Cancel of unknown handle failed: %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 1 || list[0].Weekday != time.Thursday {
		t.Errorf("expected only the Thursday reminder, got %+v", list)
	}
}

func TestStoreScheduler_RejectsInvalidTrigger(t *testing.T) {
	s := setupScheduler(t)
	if _, err := s.ScheduleWeekly(context.Background(), Trigger{time.Monday, 8, 75}, Payload{}); err == nil {
		t.Fatal("expected invalid trigger error")
	}
}

func TestStoreScheduler_CanceledContext(t *testing.T) {
	s := setupScheduler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ScheduleWeekly(ctx, Trigger{time.Monday, 8, 0}, Payload{}); err == nil {
		t.Fatal("expected context error")
	}
}
