package models

import (
	"fmt"
	"time"
)

// Reminder is a weekly workout notification
type Reminder struct {
	ID        string       `json:"id"`
	Weekday   time.Weekday `json:"weekday"` // 0 = Sunday
	Hour      int          `json:"hour"`
	Minute    int          `json:"minute"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"created_at"`
}

// Clock returns the reminder time as HH:MM
func (r Reminder) Clock() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}
