package timer

import (
	"fmt"
	"time"
)

// Stopwatch counts seconds up while running
type Stopwatch struct {
	elapsed int
	paused  bool
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

func (s *Stopwatch) Tick() {
	if !s.paused {
		s.elapsed++
	}
}

func (s *Stopwatch) Pause() { s.paused = true }
func (s *Stopwatch) Resume() { s.paused = false }
func (s *Stopwatch) Paused() bool { return s.paused }
func (s *Stopwatch) Seconds() int { return s.elapsed }
func (s *Stopwatch) Reset() { s.elapsed = 0 }
func (s *Stopwatch) String() string { return FormatClock(s.elapsed) }

// Elapsed returns the counted time as a duration
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Duration(s.elapsed) * time.Second
}

// FormatClock renders seconds as M:SS, or H:MM:SS from one hour up
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
