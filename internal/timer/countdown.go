// Package timer provides the tick-driven countdown and stopwatch used by the workout player.
// Each Tick call advances one second; the caller owns the clock.
package timer

// Countdown counts whole seconds down to zero and fires its callback exactly once
type Countdown struct {
	duration   int
	remaining  int
	started    bool
	paused     bool
	done       bool
	pausable   bool
	onComplete func()
}

// CountdownOption configures a Countdown
type CountdownOption func(*Countdown)

// NotPausable makes Pause and Toggle no-ops
func NotPausable() CountdownOption {
	return func(c *Countdown) {
		c.pausable = false
	}
}

// NewCountdown creates a stopped countdown of seconds. onComplete may be nil.
func NewCountdown(seconds int, onComplete func(), opts ...CountdownOption) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	c := &Countdown{
		duration:   seconds,
		remaining:  seconds,
		pausable:   true,
		onComplete: onComplete,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins counting. A zero-length countdown completes immediately.
func (c *Countdown) Start() {
	if c.started || c.done {
		return
	}
	c.started = true
	if c.remaining <= 0 {
		c.complete()
	}
}

// Tick advances one second and reports whether this tick completed the countdown
func (c *Countdown) Tick() bool {
	if !c.started || c.paused || c.done {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.complete()
		return true
	}
	return false
}

// Skip forces completion and clears the pause
func (c *Countdown) Skip() {
	if c.done {
		return
	}
	c.started = true
	c.paused = false
	c.remaining = 0
	c.complete()
}

func (c *Countdown) Pause() {
	if c.pausable && !c.done {
		c.paused = true
	}
}

func (c *Countdown) Resume() {
	c.paused = false
}

// Toggle flips between paused and running
func (c *Countdown) Toggle() {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

// Reset rearms the countdown with a new length, stopped and unpaused
func (c *Countdown) Reset(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.duration = seconds
	c.remaining = seconds
	c.started = false
	c.paused = false
	c.done = false
}

func (c *Countdown) complete() {
	c.done = true
	if c.onComplete != nil {
		c.onComplete()
	}
}

func (c *Countdown) Remaining() int { return c.remaining }
func (c *Countdown) Duration() int { return c.duration }
func (c *Countdown) Paused() bool { return c.paused }
func (c *Countdown) Done() bool { return c.done }
func (c *Countdown) Pausable() bool { return c.pausable }

// Progress returns the elapsed fraction in [0, 1]
func (c *Countdown) Progress() float64 {
	if c.duration == 0 {
		return 1
	}
	return float64(c.duration-c.remaining) / float64(c.duration)
}
