// Package debounce delivers the last pushed value once input goes quiet.
package debounce

import (
	"sync"
	"time"

	bep "github.com/bep/debounce"
)

// Debouncer holds at most one pending value. After delay without a new Push the
// value is sent on C. A newer Push or Cancel discards anything still pending.
type Debouncer[T any] struct {
	mu        sync.Mutex
	debounced func(f func())
	gen       uint64
	pending   *T
	out       chan T
}

func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		debounced: bep.New(delay),
		out:       make(chan T, 1),
	}
}

// C receives committed values. Only the newest undelivered value is kept.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.pending = &v
	gen := d.gen
	d.debounced(func() { d.fire(gen) })
}

// Cancel drops the pending value
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.pending = nil
}

// Flush returns the pending value immediately and cancels its delivery
func (d *Debouncer[T]) Flush() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero T
	if d.pending == nil {
		return zero, false
	}
	v := *d.pending
	d.gen++
	d.pending = nil
	return v, true
}

func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || d.pending == nil {
		return
	}
	v := *d.pending
	d.pending = nil

	// replace an undelivered value rather than block the timer goroutine
	select {
	case <-d.out:
	default:
	}
	d.out <- v
}
