package memory

import (
	"sync"
	"time"
)

// DefaultAutoFlipDelay is how long two non-matching cards stay face up
const DefaultAutoFlipDelay = 1 * time.Second

// Timer represents a timer that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock provides the timer operations the game needs, so tests can
// substitute a clock they control.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// AutoFlipTimer is a one-shot, restartable deadline. On expiry it posts a
// Timeout event tagged with the generation it was armed as; Expire lets
// the producer side discard timeouts from a generation that was disarmed.
type AutoFlipTimer struct {
	clock Clock
	delay time.Duration
	post  func(Event)

	mu      sync.Mutex
	gen     uint64
	armed   bool
	pending Timer
}

// NewAutoFlipTimer constructs an AutoFlipTimer. post is called from the
// clock's goroutine and must hand the event to the producer context.
func NewAutoFlipTimer(clock Clock, delay time.Duration, post func(Event)) *AutoFlipTimer {
	if clock == nil {
		clock = SystemClock
	}
	if delay <= 0 {
		delay = DefaultAutoFlipDelay
	}
	return &AutoFlipTimer{clock: clock, delay: delay, post: post}
}

// Arm starts the deadline from zero, cancelling any earlier one
func (t *AutoFlipTimer) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
	}
	t.gen++
	gen := t.gen
	t.armed = true
	t.pending = t.clock.AfterFunc(t.delay, func() {
		t.post(TimeoutEvent(gen))
	})
}

// Disarm stops the deadline. It does nothing if the deadline has already
// been consumed by Expire, and reports whether it stopped anything.
func (t *AutoFlipTimer) Disarm() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed {
		return false
	}
	t.armed = false
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	return true
}

// Expire consumes the deadline for generation gen. It returns false when
// gen is stale or the timer was disarmed, in which case the timeout must
// be dropped.
func (t *AutoFlipTimer) Expire(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed || gen != t.gen {
		return false
	}
	t.armed = false
	t.pending = nil
	return true
}

// Armed reports whether a deadline is pending
func (t *AutoFlipTimer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Delay returns the configured deadline
func (t *AutoFlipTimer) Delay() time.Duration {
	return t.delay
}
