package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/minaorangina/memory/deck"
)

// PairedAssignment lays out pairs cards so that slots 2i and 2i+1 match
func PairedAssignment(pairs int) []deck.Card {
	d := deck.New()
	assignment := make([]deck.Card, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		assignment = append(assignment, d[i], d[i])
	}
	return assignment
}

// FixedDealer always deals PairedAssignment
type FixedDealer struct{}

func (FixedDealer) Deal(slots int) ([]deck.Card, error) {
	if slots <= 0 {
		return nil, ErrEmptyBoard
	}
	if slots%2 != 0 {
		return nil, ErrOddBoard
	}
	return PairedAssignment(slots / 2), nil
}

// FakeClock is a Clock whose time only moves on Advance
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs every callback that falls due,
// in deadline order, on the calling goroutine
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)

	due := []*fakeTimer{}
	pending := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.at.After(c.now):
			t.fired = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// Pending counts timers that have neither fired nor been stopped
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
