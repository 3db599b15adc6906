// Package rendezvous hands values one at a time from an asynchronous
// producer to a single sequential consumer running on its own goroutine.
//
// The consumer body is written as straight-line code calling Next. Each
// Supply resumes the consumer with one value and returns only once the
// consumer has suspended again (or returned), so producer and consumer
// never run at the same time.
package rendezvous

import (
	"errors"
	"sync"
)

var (
	ErrProtocolViolation = errors.New("no consumer is waiting for a value")
	ErrCancelled         = errors.New("rendezvous cancelled")
	ErrFinished          = errors.New("consumer has finished")
	ErrAlreadyStarted    = errors.New("rendezvous already started")
)

// Rendezvous is a one-slot handoff between a producer and a consumer body.
// The zero value is not usable; construct with New.
type Rendezvous[T any] struct {
	mu        sync.Mutex
	started   bool
	waiting   bool
	cancelled bool
	finished  bool

	handoff chan T
	parked  chan struct{}
	cancel  chan struct{}
	done    chan struct{}
}

// New constructs a Rendezvous
func New[T any]() *Rendezvous[T] {
	return &Rendezvous[T]{
		handoff: make(chan T),
		parked:  make(chan struct{}),
		cancel:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start runs body on a new goroutine and returns once body has reached
// its first call to Next, or has returned.
func (r *Rendezvous[T]) Start(body func()) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.mu.Unlock()

	go func() {
		defer r.finish()
		body()
	}()

	r.awaitPark()
	return nil
}

// Supply resumes the waiting consumer with v. It returns after the
// consumer has suspended in Next again or its body has returned.
func (r *Rendezvous[T]) Supply(v T) error {
	r.mu.Lock()
	switch {
	case r.cancelled:
		r.mu.Unlock()
		return ErrCancelled
	case r.finished:
		r.mu.Unlock()
		return ErrFinished
	case !r.waiting:
		r.mu.Unlock()
		return ErrProtocolViolation
	}
	r.waiting = false
	r.mu.Unlock()

	select {
	case r.handoff <- v:
	case <-r.cancel:
		return ErrCancelled
	}

	r.awaitPark()
	return nil
}

// Next suspends the consumer until Supply or Cancel is called.
// The boolean is false once the rendezvous is cancelled; that is the
// end of the stream and every later call returns immediately.
func (r *Rendezvous[T]) Next() (T, bool) {
	var zero T

	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		return zero, false
	}
	r.waiting = true
	r.mu.Unlock()

	// hand control back to whoever resumed us
	select {
	case r.parked <- struct{}{}:
	case <-r.cancel:
		return zero, false
	}

	select {
	case v := <-r.handoff:
		return v, true
	case <-r.cancel:
		return zero, false
	}
}

// Cancel ends the stream. Safe to call from any goroutine, any number of times.
func (r *Rendezvous[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelled {
		return
	}
	r.cancelled = true
	r.waiting = false
	close(r.cancel)
}

// Cancelled reports whether Cancel has been called.
func (r *Rendezvous[T]) Cancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelled
}

// Waiting reports whether the consumer is suspended in Next.
func (r *Rendezvous[T]) Waiting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.waiting
}

// Done is closed once the consumer body has returned.
func (r *Rendezvous[T]) Done() <-chan struct{} {
	return r.done
}

func (r *Rendezvous[T]) awaitPark() {
	select {
	case <-r.parked:
	case <-r.done:
	}
}

func (r *Rendezvous[T]) finish() {
	r.mu.Lock()
	r.finished = true
	r.waiting = false
	r.mu.Unlock()
	close(r.done)
}
