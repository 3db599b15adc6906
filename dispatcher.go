package memory

import (
	"context"
	"errors"

	"github.com/minaorangina/memory/rendezvous"
	"go.uber.org/zap"
)

const defaultInboundBuffer = 64

var ErrNilSupplier = errors.New("dispatcher needs a supplier")

// Supplier resumes the consumer with one event
type Supplier interface {
	Supply(Event) error
}

// Expirer decides whether a timeout still belongs to the armed deadline
type Expirer interface {
	Expire(gen uint64) bool
}

type DispatcherOpts struct {
	Supplier Supplier
	// Expirer may be nil, in which case every timeout is delivered
	Expirer Expirer
	Logger  *zap.Logger
	Buffer  int
}

// Dispatcher is the producer context. Clicks, answers and timer expiries
// are posted to it from any goroutine; its Run loop delivers them one at
// a time, so Supply is never called concurrently.
type Dispatcher struct {
	supplier Supplier
	expirer  Expirer
	logger   *zap.Logger

	inboundCh chan Event
	done      chan struct{}
	seq       uint64
}

// NewDispatcher constructs a Dispatcher
func NewDispatcher(opts DispatcherOpts) (*Dispatcher, error) {
	if opts.Supplier == nil {
		return nil, ErrNilSupplier
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = defaultInboundBuffer
	}

	return &Dispatcher{
		supplier:  opts.Supplier,
		expirer:   opts.Expirer,
		logger:    logger,
		inboundCh: make(chan Event, buffer),
		done:      make(chan struct{}),
	}, nil
}

// Post queues ev for delivery. It returns false once the dispatcher has
// stopped.
func (d *Dispatcher) Post(ev Event) bool {
	select {
	case <-d.done:
		return false
	default:
	}

	select {
	case d.inboundCh <- ev:
		return true
	case <-d.done:
		return false
	}
}

// Deliver numbers ev and supplies it. Timeouts for a disarmed or
// superseded deadline are dropped. Only call it from the Run goroutine,
// or in place of Run.
func (d *Dispatcher) Deliver(ev Event) error {
	if ev.Kind == Timeout && d.expirer != nil && !d.expirer.Expire(ev.Gen) {
		d.logger.Debug("dropping stale timeout", zap.Uint64("gen", ev.Gen))
		return nil
	}

	d.seq++
	ev.Seq = d.seq
	return d.supplier.Supply(ev)
}

// Run delivers posted events until ctx is done or the consumer stops
// accepting them
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-d.inboundCh:
			err := d.Deliver(ev)
			switch {
			case err == nil:
			case errors.Is(err, rendezvous.ErrCancelled), errors.Is(err, rendezvous.ErrFinished):
				d.logger.Debug("consumer stopped", zap.Error(err))
				return nil
			case errors.Is(err, ErrProtocolViolation):
				d.logger.Error("event supplied with no consumer waiting",
					zap.Error(err),
					zap.Stringer("event", ev),
				)
			default:
				return err
			}
		}
	}
}

// Done is closed once Run has returned
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}
