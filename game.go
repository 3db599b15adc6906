package memory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/memory/rendezvous"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const (
	DefaultRows    = 4
	DefaultColumns = 6
)

var (
	ErrGameStarted = errors.New("game has already started")
	ErrGameEnded   = errors.New("game has ended")
)

// NewID returns a random game ID
func NewID() string {
	return uuid.NewV4().String()
}

type GameOpts struct {
	ID            string
	Rows          int
	Columns       int
	AutoFlipDelay time.Duration
	Strict        bool
	Clock         Clock
	Rand          *rand.Rand
	Dealer        Dealer
	Logger        *zap.Logger
	Observer      Observer
	// Prompter is used when set. Otherwise Ask poses the question and the
	// answer arrives through Game.Answer.
	Prompter Prompter
	Ask      AskFunc
}

// Game wires one coordinator to its board, timer and producer context
type Game struct {
	id      string
	rows    int
	columns int
	logger  *zap.Logger

	rv          *rendezvous.Rendezvous[Event]
	dispatcher  *Dispatcher
	timer       *AutoFlipTimer
	coordinator *Coordinator

	mu      sync.Mutex
	started bool
	status  Snapshot
	err     error
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewGame deals a board and builds everything needed to play on it
func NewGame(opts GameOpts) (*Game, error) {
	rows, columns := opts.Rows, opts.Columns
	if rows <= 0 {
		rows = DefaultRows
	}
	if columns <= 0 {
		columns = DefaultColumns
	}
	id := opts.ID
	if id == "" {
		id = NewID()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("game_id", id))

	dealer := opts.Dealer
	if dealer == nil {
		dealer = NewDeckDealer(opts.Rand)
	}
	assignment, err := dealer.Deal(rows * columns)
	if err != nil {
		return nil, err
	}
	table, err := NewTable(assignment, opts.Observer)
	if err != nil {
		return nil, err
	}

	g := &Game{
		id:      id,
		rows:    rows,
		columns: columns,
		logger:  logger,
		rv:      rendezvous.New[Event](),
		done:    make(chan struct{}),
	}

	g.timer = NewAutoFlipTimer(opts.Clock, opts.AutoFlipDelay, func(ev Event) {
		g.dispatcher.Post(ev)
	})

	g.dispatcher, err = NewDispatcher(DispatcherOpts{
		Supplier: g.rv,
		Expirer:  g.timer,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	prompter := opts.Prompter
	if prompter == nil && opts.Ask != nil {
		prompter = NewAsyncPrompter(opts.Ask, g.rv.Next, logger)
	}

	g.coordinator, err = NewCoordinator(CoordinatorOpts{
		Board:    table,
		Prompter: prompter,
		Dealer:   dealer,
		Timer:    g.timer,
		Next:     g.rv.Next,
		Strict:   opts.Strict,
		Logger:   logger,
		Observe:  g.setStatus,
	})
	if err != nil {
		return nil, err
	}
	g.status = g.coordinator.Snapshot()

	return g, nil
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Rows() int {
	return g.rows
}

func (g *Game) Columns() int {
	return g.columns
}

// Start runs the coordinator and the dispatcher. The game stops when the
// player declines another game, when Cancel is called or when ctx is done.
func (g *Game) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return ErrGameStarted
	}
	g.started = true
	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.mu.Unlock()

	err := g.rv.Start(func() {
		if err := g.coordinator.Run(); err != nil {
			g.logger.Error("coordinator stopped", zap.Error(err))
			g.mu.Lock()
			g.err = err
			g.mu.Unlock()
		}
	})
	if err != nil {
		cancel()
		return err
	}

	go func() {
		if err := g.dispatcher.Run(ctx); err != nil {
			g.logger.Error("dispatcher stopped", zap.Error(err))
		}
	}()

	go g.watch(ctx, cancel)

	g.logger.Info("game started", zap.Int("rows", g.rows), zap.Int("columns", g.columns))
	return nil
}

func (g *Game) watch(ctx context.Context, cancel context.CancelFunc) {
	select {
	case <-g.rv.Done():
	case <-ctx.Done():
		g.rv.Cancel()
		<-g.rv.Done()
	}
	cancel()
	<-g.dispatcher.Done()
	g.timer.Disarm()

	g.logger.Info("game finished")
	close(g.done)
}

// Click posts a click on slot s
func (g *Game) Click(s Slot) error {
	return g.post(ClickEvent(s))
}

// Answer posts the player's answer to the play-again question
func (g *Game) Answer(yes bool) error {
	return g.post(AnswerEvent(yes))
}

func (g *Game) post(ev Event) error {
	if !g.dispatcher.Post(ev) {
		return ErrGameEnded
	}
	return nil
}

// Cancel ends the game. The coordinator returns without touching the
// board again.
func (g *Game) Cancel() {
	g.rv.Cancel()

	g.mu.Lock()
	cancel := g.cancel
	g.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Done is closed once a started game has fully stopped
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until a started game has stopped and returns the
// coordinator's error, if any
func (g *Game) Wait() error {
	<-g.done

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Status returns the snapshot published after the latest step
func (g *Game) Status() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *Game) setStatus(s Snapshot) {
	g.mu.Lock()
	g.status = s
	g.mu.Unlock()
}
