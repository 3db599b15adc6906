package memory

import (
	"errors"
	"fmt"

	"github.com/minaorangina/memory/rendezvous"
	"go.uber.org/zap"
)

var (
	ErrNilBoard    = errors.New("coordinator needs a board")
	ErrNilPrompter = errors.New("coordinator needs a prompter")
	ErrNilDealer   = errors.New("coordinator needs a dealer")
	ErrNilTimer    = errors.New("coordinator needs an auto-flip timer")
	ErrNilNext     = errors.New("coordinator needs an event source")

	// ErrProtocolViolation means events arrived that the turn protocol rules out,
	// such as a timeout while no mismatched pair is showing.
	ErrProtocolViolation = rendezvous.ErrProtocolViolation
	ErrCancelled         = rendezvous.ErrCancelled
)

// AutoFlipper is the part of the auto-flip timer the coordinator drives
type AutoFlipper interface {
	Arm()
	Disarm() bool
}

type CoordinatorOpts struct {
	Board    Board
	Prompter Prompter
	Dealer   Dealer
	Timer    AutoFlipper
	// Next blocks until the next event; false ends the game
	Next func() (Event, bool)
	// Strict makes protocol violations end Run with an error instead of
	// resetting the round
	Strict  bool
	Logger  *zap.Logger
	Observe func(Snapshot)
}

// Coordinator runs the turn protocol: select a first card, select a
// second, judge the pair, resolve, repeat. It owns the selection and the
// score, and is the only writer to the board.
type Coordinator struct {
	board    Board
	prompter Prompter
	dealer   Dealer
	timer    AutoFlipper
	next     func() (Event, bool)
	strict   bool
	logger   *zap.Logger
	observe  func(Snapshot)

	state     CoordinatorState
	selection Selection
	session   GameSession
}

// NewCoordinator constructs a Coordinator for a freshly dealt board
func NewCoordinator(opts CoordinatorOpts) (*Coordinator, error) {
	if opts.Board == nil {
		return nil, ErrNilBoard
	}
	if opts.Prompter == nil {
		return nil, ErrNilPrompter
	}
	if opts.Dealer == nil {
		return nil, ErrNilDealer
	}
	if opts.Timer == nil {
		return nil, ErrNilTimer
	}
	if opts.Next == nil {
		return nil, ErrNilNext
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Coordinator{
		board:     opts.Board,
		prompter:  opts.Prompter,
		dealer:    opts.Dealer,
		timer:     opts.Timer,
		next:      opts.Next,
		strict:    opts.Strict,
		logger:    logger,
		observe:   opts.Observe,
		state:     NoneSelected,
		selection: EmptySelection,
		session:   GameSession{TotalPairs: opts.Board.Len() / 2},
	}, nil
}

// Snapshot copies the coordinator's state. Only call it while the
// coordinator is suspended waiting for an event, or after Run returned.
func (c *Coordinator) Snapshot() Snapshot {
	return Snapshot{
		State:     c.state,
		Selection: c.selection,
		Session:   c.session,
	}
}

// Run consumes events until the player declines another game or the
// event stream ends. Neither is an error.
func (c *Coordinator) Run() error {
	c.publish()

	for {
		ev, ok := c.next()
		if !ok {
			c.logger.Debug("event stream ended")
			c.timer.Disarm()
			return nil
		}

		done, err := c.step(ev)
		if err != nil {
			if c.strict || !errors.Is(err, ErrProtocolViolation) {
				c.timer.Disarm()
				return err
			}
			c.logger.Error("protocol violation, resetting round",
				zap.Error(err),
				zap.Stringer("event", ev),
				zap.Stringer("state", c.state),
			)
			c.resetRound()
		}

		c.publish()
		if done {
			return nil
		}
	}
}

// step is the transition function. It reports whether the game has ended.
func (c *Coordinator) step(ev Event) (bool, error) {
	c.logger.Debug("step", zap.Stringer("event", ev), zap.Stringer("state", c.state))

	switch ev.Kind {
	case Click:
		return c.click(ev.Slot)

	case Timeout:
		if c.state != TwoSelected {
			return false, fmt.Errorf("%w: timeout in state %s", ErrProtocolViolation, c.state)
		}
		// already consumed by the timer firing; disarming is a no-op
		c.timer.Disarm()
		c.flipBack()
		return false, nil

	case Answer:
		c.logger.Warn("ignoring answer outside of a prompt", zap.Stringer("event", ev))
		return false, nil
	}

	return false, fmt.Errorf("unknown event kind %d", ev.Kind)
}

func (c *Coordinator) click(s Slot) (bool, error) {
	if s < 0 || int(s) >= c.board.Len() {
		c.logger.Warn("ignoring click outside the board", zap.Int("slot", int(s)))
		return false, nil
	}

	switch c.state {
	case NoneSelected:
		if c.board.FaceUp(s) {
			return false, nil
		}
		c.board.Flip(s)
		c.selection.First = s
		c.state = OneSelected
		return false, nil

	case OneSelected:
		if c.board.FaceUp(s) {
			return false, nil
		}
		c.board.Flip(s)
		c.selection.Second = s
		return c.judge()

	case TwoSelected:
		// the click beat the timer
		c.timer.Disarm()
		c.flipBack()
		return c.click(s)
	}

	return false, fmt.Errorf("%w: click in state %s", ErrProtocolViolation, c.state)
}

func (c *Coordinator) judge() (bool, error) {
	first, second := c.selection.First, c.selection.Second

	if c.board.CardOf(first) != c.board.CardOf(second) {
		c.session.Misses++
		c.state = TwoSelected
		c.timer.Arm()
		return false, nil
	}

	c.session.MatchedPairs++
	c.selection = EmptySelection
	c.state = NoneSelected

	if !c.board.AllFaceUp() {
		return false, nil
	}
	return c.endOfGame()
}

func (c *Coordinator) endOfGame() (bool, error) {
	c.state = GameOver
	c.publish()
	c.logger.Info("game over",
		zap.Int("misses", c.session.Misses),
		zap.Int("pairs", c.session.MatchedPairs),
	)

	again, err := c.prompter.AskPlayAgain(c.session.Misses)
	switch {
	case errors.Is(err, ErrCancelled):
		return true, nil
	case errors.Is(err, ErrProtocolViolation) && c.strict:
		return true, err
	case err != nil:
		c.logger.Warn("play-again prompt failed, stopping", zap.Error(err))
		return true, nil
	case !again:
		return true, nil
	}

	if err := c.resetGame(); err != nil {
		return true, err
	}
	return false, nil
}

// flipBack turns a mismatched pair face down and starts a new round
func (c *Coordinator) flipBack() {
	c.board.Flip(c.selection.First)
	c.board.Flip(c.selection.Second)
	c.selection = EmptySelection
	c.state = NoneSelected
}

func (c *Coordinator) resetRound() {
	c.timer.Disarm()
	for _, s := range []Slot{c.selection.First, c.selection.Second} {
		if s != NoSlot && c.board.FaceUp(s) {
			c.board.Flip(s)
		}
	}
	c.selection = EmptySelection
	c.state = NoneSelected
}

func (c *Coordinator) resetGame() error {
	c.timer.Disarm()

	assignment, err := c.dealer.Deal(c.board.Len())
	if err != nil {
		return fmt.Errorf("could not deal a new game: %w", err)
	}
	if err := c.board.Reset(assignment); err != nil {
		return fmt.Errorf("could not reset the board: %w", err)
	}

	c.session = GameSession{TotalPairs: c.board.Len() / 2}
	c.selection = EmptySelection
	c.state = NoneSelected
	c.logger.Info("new game dealt", zap.Int("pairs", c.session.TotalPairs))
	return nil
}

func (c *Coordinator) publish() {
	if c.observe != nil {
		c.observe(c.Snapshot())
	}
}
