package memory

import (
	"fmt"

	"go.uber.org/zap"
)

// Prompter asks the player whether to play another game.
// It may block the coordinator while waiting for the answer.
type Prompter interface {
	AskPlayAgain(misses int) (bool, error)
}

// PrompterFunc adapts a function to a Prompter
type PrompterFunc func(misses int) (bool, error)

func (f PrompterFunc) AskPlayAgain(misses int) (bool, error) {
	return f(misses)
}

// AskFunc poses the play-again question to the player without waiting
// for the answer
type AskFunc func(misses int) error

// AsyncPrompter poses the question through ask and then suspends on the
// event stream until the player's Answer arrives. Clicks made while the
// question is open are ignored.
type AsyncPrompter struct {
	ask    AskFunc
	next   func() (Event, bool)
	logger *zap.Logger
}

// NewAsyncPrompter constructs an AsyncPrompter. next is the coordinator's
// own event source.
func NewAsyncPrompter(ask AskFunc, next func() (Event, bool), logger *zap.Logger) *AsyncPrompter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsyncPrompter{ask: ask, next: next, logger: logger}
}

func (p *AsyncPrompter) AskPlayAgain(misses int) (bool, error) {
	if err := p.ask(misses); err != nil {
		return false, fmt.Errorf("could not ask to play again: %w", err)
	}

	for {
		ev, ok := p.next()
		if !ok {
			return false, ErrCancelled
		}

		switch ev.Kind {
		case Answer:
			return ev.Yes, nil
		case Timeout:
			return false, fmt.Errorf("%w: timeout while waiting for an answer", ErrProtocolViolation)
		default:
			p.logger.Debug("ignoring event while waiting for an answer", zap.Stringer("event", ev))
		}
	}
}

// MissesText is the end-of-game message for a number of misses
func MissesText(misses int) string {
	if misses == 1 {
		return "You had 1 miss."
	}
	return fmt.Sprintf("You had %d misses.", misses)
}
