package players

import (
	"errors"

	"github.com/minaorangina/memory"
)

var ErrPlayerGone = errors.New("player has disconnected")

// Game is the part of a memory.Game a player drives
type Game interface {
	ID() string
	Click(s memory.Slot) error
	Answer(yes bool) error
	Cancel()
	Done() <-chan struct{}
	Status() memory.Snapshot
}

// Player is shown the board and asked to play again. It is also a
// memory.Observer.
type Player interface {
	memory.Observer
	Ask(misses int) error
	Listen(g Game) error
}
