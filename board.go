package memory

import (
	"errors"

	"github.com/minaorangina/memory/deck"
)

var (
	ErrEmptyBoard   = errors.New("board must have at least one pair of slots")
	ErrOddBoard     = errors.New("board must have an even number of slots")
	ErrTooManyPairs = errors.New("board needs more pairs than a deck holds")
	ErrBoardResize  = errors.New("new assignment does not fit the board")
)

// Slot identifies one board position
type Slot int

// NoSlot marks an empty selection
const NoSlot Slot = -1

// Board is the set of face-up/face-down slots the coordinator plays on.
// Only the coordinator's goroutine mutates it.
type Board interface {
	Len() int
	FaceUp(s Slot) bool
	Flip(s Slot)
	CardOf(s Slot) deck.Card
	AllFaceUp() bool
	Reset(assignment []deck.Card) error
}

// Observer is told about board changes. It is called on the goroutine
// that mutates the board and must not block for long.
type Observer interface {
	Flipped(s Slot, faceUp bool, card deck.Card)
	Dealt(slots int)
}

type slot struct {
	card   deck.Card
	faceUp bool
}

// Table is the in-memory Board
type Table struct {
	slots    []slot
	observer Observer
}

// NewTable lays out the assignment face down.
// observer may be nil.
func NewTable(assignment []deck.Card, observer Observer) (*Table, error) {
	if err := checkAssignment(assignment); err != nil {
		return nil, err
	}

	t := &Table{observer: observer}
	t.lay(assignment)
	return t, nil
}

func checkAssignment(assignment []deck.Card) error {
	if len(assignment) == 0 {
		return ErrEmptyBoard
	}
	if len(assignment)%2 != 0 {
		return ErrOddBoard
	}
	return nil
}

func (t *Table) lay(assignment []deck.Card) {
	t.slots = make([]slot, len(assignment))
	for i, c := range assignment {
		t.slots[i] = slot{card: c}
	}
	if t.observer != nil {
		t.observer.Dealt(len(t.slots))
	}
}

// Len returns the number of slots
func (t *Table) Len() int {
	return len(t.slots)
}

// Valid reports whether s is on the board
func (t *Table) Valid(s Slot) bool {
	return s >= 0 && int(s) < len(t.slots)
}

func (t *Table) FaceUp(s Slot) bool {
	return t.slots[s].faceUp
}

// Flip turns the card in slot s over
func (t *Table) Flip(s Slot) {
	t.slots[s].faceUp = !t.slots[s].faceUp
	if t.observer != nil {
		t.observer.Flipped(s, t.slots[s].faceUp, t.slots[s].card)
	}
}

func (t *Table) CardOf(s Slot) deck.Card {
	return t.slots[s].card
}

func (t *Table) AllFaceUp() bool {
	for _, sl := range t.slots {
		if !sl.faceUp {
			return false
		}
	}
	return true
}

// Reset deals a new assignment onto the same slots, all face down
func (t *Table) Reset(assignment []deck.Card) error {
	if err := checkAssignment(assignment); err != nil {
		return err
	}
	if len(assignment) != len(t.slots) {
		return ErrBoardResize
	}

	t.lay(assignment)
	return nil
}
