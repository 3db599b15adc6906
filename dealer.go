package memory

import (
	"math/rand"
	"time"

	"github.com/minaorangina/memory/deck"
)

// Dealer produces card assignments for a board
type Dealer interface {
	Deal(slots int) ([]deck.Card, error)
}

// DeckDealer deals pairs of cards drawn from a shuffled deck.
// A fresh deck is used whenever the current one runs low.
type DeckDealer struct {
	deck deck.Deck
	rng  *rand.Rand
}

// NewDeckDealer constructs a DeckDealer. A nil rng is seeded from the clock.
func NewDeckDealer(rng *rand.Rand) *DeckDealer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DeckDealer{rng: rng}
}

// Deal returns an assignment in which each of slots/2 cards appears
// exactly twice, in random order.
func (d *DeckDealer) Deal(slots int) ([]deck.Card, error) {
	if slots <= 0 {
		return nil, ErrEmptyBoard
	}
	if slots%2 != 0 {
		return nil, ErrOddBoard
	}
	pairs := slots / 2
	if pairs > deck.Size {
		return nil, ErrTooManyPairs
	}

	if len(d.deck) < pairs {
		d.deck = deck.New()
		d.deck.Shuffle(d.rng)
	}
	cards := d.deck.Deal(pairs)

	// inside-out Fisher-Yates: initialise and shuffle in one pass
	assignment := make([]deck.Card, slots)
	for i := 0; i < slots; i++ {
		card := cards[i/2]
		j := d.rng.Intn(i + 1)
		if j != i {
			assignment[i] = assignment[j]
		}
		assignment[j] = card
	}

	return assignment, nil
}
