package deck

import (
	"math/rand"
	"time"
)

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a deck of cards
type Deck []Card

// New creates a deck of cards
func New() Deck {
	cards := make([]Card, 0, Size)
	for suit := range suitNames {
		for rank := range rankNames {
			cards = append(cards, Card{Rank: Rank(rank), Suit: Suit(suit)})
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards.
// A nil rng falls back to a time-seeded source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	actualDeck := (*d)
	for i := len(actualDeck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	}
}

// Deal deals n number of cards from the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := (*d)[startingIndex:numCardsInDeck]
	*d = (*d)[:startingIndex]
	return subSlice
}
