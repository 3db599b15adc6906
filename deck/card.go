package deck

import (
	"errors"
	"fmt"
)

var ErrCardOutOfRange = errors.New("card rank or suit out of range")

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	if r < Ace || r > King {
		return ""
	}
	return rankNames[r]
}

// Suit represents a suit in a deck of cards
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return ""
	}
	return suitNames[s]
}

// Card represents a playing card.
// Cards are comparable: two cards match when rank and suit are equal.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) (Card, error) {
	if rank < Ace || rank > King || suit < Clubs || suit > Spades {
		return Card{}, ErrCardOutOfRange
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

var rankAbbrevs = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Abbrev returns a short label such as "QH" or "10S"
func (c Card) Abbrev() string {
	if c.Rank < Ace || c.Rank > King || c.Suit < Clubs || c.Suit > Spades {
		return "?"
	}
	return rankAbbrevs[c.Rank] + suitNames[c.Suit][:1]
}
