package deck

import (
	"math/rand"
	"testing"

	utils "github.com/minaorangina/memory/internal"
	"github.com/stretchr/testify/assert"
)

func TestDeck(t *testing.T) {
	t.Run("new deck holds every card once", func(t *testing.T) {
		d := New()
		utils.AssertEqual(t, len(d), Size)

		seen := map[Card]bool{}
		for _, c := range d {
			seen[c] = true
		}
		utils.AssertEqual(t, len(seen), Size)
	})

	t.Run("shuffle keeps the same cards", func(t *testing.T) {
		d := New()
		d.Shuffle(rand.New(rand.NewSource(42)))

		assert.Len(t, d, Size)
		assert.ElementsMatch(t, New(), d)
	})

	t.Run("deal takes cards off the deck", func(t *testing.T) {
		d := New()
		dealt := d.Deal(5)

		assert.Len(t, dealt, 5)
		assert.Len(t, d, Size-5)
	})

	t.Run("deal refuses more cards than remain", func(t *testing.T) {
		d := New()
		d.Deal(50)

		dealt := d.Deal(3)
		assert.Empty(t, dealt)
		assert.Len(t, d, 2)
	})
}
