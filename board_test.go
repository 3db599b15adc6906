package memory

import (
	"testing"

	"github.com/minaorangina/memory/deck"
	utils "github.com/minaorangina/memory/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flip struct {
	slot   Slot
	faceUp bool
	card   deck.Card
}

type spyObserver struct {
	flips []flip
	dealt []int
}

func (s *spyObserver) Flipped(slot Slot, faceUp bool, card deck.Card) {
	s.flips = append(s.flips, flip{slot, faceUp, card})
}

func (s *spyObserver) Dealt(slots int) {
	s.dealt = append(s.dealt, slots)
}

func TestNewTable(t *testing.T) {
	t.Run("rejects bad assignments", func(t *testing.T) {
		_, err := NewTable(nil, nil)
		assert.ErrorIs(t, err, ErrEmptyBoard)

		_, err = NewTable(PairedAssignment(2)[:3], nil)
		assert.ErrorIs(t, err, ErrOddBoard)
	})

	t.Run("lays every card face down", func(t *testing.T) {
		assignment := PairedAssignment(3)
		obs := &spyObserver{}
		table, err := NewTable(assignment, obs)
		require.NoError(t, err)

		utils.AssertEqual(t, table.Len(), 6)
		for i, c := range assignment {
			assert.False(t, table.FaceUp(Slot(i)))
			utils.AssertEqual(t, table.CardOf(Slot(i)), c)
		}
		assert.False(t, table.AllFaceUp())
		assert.Equal(t, []int{6}, obs.dealt)
	})
}

func TestTableFlip(t *testing.T) {
	obs := &spyObserver{}
	table, err := NewTable(PairedAssignment(1), obs)
	require.NoError(t, err)

	table.Flip(0)
	assert.True(t, table.FaceUp(0))
	assert.False(t, table.AllFaceUp())

	table.Flip(1)
	assert.True(t, table.AllFaceUp())

	table.Flip(0)
	assert.False(t, table.FaceUp(0))

	card := table.CardOf(0)
	assert.Equal(t, []flip{{0, true, card}, {1, true, card}, {0, false, card}}, obs.flips)
}

func TestTableValid(t *testing.T) {
	table, err := NewTable(PairedAssignment(2), nil)
	require.NoError(t, err)

	assert.True(t, table.Valid(0))
	assert.True(t, table.Valid(3))
	assert.False(t, table.Valid(4))
	assert.False(t, table.Valid(NoSlot))
}

func TestTableReset(t *testing.T) {
	t.Run("turns everything face down with the new cards", func(t *testing.T) {
		obs := &spyObserver{}
		table, err := NewTable(PairedAssignment(2), obs)
		require.NoError(t, err)
		for i := 0; i < table.Len(); i++ {
			table.Flip(Slot(i))
		}

		d := deck.New()
		next := []deck.Card{d[10], d[11], d[11], d[10]}
		require.NoError(t, table.Reset(next))

		for i, c := range next {
			assert.False(t, table.FaceUp(Slot(i)))
			utils.AssertEqual(t, table.CardOf(Slot(i)), c)
		}
		assert.Equal(t, []int{4, 4}, obs.dealt)
	})

	t.Run("keeps the board size", func(t *testing.T) {
		table, err := NewTable(PairedAssignment(2), nil)
		require.NoError(t, err)

		assert.ErrorIs(t, table.Reset(PairedAssignment(3)), ErrBoardResize)
		assert.ErrorIs(t, table.Reset(nil), ErrEmptyBoard)
		utils.AssertEqual(t, table.Len(), 4)
	})
}
