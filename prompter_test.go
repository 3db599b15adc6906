package memory

import (
	"errors"
	"testing"

	utils "github.com/minaorangina/memory/internal"
	"github.com/stretchr/testify/assert"
)

func TestMissesText(t *testing.T) {
	utils.AssertEqual(t, MissesText(0), "You had 0 misses.")
	utils.AssertEqual(t, MissesText(1), "You had 1 miss.")
	utils.AssertEqual(t, MissesText(7), "You had 7 misses.")
}

func TestAsyncPrompter(t *testing.T) {
	script := func(evs ...Event) func() (Event, bool) {
		return func() (Event, bool) {
			if len(evs) == 0 {
				return Event{}, false
			}
			ev := evs[0]
			evs = evs[1:]
			return ev, true
		}
	}
	ask := func(int) error { return nil }

	t.Run("returns the first answer", func(t *testing.T) {
		p := NewAsyncPrompter(ask, script(ClickEvent(1), ClickEvent(2), AnswerEvent(true)), nil)
		yes, err := p.AskPlayAgain(3)
		assert.NoError(t, err)
		assert.True(t, yes)
	})

	t.Run("reports cancellation", func(t *testing.T) {
		p := NewAsyncPrompter(ask, script(ClickEvent(1)), nil)
		yes, err := p.AskPlayAgain(3)
		assert.ErrorIs(t, err, ErrCancelled)
		assert.False(t, yes)
	})

	t.Run("fails if the question cannot be asked", func(t *testing.T) {
		broken := errors.New("connection closed")
		p := NewAsyncPrompter(func(int) error { return broken }, script(AnswerEvent(true)), nil)
		_, err := p.AskPlayAgain(0)
		assert.ErrorIs(t, err, broken)
	})

	t.Run("a timeout is a protocol violation", func(t *testing.T) {
		p := NewAsyncPrompter(ask, script(TimeoutEvent(1)), nil)
		_, err := p.AskPlayAgain(0)
		assert.ErrorIs(t, err, ErrProtocolViolation)
	})
}

func TestPrompterFunc(t *testing.T) {
	var got int
	p := PrompterFunc(func(misses int) (bool, error) {
		got = misses
		return true, nil
	})

	yes, err := p.AskPlayAgain(4)
	assert.NoError(t, err)
	assert.True(t, yes)
	utils.AssertEqual(t, got, 4)
}

func TestEventString(t *testing.T) {
	ev := ClickEvent(3)
	ev.Seq = 5
	utils.AssertEqual(t, ev.String(), "Click(3)#5")
	utils.AssertEqual(t, TimeoutEvent(2).String(), "Timeout(gen 2)#0")
	utils.AssertEqual(t, AnswerEvent(false).String(), "Answer(false)#0")
	utils.AssertEqual(t, Timeout.String(), "Timeout")
}
