package players

import (
	"sync"

	"github.com/minaorangina/memory"
)

type spyGame struct {
	clicks  chan memory.Slot
	answers chan bool
	status  memory.Snapshot
	err     error

	once sync.Once
	done chan struct{}
}

func newSpyGame() *spyGame {
	return &spyGame{
		clicks:  make(chan memory.Slot, 16),
		answers: make(chan bool, 16),
		done:    make(chan struct{}),
	}
}

func (g *spyGame) ID() string {
	return "spy-game"
}

func (g *spyGame) Click(s memory.Slot) error {
	if g.err != nil {
		return g.err
	}
	g.clicks <- s
	return nil
}

func (g *spyGame) Answer(yes bool) error {
	if g.err != nil {
		return g.err
	}
	g.answers <- yes
	return nil
}

func (g *spyGame) Cancel() {
	g.once.Do(func() { close(g.done) })
}

func (g *spyGame) Cancelled() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

func (g *spyGame) Done() <-chan struct{} {
	return g.done
}

func (g *spyGame) Status() memory.Snapshot {
	return g.status
}

func drainSlots(ch chan memory.Slot) []memory.Slot {
	got := []memory.Slot{}
	for {
		select {
		case s := <-ch:
			got = append(got, s)
		default:
			return got
		}
	}
}

func drainBools(ch chan bool) []bool {
	got := []bool{}
	for {
		select {
		case b := <-ch:
			got = append(got, b)
		default:
			return got
		}
	}
}

var (
	_ Game   = &memory.Game{}
	_ Player = &CLIPlayer{}
	_ Player = &WSPlayer{}
)
