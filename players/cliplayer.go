package players

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/minaorangina/memory"
	"github.com/minaorangina/memory/deck"
	"go.uber.org/zap"
)

// CLIPlayer plays over a pair of text streams, usually stdin and stdout
type CLIPlayer struct {
	in      io.Reader
	out     io.Writer
	columns int
	logger  *zap.Logger

	mu    sync.Mutex
	faces []string
}

// NewCLIPlayer constructs a CLIPlayer that draws the board columns wide
func NewCLIPlayer(in io.Reader, out io.Writer, columns int, logger *zap.Logger) *CLIPlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIPlayer{in: in, out: out, columns: columns, logger: logger}
}

func (p *CLIPlayer) Dealt(slots int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.faces = make([]string, slots)
	for i := range p.faces {
		p.faces[i] = faceDownText
	}
	SendText(p.out, "\nA new board with %d cards, all face down:\n", slots)
	SendText(p.out, buildBoardText(p.faces, p.columns))
}

func (p *CLIPlayer) Flipped(s memory.Slot, faceUp bool, card deck.Card) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if int(s) >= len(p.faces) {
		return
	}
	if !faceUp {
		p.faces[s] = faceDownText
		return
	}

	p.faces[s] = card.Abbrev()
	SendText(p.out, "Slot %d: %s\n", s, card)
	SendText(p.out, buildBoardText(p.faces, p.columns))
}

// Ask prints the end-of-game question. The answer is read by Listen.
func (p *CLIPlayer) Ask(misses int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	SendText(p.out, "%s\n%s", memory.MissesText(misses), playAgainText)
	return nil
}

// Listen turns input lines into clicks and answers until the game ends.
// The end of input cancels the game.
func (p *CLIPlayer) Listen(g Game) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-g.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	p.send(instructionsText)

	for {
		select {
		case <-g.Done():
			p.send(goodbyeText)
			return nil

		case err := <-readErr:
			p.logger.Debug("input closed", zap.Error(err))
			g.Cancel()
			<-g.Done()
			if err != nil {
				return fmt.Errorf("could not read input: %w", err)
			}
			return nil

		case line := <-lines:
			if quit := p.handleLine(g, line); quit {
				g.Cancel()
				<-g.Done()
				p.send(goodbyeText)
				return nil
			}
		}
	}
}

// handleLine reports whether the player is done
func (p *CLIPlayer) handleLine(g Game, line string) bool {
	entry := strings.ToLower(strings.TrimSpace(line))

	switch entry {
	case "":
		return false
	case "q", "quit":
		return true
	case "y", "yes":
		return gameEnded(g.Answer(true))
	case "n", "no":
		return gameEnded(g.Answer(false))
	}

	n, err := strconv.Atoi(entry)
	if err != nil {
		p.send(retryText, strings.TrimSpace(line))
		return false
	}
	if !p.onBoard(n) {
		p.send(slotRangeText, n)
		return false
	}
	return gameEnded(g.Click(memory.Slot(n)))
}

func (p *CLIPlayer) onBoard(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return n >= 0 && n < len(p.faces)
}

func (p *CLIPlayer) send(text string, a ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	SendText(p.out, text, a...)
}

func gameEnded(err error) bool {
	return errors.Is(err, memory.ErrGameEnded)
}
