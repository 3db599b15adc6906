package players

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/memory"
	"github.com/minaorangina/memory/deck"
	"github.com/minaorangina/memory/protocol"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 32
)

// WSPlayer plays over a websocket connection
type WSPlayer struct {
	gameID  string
	rows    int
	columns int
	conn    *websocket.Conn
	logger  *zap.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewWSPlayer constructs a WSPlayer and starts writing to conn
func NewWSPlayer(gameID string, rows, columns int, conn *websocket.Conn, logger *zap.Logger) *WSPlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &WSPlayer{
		gameID:  gameID,
		rows:    rows,
		columns: columns,
		conn:    conn,
		logger:  logger.With(zap.String("game_id", gameID)),
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
	go p.writePump()
	return p
}

// Send queues msg for the peer
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	msg.GameID = p.gameID
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("could not encode %s message: %w", msg.Command, err)
	}

	select {
	case <-p.done:
		return ErrPlayerGone
	default:
	}

	select {
	case p.send <- data:
		return nil
	case <-p.done:
		return ErrPlayerGone
	}
}

func (p *WSPlayer) Dealt(slots int) {
	p.trySend(protocol.OutboundMessage{
		Command: protocol.Dealt,
		Rows:    p.rows,
		Columns: p.columns,
	})
}

func (p *WSPlayer) Flipped(s memory.Slot, faceUp bool, card deck.Card) {
	msg := protocol.OutboundMessage{
		Command: protocol.Flip,
		Slot:    int(s),
		FaceUp:  faceUp,
	}
	if faceUp {
		msg.Card = &card
	}
	p.trySend(msg)
}

func (p *WSPlayer) Ask(misses int) error {
	return p.Send(protocol.OutboundMessage{
		Command: protocol.PlayAgain,
		Misses:  misses,
		Message: memory.MissesText(misses),
	})
}

func (p *WSPlayer) trySend(msg protocol.OutboundMessage) {
	if err := p.Send(msg); err != nil {
		p.logger.Debug("dropping message", zap.Stringer("command", msg.Command), zap.Error(err))
	}
}

// Listen reads commands from the peer until the connection drops or the
// game ends. A dropped connection cancels the game.
func (p *WSPlayer) Listen(g Game) error {
	go func() {
		select {
		case <-g.Done():
			status := g.Status()
			p.trySend(protocol.OutboundMessage{
				Command: protocol.GameOver,
				Misses:  status.Session.Misses,
			})
			p.Close()
		case <-p.done:
		}
	}()

	defer g.Cancel()
	return p.readPump(g)
}

// Close flushes queued messages and closes the connection
func (p *WSPlayer) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

func (p *WSPlayer) readPump(g Game) error {
	defer p.Close()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("connection lost", zap.Error(err))
				return err
			}
			return nil
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.trySend(protocol.OutboundMessage{
				Command: protocol.Error,
				Error:   fmt.Sprintf("could not parse message: %v", err),
			})
			continue
		}

		if err := p.receive(g, msg); err != nil {
			p.trySend(protocol.OutboundMessage{
				Command: protocol.Error,
				Error:   err.Error(),
			})
		}
	}
}

func (p *WSPlayer) receive(g Game, msg protocol.InboundMessage) error {
	switch msg.Command {
	case protocol.Click:
		return g.Click(memory.Slot(msg.Slot))
	case protocol.Answer:
		return g.Answer(msg.Yes)
	}
	return fmt.Errorf("unexpected command %s", msg.Command)
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.send:
			if err := p.write(websocket.TextMessage, msg); err != nil {
				p.logger.Debug("write failed", zap.Error(err))
				p.Close()
				return
			}

		case <-ticker.C:
			if err := p.write(websocket.PingMessage, nil); err != nil {
				p.Close()
				return
			}

		case <-p.done:
			// flush what was queued before closing
			for {
				select {
				case msg := <-p.send:
					if err := p.write(websocket.TextMessage, msg); err != nil {
						return
					}
				default:
					p.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

func (p *WSPlayer) write(messageType int, data []byte) error {
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(messageType, data)
}
