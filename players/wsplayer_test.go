package players

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/memory"
	"github.com/minaorangina/memory/deck"
	utils "github.com/minaorangina/memory/internal"
	"github.com/minaorangina/memory/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{}

type wsHarness struct {
	server    *httptest.Server
	client    *websocket.Conn
	player    *WSPlayer
	game      *spyGame
	listenErr chan error
}

func newWSHarness(t *testing.T) *wsHarness {
	t.Helper()

	h := &wsHarness{game: newSpyGame(), listenErr: make(chan error, 1)}
	players := make(chan *WSPlayer, 1)

	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		p := NewWSPlayer("game-7", 2, 3, conn, nil)
		players <- p
		h.listenErr <- p.Listen(h.game)
	}))
	t.Cleanup(h.server.Close)

	url := "ws" + strings.TrimPrefix(h.server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	h.client = client

	select {
	case h.player = <-players:
	case <-time.After(playerTestTimeout):
		t.Fatal("player was never created")
	}
	return h
}

func (h *wsHarness) read(t *testing.T) protocol.OutboundMessage {
	t.Helper()

	var msg protocol.OutboundMessage
	h.client.SetReadDeadline(time.Now().Add(playerTestTimeout))
	require.NoError(t, h.client.ReadJSON(&msg))
	return msg
}

func TestWSPlayerReceives(t *testing.T) {
	t.Run("clicks and answers", func(t *testing.T) {
		h := newWSHarness(t)

		require.NoError(t, h.client.WriteJSON(protocol.InboundMessage{Command: protocol.Click, Slot: 4}))
		require.NoError(t, h.client.WriteJSON(protocol.InboundMessage{Command: protocol.Answer, Yes: true}))

		utils.Within(t, playerTestTimeout, func() {
			assert.Equal(t, memory.Slot(4), <-h.game.clicks)
			assert.True(t, <-h.game.answers)
		})
	})

	t.Run("reports messages it cannot parse", func(t *testing.T) {
		h := newWSHarness(t)

		require.NoError(t, h.client.WriteMessage(websocket.TextMessage, []byte(`{"command":"Shuffle"}`)))

		msg := h.read(t)
		utils.AssertEqual(t, msg.Command, protocol.Error)
		utils.AssertEqual(t, msg.GameID, "game-7")
		assert.Contains(t, msg.Error, "Shuffle")
	})

	t.Run("reports commands meant for the player", func(t *testing.T) {
		h := newWSHarness(t)

		require.NoError(t, h.client.WriteJSON(protocol.InboundMessage{Command: protocol.Flip}))

		msg := h.read(t)
		utils.AssertEqual(t, msg.Command, protocol.Error)
	})
}

func TestWSPlayerSends(t *testing.T) {
	h := newWSHarness(t)
	card := deck.Card{Rank: deck.Two, Suit: deck.Clubs}

	h.player.Dealt(6)
	h.player.Flipped(5, true, card)
	h.player.Flipped(5, false, card)
	require.NoError(t, h.player.Ask(2))

	dealt := h.read(t)
	utils.AssertEqual(t, dealt.Command, protocol.Dealt)
	utils.AssertEqual(t, dealt.Rows, 2)
	utils.AssertEqual(t, dealt.Columns, 3)

	up := h.read(t)
	utils.AssertEqual(t, up.Command, protocol.Flip)
	utils.AssertEqual(t, up.Slot, 5)
	assert.True(t, up.FaceUp)
	require.NotNil(t, up.Card)
	utils.AssertEqual(t, *up.Card, card)

	down := h.read(t)
	assert.False(t, down.FaceUp)
	assert.Nil(t, down.Card)

	ask := h.read(t)
	utils.AssertEqual(t, ask.Command, protocol.PlayAgain)
	utils.AssertEqual(t, ask.Misses, 2)
	utils.AssertEqual(t, ask.Message, "You had 2 misses.")
}

func TestWSPlayerLifecycle(t *testing.T) {
	t.Run("the end of the game is announced and the connection closed", func(t *testing.T) {
		h := newWSHarness(t)
		h.game.status = memory.Snapshot{Session: memory.GameSession{Misses: 3}}

		h.game.Cancel()

		msg := h.read(t)
		utils.AssertEqual(t, msg.Command, protocol.GameOver)
		utils.AssertEqual(t, msg.Misses, 3)

		_, _, err := h.client.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
		utils.Within(t, playerTestTimeout, func() { <-h.listenErr })
	})

	t.Run("a dropped connection cancels the game", func(t *testing.T) {
		h := newWSHarness(t)

		h.client.Close()

		utils.Within(t, playerTestTimeout, func() { <-h.listenErr })
		assert.True(t, h.game.Cancelled())
		assert.ErrorIs(t, h.player.Send(protocol.OutboundMessage{Command: protocol.Flip}), ErrPlayerGone)
	})
}
