package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/memory"
	"github.com/minaorangina/memory/config"
	utils "github.com/minaorangina/memory/internal"
	"github.com/minaorangina/memory/protocol"
	"github.com/minaorangina/memory/store"
	"github.com/stretchr/testify/require"
)

const serverTestTimeout = time.Second

func testConfig(rows, columns int) *config.Config {
	return &config.Config{
		Rows:          rows,
		Columns:       columns,
		AutoFlipDelay: time.Minute,
		Strict:        true,
		LogLevel:      "info",
	}
}

func newTestServer(str store.GameStore, cfg *config.Config) *GameServer {
	return NewServer(ServerOpts{
		Store:     str,
		Config:    cfg,
		NewDealer: func() memory.Dealer { return memory.FixedDealer{} },
	})
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func decodeBody(t *testing.T, body io.Reader, target interface{}) {
	t.Helper()

	bodyBytes, err := io.ReadAll(body)
	utils.AssertNoError(t, err)
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		t.Fatalf("could not unmarshal json %q: %s", bodyBytes, err.Error())
	}
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		var body []byte
		code := 0
		if resp != nil {
			body, _ = io.ReadAll(resp.Body)
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func makeWSUrl(serverURL, gameID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?game_id=" + gameID
}

func readMessage(t *testing.T, ws *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	var msg protocol.OutboundMessage
	ws.SetReadDeadline(time.Now().Add(serverTestTimeout))
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

func startTestServer(t *testing.T, str store.GameStore, cfg *config.Config) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(newTestServer(str, cfg))
	t.Cleanup(server.Close)
	return server
}
