package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/memory"
	"github.com/minaorangina/memory/config"
	"github.com/minaorangina/memory/players"
	"github.com/minaorangina/memory/protocol"
	"github.com/minaorangina/memory/store"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewGameReq optionally overrides the configured board size
type NewGameReq struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type NewGameRes struct {
	GameID  string `json:"game_id"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

type GetGameRes struct {
	GameID    string              `json:"game_id"`
	Status    string              `json:"status"`
	State     string              `json:"state,omitempty"`
	Selection *memory.Selection   `json:"selection,omitempty"`
	Session   *memory.GameSession `json:"session,omitempty"`
}

const (
	statusPending = "pending"
	statusActive  = "active"
)

type ServerOpts struct {
	Store  store.GameStore
	Config *config.Config
	Logger *zap.Logger
	// NewDealer defaults to a DeckDealer seeded from Config
	NewDealer func() memory.Dealer
}

// GameServer is a game server
type GameServer struct {
	store     store.GameStore
	cfg       *config.Config
	logger    *zap.Logger
	newDealer func() memory.Dealer
	http.Server
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	s := &GameServer{
		store:     opts.Store,
		cfg:       opts.Config,
		logger:    opts.Logger,
		newDealer: opts.NewDealer,
	}
	if s.store == nil {
		s.store = store.NewInMemoryGameStore()
	}
	if s.cfg == nil {
		s.cfg = &config.Config{
			Rows:          memory.DefaultRows,
			Columns:       memory.DefaultColumns,
			AutoFlipDelay: memory.DefaultAutoFlipDelay,
			LogLevel:      "info",
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.newDealer == nil {
		s.newDealer = func() memory.Dealer {
			return memory.NewDeckDealer(s.cfg.Rand())
		}
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleFindGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	accessLog := zap.NewStdLog(s.logger.Named("http")).Writer()

	s.Addr = s.cfg.Addr
	s.Handler = handlers.LoggingHandler(accessLog, cors(router))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleNewGame reserves a game for the next websocket connection
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("could not parse request: %v", err))
		return
	}

	board := *g.cfg
	if data.Rows != 0 || data.Columns != 0 {
		board.Rows, board.Columns = data.Rows, data.Columns
	}
	if err := board.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pending := store.PendingGame{
		ID:      memory.NewID(),
		Rows:    board.Rows,
		Columns: board.Columns,
	}
	if err := g.store.AddPendingGame(pending); err != nil {
		g.logger.Error("could not store new game", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	g.logger.Info("game requested", zap.String("game_id", pending.ID))

	writeJSON(w, http.StatusCreated, NewGameRes{
		GameID:  pending.ID,
		Rows:    pending.Rows,
		Columns: pending.Columns,
	})
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing game ID")
		return
	}

	if game, ok := g.store.FindActiveGame(gameID); ok {
		status := game.Status()
		writeJSON(w, http.StatusOK, GetGameRes{
			GameID:    gameID,
			Status:    statusActive,
			State:     status.State.String(),
			Selection: &status.Selection,
			Session:   &status.Session,
		})
		return
	}

	if _, ok := g.store.FindPendingGame(gameID); ok {
		writeJSON(w, http.StatusOK, GetGameRes{GameID: gameID, Status: statusPending})
		return
	}

	writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
}

// HandleWS runs a pending game for the connecting player
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing game ID")
		return
	}

	pending, ok := g.store.FindPendingGame(gameID)
	if !ok {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.logger.Warn("could not upgrade to websocket", zap.Error(err))
		return
	}

	logger := g.logger.With(zap.String("game_id", gameID))
	player := players.NewWSPlayer(gameID, pending.Rows, pending.Columns, conn, logger)

	game, err := memory.NewGame(memory.GameOpts{
		ID:            gameID,
		Rows:          pending.Rows,
		Columns:       pending.Columns,
		AutoFlipDelay: g.cfg.AutoFlipDelay,
		Strict:        g.cfg.Strict,
		Dealer:        g.newDealer(),
		Logger:        g.logger,
		Observer:      player,
		Ask:           player.Ask,
	})
	if err == nil {
		err = g.store.ActivateGame(game)
	}
	if err != nil {
		g.failWS(player, err)
		return
	}

	if err := game.Start(context.Background()); err != nil {
		g.store.RemoveGame(gameID)
		g.failWS(player, err)
		return
	}

	go func() {
		<-game.Done()
		g.store.RemoveGame(gameID)
	}()

	if err := player.Listen(game); err != nil {
		logger.Info("player left", zap.Error(err))
	}
}

func (g *GameServer) failWS(player *players.WSPlayer, err error) {
	g.logger.Error("could not start game", zap.Error(err))

	msg := protocol.OutboundMessage{Command: protocol.Error, Error: err.Error()}
	if sendErr := player.Send(msg); sendErr != nil && !errors.Is(sendErr, players.ErrPlayerGone) {
		g.logger.Warn("could not report error", zap.Error(sendErr))
	}
	player.Close()
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}
