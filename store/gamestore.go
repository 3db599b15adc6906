package store

import (
	"errors"
	"sync"

	"github.com/minaorangina/memory"
)

var (
	ErrUnknownGameID = errors.New("unknown game ID")
	ErrGameExists    = errors.New("a game with this ID already exists")
)

// PendingGame is a game that has been requested but has no player yet
type PendingGame struct {
	ID      string
	Rows    int
	Columns int
}

type GameStore interface {
	AddPendingGame(game PendingGame) error
	FindPendingGame(gameID string) (PendingGame, bool)
	ActivateGame(game *memory.Game) error
	FindActiveGame(gameID string) (*memory.Game, bool)
	RemoveGame(gameID string)
}

// InMemoryGameStore keeps games by ID for the lifetime of the process
type InMemoryGameStore struct {
	mu      sync.RWMutex
	pending map[string]PendingGame
	active  map[string]*memory.Game
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		pending: map[string]PendingGame{},
		active:  map[string]*memory.Game{},
	}
}

func (s *InMemoryGameStore) AddPendingGame(game PendingGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exists(game.ID) {
		return ErrGameExists
	}
	s.pending[game.ID] = game
	return nil
}

func (s *InMemoryGameStore) FindPendingGame(gameID string) (PendingGame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.pending[gameID]
	return game, ok
}

// ActivateGame replaces the pending game with the same ID by a running one
func (s *InMemoryGameStore) ActivateGame(game *memory.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[game.ID()]; ok {
		return ErrGameExists
	}
	if _, ok := s.pending[game.ID()]; !ok {
		return ErrUnknownGameID
	}

	delete(s.pending, game.ID())
	s.active[game.ID()] = game
	return nil
}

func (s *InMemoryGameStore) FindActiveGame(gameID string) (*memory.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.active[gameID]
	return game, ok
}

// RemoveGame forgets a game, pending or active
func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, gameID)
	delete(s.active, gameID)
}

func (s *InMemoryGameStore) exists(gameID string) bool {
	_, pending := s.pending[gameID]
	_, active := s.active[gameID]
	return pending || active
}
