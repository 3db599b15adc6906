package protocol

import (
	"github.com/minaorangina/memory/deck"
)

// InboundMessage is a message from the player to the game
type InboundMessage struct {
	Command Cmd  `json:"command"`
	Slot    int  `json:"slot"`
	Yes     bool `json:"yes"`
}

// OutboundMessage is a message from the game to the player
type OutboundMessage struct {
	Command Cmd        `json:"command"`
	GameID  string     `json:"gameID,omitempty"`
	Slot    int        `json:"slot"`
	FaceUp  bool       `json:"faceUp"`
	Card    *deck.Card `json:"card,omitempty"` // only sent face up
	Rows    int        `json:"rows,omitempty"`
	Columns int        `json:"columns,omitempty"`
	Misses  int        `json:"misses"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`
}
