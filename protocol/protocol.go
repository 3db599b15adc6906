package protocol

import (
	"encoding/json"
	"fmt"
)

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	// from the player
	Click
	Answer
	// to the player
	Dealt
	Flip
	PlayAgain
	GameOver
	Error
)

var CmdNames = map[Cmd]string{
	Null:      "Null",
	Click:     "Click",
	Answer:    "Answer",
	Dealt:     "Dealt",
	Flip:      "Flip",
	PlayAgain: "PlayAgain",
	GameOver:  "GameOver",
	Error:     "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":      Null,
	"Click":     Click,
	"Answer":    Answer,
	"Dealt":     Dealt,
	"Flip":      Flip,
	"PlayAgain": PlayAgain,
	"GameOver":  GameOver,
	"Error":     Error,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// MarshalJSON writes the command by name
func (c Cmd) MarshalJSON() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return json.Marshal(name)
}

// UnmarshalJSON accepts a command name
func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cmd, ok := NameToCmd[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	*c = cmd
	return nil
}
