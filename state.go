package memory

// CoordinatorState represents how far the player has come in selecting a pair
// NoneSelected -> no cards of the current pair are face up
// OneSelected -> the first card is face up
// TwoSelected -> two non-matching cards are face up, waiting to be flipped back
// GameOver -> every slot is face up and the play-again question is pending
type CoordinatorState int

const (
	NoneSelected CoordinatorState = iota
	OneSelected
	TwoSelected
	GameOver
)

func (s CoordinatorState) String() string {
	switch s {
	case NoneSelected:
		return "NoneSelected"
	case OneSelected:
		return "OneSelected"
	case TwoSelected:
		return "TwoSelected"
	case GameOver:
		return "GameOver"
	}
	return ""
}

// Selection holds the slots chosen in the current round.
// Second is only ever set when First is.
type Selection struct {
	First  Slot `json:"first"`
	Second Slot `json:"second"`
}

// EmptySelection has no slots chosen
var EmptySelection = Selection{First: NoSlot, Second: NoSlot}

// Empty reports whether no slot is selected
func (s Selection) Empty() bool {
	return s.First == NoSlot && s.Second == NoSlot
}

// GameSession tracks the score of one game
type GameSession struct {
	Misses       int `json:"misses"`
	MatchedPairs int `json:"matchedPairs"`
	TotalPairs   int `json:"totalPairs"`
}

// Complete reports whether every pair has been found
func (gs GameSession) Complete() bool {
	return gs.TotalPairs > 0 && gs.MatchedPairs == gs.TotalPairs
}

// Snapshot is a copy of the coordinator's state taken between steps
type Snapshot struct {
	State     CoordinatorState `json:"-"`
	Selection Selection        `json:"selection"`
	Session   GameSession      `json:"session"`
}
