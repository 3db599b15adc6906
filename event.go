package memory

import "fmt"

// EventKind tags an Event
type EventKind int

const (
	Click EventKind = iota + 1
	Timeout
	Answer
)

func (k EventKind) String() string {
	switch k {
	case Click:
		return "Click"
	case Timeout:
		return "Timeout"
	case Answer:
		return "Answer"
	}
	return "Unknown"
}

// Event is something that happened on the producer side.
// Slot is set for clicks, Yes for answers and Gen for timeouts.
// Seq is assigned by the Dispatcher in supply order.
type Event struct {
	Kind EventKind
	Slot Slot
	Yes  bool
	Gen  uint64
	Seq  uint64
}

// ClickEvent is a click on a slot
func ClickEvent(s Slot) Event {
	return Event{Kind: Click, Slot: s}
}

// TimeoutEvent is the expiry of the auto-flip deadline armed as generation gen
func TimeoutEvent(gen uint64) Event {
	return Event{Kind: Timeout, Slot: NoSlot, Gen: gen}
}

// AnswerEvent is the player's answer to the play-again question
func AnswerEvent(yes bool) Event {
	return Event{Kind: Answer, Slot: NoSlot, Yes: yes}
}

func (e Event) String() string {
	switch e.Kind {
	case Click:
		return fmt.Sprintf("Click(%d)#%d", e.Slot, e.Seq)
	case Timeout:
		return fmt.Sprintf("Timeout(gen %d)#%d", e.Gen, e.Seq)
	case Answer:
		return fmt.Sprintf("Answer(%t)#%d", e.Yes, e.Seq)
	}
	return fmt.Sprintf("Unknown#%d", e.Seq)
}
