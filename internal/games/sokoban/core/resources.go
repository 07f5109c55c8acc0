package core

// InputQueue holds pending directional key presses.
// Capture appends; the push phase pops the most recent press, so the newest key wins a tick
// and older presses wait for later ticks.
type InputQueue struct {
	keys []Direction
}

// Push appends a key press.
func (q *InputQueue) Push(d Direction) {
	q.keys = append(q.keys, d)
}

// Pop removes and returns the most recent key press.
func (q *InputQueue) Pop() (Direction, bool) {
	if len(q.keys) == 0 {
		return 0, false
	}
	last := len(q.keys) - 1
	d := q.keys[last]
	q.keys = q.keys[:last]
	return d, true
}

// Len returns the number of pending presses.
func (q *InputQueue) Len() int {
	return len(q.keys)
}

// EventQueue holds domain events between pipeline passes.
// Events pushed while a drained batch is being processed land in the next batch.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Drain takes the current batch in FIFO order and leaves the queue empty.
func (q *EventQueue) Drain() []Event {
	batch := q.events
	q.events = nil
	return batch
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// GameplayState is the terminal/playing state of a level.
type GameplayState uint8

const (
	StatePlaying GameplayState = iota
	StateWon
)

// String returns the label shown on the HUD.
func (s GameplayState) String() string {
	switch s {
	case StateWon:
		return "Won!"
	default:
		return "Playing"
	}
}

// Gameplay is the per-level progress resource.
type Gameplay struct {
	State      GameplayState
	MovesCount uint32
}
