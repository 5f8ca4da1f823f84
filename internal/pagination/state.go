// Package pagination drives the page cursor of the open book: gesture intents move it
// through Idle, Viewing, Dragging and Transitioning, and committed turns are written back
// to the library.
package pagination

import "fmt"

// State is the navigator's phase.
type State int

// States.
const (
	StateIdle State = iota
	StateViewing
	StateDragging
	StateTransitioning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateViewing:
		return "viewing"
	case StateDragging:
		return "dragging"
	case StateTransitioning:
		return "transitioning"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is a read-only view of the navigator.
type Snapshot struct {
	State      State
	BookID     string
	TotalPages int
	// Page is the page on screen. While transitioning it is the page being left.
	Page int
	// Offset is the horizontal drag offset in points. Negative drags toward the next page.
	Offset float64
	// From and To are set while transitioning.
	From, To int
}

// Turn reports what a release or tap did.
type Turn struct {
	From      int
	To        int
	Committed bool
}
