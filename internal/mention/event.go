package mention

import (
	"fmt"

	"github.com/dshills/mentions/internal/engine/buffer"
)

// EventKind identifies a lifecycle event.
type EventKind uint8

const (
	EventEnter EventKind = iota + 1
	EventChange
	EventExit
)

var eventKindNames = map[EventKind]string{
	EventEnter:  "enter",
	EventChange: "change",
	EventExit:   "exit",
}

// String returns the lower-case name of the kind.
func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a snapshot of a span delivered to a lifecycle callback.
type Event struct {
	Kind  EventKind
	Range buffer.Range
	Text  string
}

// String returns a compact description for logging.
func (e Event) String() string {
	return fmt.Sprintf("%s %s %q", e.Kind, e.Range, e.Text)
}
