package mention

import "strings"

// Transition describes how the tracker changed between two states.
type Transition struct {
	Started bool
	Stopped bool
	Moved   bool
	Changed bool
}

// Classify compares two consecutive tracker states.
func Classify(prev, next State) Transition {
	t := Transition{
		Stopped: prev.Active && !next.Active,
		Moved:   prev.Active && next.Active && prev.Range.Start != next.Range.Start,
		Started: !prev.Active && next.Active,
	}
	t.Changed = !t.Started && !t.Stopped && prev.Text != next.Text
	return t
}

// IsZero reports whether nothing observable changed.
func (t Transition) IsZero() bool {
	return t == Transition{}
}

// Events lists the lifecycle events for the transition from prev to next,
// in delivery order: Exit, Change, Enter. A moved span yields Exit and Enter
// only.
func (t Transition) Events(prev, next State) []Event {
	var events []Event
	if t.Stopped || t.Moved {
		events = append(events, Event{Kind: EventExit, Range: prev.Range, Text: prev.Text})
	}
	if t.Changed && !t.Moved {
		events = append(events, Event{Kind: EventChange, Range: next.Range, Text: next.Text})
	}
	if t.Started || t.Moved {
		events = append(events, Event{Kind: EventEnter, Range: next.Range, Text: next.Text})
	}
	return events
}

// String lists the set flags, e.g. "moved+changed", or "none".
func (t Transition) String() string {
	var parts []string
	if t.Started {
		parts = append(parts, "started")
	}
	if t.Stopped {
		parts = append(parts, "stopped")
	}
	if t.Moved {
		parts = append(parts, "moved")
	}
	if t.Changed {
		parts = append(parts, "changed")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}
