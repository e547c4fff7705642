package mention

import (
	"fmt"

	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
)

// State is the tracker's state after a transaction.
//
// When Active is false Range is the zero range and Text is empty. When
// Active is true Range.Start < Range.End.
type State struct {
	Active bool
	Range  buffer.Range
	Text   string
}

// Init returns the initial, inactive state.
func Init() State {
	return State{}
}

// Active returns the state tracking m.
func Active(m Match) State {
	return State{Active: true, Range: m.Range, Text: m.Text}
}

// Match returns the tracked span as a Match. It reports false when the
// state is inactive.
func (s State) Match() (Match, bool) {
	if !s.Active {
		return Match{}, false
	}
	return Match{Range: s.Range, Text: s.Text}, true
}

// String returns a compact description for logging.
func (s State) String() string {
	if !s.Active {
		return "inactive"
	}
	return fmt.Sprintf("%s %q", s.Range, s.Text)
}

// Reduce computes the state that follows prev once a transaction has
// produced sel and doc.
//
// A non-empty selection always ends tracking. Otherwise the matcher is run
// at the cursor. Leaving the previous span does not end tracking on its own,
// since the cursor may have entered another trigger span.
func Reduce(sel cursor.Selection, doc Document, match Matcher, prev State) State {
	if !sel.IsEmpty() || match == nil {
		return State{}
	}

	m, ok := match(doc, sel.Head)
	if !ok || m.Range.Start >= m.Range.End {
		return State{}
	}
	return Active(m)
}
