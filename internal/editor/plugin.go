package editor

import (
	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/input/key"
)

// Plugin extends the editor with its own state and behaviour.
//
// Plugin values live in the State, never in the plugin itself: every hook
// receives the value it operates on explicitly.
type Plugin interface {
	// Init returns the plugin's value for a freshly created state.
	Init(s *State) any

	// Apply is the plugin's reducer. It is called once per transaction with
	// the value from the state the transaction was built on and returns the
	// value for the resulting state. It must not have side effects.
	Apply(tr *Transaction, prev any) any

	// Update is called after a transaction's state has been committed.
	Update(v *View, prev, next any)

	// Decorations returns the decorations to render for a plugin value.
	Decorations(value any) []Decoration

	// HandleKeyDown gets the first chance at a key event. Returning true
	// consumes it and suppresses default editing.
	HandleKeyDown(v *View, value any, ev key.Event) bool
}

// DecorationKind distinguishes how a decoration applies to its range.
type DecorationKind uint8

const (
	// DecorationInline styles the text inside the range.
	DecorationInline DecorationKind = iota
)

// Decoration is a purely visual annotation of a document range.
type Decoration struct {
	Kind  DecorationKind
	Range buffer.Range
	Class string
}

// Inline creates an inline decoration styling [from, to) with class.
func Inline(from, to buffer.ByteOffset, class string) Decoration {
	return Decoration{
		Kind:  DecorationInline,
		Range: buffer.NewRange(from, to),
		Class: class,
	}
}
