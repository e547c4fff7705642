package mention

import (
	"github.com/dshills/mentions/internal/input/key"
	"github.com/dshills/mentions/internal/logging"
)

// DefaultSuggestionClass is the decoration class of the active span.
const DefaultSuggestionClass = "prosemirror-mention-node"

// Callback receives a lifecycle event. Its result is advisory.
type Callback func(ev Event) bool

// KeyHandler receives key-down events while a span is active and reports
// whether it consumed the event.
type KeyHandler func(ev key.Event) bool

// Options configures a Plugin.
type Options struct {
	// Matcher finds trigger spans. Required.
	Matcher Matcher

	// SuggestionClass is the class of the active span's decoration.
	SuggestionClass string

	// OnEnter fires when the cursor enters a span. Nil means a no-op that
	// reports false.
	OnEnter Callback

	// OnChange fires when the active span's text changes in place. Nil means
	// a no-op that reports false.
	OnChange Callback

	// OnExit fires when the cursor leaves a span. Nil means a no-op that
	// reports false.
	OnExit Callback

	// OnKeyDown sees key-down events while a span is active. Nil means a
	// no-op that reports false, so the key falls through to the editor.
	OnKeyDown KeyHandler

	// Logger receives debug output about transitions.
	Logger *logging.Logger
}

func nop(Event) bool        { return false }
func nopKey(key.Event) bool { return false }

// Validate checks that the options can build a Plugin.
func (o Options) Validate() error {
	if o.Matcher == nil {
		return ErrNoMatcher
	}
	return nil
}

// withDefaults returns a copy with every unset field filled in.
func (o Options) withDefaults() Options {
	if o.SuggestionClass == "" {
		o.SuggestionClass = DefaultSuggestionClass
	}
	if o.OnEnter == nil {
		o.OnEnter = nop
	}
	if o.OnChange == nil {
		o.OnChange = nop
	}
	if o.OnExit == nil {
		o.OnExit = nop
	}
	if o.OnKeyDown == nil {
		o.OnKeyDown = nopKey
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}
