// Package mention tracks "mention trigger" spans such as @name while the user
// types, and reports their lifecycle to the host.
//
// The package has two layers.
//
// The pure layer is a set of functions over explicit values:
//
//   - A Matcher maps a collapsed cursor position to the trigger span that
//     encloses it, if any. TriggerCharacters builds the standard one.
//   - Reduce maps a transaction's resulting selection and document plus the
//     previous State to the next State.
//   - Classify compares two consecutive states and Transition.Events lists
//     the lifecycle events (Exit, Change, Enter) the change implies.
//
// Plugin wires that layer into an editor.View: its reducer runs once per
// transaction, its Update hook emits the lifecycle callbacks after the state
// has been committed, it decorates the active span and it routes key-down
// events to the host while a span is active.
//
// Event order for a single transaction is fixed: Exit (of the old span) if
// tracking stopped or the span moved, Change if the text changed within the
// same span, Enter if tracking started or the span moved. A moved span is
// always reported as Exit followed by Enter, never as Change.
package mention
