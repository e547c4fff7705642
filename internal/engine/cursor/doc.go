// Package cursor provides the selection model for text editing.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection is collapsed: it represents just a
// cursor with no selected text. The selection can extend forward
// (head > anchor) or backward (head < anchor), preserving the user's
// selection direction.
//
// Selections are immutable values; every operation returns a new one.
package cursor
