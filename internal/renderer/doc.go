// Package renderer draws the composer on a character-cell backend.
//
// A frame is the document, its selection, the decorations the editor's
// plugins produced, an optional suggestion popup and a status line:
//
//	┌──────────────────────────────┐
//	│ hello @wor▏                  │  ← decorated span
//	│       ┌─────────┐            │
//	│       │ @world  │            │  ← popup under the span
//	│       │ @wordle │            │
//	│       └─────────┘            │
//	│ status                       │
//	└──────────────────────────────┘
//
// Blocks are drawn one per row without wrapping. Inline leaves are drawn as
// their labels. Cell widths follow go-runewidth, so wide characters take two
// columns. Styles are resolved from class names through a Theme.
package renderer
