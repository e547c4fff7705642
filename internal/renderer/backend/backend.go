// Package backend provides the terminal backend for the renderer.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mentions/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// PasteStart marks the start (true) or end (false) of a bracketed paste.
	PasteStart bool

	// Data carries the payload of EventInterrupt.
	Data any
}

// Backend is a character-cell display.
type Backend interface {
	// Init prepares the display. Must be called before any other method.
	Init() error

	// Shutdown restores the display.
	Shutdown()

	// Size returns the display size in cells.
	Size() (width, height int)

	// SetCell sets the cell at (x, y). Positions outside the display are
	// ignored.
	SetCell(x, y int, r rune, style tcell.Style)

	// Clear blanks the display.
	Clear()

	// Show flushes pending changes.
	Show()

	// ShowCursor places the cursor at (x, y).
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent blocks until the next event. It returns EventNone once the
	// backend has shut down.
	PollEvent() Event

	// Interrupt posts an EventInterrupt carrying data. It is safe to call
	// from any goroutine.
	Interrupt(data any) error
}
