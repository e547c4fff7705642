// Package key provides key event types for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key-down with modifiers and timestamp
//
// Terminal backends translate their native events into Event values so the
// editor host and its plugins never depend on a particular terminal library.
package key
