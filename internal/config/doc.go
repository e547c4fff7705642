// Package config loads and watches the mentions configuration.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//	┌──────────────────────────────┐
//	│  4. Command line flags       │  ← applied by the caller
//	├──────────────────────────────┤
//	│  3. Environment (MENTIONS_*) │
//	├──────────────────────────────┤
//	│  2. Config file (TOML/YAML)  │  ← ~/.config/mentions/config.toml
//	├──────────────────────────────┤
//	│  1. Built-in defaults        │
//	└──────────────────────────────┘
//
// A config file is decoded on top of Default, so it only needs the keys it
// changes:
//
//	[mention]
//	trigger = "#"
//	min_chars = 1
//
//	[editor.styles.prosemirror-mention-node]
//	fg = "yellow"
//	underline = true
//
//	users = ["ann", "bob"]
//
// Unknown keys are rejected. Decoding failures are reported as *ParseError
// with the position when the decoder provides one; semantic problems are
// reported by Validate and wrap ErrInvalidConfig.
//
// Watcher reloads a config file when it changes on disk.
package config
