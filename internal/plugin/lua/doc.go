// Package lua runs user scripts that react to mention events.
//
// A script is a Lua file that may define any of these globals:
//
//	function on_enter(ev) end      -- ev = {kind, from, to, text}
//	function on_change(ev) end
//	function on_exit(ev) end
//	function on_key_down(key) end  -- key = {name, key, rune, ctrl, alt, shift, meta}
//	function suggest(query, users) end
//
// The lifecycle and key handlers return a boolean; suggest returns a list of
// strings. Missing functions fall back to the host's behavior.
//
// Scripts run in a sandboxed state: only the base, table, string and math
// libraries are opened, file loading and require are disabled, print writes
// to the host logger, and every call is bounded by a timeout.
//
// A script can reach the host through the "mentions" module:
//
//	mentions.log(msg)      -- info log line
//	mentions.trigger       -- the trigger character
//	mentions.users()       -- the configured user list
package lua
