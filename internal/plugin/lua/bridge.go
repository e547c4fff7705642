package lua

import (
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mentions/internal/input/key"
	"github.com/dshills/mentions/internal/mention"
)

// Bridge converts between host values and Lua values.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a Bridge for L.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// Event converts a mention event to {kind, from, to, text}.
func (b *Bridge) Event(ev mention.Event) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("kind", lua.LString(ev.Kind.String()))
	t.RawSetString("from", lua.LNumber(ev.Range.Start))
	t.RawSetString("to", lua.LNumber(ev.Range.End))
	t.RawSetString("text", lua.LString(ev.Text))
	return t
}

// Key converts a key event to {name, key, rune, ctrl, alt, shift, meta}.
// name is the canonical form such as "C-n"; key is the unmodified name.
func (b *Bridge) Key(ev key.Event) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("name", lua.LString(ev.String()))
	t.RawSetString("key", lua.LString(ev.Name()))
	if ev.IsRune() {
		t.RawSetString("rune", lua.LString(string(ev.Rune)))
	} else {
		t.RawSetString("rune", lua.LString(""))
	}
	t.RawSetString("ctrl", lua.LBool(ev.Modifiers.HasCtrl()))
	t.RawSetString("alt", lua.LBool(ev.Modifiers.HasAlt()))
	t.RawSetString("shift", lua.LBool(ev.Modifiers.HasShift()))
	t.RawSetString("meta", lua.LBool(ev.Modifiers.HasMeta()))
	return t
}

// Strings converts a string slice to a Lua sequence.
func (b *Bridge) Strings(items []string) *lua.LTable {
	t := b.L.CreateTable(len(items), 0)
	for _, s := range items {
		t.Append(lua.LString(s))
	}
	return t
}

// ToStrings reads a Lua value as a list of strings. A sequence yields its
// string and number elements in order; a map yields its string values
// sorted by key; a single string yields itself. Anything else is empty.
func (b *Bridge) ToStrings(lv lua.LValue) []string {
	switch v := lv.(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		if n := v.Len(); n > 0 {
			out := make([]string, 0, n)
			for i := 1; i <= n; i++ {
				if s, ok := stringOf(v.RawGetInt(i)); ok {
					out = append(out, s)
				}
			}
			return out
		}

		var keys []string
		values := map[string]string{}
		v.ForEach(func(k, val lua.LValue) {
			ks, ok := k.(lua.LString)
			if !ok {
				return
			}
			if s, ok := stringOf(val); ok {
				keys = append(keys, string(ks))
				values[string(ks)] = s
			}
		})
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			out = append(out, values[k])
		}
		return out
	default:
		return nil
	}
}

// Truthy reports whether the first of results is truthy in Lua terms.
func Truthy(results []lua.LValue) bool {
	if len(results) == 0 {
		return false
	}
	return lua.LVAsBool(results[0])
}

func stringOf(lv lua.LValue) (string, bool) {
	switch v := lv.(type) {
	case lua.LString:
		return string(v), true
	case lua.LNumber:
		return v.String(), true
	default:
		return "", false
	}
}
