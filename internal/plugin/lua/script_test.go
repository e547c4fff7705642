package lua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/input/key"
	"github.com/dshills/mentions/internal/mention"
)

const testScript = `
seen = {}

function on_enter(ev)
  table.insert(seen, ev.kind .. " " .. ev.from .. "-" .. ev.to .. " " .. ev.text)
  return ev.text == "yes"
end

function on_exit(ev)
  table.insert(seen, ev.kind .. " " .. ev.text)
end

function on_key_down(k)
  return k.name == "C-n" or k.key == "Tab"
end

function suggest(query, users)
  local out = {}
  for _, u in ipairs(users) do
    if string.sub(u, 1, #query) == query then
      table.insert(out, mentions.trigger .. u)
    end
  end
  return out
end
`

func loadTestScript(t *testing.T, code string) *Script {
	t.Helper()
	s, err := LoadString("test.lua", code, ScriptConfig{Trigger: '@', Users: []string{"ann", "bob"}})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seen(t *testing.T, s *Script) []string {
	t.Helper()
	tbl, ok := s.state.L.GetGlobal("seen").(*lua.LTable)
	require.True(t, ok)
	return s.bridge.ToStrings(tbl)
}

func TestScript_WrapLifecycle(t *testing.T) {
	s := loadTestScript(t, testScript)

	var hostEvents []mention.Event
	host := func(ev mention.Event) bool {
		hostEvents = append(hostEvents, ev)
		return false
	}
	opts := s.Wrap(mention.Options{OnEnter: host, OnChange: host, OnExit: host})

	enter := mention.Event{Kind: mention.EventEnter, Range: buffer.NewRange(6, 10), Text: "wor"}
	assert.False(t, opts.OnEnter(enter))
	assert.True(t, opts.OnEnter(mention.Event{Kind: mention.EventEnter, Range: buffer.NewRange(0, 4), Text: "yes"}))
	assert.False(t, opts.OnExit(mention.Event{Kind: mention.EventExit, Text: "wor"}))

	// on_change is not defined, so the host callback is used as is.
	assert.False(t, opts.OnChange(mention.Event{Kind: mention.EventChange, Text: "x"}))

	assert.Equal(t, []string{"enter 6-10 wor", "enter 0-4 yes", "exit wor"}, seen(t, s))
	assert.Len(t, hostEvents, 4)
}

func TestScript_WrapKeyDown(t *testing.T) {
	s := loadTestScript(t, testScript)

	var passed []key.Event
	opts := s.Wrap(mention.Options{OnKeyDown: func(ev key.Event) bool {
		passed = append(passed, ev)
		return true
	}})

	assert.True(t, opts.OnKeyDown(key.NewRuneEvent('n', key.ModCtrl)))
	assert.True(t, opts.OnKeyDown(key.NewSpecialEvent(key.KeyTab, key.ModNone)))
	assert.Empty(t, passed)

	assert.True(t, opts.OnKeyDown(key.NewSpecialEvent(key.KeyUp, key.ModNone)))
	assert.Len(t, passed, 1)
}

func TestScript_WrapWithoutHooks(t *testing.T) {
	s := loadTestScript(t, `x = 1`)
	opts := s.Wrap(mention.Options{})
	assert.Nil(t, opts.OnEnter)
	assert.Nil(t, opts.OnKeyDown)

	_, ok := s.Suggest("a", nil)
	assert.False(t, ok)
}

func TestScript_Suggest(t *testing.T) {
	s := loadTestScript(t, testScript)

	got, ok := s.Suggest("a", []string{"ann", "abe", "bob"})
	require.True(t, ok)
	assert.Equal(t, []string{"@ann", "@abe"}, got)

	got, ok = s.Suggest("z", []string{"ann"})
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestScript_Module(t *testing.T) {
	s := loadTestScript(t, `
function suggest(query)
  mentions.log("query " .. query)
  return mentions.users()
end
`)
	got, ok := s.Suggest("", nil)
	require.True(t, ok)
	assert.Equal(t, []string{"ann", "bob"}, got)
}

func TestScript_FailingHookIsFalse(t *testing.T) {
	s := loadTestScript(t, `
function on_enter(ev) error("broken") end
function suggest() error("broken") end
`)
	called := false
	opts := s.Wrap(mention.Options{OnEnter: func(mention.Event) bool {
		called = true
		return false
	}})

	assert.False(t, opts.OnEnter(mention.Event{Kind: mention.EventEnter}))
	assert.True(t, called)

	_, ok := s.Suggest("a", nil)
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadString("bad.lua", `function (`, ScriptConfig{})
	assert.Error(t, err)

	_, err = Load("/nonexistent/script.lua", ScriptConfig{})
	assert.Error(t, err)
}

func TestBridge_ToStrings(t *testing.T) {
	s := NewState()
	defer s.Close()
	b := NewBridge(s.L)

	require.NoError(t, s.DoString(`seq = {"a", 2, true, "c"}
dict = {b = "two", a = "one", n = {}}`))

	assert.Equal(t, []string{"a", "2", "c"}, b.ToStrings(s.L.GetGlobal("seq")))
	assert.Equal(t, []string{"one", "two"}, b.ToStrings(s.L.GetGlobal("dict")))
	assert.Equal(t, []string{"x"}, b.ToStrings(lua.LString("x")))
	assert.Nil(t, b.ToStrings(lua.LNil))
}

func TestBridge_Key(t *testing.T) {
	s := NewState()
	defer s.Close()
	b := NewBridge(s.L)

	tbl := b.Key(key.NewRuneEvent('n', key.ModCtrl))
	assert.Equal(t, lua.LString("C-n"), tbl.RawGetString("name"))
	assert.Equal(t, lua.LString("n"), tbl.RawGetString("rune"))
	assert.Equal(t, lua.LTrue, tbl.RawGetString("ctrl"))
	assert.Equal(t, lua.LFalse, tbl.RawGetString("alt"))

	tbl = b.Key(key.NewSpecialEvent(key.KeyDown, key.ModShift))
	assert.Equal(t, lua.LString("S-Down"), tbl.RawGetString("name"))
	assert.Equal(t, lua.LString("Down"), tbl.RawGetString("key"))
	assert.Equal(t, lua.LString(""), tbl.RawGetString("rune"))
}
