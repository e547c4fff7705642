package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
	"github.com/dshills/mentions/internal/input/key"
)

// countingPlugin counts transactions and records the update pairs it sees.
type countingPlugin struct {
	updates  [][2]int
	consume  bool
	keys     []key.Event
	onUpdate func(v *View, prev, next int)
}

func (p *countingPlugin) Init(*State) any { return 0 }

func (p *countingPlugin) Apply(_ *Transaction, prev any) any { return prev.(int) + 1 }

func (p *countingPlugin) Update(v *View, prev, next any) {
	p.updates = append(p.updates, [2]int{prev.(int), next.(int)})
	if p.onUpdate != nil {
		p.onUpdate(v, prev.(int), next.(int))
	}
}

func (p *countingPlugin) Decorations(value any) []Decoration {
	n := value.(int)
	if n == 0 {
		return nil
	}
	return []Decoration{Inline(0, buffer.ByteOffset(n), "count")}
}

func (p *countingPlugin) HandleKeyDown(_ *View, _ any, ev key.Event) bool {
	p.keys = append(p.keys, ev)
	return p.consume
}

func newTestView(text string, pos buffer.ByteOffset, plugins ...Plugin) *View {
	return NewView(NewState(Config{
		Doc:       buffer.NewDocument(text),
		Selection: cursor.NewCursorSelection(pos),
		Plugins:   plugins,
	}))
}

func TestState_ApplyIsCopyOnWrite(t *testing.T) {
	p := &countingPlugin{}
	s := NewState(Config{Doc: buffer.NewDocument("abc"), Selection: cursor.NewCursorSelection(99), Plugins: []Plugin{p}})
	assert.Equal(t, cursor.NewCursorSelection(3), s.Selection(), "selection is clamped")

	next, err := s.Apply(s.Tr().Insert(3, "d"))
	require.NoError(t, err)

	assert.Equal(t, "abc", s.Doc().Text())
	assert.Equal(t, "abcd", next.Doc().Text())

	before, _ := s.PluginValue(p)
	after, ok := next.PluginValue(p)
	require.True(t, ok)
	assert.Equal(t, 0, before)
	assert.Equal(t, 1, after)

	_, ok = next.PluginValue(&countingPlugin{})
	assert.False(t, ok)
}

func TestState_ApplyErrors(t *testing.T) {
	s := NewState(Config{Doc: buffer.NewDocument("abc")})

	_, err := s.Apply(nil)
	assert.ErrorIs(t, err, ErrNilTransaction)

	_, err = s.Apply(s.Tr().Insert(10, "x"))
	assert.ErrorIs(t, err, buffer.ErrOffsetOutOfRange)

	other := NewState(Config{Doc: buffer.NewDocument("abc")})
	_, err = s.Apply(other.Tr())
	assert.ErrorIs(t, err, ErrStaleTransaction)
}

func TestTransaction_SelectionMapping(t *testing.T) {
	s := NewState(Config{Doc: buffer.NewDocument("hello world"), Selection: cursor.NewSelection(6, 11)})

	tr := s.Tr().Insert(0, ">> ")
	assert.Equal(t, cursor.NewSelection(9, 14), tr.Selection())
	assert.True(t, tr.DocChanged())

	tr = s.Tr().ReplaceSelection("@x")
	assert.Equal(t, "hello @x", tr.Doc().Text())
	assert.Equal(t, cursor.NewCursorSelection(8), tr.Selection())

	tr = s.Tr().Insert(0, "").SetMeta("origin", "test")
	assert.False(t, tr.DocChanged())
	origin, ok := tr.Meta("origin")
	require.True(t, ok)
	assert.Equal(t, "test", origin)
	assert.NotEqual(t, s.Tr().ID(), tr.ID())
}

func TestTransaction_InsertLeaf(t *testing.T) {
	s := NewState(Config{Doc: buffer.NewDocument("hi !"), Selection: cursor.NewCursorSelection(3)})

	tr := s.Tr().InsertLeaf(3, "@ann")
	require.NoError(t, tr.Err())
	assert.Equal(t, "hi @ann!", tr.Doc().DisplayText())
	assert.Equal(t, cursor.NewCursorSelection(4), tr.Selection())

	tr = s.Tr().InsertLeaf(3, "")
	assert.ErrorIs(t, tr.Err(), buffer.ErrEmptyLabel)
}

func TestView_DispatchRunsUpdateHooks(t *testing.T) {
	p := &countingPlugin{}
	var listened int
	v := NewView(NewState(Config{Doc: buffer.NewDocument(""), Plugins: []Plugin{p}}),
		WithUpdateListener(func(prev, next *State) { listened++ }))

	require.NoError(t, v.Dispatch(v.Tr().Insert(0, "a")))
	require.NoError(t, v.Dispatch(v.Tr().Insert(1, "b")))

	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, p.updates)
	assert.Equal(t, 2, listened)
	assert.Equal(t, "ab", v.State().Doc().Text())
	assert.Equal(t, []Decoration{Inline(0, 2, "count")}, v.Decorations())

	assert.ErrorIs(t, v.Dispatch(nil), ErrNilTransaction)
}

func TestView_NestedDispatchIsQueued(t *testing.T) {
	p := &countingPlugin{}
	p.onUpdate = func(v *View, prev, next int) {
		if next == 1 {
			// Runs after this update returns, never interleaved with it.
			require.NoError(t, v.Dispatch(v.Tr().Insert(v.State().Doc().Len(), "!")))
			assert.Equal(t, "a", v.State().Doc().Text())
		}
	}
	v := newTestView("", 0, p)

	require.NoError(t, v.Dispatch(v.Tr().Insert(0, "a")))

	assert.Equal(t, "a!", v.State().Doc().Text())
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, p.updates)
}

func TestView_HandleKeyPluginFirst(t *testing.T) {
	p := &countingPlugin{consume: true}
	v := newTestView("", 0, p)

	handled, err := v.HandleKey(key.NewRuneEvent('x', key.ModNone))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Len(t, p.keys, 1)
	assert.Equal(t, "", v.State().Doc().Text(), "consumed key must not edit")

	p.consume = false
	handled, err = v.HandleKey(key.NewRuneEvent('x', key.ModNone))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "x", v.State().Doc().Text())
}

func TestDefaultCommands(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		sel     cursor.Selection
		ev      key.Event
		wantDoc string
		wantSel cursor.Selection
	}{
		{"type rune", "ab", cursor.NewCursorSelection(1), key.NewRuneEvent('@', key.ModShift), "a@b", cursor.NewCursorSelection(2)},
		{"type over selection", "abcd", cursor.NewSelection(1, 3), key.NewRuneEvent('x', key.ModNone), "axd", cursor.NewCursorSelection(2)},
		{"enter splits block", "ab", cursor.NewCursorSelection(1), key.NewSpecialEvent(key.KeyEnter, key.ModNone), "a\nb", cursor.NewCursorSelection(2)},
		{"backspace multibyte", "aé", cursor.NewCursorSelection(3), key.NewSpecialEvent(key.KeyBackspace, key.ModNone), "a", cursor.NewCursorSelection(1)},
		{"backspace selection", "abcd", cursor.NewSelection(3, 1), key.NewSpecialEvent(key.KeyBackspace, key.ModNone), "ad", cursor.NewCursorSelection(1)},
		{"delete forward", "abc", cursor.NewCursorSelection(1), key.NewSpecialEvent(key.KeyDelete, key.ModNone), "ac", cursor.NewCursorSelection(1)},
		{"left", "abc", cursor.NewCursorSelection(2), key.NewSpecialEvent(key.KeyLeft, key.ModNone), "abc", cursor.NewCursorSelection(1)},
		{"left collapses", "abc", cursor.NewSelection(1, 3), key.NewSpecialEvent(key.KeyLeft, key.ModNone), "abc", cursor.NewCursorSelection(1)},
		{"shift right extends", "abc", cursor.NewCursorSelection(1), key.NewSpecialEvent(key.KeyRight, key.ModShift), "abc", cursor.NewSelection(1, 2)},
		{"home", "ab\ncd", cursor.NewCursorSelection(4), key.NewSpecialEvent(key.KeyHome, key.ModNone), "ab\ncd", cursor.NewCursorSelection(3)},
		{"end", "ab\ncd", cursor.NewCursorSelection(0), key.NewSpecialEvent(key.KeyEnd, key.ModNone), "ab\ncd", cursor.NewCursorSelection(2)},
		{"down keeps column", "abc\nde", cursor.NewCursorSelection(2), key.NewSpecialEvent(key.KeyDown, key.ModNone), "abc\nde", cursor.NewCursorSelection(6)},
		{"up from first block", "abc", cursor.NewCursorSelection(2), key.NewSpecialEvent(key.KeyUp, key.ModNone), "abc", cursor.NewCursorSelection(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(NewState(Config{Doc: buffer.NewDocument(tt.text), Selection: tt.sel}))
			handled, err := v.HandleKey(tt.ev)
			require.NoError(t, err)
			assert.True(t, handled)
			assert.Equal(t, tt.wantDoc, v.State().Doc().Text())
			assert.Equal(t, tt.wantSel, v.State().Selection())
		})
	}
}

func TestDefaultCommands_Unhandled(t *testing.T) {
	v := newTestView("", 0)

	for _, ev := range []key.Event{
		key.NewSpecialEvent(key.KeyBackspace, key.ModNone),
		key.NewSpecialEvent(key.KeyDelete, key.ModNone),
		key.NewSpecialEvent(key.KeyPageUp, key.ModNone),
		key.NewRuneEvent('s', key.ModCtrl),
	} {
		handled, err := v.HandleKey(ev)
		require.NoError(t, err)
		assert.False(t, handled, ev.String())
	}
}

func TestState_Reconfigure(t *testing.T) {
	kept := &countingPlugin{}
	dropped := &countingPlugin{}
	s := NewState(Config{Doc: buffer.NewDocument("abc"), Selection: cursor.NewCursorSelection(1), Plugins: []Plugin{kept, dropped}})
	s, err := s.Apply(s.Tr().Insert(0, "x"))
	require.NoError(t, err)

	added := &countingPlugin{}
	next := s.Reconfigure([]Plugin{added, kept})

	assert.Equal(t, "xabc", next.Doc().Text())
	assert.Equal(t, s.Selection(), next.Selection())

	v, ok := next.PluginValue(kept)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = next.PluginValue(added)
	require.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = next.PluginValue(dropped)
	assert.False(t, ok)
}

func TestView_UpdateState(t *testing.T) {
	var seen [][2]string
	p := &countingPlugin{}
	v := NewView(NewState(Config{Doc: buffer.NewDocument("a")}), WithUpdateListener(func(prev, next *State) {
		seen = append(seen, [2]string{prev.Doc().Text(), next.Doc().Text()})
	}))

	next := v.State().Reconfigure([]Plugin{p})
	v.UpdateState(next)

	assert.Same(t, next, v.State())
	assert.Empty(t, p.updates)
	assert.Equal(t, [][2]string{{"a", "a"}}, seen)

	require.NoError(t, v.Dispatch(v.Tr().Insert(1, "b")))
	assert.Equal(t, [][2]int{{0, 1}}, p.updates)
}
