package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
)

func active(start, end buffer.ByteOffset, text string) State {
	return State{Active: true, Range: buffer.NewRange(start, end), Text: text}
}

func TestReduce(t *testing.T) {
	m := MustTriggerCharacters('@', 0)

	tests := []struct {
		name string
		text string
		sel  cursor.Selection
		prev State
		want State
	}{
		{"start tracking", "hello @wor", cursor.NewCursorSelection(10), Init(), active(6, 10, "wor")},
		{"non-empty selection", "hello @wor", cursor.NewSelection(7, 10), active(6, 10, "wor"), Init()},
		{"cursor leaves span", "hello @wor", cursor.NewCursorSelection(3), active(6, 10, "wor"), Init()},
		{"cursor enters other span", "@ann @bob", cursor.NewCursorSelection(9), active(0, 4, "ann"), active(5, 9, "bob")},
		{"stays inactive", "hello", cursor.NewCursorSelection(5), Init(), Init()},
		{"span grows", "hello @world", cursor.NewCursorSelection(10), active(6, 10, "wor"), active(6, 12, "world")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.sel, buffer.NewDocument(tt.text), m, tt.prev)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduce_RejectsDegenerateMatch(t *testing.T) {
	empty := func(Document, buffer.ByteOffset) (Match, bool) {
		return Match{Range: buffer.NewRange(3, 3)}, true
	}
	got := Reduce(cursor.NewCursorSelection(3), buffer.NewDocument("abc"), empty, Init())
	assert.False(t, got.Active)

	got = Reduce(cursor.NewCursorSelection(3), buffer.NewDocument("abc"), nil, active(0, 3, "bc"))
	assert.Equal(t, Init(), got)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		prev State
		next State
		want Transition
	}{
		{"idle", Init(), Init(), Transition{}},
		{"started", Init(), active(6, 10, "wor"), Transition{Started: true}},
		{"stopped", active(6, 10, "wor"), Init(), Transition{Stopped: true}},
		{"changed", active(6, 10, "wor"), active(6, 12, "world"), Transition{Changed: true}},
		{"same text wider range", active(6, 10, "wor"), active(6, 11, "wor"), Transition{}},
		{"moved", active(0, 4, "ann"), active(5, 9, "bob"), Transition{Moved: true, Changed: true}},
		{"moved same text", active(0, 4, "ann"), active(5, 9, "ann"), Transition{Moved: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.prev, tt.next))
		})
	}
}

func TestTransition_Events(t *testing.T) {
	tests := []struct {
		name string
		prev State
		next State
		want []Event
	}{
		{"idle", Init(), Init(), nil},
		{
			"enter", Init(), active(6, 10, "wor"),
			[]Event{{EventEnter, buffer.NewRange(6, 10), "wor"}},
		},
		{
			"change", active(6, 10, "wor"), active(6, 12, "world"),
			[]Event{{EventChange, buffer.NewRange(6, 12), "world"}},
		},
		{
			"exit", active(6, 10, "wor"), Init(),
			[]Event{{EventExit, buffer.NewRange(6, 10), "wor"}},
		},
		{
			"move suppresses change", active(0, 4, "ann"), active(5, 9, "bob"),
			[]Event{
				{EventExit, buffer.NewRange(0, 4), "ann"},
				{EventEnter, buffer.NewRange(5, 9), "bob"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.prev, tt.next).Events(tt.prev, tt.next)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_EventsAreExclusive(t *testing.T) {
	states := []State{
		Init(),
		active(0, 4, "ann"),
		active(0, 5, "anne"),
		active(0, 5, "ann"),
		active(5, 9, "ann"),
		active(5, 9, "bob"),
	}

	for _, prev := range states {
		for _, next := range states {
			events := Classify(prev, next).Events(prev, next)

			counts := map[EventKind]int{}
			for _, ev := range events {
				counts[ev.Kind]++
			}
			for kind, n := range counts {
				assert.LessOrEqual(t, n, 1, "%s -> %s: %s fired %d times", prev, next, kind, n)
			}
			if counts[EventChange] > 0 {
				assert.Zero(t, counts[EventEnter]+counts[EventExit], "%s -> %s", prev, next)
			}
			if len(events) == 2 {
				assert.Equal(t, EventExit, events[0].Kind)
				assert.Equal(t, EventEnter, events[1].Kind)
			}
		}
	}
}

func TestTransition_String(t *testing.T) {
	assert.Equal(t, "none", Transition{}.String())
	assert.Equal(t, "moved+changed", Transition{Moved: true, Changed: true}.String())
}

func TestState_Match(t *testing.T) {
	_, ok := Init().Match()
	assert.False(t, ok)

	m, ok := active(1, 3, "x").Match()
	require.True(t, ok)
	assert.Equal(t, Match{buffer.NewRange(1, 3), "x"}, m)
	assert.Equal(t, `[1:3) "x"`, active(1, 3, "x").String())
	assert.Equal(t, "inactive", Init().String())
}
