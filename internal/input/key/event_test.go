package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('A', ModShift), "A"},
		{NewRuneEvent('c', ModCtrl), "C-c"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
		{NewSpecialEvent(KeyLeft, ModShift), "S-Left"},
		{NewSpecialEvent(KeyUp, ModAlt|ModCtrl), "C-A-Up"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.event.String())
	}
}

func TestEvent_Classification(t *testing.T) {
	assert.True(t, NewRuneEvent('@', ModShift).IsChar())
	assert.False(t, NewRuneEvent('c', ModCtrl).IsChar())
	assert.False(t, NewRuneEvent('\t', ModNone).IsChar())
	assert.False(t, NewSpecialEvent(KeyEnter, ModNone).IsChar())
	assert.True(t, NewSpecialEvent(KeyEnter, ModShift).IsModified())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "Key(999)", Key(999).String())
	assert.False(t, KeyRune.IsSpecial())
}

func TestModifier_String(t *testing.T) {
	assert.Equal(t, "", ModNone.String())
	assert.Equal(t, "Ctrl+Shift", (ModShift | ModCtrl).String())
	assert.True(t, (ModAlt | ModMeta).HasMeta())
}
