package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("one\r\ntwo\rthree\x1a")
	assert.Equal(t, "one\ntwo\nthree", doc.Text())
	assert.Equal(t, 3, doc.BlockCount())
	assert.Empty(t, doc.Leaves())

	doc = NewDocument("a\x00b")
	assert.Equal(t, "ab", doc.Text())
	edited, err := doc.Insert(1, "\x00c\x00")
	require.NoError(t, err)
	assert.Equal(t, "acb", edited.Text())
}

func TestDocument_Resolve(t *testing.T) {
	doc := NewDocument("hello\n@wor ld\n")

	tests := []struct {
		name  string
		pos   ByteOffset
		start ByteOffset
		end   ByteOffset
		block int
	}{
		{"start of document", 0, 0, 5, 0},
		{"end of first block", 5, 0, 5, 0},
		{"start of second block", 6, 6, 13, 1},
		{"inside second block", 9, 6, 13, 1},
		{"empty last block", 14, 14, 14, 2},
		{"clamped negative", -4, 0, 5, 0},
		{"clamped past end", 99, 14, 14, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp := doc.Resolve(tt.pos)
			assert.Equal(t, tt.start, rp.Start())
			assert.Equal(t, tt.start, rp.Before())
			assert.Equal(t, tt.end, rp.End())
			assert.Equal(t, tt.block, rp.Block())
		})
	}
}

func TestDocument_TextBetween(t *testing.T) {
	doc := NewDocument("ab\ncd")
	doc, err := doc.InsertLeaf(1, "@bob")
	require.NoError(t, err)

	assert.Equal(t, "a\x1ab\ncd", doc.Text())
	assert.Equal(t, "a\x00b\x00cd", doc.TextBetween(0, doc.Len(), "\x00", "\x00"))
	assert.Equal(t, "a[leaf]b | cd", doc.TextBetween(0, doc.Len(), " | ", "[leaf]"))
	assert.Equal(t, "", doc.TextBetween(4, 2, "\x00", "\x00"))
	assert.Equal(t, "a@bobb\ncd", doc.DisplayText())
}

func TestDocument_Edits(t *testing.T) {
	doc := NewDocument("hello @wor")

	next, err := doc.Insert(10, "ld")
	require.NoError(t, err)
	assert.Equal(t, "hello @world", next.Text())
	assert.Equal(t, "hello @wor", doc.Text(), "receiver must not change")

	next, err = next.Delete(0, 6)
	require.NoError(t, err)
	assert.Equal(t, "@world", next.Text())

	next, err = next.Replace(1, 6, "there")
	require.NoError(t, err)
	assert.Equal(t, "@there", next.Text())

	_, err = doc.Insert(11, "x")
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = doc.Delete(4, 2)
	assert.ErrorIs(t, err, ErrRangeInvalid)
}

func TestDocument_LeavesSurviveEdits(t *testing.T) {
	doc := NewDocument("x y z")
	doc, err := doc.InsertLeaf(2, "@b")
	require.NoError(t, err)
	doc, err = doc.InsertLeaf(0, "@a")
	require.NoError(t, err)
	doc, err = doc.InsertLeaf(doc.Len(), "@c")
	require.NoError(t, err)
	assert.Equal(t, []string{"@a", "@b", "@c"}, doc.Leaves())

	label, ok := doc.LeafAt(3)
	require.True(t, ok)
	assert.Equal(t, "@b", label)

	// Deleting the range holding the middle leaf drops only that label.
	doc, err = doc.Delete(3, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"@a", "@c"}, doc.Leaves())
	assert.Equal(t, "@ax y z@c", doc.DisplayText())

	_, err = doc.InsertLeaf(0, "")
	assert.ErrorIs(t, err, ErrEmptyLabel)
}

func TestDocument_BlockRange(t *testing.T) {
	doc := NewDocument("a\nbb\n\nccc")
	assert.Equal(t, 4, doc.BlockCount())
	assert.Equal(t, Range{Start: 0, End: 1}, doc.BlockRange(0))
	assert.Equal(t, Range{Start: 2, End: 4}, doc.BlockRange(1))
	assert.Equal(t, Range{Start: 5, End: 5}, doc.BlockRange(2))
	assert.Equal(t, "ccc", doc.BlockText(3))
	assert.Equal(t, Range{Start: 9, End: 9}, doc.BlockRange(7))
}

func TestDocument_Runes(t *testing.T) {
	doc := NewDocument("aé@")

	r, size := doc.RuneBefore(3)
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, size)

	r, size = doc.RuneAt(3)
	assert.Equal(t, '@', r)
	assert.Equal(t, 1, size)

	_, size = doc.RuneBefore(0)
	assert.Zero(t, size)
	_, size = doc.RuneAt(doc.Len())
	assert.Zero(t, size)
}

func TestEdit_MapOffset(t *testing.T) {
	insert := NewInsert(5, "abc")
	assert.Equal(t, ByteOffset(4), insert.MapOffset(4))
	assert.Equal(t, ByteOffset(8), insert.MapOffset(5))
	assert.Equal(t, ByteOffset(9), insert.MapOffset(6))

	del := NewDelete(2, 6)
	assert.Equal(t, ByteOffset(2), del.MapOffset(2))
	assert.Equal(t, ByteOffset(2), del.MapOffset(4))
	assert.Equal(t, ByteOffset(2), del.MapOffset(6))
	assert.Equal(t, ByteOffset(6), del.MapOffset(10))
}

func TestRange(t *testing.T) {
	r := NewRange(6, 10)
	assert.Equal(t, "[6:10)", r.String())
	assert.Equal(t, ByteOffset(4), r.Len())
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(10))
}
