package editor

import (
	"unicode/utf8"

	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
	"github.com/dshills/mentions/internal/input/key"
)

// defaultCommand maps a key event to the built-in editing transaction.
// It returns nil for keys without a default binding.
func defaultCommand(s *State, ev key.Event) *Transaction {
	if ev.IsChar() {
		return s.Tr().ReplaceSelection(string(ev.Rune))
	}

	sel := s.sel
	doc := s.doc
	extend := ev.Modifiers.HasShift()

	switch ev.Key {
	case key.KeyEnter:
		if ev.IsModified() {
			return nil
		}
		return s.Tr().ReplaceSelection(string(rune(buffer.BlockSeparator)))

	case key.KeyBackspace:
		if !sel.IsEmpty() {
			return s.Tr().ReplaceSelection("")
		}
		_, size := doc.RuneBefore(sel.Head)
		if size == 0 {
			return nil
		}
		return s.Tr().Delete(sel.Head-buffer.ByteOffset(size), sel.Head)

	case key.KeyDelete:
		if !sel.IsEmpty() {
			return s.Tr().ReplaceSelection("")
		}
		_, size := doc.RuneAt(sel.Head)
		if size == 0 {
			return nil
		}
		return s.Tr().Delete(sel.Head, sel.Head+buffer.ByteOffset(size))

	case key.KeyLeft:
		if !sel.IsEmpty() && !extend {
			return moveTo(s, sel.From(), false)
		}
		_, size := doc.RuneBefore(sel.Head)
		return moveTo(s, sel.Head-buffer.ByteOffset(size), extend)

	case key.KeyRight:
		if !sel.IsEmpty() && !extend {
			return moveTo(s, sel.To(), false)
		}
		_, size := doc.RuneAt(sel.Head)
		return moveTo(s, sel.Head+buffer.ByteOffset(size), extend)

	case key.KeyHome:
		return moveTo(s, doc.Resolve(sel.Head).Start(), extend)

	case key.KeyEnd:
		return moveTo(s, doc.Resolve(sel.Head).End(), extend)

	case key.KeyUp:
		return moveTo(s, verticalTarget(doc, sel.Head, -1), extend)

	case key.KeyDown:
		return moveTo(s, verticalTarget(doc, sel.Head, 1), extend)
	}

	return nil
}

func moveTo(s *State, pos buffer.ByteOffset, extend bool) *Transaction {
	if extend {
		return s.Tr().SetSelection(s.sel.Extend(pos))
	}
	return s.Tr().SetSelection(cursor.NewCursorSelection(pos))
}

// verticalTarget returns the position in the neighbouring block (dir -1 or
// +1) at the same rune column as pos, clamped to that block's length.
func verticalTarget(doc buffer.Document, pos buffer.ByteOffset, dir int) buffer.ByteOffset {
	rp := doc.Resolve(pos)
	target := rp.Block() + dir
	if target < 0 {
		return 0
	}
	if target >= doc.BlockCount() {
		return doc.Len()
	}

	column := utf8.RuneCountInString(doc.Slice(rp.Start(), pos))
	r := doc.BlockRange(target)
	text := doc.Slice(r.Start, r.End)

	offset := 0
	for i := 0; i < column && offset < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += size
	}
	return r.Start + buffer.ByteOffset(offset)
}
