package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{
		Range:   Range{Start: offset, End: offset},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end ByteOffset) Edit {
	return Edit{
		Range:   Range{Start: start, End: end},
		NewText: "",
	}
}

// NewReplace creates an Edit that replaces a range with new text.
func NewReplace(start, end ByteOffset, text string) Edit {
	return Edit{
		Range:   Range{Start: start, End: end},
		NewText: text,
	}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in document length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// MapOffset maps an offset from before the edit to the equivalent offset
// after it. Offsets at the insertion point move to the end of the inserted
// text; offsets inside a replaced range collapse to its new end.
func (e Edit) MapOffset(offset ByteOffset) ByteOffset {
	switch {
	case offset < e.Range.Start:
		return offset
	case offset >= e.Range.End:
		return offset + e.Delta()
	default:
		return e.Range.Start + ByteOffset(len(e.NewText))
	}
}
