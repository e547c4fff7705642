package buffer

import "fmt"

// ByteOffset represents a byte position in the document.
// This is the fundamental position type, directly indexing into the text.
type ByteOffset = int64

// ResolvedPos is a document position resolved against the text block that
// encloses it.
type ResolvedPos struct {
	pos   ByteOffset
	start ByteOffset
	end   ByteOffset
	block int
}

// Pos returns the resolved position itself.
func (rp ResolvedPos) Pos() ByteOffset {
	return rp.pos
}

// Before returns the position directly before the enclosing block.
// Blocks in a flat document have no opening token, so this equals Start.
func (rp ResolvedPos) Before() ByteOffset {
	return rp.start
}

// Start returns the offset of the first byte of the enclosing block's content.
func (rp ResolvedPos) Start() ByteOffset {
	return rp.start
}

// End returns the offset just past the enclosing block's content
// (the position of its trailing newline, or the document length).
func (rp ResolvedPos) End() ByteOffset {
	return rp.end
}

// Block returns the 0-indexed number of the enclosing block.
func (rp ResolvedPos) Block() int {
	return rp.block
}

// Offset returns the position relative to the start of its block.
func (rp ResolvedPos) Offset() ByteOffset {
	return rp.pos - rp.start
}

// String returns a human-readable representation of the resolved position.
func (rp ResolvedPos) String() string {
	return fmt.Sprintf("%d@block%d[%d:%d)", rp.pos, rp.block, rp.start, rp.end)
}
