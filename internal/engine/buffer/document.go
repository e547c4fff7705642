package buffer

import (
	"strings"
	"unicode/utf8"
)

// Structural bytes of the flat document text.
const (
	// BlockSeparator ends every text block except the last.
	BlockSeparator = '\n'

	// LeafMarker stands in for one inline leaf node. It occupies exactly one
	// byte so positions around leaves stay plain byte offsets.
	LeafMarker = '\x1a'
)

// Document is an immutable text document made of newline-separated blocks.
// Edit methods return a new Document and leave the receiver untouched.
type Document struct {
	text   string
	leaves []string // labels, one per LeafMarker in text order
}

// NewDocument creates a document from plain text. Carriage returns are
// normalized to newlines and stray leaf markers are dropped.
func NewDocument(text string) Document {
	return Document{text: Sanitize(text)}
}

// Sanitize normalizes line endings and removes bytes reserved for structure:
// leaf markers and NUL, which scanners use as a boundary sentinel.
// Edits apply it to inserted text, so callers computing offsets from the text
// they insert should sanitize it first.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.ReplaceAll(s, string(rune(LeafMarker)), "")
}

// Read Operations

// Text returns the flat document text, leaves included as LeafMarker bytes.
func (d Document) Text() string {
	return d.text
}

// Len returns the total byte length of the document.
func (d Document) Len() ByteOffset {
	return ByteOffset(len(d.text))
}

// IsEmpty returns true if the document has no content.
func (d Document) IsEmpty() bool {
	return len(d.text) == 0
}

// Slice returns the flat text in [start, end), clamped to the document.
func (d Document) Slice(start, end ByteOffset) string {
	start, end = d.clamp(start), d.clamp(end)
	if start >= end {
		return ""
	}
	return d.text[start:end]
}

// TextBetween returns the text in [from, to) with block boundaries replaced
// by blockSep and inline leaves replaced by leafSep. Single-byte separators
// keep offsets into the result aligned with document positions.
func (d Document) TextBetween(from, to ByteOffset, blockSep, leafSep string) string {
	from, to = d.clamp(from), d.clamp(to)
	if from >= to {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(to - from))
	for i := from; i < to; i++ {
		switch c := d.text[i]; c {
		case BlockSeparator:
			sb.WriteString(blockSep)
		case LeafMarker:
			sb.WriteString(leafSep)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// DisplayText returns the document text with leaves expanded to their labels.
func (d Document) DisplayText() string {
	if len(d.leaves) == 0 {
		return d.text
	}
	var sb strings.Builder
	n := 0
	for i := 0; i < len(d.text); i++ {
		if d.text[i] == LeafMarker {
			sb.WriteString(d.leaves[n])
			n++
			continue
		}
		sb.WriteByte(d.text[i])
	}
	return sb.String()
}

// LeafAt returns the label of the leaf at offset, if there is one.
func (d Document) LeafAt(offset ByteOffset) (string, bool) {
	if offset < 0 || offset >= d.Len() || d.text[offset] != LeafMarker {
		return "", false
	}
	return d.leaves[d.leafIndex(offset)], true
}

// Leaves returns the labels of all leaves in document order.
func (d Document) Leaves() []string {
	out := make([]string, len(d.leaves))
	copy(out, d.leaves)
	return out
}

// BlockCount returns the number of text blocks (always at least 1).
func (d Document) BlockCount() int {
	return strings.Count(d.text, string(rune(BlockSeparator))) + 1
}

// BlockRange returns the content range of the given block.
// Out-of-range block numbers return an empty range at the nearest end.
func (d Document) BlockRange(block int) Range {
	if block <= 0 {
		end := strings.IndexByte(d.text, BlockSeparator)
		if end < 0 {
			end = len(d.text)
		}
		return Range{Start: 0, End: ByteOffset(end)}
	}

	start := 0
	for i := 0; i < block; i++ {
		next := strings.IndexByte(d.text[start:], BlockSeparator)
		if next < 0 {
			return Range{Start: d.Len(), End: d.Len()}
		}
		start += next + 1
	}
	end := strings.IndexByte(d.text[start:], BlockSeparator)
	if end < 0 {
		return Range{Start: ByteOffset(start), End: d.Len()}
	}
	return Range{Start: ByteOffset(start), End: ByteOffset(start + end)}
}

// BlockText returns the flat text of the given block.
func (d Document) BlockText(block int) string {
	r := d.BlockRange(block)
	return d.text[r.Start:r.End]
}

// Resolve resolves pos against its enclosing block. Positions outside the
// document are clamped.
func (d Document) Resolve(pos ByteOffset) ResolvedPos {
	pos = d.clamp(pos)

	start := strings.LastIndexByte(d.text[:pos], BlockSeparator) + 1
	end := strings.IndexByte(d.text[pos:], BlockSeparator)
	if end < 0 {
		end = len(d.text)
	} else {
		end += int(pos)
	}

	return ResolvedPos{
		pos:   pos,
		start: ByteOffset(start),
		end:   ByteOffset(end),
		block: strings.Count(d.text[:start], string(rune(BlockSeparator))),
	}
}

// RuneBefore returns the rune ending at offset and its width in bytes.
// Returns utf8.RuneError and 0 at the start of the document.
func (d Document) RuneBefore(offset ByteOffset) (rune, int) {
	offset = d.clamp(offset)
	if offset == 0 {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(d.text[:offset])
}

// RuneAt returns the rune starting at offset and its width in bytes.
// Returns utf8.RuneError and 0 at the end of the document.
func (d Document) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= d.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(d.text[offset:])
}

// Equal reports whether two documents have identical text and leaves.
func (d Document) Equal(other Document) bool {
	if d.text != other.text || len(d.leaves) != len(other.leaves) {
		return false
	}
	for i := range d.leaves {
		if d.leaves[i] != other.leaves[i] {
			return false
		}
	}
	return true
}

// Edit Operations

// Insert returns a document with text inserted at offset.
func (d Document) Insert(offset ByteOffset, text string) (Document, error) {
	return d.Apply(NewInsert(offset, text))
}

// Delete returns a document with [start, end) removed.
func (d Document) Delete(start, end ByteOffset) (Document, error) {
	return d.Apply(NewDelete(start, end))
}

// Replace returns a document with [start, end) replaced by text.
func (d Document) Replace(start, end ByteOffset, text string) (Document, error) {
	return d.Apply(NewReplace(start, end, text))
}

// InsertLeaf returns a document with an inline leaf labelled label at offset.
func (d Document) InsertLeaf(offset ByteOffset, label string) (Document, error) {
	if label == "" {
		return d, ErrEmptyLabel
	}
	if offset < 0 || offset > d.Len() {
		return d, ErrOffsetOutOfRange
	}

	idx := d.leafIndex(offset)
	leaves := make([]string, 0, len(d.leaves)+1)
	leaves = append(leaves, d.leaves[:idx]...)
	leaves = append(leaves, label)
	leaves = append(leaves, d.leaves[idx:]...)

	return Document{
		text:   d.text[:offset] + string(rune(LeafMarker)) + d.text[offset:],
		leaves: leaves,
	}, nil
}

// Apply returns a document with the edit applied. Leaves inside the edited
// range are removed along with their markers.
func (d Document) Apply(e Edit) (Document, error) {
	start, end := e.Range.Start, e.Range.End
	if start > end {
		return d, ErrRangeInvalid
	}
	if start < 0 || end > d.Len() {
		return d, ErrOffsetOutOfRange
	}
	if e.IsNoOp() {
		return d, nil
	}

	first, last := d.leafIndex(start), d.leafIndex(end)
	var leaves []string
	if len(d.leaves) > 0 {
		leaves = make([]string, 0, len(d.leaves)-(last-first))
		leaves = append(leaves, d.leaves[:first]...)
		leaves = append(leaves, d.leaves[last:]...)
	}

	return Document{
		text:   d.text[:start] + Sanitize(e.NewText) + d.text[end:],
		leaves: leaves,
	}, nil
}

// leafIndex returns the number of leaves before offset.
func (d Document) leafIndex(offset ByteOffset) int {
	if len(d.leaves) == 0 {
		return 0
	}
	return strings.Count(d.text[:offset], string(rune(LeafMarker)))
}

func (d Document) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > d.Len() {
		return d.Len()
	}
	return offset
}
