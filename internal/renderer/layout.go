package renderer

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/mentions/internal/engine/buffer"
)

// TabWidth is the distance between tab stops in cells.
const TabWidth = 4

// Glyph is one drawn character of a block.
type Glyph struct {
	// Pos is the byte offset of the source character. Every glyph of a
	// leaf label or an expanded tab shares the source's offset.
	Pos buffer.ByteOffset

	Rune  rune
	Col   int
	Width int
	Leaf  bool
}

// LayoutBlock lays out block of doc from column 0.
func LayoutBlock(doc buffer.Document, block int) []Glyph {
	r := doc.BlockRange(block)
	text := doc.Slice(r.Start, r.End)

	var glyphs []Glyph
	col := 0
	for i := 0; i < len(text); {
		pos := r.Start + buffer.ByteOffset(i)

		if text[i] == buffer.LeafMarker {
			label, _ := doc.LeafAt(pos)
			for _, lr := range label {
				w := runeWidth(lr)
				glyphs = append(glyphs, Glyph{Pos: pos, Rune: lr, Col: col, Width: w, Leaf: true})
				col += w
			}
			i++
			continue
		}

		ch, size := utf8.DecodeRuneInString(text[i:])
		if ch == '\t' {
			stop := (col/TabWidth + 1) * TabWidth
			for ; col < stop; col++ {
				glyphs = append(glyphs, Glyph{Pos: pos, Rune: ' ', Col: col, Width: 1})
			}
		} else {
			w := runeWidth(ch)
			glyphs = append(glyphs, Glyph{Pos: pos, Rune: ch, Col: col, Width: w})
			col += w
		}
		i += size
	}
	return glyphs
}

// CursorCell returns the cell of the cursor at pos: the column is the
// width of everything before pos in its block, the row is the block index.
func CursorCell(doc buffer.Document, pos buffer.ByteOffset) (col, row int) {
	rp := doc.Resolve(pos)
	for _, g := range LayoutBlock(doc, rp.Block()) {
		if g.Pos >= rp.Pos() {
			break
		}
		col = g.Col + g.Width
	}
	return col, rp.Block()
}

// runeWidth is the cell width of r; control and zero-width characters
// take one cell so the cursor never lands on top of them.
func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
