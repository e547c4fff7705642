package renderer

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/mentions/internal/engine/buffer"
)

// MaxPopupWidth caps the width of the suggestion popup in cells.
const MaxPopupWidth = 32

// Popup is a list of suggestions anchored at a document position.
type Popup struct {
	Anchor   buffer.ByteOffset
	Items    []string
	Selected int
}

// size returns the popup's width and height in cells.
func (p *Popup) size() (int, int) {
	w := 0
	for _, item := range p.Items {
		if iw := runewidth.StringWidth(item); iw > w {
			w = iw
		}
	}
	w += 2
	if w > MaxPopupWidth {
		w = MaxPopupWidth
	}
	return w, len(p.Items)
}

// place returns the popup's top-left cell given the anchor cell and the
// area available for text. The popup opens below the anchor row when it
// fits and above it otherwise, and is shifted left to stay on screen.
func (p *Popup) place(ax, ay, width, height int) (x, y int) {
	pw, ph := p.size()

	y = ay + 1
	if y+ph > height && ay-ph >= 0 {
		y = ay - ph
	}
	x = ax
	if x+pw > width {
		x = width - pw
	}
	if x < 0 {
		x = 0
	}
	return x, y
}

// line returns item i padded to the popup width.
func (p *Popup) line(i, width int) string {
	text := runewidth.Truncate(p.Items[i], width-2, "…")
	return runewidth.FillRight(" "+text, width)
}
