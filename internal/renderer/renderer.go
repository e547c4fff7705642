package renderer

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/mentions/internal/config"
	"github.com/dshills/mentions/internal/editor"
	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
	"github.com/dshills/mentions/internal/renderer/backend"
)

// Frame is everything drawn in one pass.
type Frame struct {
	Doc         buffer.Document
	Selection   cursor.Selection
	Decorations []editor.Decoration
	Popup       *Popup
	Status      string
}

// Renderer draws frames on a backend. The last row is the status line;
// the rows above it show the document, scrolled to keep the cursor visible.
type Renderer struct {
	mu      sync.Mutex
	backend backend.Backend
	theme   Theme
	top     int
}

// New creates a Renderer.
func New(b backend.Backend, theme Theme) *Renderer {
	return &Renderer{backend: b, theme: theme}
}

// SetTheme replaces the theme used by subsequent draws.
func (r *Renderer) SetTheme(t Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = t
}

// Top returns the first visible block.
func (r *Renderer) Top() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// Draw renders f and flushes it.
func (r *Renderer) Draw(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	r.backend.Clear()
	if width <= 0 || height <= 0 {
		r.backend.Show()
		return
	}

	rows := height - 1
	cx, cy := CursorCell(f.Doc, f.Selection.Head)
	r.scrollTo(cy, rows)

	for y := 0; y < rows; y++ {
		block := r.top + y
		if block >= f.Doc.BlockCount() {
			break
		}
		r.drawBlock(f, block, y, width)
	}

	if f.Popup != nil && len(f.Popup.Items) > 0 {
		ax, ay := CursorCell(f.Doc, f.Popup.Anchor)
		r.drawPopup(f.Popup, ax, ay-r.top, width, rows)
	}

	r.drawStatus(f.Status, height-1, width)

	if y := cy - r.top; y >= 0 && y < rows && cx < width {
		r.backend.ShowCursor(cx, y)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

// scrollTo adjusts the first visible block so row is on screen.
func (r *Renderer) scrollTo(row, rows int) {
	if rows <= 0 {
		return
	}
	if row < r.top {
		r.top = row
	}
	if row >= r.top+rows {
		r.top = row - rows + 1
	}
}

func (r *Renderer) drawBlock(f Frame, block, y, width int) {
	sel := f.Selection
	for _, g := range LayoutBlock(f.Doc, block) {
		if g.Col+g.Width > width {
			break
		}

		style := r.theme.Base()
		if g.Leaf {
			style = r.theme.Style(config.ClassLeaf)
		}
		for _, d := range f.Decorations {
			if d.Kind == editor.DecorationInline && d.Range.Contains(g.Pos) && r.theme.Has(d.Class) {
				style = r.theme.Style(d.Class)
			}
		}
		if !sel.IsEmpty() && sel.From() <= g.Pos && g.Pos < sel.To() {
			style = style.Reverse(true)
		}

		r.backend.SetCell(g.Col, y, g.Rune, style)
	}
}

func (r *Renderer) drawPopup(p *Popup, ax, ay, width, rows int) {
	x, y := p.place(ax, ay, width, rows)
	pw, _ := p.size()

	for i := range p.Items {
		row := y + i
		if row < 0 || row >= rows {
			continue
		}
		style := r.theme.Style(config.ClassPopup)
		if i == p.Selected {
			style = r.theme.Style(config.ClassPopupSelected)
		}
		r.drawString(x, row, p.line(i, pw), style, width)
	}
}

func (r *Renderer) drawStatus(text string, y, width int) {
	line := runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
	r.drawString(0, y, line, r.theme.Style(config.ClassStatus), width)
}

// drawString draws s from (x, y), clipped at width.
func (r *Renderer) drawString(x, y int, s string, style tcell.Style, width int) {
	for _, ch := range s {
		w := runeWidth(ch)
		if x+w > width {
			return
		}
		r.backend.SetCell(x, y, ch, style)
		x += w
	}
}
