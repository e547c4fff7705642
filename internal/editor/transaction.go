package editor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
)

// Transaction accumulates document edits and a selection change on top of a
// base state. Builder methods return the transaction for chaining; the first
// failing step is recorded and reported by State.Apply.
type Transaction struct {
	id    uuid.UUID
	time  time.Time
	base  *State
	doc   buffer.Document
	sel   cursor.Selection
	edits []buffer.Edit
	meta  map[string]any
	err   error
}

func newTransaction(base *State) *Transaction {
	return &Transaction{
		id:   uuid.New(),
		time: time.Now(),
		base: base,
		doc:  base.doc,
		sel:  base.sel,
	}
}

// ID returns the transaction's unique identifier.
func (tr *Transaction) ID() uuid.UUID {
	return tr.id
}

// Time returns when the transaction was created.
func (tr *Transaction) Time() time.Time {
	return tr.time
}

// Before returns the state the transaction was built on.
func (tr *Transaction) Before() *State {
	return tr.base
}

// Doc returns the document as it will be after the transaction.
func (tr *Transaction) Doc() buffer.Document {
	return tr.doc
}

// Selection returns the selection as it will be after the transaction.
func (tr *Transaction) Selection() cursor.Selection {
	return tr.sel
}

// DocChanged reports whether the transaction edits the document.
func (tr *Transaction) DocChanged() bool {
	return len(tr.edits) > 0
}

// Edits returns the edits applied so far, in order.
func (tr *Transaction) Edits() []buffer.Edit {
	return append([]buffer.Edit(nil), tr.edits...)
}

// Err returns the first error recorded by a builder step.
func (tr *Transaction) Err() error {
	return tr.err
}

// Insert inserts text at pos.
func (tr *Transaction) Insert(pos buffer.ByteOffset, text string) *Transaction {
	return tr.apply(buffer.NewInsert(pos, text))
}

// Delete removes [from, to).
func (tr *Transaction) Delete(from, to buffer.ByteOffset) *Transaction {
	return tr.apply(buffer.NewDelete(from, to))
}

// Replace replaces [from, to) with text.
func (tr *Transaction) Replace(from, to buffer.ByteOffset, text string) *Transaction {
	return tr.apply(buffer.NewReplace(from, to, text))
}

// ReplaceSelection replaces the current selection with text and leaves a
// collapsed cursor after it.
func (tr *Transaction) ReplaceSelection(text string) *Transaction {
	from := tr.sel.From()
	text = buffer.Sanitize(text)
	tr.Replace(from, tr.sel.To(), text)
	return tr.SetSelection(cursor.NewCursorSelection(from + buffer.ByteOffset(len(text))))
}

// InsertLeaf inserts an inline leaf labelled label at pos.
func (tr *Transaction) InsertLeaf(pos buffer.ByteOffset, label string) *Transaction {
	if tr.err != nil {
		return tr
	}
	doc, err := tr.doc.InsertLeaf(pos, label)
	if err != nil {
		tr.err = fmt.Errorf("insert leaf at %d: %w", pos, err)
		return tr
	}
	tr.record(buffer.NewInsert(pos, string(rune(buffer.LeafMarker))), doc)
	return tr
}

// SetSelection sets the resulting selection, clamped to the document.
func (tr *Transaction) SetSelection(sel cursor.Selection) *Transaction {
	if tr.err != nil {
		return tr
	}
	tr.sel = sel.Clamp(tr.doc.Len())
	return tr
}

// SetMeta attaches a metadata value for plugins to inspect.
func (tr *Transaction) SetMeta(key string, value any) *Transaction {
	if tr.meta == nil {
		tr.meta = make(map[string]any)
	}
	tr.meta[key] = value
	return tr
}

// Meta returns a metadata value set with SetMeta.
func (tr *Transaction) Meta(key string) (any, bool) {
	v, ok := tr.meta[key]
	return v, ok
}

func (tr *Transaction) apply(e buffer.Edit) *Transaction {
	if tr.err != nil {
		return tr
	}
	e.NewText = buffer.Sanitize(e.NewText)
	doc, err := tr.doc.Apply(e)
	if err != nil {
		tr.err = fmt.Errorf("%s: %w", e, err)
		return tr
	}
	if e.IsNoOp() {
		return tr
	}
	tr.record(e, doc)
	return tr
}

func (tr *Transaction) record(e buffer.Edit, doc buffer.Document) {
	tr.doc = doc
	tr.sel = tr.sel.Map(e.MapOffset)
	tr.edits = append(tr.edits, e)
}
