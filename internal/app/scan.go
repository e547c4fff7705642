package app

import (
	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/mention"
)

// Span is a trigger span found by Scan.
type Span struct {
	Block int
	Range buffer.Range
	Text  string
}

// Scan lists every trigger span in doc in document order, by probing the
// matcher at every cursor position.
func Scan(doc buffer.Document, match mention.Matcher) []Span {
	var spans []Span
	var last buffer.Range
	for pos := buffer.ByteOffset(0); pos <= doc.Len(); pos++ {
		m, ok := match(doc, pos)
		if !ok || (len(spans) > 0 && m.Range == last) {
			continue
		}
		last = m.Range
		spans = append(spans, Span{
			Block: doc.Resolve(m.Range.Start).Block(),
			Range: m.Range,
			Text:  m.Text,
		})
	}
	return spans
}
