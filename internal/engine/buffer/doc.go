// Package buffer provides the immutable document model the editor host and the
// mention tracker operate on.
//
// A Document is a flat UTF-8 string split into text blocks by newlines. Inline
// leaf nodes (completed mentions, for example) occupy a single marker byte in
// the flat text and carry their display label out of band, so every position
// in the document is a plain byte offset.
//
// Basic usage:
//
//	doc := buffer.NewDocument("hello @wor")
//
//	// Edits return a new document; the receiver is never modified
//	doc, _ = doc.Insert(10, "ld") // "hello @world"
//
//	// Resolve a position to the boundaries of its enclosing block
//	rp := doc.Resolve(8)
//	text := doc.TextBetween(rp.Before(), rp.End(), "\x00", "\x00")
//
// Position Types:
//
//   - ByteOffset: Raw byte position in the document
//   - Range: Half-open byte range [Start, End)
//   - ResolvedPos: A position together with its block boundaries
//
// Thread Safety:
//
// Documents are values and never change after construction, so they can be
// shared freely between goroutines.
package buffer
