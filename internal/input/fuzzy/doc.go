// Package fuzzy ranks mention candidates against the text typed after a
// trigger character.
//
// A candidate matches when every query rune appears in it in order. Matches
// are scored higher for:
//   - consecutive runes
//   - runes at word boundaries (start, after punctuation, camelCase)
//   - a query that is a prefix of the candidate
//   - shorter candidates
//
// Ties keep the order the candidates were given in. An empty query returns
// every candidate unscored, in order. Rankings are cached per query.
package fuzzy
