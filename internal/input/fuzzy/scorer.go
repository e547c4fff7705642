package fuzzy

import "unicode"

// Score weights.
const (
	baseScore        = 100
	consecutiveBonus = 20
	boundaryBonus    = 15
	startBonus       = 25
	prefixBonus      = 50
	gapPenalty       = 2
	shortTextLen     = 20
)

// score rates a match of query against text. original is text before case
// folding; positions holds the rune index of each matched query rune.
func score(query, original, text []rune, positions []int) int {
	if len(positions) == 0 {
		return 0
	}

	s := baseScore
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			s += consecutiveBonus
		}
	}
	for _, idx := range positions {
		if isWordBoundary(original, idx) {
			s += boundaryBonus
		}
	}

	first, last := positions[0], positions[len(positions)-1]
	if first == 0 {
		s += startBonus
	}
	if gap := last - first - len(positions) + 1; gap > 0 {
		s -= gap * gapPenalty
	}
	s -= first

	if len(text) < shortTextLen {
		s += shortTextLen - len(text)
	}
	if hasPrefix(text, query) {
		s += prefixBonus
	}

	return max(s, 1)
}

func hasPrefix(text, query []rune) bool {
	if len(text) < len(query) {
		return false
	}
	for i, r := range query {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary reports whether the rune at idx starts a word.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
