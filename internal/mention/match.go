package mention

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/mentions/internal/engine/buffer"
)

// Document is what a Matcher needs from the host document.
type Document interface {
	// Resolve resolves pos against its enclosing text block.
	Resolve(pos buffer.ByteOffset) buffer.ResolvedPos

	// TextBetween returns the text in [from, to) with block and leaf
	// boundaries replaced by the given separators.
	TextBetween(from, to buffer.ByteOffset, blockSep, leafSep string) string
}

// Match is the trigger span enclosing a cursor.
type Match struct {
	// Range covers the trigger character and the text after it.
	Range buffer.Range

	// Text is the span's content without the trigger character, trimmed.
	Text string
}

// Matcher finds the trigger span containing the collapsed cursor at pos.
// It returns false when the cursor is not inside one.
type Matcher func(doc Document, pos buffer.ByteOffset) (Match, bool)

// sentinel replaces block and leaf boundaries in scanned text. It is neither
// whitespace nor a valid trigger.
const sentinel = "\x00"

// MaxMinChars is the largest minimum span length TriggerCharacters accepts.
const MaxMinChars = 1000

// whitespace is the ECMAScript \s class as a regexp class body.
const whitespace = `\t\n\v\f\r\p{Z}\x{FEFF}`

// TriggerCharacters returns a Matcher for spans that start at the beginning
// of a word with char, followed by at least minChars characters that are
// neither whitespace nor char.
//
// The cursor must sit strictly after the trigger character and no further
// than the end of the span, so "@" with the cursor right before it does not
// match but the cursor right after "@wor" does.
func TriggerCharacters(char rune, minChars int) (Matcher, error) {
	if minChars < 0 || minChars > MaxMinChars {
		return nil, fmt.Errorf("%w: minimum length %d not in [0, %d]", ErrInvalidTrigger, minChars, MaxMinChars)
	}
	if char == 0 || char == utf8.RuneError || !utf8.ValidRune(char) || isSpace(char) {
		return nil, fmt.Errorf("%w: character %q", ErrInvalidTrigger, char)
	}

	trigger := fmt.Sprintf(`\x{%X}`, char)
	re, err := regexp.Compile(fmt.Sprintf(`(^|[%s])(%s[^%s%s]{%d,})`,
		whitespace, trigger, whitespace, trigger, minChars))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrigger, err)
	}
	triggerLen := utf8.RuneLen(char)

	return func(doc Document, pos buffer.ByteOffset) (Match, bool) {
		rp := doc.Resolve(pos)
		text := doc.TextBetween(rp.Before(), rp.End(), sentinel, sentinel)

		// loc holds [whole, anchor, span] index pairs.
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			span := text[loc[4]:loc[5]]
			from := rp.Start() + buffer.ByteOffset(loc[0]) + buffer.ByteOffset(loc[3]-loc[2])
			to := from + buffer.ByteOffset(len(span))

			if from < rp.Pos() && rp.Pos() <= to {
				return Match{
					Range: buffer.NewRange(from, to),
					Text:  strings.TrimSpace(span[triggerLen:]),
				}, true
			}
		}
		return Match{}, false
	}, nil
}

// MustTriggerCharacters is like TriggerCharacters but panics on error.
func MustTriggerCharacters(char rune, minChars int) Matcher {
	m, err := TriggerCharacters(char, minChars)
	if err != nil {
		panic(err)
	}
	return m
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || r == '\uFEFF'
}
