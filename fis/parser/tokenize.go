package parser

import (
	"strings"
	"unicode"
)

// word is one whitespace-separated word of rule text
type word struct {
	value string
	rng   Range
}

// lower returns the word for keyword comparison
func (w word) lower() string {
	return strings.ToLower(w.value)
}

// splitWords splits text on whitespace, recording each word's source range.
func splitWords(text string) []word {
	var words []word
	pt := NewPositionTracker()

	rest := text
	for len(rest) > 0 {
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
		if i < 0 {
			break
		}
		pt.Advance(rest[:i])
		rest = rest[i:]

		j := strings.IndexFunc(rest, unicode.IsSpace)
		if j < 0 {
			j = len(rest)
		}
		start := pt.Mark()
		pt.Advance(rest[:j])
		words = append(words, word{
			value: rest[:j],
			rng:   Range{Start: start, End: pt.Mark()},
		})
		rest = rest[j:]
	}
	return words
}
