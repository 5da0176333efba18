package rationale

import (
	"regexp"
	"strings"
)

// wordRegex matches alphanumeric runs; used to build the word-position index.
var wordRegex = regexp.MustCompile(`\b\w+\b`)

// wordSpan records one word occurrence: its lowercased form and its byte
// offsets in the original text.
type wordSpan struct {
	word  string
	start int
	end   int
}

// wordIndex is a case-normalized word-position index built once per text.
// Repeated words map to sequential, non-overlapping positions in document
// order, so a unigram lookup always resolves to the first occurrence.
type wordIndex struct {
	text  string
	lower string
	words []wordSpan
}

// newWordIndex tokenizes text into word-boundary-delimited words and records
// each with its offsets, left to right.
func newWordIndex(text string) *wordIndex {
	locs := wordRegex.FindAllStringIndex(text, -1)
	words := make([]wordSpan, 0, len(locs))
	for _, loc := range locs {
		words = append(words, wordSpan{
			word:  strings.ToLower(text[loc[0]:loc[1]]),
			start: loc[0],
			end:   loc[1],
		})
	}
	return &wordIndex{text: text, lower: strings.ToLower(text), words: words}
}

// locate maps a vocabulary term to its first occurrence in the text.
//
// Terms with an internal space are phrases: the first case-insensitive
// occurrence of the exact phrase wins. Single-word terms are resolved
// against the word index, which anchors matches to word boundaries and
// preserves the original casing through the recorded offsets. ok is false
// when the term does not occur (a tokenization artifact the caller drops).
func (ix *wordIndex) locate(term string) (start, end int, ok bool) {
	lowerTerm := strings.ToLower(term)

	if strings.Contains(term, " ") {
		i := strings.Index(ix.lower, lowerTerm)
		if i < 0 {
			return 0, 0, false
		}
		return i, i + len(term), true
	}

	for _, w := range ix.words {
		if w.word == lowerTerm {
			return w.start, w.end, true
		}
	}
	return 0, 0, false
}
