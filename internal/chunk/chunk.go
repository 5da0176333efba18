// Package chunk splits long documents into passages sized for individual
// classification calls.
//
// Splitting prefers the largest semantic boundary that fits: paragraphs are
// packed together up to the size limit, oversized paragraphs are broken at
// sentence boundaries, and pathological sentences fall back to word
// boundaries. Passage text is preserved verbatim apart from boundary
// whitespace, so rationale spans located within a passage read naturally.
package chunk

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	paragraphRegex = regexp.MustCompile(`\n\s*\n`)
	sentenceRegex  = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// Split breaks text into passages of at most maxChars characters each.
// Returns nil for empty input or a non-positive limit.
func Split(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" || maxChars <= 0 {
		return nil
	}
	if len(text) <= maxChars {
		return []string{text}
	}

	var passages []string
	for _, paragraph := range paragraphRegex.Split(text, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		if len(paragraph) <= maxChars {
			passages = append(passages, paragraph)
			continue
		}
		passages = append(passages, splitOversized(paragraph, maxChars)...)
	}

	packed := pack(passages, maxChars)
	slog.Debug("Document split into passages", "textLength", len(text), "passages", len(packed))
	return packed
}

// splitOversized breaks one paragraph at sentence boundaries, then at word
// boundaries for any sentence that still exceeds the limit.
func splitOversized(paragraph string, maxChars int) []string {
	var pieces []string
	for _, sentence := range splitSentences(paragraph) {
		if len(sentence) <= maxChars {
			pieces = append(pieces, sentence)
			continue
		}
		pieces = append(pieces, splitWords(sentence, maxChars)...)
	}
	return pieces
}

// splitSentences cuts text after sentence-ending punctuation, keeping the
// punctuation with the preceding sentence.
func splitSentences(text string) []string {
	ends := sentenceRegex.FindAllStringIndex(text, -1)
	if len(ends) == 0 {
		return []string{text}
	}

	var sentences []string
	prev := 0
	for _, loc := range ends {
		if s := strings.TrimSpace(text[prev:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		prev = loc[1]
	}
	if s := strings.TrimSpace(text[prev:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// splitWords is the last resort for unbroken runs longer than the limit.
func splitWords(text string, maxChars int) []string {
	words := strings.Fields(text)
	var pieces []string
	var b strings.Builder
	for _, word := range words {
		if b.Len() > 0 && b.Len()+1+len(word) > maxChars {
			pieces = append(pieces, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	if b.Len() > 0 {
		pieces = append(pieces, b.String())
	}
	return pieces
}

// pack greedily merges adjacent pieces into passages up to the limit,
// separated by blank lines so paragraph structure survives.
func pack(pieces []string, maxChars int) []string {
	var passages []string
	var b strings.Builder
	for _, piece := range pieces {
		if b.Len() > 0 && b.Len()+2+len(piece) > maxChars {
			passages = append(passages, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(piece)
	}
	if b.Len() > 0 {
		passages = append(passages, b.String())
	}
	return passages
}
