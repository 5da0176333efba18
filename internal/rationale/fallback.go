package rationale

import (
	"log/slog"
	"regexp"
	"strings"
)

// fallbackWeight is the fixed weight assigned to keyword-list matches, which
// carry no model-derived score.
const fallbackWeight = 1.0

// FallbackMatcher scans text against a fixed, ordered list of toxic terms
// using whole-word, case-insensitive matching. It serves rationale requests
// whenever model introspection is unavailable or term scoring fails.
//
// Patterns are compiled once at construction; Match is safe for concurrent
// use and always terminates, bounded by text length times term count.
type FallbackMatcher struct {
	patterns []*regexp.Regexp
}

// NewFallbackMatcher compiles a word-boundary-anchored pattern per term,
// preserving list order. Duplicate terms are dropped so one response never
// contains two spans with identical offsets.
func NewFallbackMatcher(terms []string) *FallbackMatcher {
	seen := make(map[string]struct{}, len(terms))
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		lower := strings.ToLower(term)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(lower)+`\b`))
	}
	return &FallbackMatcher{patterns: patterns}
}

// Match collects up to topK whole-word matches, searching in term-list order
// and left to right within each term. Every span carries the fixed fallback
// weight. Returns nil when no listed term occurs in the text.
func (f *FallbackMatcher) Match(text string, topK int) []Span {
	if topK <= 0 {
		return nil
	}

	lower := strings.ToLower(text)
	var spans []Span
	for _, pattern := range f.patterns {
		for _, loc := range pattern.FindAllStringIndex(lower, -1) {
			spans = append(spans, Span{
				Text:   text[loc[0]:loc[1]],
				Start:  loc[0],
				End:    loc[1],
				Weight: fallbackWeight,
			})
			if len(spans) >= topK {
				slog.Debug("Fallback rationale truncated", "topK", topK)
				return spans
			}
		}
	}

	if len(spans) == 0 {
		return nil
	}
	slog.Debug("Fallback rationale completed", "spans", len(spans))
	return spans
}
