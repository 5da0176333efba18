// Package redact rewrites text by replacing flagged spans with a marker
// token or a character mask.
//
// Spans are spliced rightmost-first so that replacing one span never shifts
// the offsets of spans not yet processed. Callers must supply pairwise
// non-overlapping spans; the rationale ranker guarantees this for its output.
package redact

import (
	"sort"
	"strings"
	"unicode"

	"github.com/chriscorrea/vitriol/internal/rationale"
)

// Mode selects how a flagged span is rewritten.
type Mode int

const (
	// Token replaces each span with the literal marker "[REDACTED]".
	Token Mode = iota
	// Mask replaces each alphanumeric character with '*' and preserves
	// spaces and punctuation, keeping the span's length and shape.
	Mask
)

// marker is the literal replacement used in Token mode.
const marker = "[REDACTED]"

// String returns the mode name as used on the wire and the command line.
func (m Mode) String() string {
	switch m {
	case Token:
		return "token"
	case Mask:
		return "mask"
	default:
		return "unknown"
	}
}

// ParseMode maps a mode name to its Mode. Unrecognized names select Mask,
// mirroring the upstream contract where any non-token mode masks characters.
func ParseMode(name string) Mode {
	if name == "token" || name == "" {
		return Token
	}
	return Mask
}

// Apply splices a replacement into text for every span and returns the
// rewritten text. ok is false when spans is empty, in which case the caller
// had nothing to redact and no text is returned.
func Apply(text string, spans []rationale.Span, mode Mode) (redacted string, ok bool) {
	if len(spans) == 0 {
		return "", false
	}

	// rightmost-first: edits at higher offsets cannot invalidate lower ones
	ordered := make([]rationale.Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	out := text
	for _, s := range ordered {
		if s.Start < 0 || s.End > len(out) || s.Start >= s.End {
			continue
		}
		out = out[:s.Start] + replacement(out[s.Start:s.End], mode) + out[s.End:]
	}
	return out, true
}

// replacement computes the text that stands in for one flagged segment.
func replacement(segment string, mode Mode) string {
	if mode == Token {
		return marker
	}

	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune('*')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
