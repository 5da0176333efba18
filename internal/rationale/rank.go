package rationale

import (
	"log/slog"
	"sort"
	"strings"
)

// rank turns raw term scores into the final ordered rationale.
//
// Terms at or below minScore, or whose lowercased form is a stop word, are
// discarded. Surviving terms are located in the text (terms that fail to
// locate are dropped silently), sorted by descending weight with position as
// a deterministic tie-break, pruned so no two spans share or overlap offsets
// (the lower-weight span loses), and truncated to topK. Returns nil when
// nothing qualifies.
func rank(terms []ScoredTerm, ix *wordIndex, stop map[string]struct{}, minScore float64, topK int) []Span {
	var located []Span
	for _, st := range terms {
		if st.Score <= minScore {
			continue
		}
		if _, isStop := stop[strings.ToLower(st.Term)]; isStop {
			continue
		}
		start, end, ok := ix.locate(st.Term)
		if !ok {
			continue
		}
		located = append(located, Span{
			Text:   ix.text[start:end],
			Start:  start,
			End:    end,
			Weight: st.Score,
		})
	}
	if len(located) == 0 {
		return nil
	}

	// descending weight; ties broken by position so identical input always
	// yields identical output regardless of term iteration order
	sort.Slice(located, func(i, j int) bool {
		if located[i].Weight != located[j].Weight {
			return located[i].Weight > located[j].Weight
		}
		if located[i].Start != located[j].Start {
			return located[i].Start < located[j].Start
		}
		return located[i].End < located[j].End
	})

	// overlap pruning subsumes (start, end) dedup: the redactor splices spans
	// rightmost-first and relies on accepted spans never sharing offsets
	var out []Span
	for _, s := range located {
		if overlapsAny(s, out) {
			continue
		}
		out = append(out, s)
		if len(out) == topK {
			break
		}
	}

	slog.Debug("Rationale ranking completed", "candidates", len(located), "selected", len(out))
	return out
}

// overlapsAny reports whether s shares any byte range with an accepted span.
func overlapsAny(s Span, accepted []Span) bool {
	for _, a := range accepted {
		if s.Start < a.End && a.Start < s.End {
			return true
		}
	}
	return false
}
