package rationale

import "testing"

func TestRankFiltering(t *testing.T) {
	text := "you are an idiot and a moron"
	ix := newWordIndex(text)
	stop := map[string]struct{}{"you": {}, "are": {}, "an": {}, "and": {}, "a": {}}

	terms := []ScoredTerm{
		{Term: "idiot", Feature: 0, Score: 0.8},
		{Term: "moron", Feature: 1, Score: 0.05}, // below threshold
		{Term: "you", Feature: 2, Score: 0.9},    // stop word
		{Term: "ghost", Feature: 3, Score: 0.7},  // not in text
	}

	spans := rank(terms, ix, stop, 0.1, 5)
	if len(spans) != 1 {
		t.Fatalf("rank() = %v, want exactly the idiot span", spans)
	}
	if spans[0].Text != "idiot" || spans[0].Start != 11 || spans[0].End != 16 {
		t.Errorf("rank()[0] = %+v, want idiot at (11, 16)", spans[0])
	}
}

func TestRankScoreExactlyAtThresholdIsDropped(t *testing.T) {
	ix := newWordIndex("idiot")
	spans := rank([]ScoredTerm{{Term: "idiot", Score: 0.1}}, ix, nil, 0.1, 5)
	if spans != nil {
		t.Errorf("rank() = %v, want nil for score equal to threshold", spans)
	}
}

func TestRankStopWordMatchIsCaseInsensitive(t *testing.T) {
	ix := newWordIndex("YOU there")
	stop := map[string]struct{}{"you": {}}
	spans := rank([]ScoredTerm{{Term: "YOU", Score: 0.9}}, ix, stop, 0.1, 5)
	if spans != nil {
		t.Errorf("rank() = %v, want nil for uppercased stop word", spans)
	}
}

func TestRankOrdering(t *testing.T) {
	text := "stupid worthless loser"
	ix := newWordIndex(text)

	terms := []ScoredTerm{
		{Term: "loser", Score: 0.5},
		{Term: "stupid", Score: 0.9},
		{Term: "worthless", Score: 0.7},
	}

	spans := rank(terms, ix, nil, 0.1, 5)
	if len(spans) != 3 {
		t.Fatalf("rank() returned %d spans, want 3", len(spans))
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Weight > spans[i-1].Weight {
			t.Errorf("spans not sorted by descending weight: %v", spans)
		}
	}
	if spans[0].Text != "stupid" || spans[2].Text != "loser" {
		t.Errorf("unexpected order: %v", spans)
	}
}

func TestRankTieBreakByPosition(t *testing.T) {
	text := "loser meets moron"
	ix := newWordIndex(text)

	terms := []ScoredTerm{
		{Term: "moron", Score: 0.5},
		{Term: "loser", Score: 0.5},
	}

	spans := rank(terms, ix, nil, 0.1, 5)
	if len(spans) != 2 {
		t.Fatalf("rank() returned %d spans, want 2", len(spans))
	}
	if spans[0].Start > spans[1].Start {
		t.Errorf("equal weights must order by position: %v", spans)
	}
}

func TestRankDropsOverlappingSpans(t *testing.T) {
	text := "you are an idiot"
	ix := newWordIndex(text)

	// the bigram covers (8, 16); the unigram covers (11, 16) inside it
	terms := []ScoredTerm{
		{Term: "an idiot", Score: 0.9},
		{Term: "idiot", Score: 0.6},
	}

	spans := rank(terms, ix, nil, 0.1, 5)
	if len(spans) != 1 {
		t.Fatalf("rank() = %v, want the single higher-weight span", spans)
	}
	if spans[0].Text != "an idiot" {
		t.Errorf("kept span = %q, want the higher-weight %q", spans[0].Text, "an idiot")
	}
}

func TestRankDeduplicatesIdenticalOffsets(t *testing.T) {
	text := "total idiot"
	ix := newWordIndex(text)

	terms := []ScoredTerm{
		{Term: "idiot", Feature: 0, Score: 0.9},
		{Term: "Idiot", Feature: 7, Score: 0.4},
	}

	spans := rank(terms, ix, nil, 0.1, 5)
	if len(spans) != 1 {
		t.Fatalf("rank() = %v, want one span after dedup", spans)
	}
	if spans[0].Weight != 0.9 {
		t.Errorf("kept weight = %f, want the higher 0.9", spans[0].Weight)
	}
}

func TestRankTopKTruncation(t *testing.T) {
	text := "stupid worthless loser jerk scum fool"
	ix := newWordIndex(text)

	terms := []ScoredTerm{
		{Term: "stupid", Score: 0.9},
		{Term: "worthless", Score: 0.8},
		{Term: "loser", Score: 0.7},
		{Term: "jerk", Score: 0.6},
		{Term: "scum", Score: 0.5},
		{Term: "fool", Score: 0.4},
	}

	spans := rank(terms, ix, nil, 0.1, 2)
	if len(spans) != 2 {
		t.Fatalf("rank() returned %d spans, want topK=2", len(spans))
	}
	if spans[0].Text != "stupid" || spans[1].Text != "worthless" {
		t.Errorf("truncated spans = %v, want the two heaviest", spans)
	}
}

func TestRankEmptyInput(t *testing.T) {
	if spans := rank(nil, newWordIndex("anything"), nil, 0.1, 5); spans != nil {
		t.Errorf("rank(nil) = %v, want nil", spans)
	}
}

// Span invariants: offsets are in bounds, snippet matches the slice, and no
// two spans share offsets.
func TestRankSpanInvariants(t *testing.T) {
	text := "Stupid, WORTHLESS loser!"
	ix := newWordIndex(text)

	terms := []ScoredTerm{
		{Term: "stupid", Score: 0.9},
		{Term: "worthless", Score: 0.8},
		{Term: "loser", Score: 0.7},
	}

	spans := rank(terms, ix, nil, 0.1, 5)
	seen := make(map[[2]int]bool)
	for _, s := range spans {
		if s.Start < 0 || s.Start >= s.End || s.End > len(text) {
			t.Errorf("span %+v violates offset invariant", s)
		}
		if text[s.Start:s.End] != s.Text {
			t.Errorf("text[%d:%d] = %q, span text = %q", s.Start, s.End, text[s.Start:s.End], s.Text)
		}
		key := [2]int{s.Start, s.End}
		if seen[key] {
			t.Errorf("duplicate span offsets %v", key)
		}
		seen[key] = true
	}
}
