package rationale

import "testing"

func TestWordIndex(t *testing.T) {
	ix := newWordIndex("Stop it. Stop it now, STOP!")

	// repeated words occupy sequential, non-overlapping positions
	wantWords := []struct {
		word  string
		start int
		end   int
	}{
		{"stop", 0, 4}, {"it", 5, 7}, {"stop", 9, 13}, {"it", 14, 16},
		{"now", 17, 20}, {"stop", 22, 26},
	}
	if len(ix.words) != len(wantWords) {
		t.Fatalf("word index has %d entries, want %d", len(ix.words), len(wantWords))
	}
	for i, w := range wantWords {
		got := ix.words[i]
		if got.word != w.word || got.start != w.start || got.end != w.end {
			t.Errorf("words[%d] = {%q %d %d}, want {%q %d %d}", i, got.word, got.start, got.end, w.word, w.start, w.end)
		}
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		term      string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{
			name: "unigram at known offsets",
			text: "You are an idiot!",
			term: "idiot", wantStart: 11, wantEnd: 16, wantOK: true,
		},
		{
			name: "unigram match is case-insensitive",
			text: "what an IDIOT",
			term: "idiot", wantStart: 8, wantEnd: 13, wantOK: true,
		},
		{
			name: "repeated word resolves to first occurrence",
			text: "idiot says idiot",
			term: "idiot", wantStart: 0, wantEnd: 5, wantOK: true,
		},
		{
			name: "phrase term",
			text: "you are An Idiot, truly",
			term: "an idiot", wantStart: 8, wantEnd: 16, wantOK: true,
		},
		{
			name: "absent term",
			text: "have a lovely day",
			term: "idiot", wantOK: false,
		},
		{
			name: "absent phrase",
			text: "an apple and an orange",
			term: "an idiot", wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := newWordIndex(tt.text)
			start, end, ok := ix.locate(tt.term)
			if ok != tt.wantOK {
				t.Fatalf("locate(%q) ok = %v, want %v", tt.term, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("locate(%q) = (%d, %d), want (%d, %d)", tt.term, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// Every located span must cover text that case-insensitively equals the term.
func TestLocatePreservesOriginalCasing(t *testing.T) {
	text := "What An IDIOT you are"
	ix := newWordIndex(text)

	start, end, ok := ix.locate("idiot")
	if !ok {
		t.Fatal("locate failed")
	}
	if got := text[start:end]; got != "IDIOT" {
		t.Errorf("text[%d:%d] = %q, want original casing %q", start, end, got, "IDIOT")
	}
}
