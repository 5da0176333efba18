// Package rationale explains toxic classifications by pointing at the spans
// of the original text that most influenced the prediction.
//
// The pipeline: term scoring computes per-vocabulary-term contribution scores
// from a linear model's coefficients, a span locator maps surviving terms
// back to exact byte offsets in the original (non-lowercased) text, and a
// ranker filters, sorts, deduplicates, and truncates the result. When the
// model exposes no linear internals, or term scoring fails for any reason,
// a fixed keyword list takes over, so a rationale request never prevents a
// classification from being answered.
//
// Usage Example:
//
//	engine := rationale.NewEngine(m)
//	result := engine.Classify("You are an idiot!", 0.5)
//	spans := engine.Explain("You are an idiot!", 5)
package rationale

// ScoredTerm is one vocabulary term found in the text, with its contribution
// to the toxic prediction (coefficient × representation value). Transient;
// produced per request and discarded after ranking.
type ScoredTerm struct {
	Term    string  // vocabulary term; unigram or space-joined n-gram
	Feature int     // feature index in the model's coefficient vector
	Score   float64 // contribution to the toxic class
}

// Span is a half-open byte offset range into the original text, together
// with the covered snippet (original casing preserved) and the weight that
// put it in the rationale. Invariant: 0 <= Start < End <= len(text) and
// text[Start:End] == Text.
type Span struct {
	Text   string  `json:"span"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Weight float64 `json:"weight"`
}

// stopWords are lowercased terms excluded from rationales: common function
// words plus a few low-signal tokens that otherwise pick up spurious weight
// from a small training corpus.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {},
	"it": {}, "we": {}, "they": {}, "me": {}, "him": {}, "her": {}, "us": {},
	"them": {}, "my": {}, "your": {}, "his": {}, "its": {}, "our": {},
	"their": {}, "think": {}, "great": {}, "guy": {}, "sometimes": {},
	"absolute": {},
}

// toxicTerms is the ordered keyword list the fallback matcher scans when
// model introspection is unavailable. Order matters: earlier terms are
// matched first.
var toxicTerms = []string{
	"idiot", "stupid", "loser", "hate", "worthless", "dick", "fuck",
	"asshole", "bastard", "bitch", "damn", "hell", "crap", "shit",
	"dickhead", "moron", "retard", "fool", "jerk", "scum", "ass",
	"fucking", "damned", "hated", "idiotic",
}
