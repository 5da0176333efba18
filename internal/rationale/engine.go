package rationale

import (
	"log/slog"

	"github.com/chriscorrea/vitriol/internal/model"
)

// Default tuning for the rationale pipeline.
const (
	// DefaultTopK is the maximum number of spans in a rationale.
	DefaultTopK = 5
	// DefaultMinScore is the minimum term contribution worth reporting.
	DefaultMinScore = 0.1
	// DefaultThreshold is the toxic-probability decision threshold.
	DefaultThreshold = 0.5
)

// Classification is the outcome of scoring one text at a threshold.
type Classification struct {
	Label      string
	Confidence float64
	Scores     model.Scores
}

// Engine binds a loaded model to the rationale pipeline. The model is an
// injected, externally owned, read-only resource; the engine holds no mutable
// state, so one Engine may serve any number of concurrent callers.
type Engine struct {
	model    model.Scorer
	stop     map[string]struct{}
	fallback *FallbackMatcher
	minScore float64
	topK     int
}

// NewEngine creates an Engine with the default stop-word set, fallback
// keyword list, score threshold, and top-K.
func NewEngine(m model.Scorer) *Engine {
	return &Engine{
		model:    m,
		stop:     stopWords,
		fallback: NewFallbackMatcher(toxicTerms),
		minScore: DefaultMinScore,
		topK:     DefaultTopK,
	}
}

// Classify labels text by applying threshold to the model's toxic
// probability. Pure with respect to the engine; no state is touched beyond
// the read-only model.
func (e *Engine) Classify(text string, threshold float64) Classification {
	scores := e.model.Score(text)
	return Classification{
		Label:      scores.Label(threshold),
		Confidence: scores.Confidence(threshold),
		Scores:     scores,
	}
}

// Explain returns up to topK spans responsible for a toxic prediction,
// ordered by descending weight, or nil when nothing qualifies. topK values
// of zero or less select the engine default.
//
// Explain never fails: when the model exposes no linear coefficients, or
// term scoring errors for any reason, the fixed keyword list answers
// instead. Availability over precision.
func (e *Engine) Explain(text string, topK int) []Span {
	if topK <= 0 {
		topK = e.topK
	}

	terms, err := ScoreTerms(text, e.model)
	if err != nil {
		slog.Debug("Term scoring unavailable, using keyword fallback", "reason", err)
		return e.fallback.Match(text, topK)
	}
	return rank(terms, newWordIndex(text), e.stop, e.minScore, topK)
}

// TopSpan is the simplified single-span variant of Explain: the one span
// that contributed most, or nil.
func (e *Engine) TopSpan(text string) *Span {
	spans := e.Explain(text, 1)
	if len(spans) == 0 {
		return nil
	}
	return &spans[0]
}

// Model exposes the engine's model for metadata reporting (version strings).
func (e *Engine) Model() model.Scorer {
	return e.model
}
