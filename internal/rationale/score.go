package rationale

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chriscorrea/vitriol/internal/model"
)

// ErrIntrospectionUnavailable reports that the model exposes no linear
// coefficients, so term-level attribution is impossible. Callers recover by
// switching to the fallback keyword matcher; the error never reaches the
// end of a classification request.
var ErrIntrospectionUnavailable = errors.New("model does not expose linear coefficients")

// ScoreTerms computes the contribution of every vocabulary term present in
// text to the toxic prediction: coefficient × representation value.
//
// The returned slice is unordered and unfiltered; ranking and stop-word
// filtering happen downstream. ErrIntrospectionUnavailable is returned when
// the model is not linearly scorable, and a wrapped error when the model's
// vocabulary addresses features outside its coefficient vector.
func ScoreTerms(text string, m model.Scorer) ([]ScoredTerm, error) {
	lin, ok := m.(model.LinearScorer)
	if !ok {
		return nil, ErrIntrospectionUnavailable
	}

	features := lin.Transform(text)
	if len(features) == 0 {
		return nil, nil
	}
	coef := lin.Coefficients()

	scored := make([]ScoredTerm, 0, len(features))
	for term, idx := range lin.Vocabulary() {
		value, present := features[idx]
		if !present || value <= 0 {
			continue
		}
		if idx < 0 || idx >= len(coef) {
			return nil, fmt.Errorf("term %q addresses feature %d outside coefficient vector of length %d", term, idx, len(coef))
		}
		scored = append(scored, ScoredTerm{
			Term:    term,
			Feature: idx,
			Score:   coef[idx] * value,
		})
	}

	slog.Debug("Term scoring completed", "textLength", len(text), "scoredTerms", len(scored))
	return scored, nil
}
