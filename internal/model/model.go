// Package model loads trained toxicity classifiers and scores text with them.
//
// A model is produced offline by the training pipeline and shipped as a JSON
// artifact holding a TF-IDF vocabulary, per-feature IDF weights, and logistic
// regression coefficients for the toxic class. The artifact is loaded once at
// startup and is read-only for the life of the process, so any number of
// goroutines may score text concurrently without locking.
//
// Two capabilities are distinguished at load time rather than per request:
// every model is a Scorer (probability output only), and models whose final
// stage is linear are additionally LinearScorers, exposing the internals that
// rationale extraction needs. Callers that want rationales type-assert once.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/chriscorrea/vitriol/internal/vectorize"
)

// Class labels, in the order the artifact's coefficient vector refers to them.
const (
	LabelNonToxic = "non_toxic"
	LabelToxic    = "toxic"
)

// Scores holds the class probabilities for one text. NonToxic and Toxic sum
// to 1 for probabilistic models.
type Scores struct {
	NonToxic float64 `json:"non_toxic"`
	Toxic    float64 `json:"toxic"`
}

// Label applies a decision threshold to the toxic probability.
func (s Scores) Label(threshold float64) string {
	if s.Toxic >= threshold {
		return LabelToxic
	}
	return LabelNonToxic
}

// Confidence returns the probability of the class selected at the threshold.
func (s Scores) Confidence(threshold float64) float64 {
	if s.Toxic >= threshold {
		return s.Toxic
	}
	return s.NonToxic
}

// Scorer is the minimal capability every loaded model provides.
type Scorer interface {
	// Score returns class probabilities for the given text.
	Score(text string) Scores

	// Version identifies the model artifact (for response metadata and logging).
	Version() string
}

// LinearScorer is a Scorer whose final stage is a linear classifier over a
// bag-of-terms representation. It exposes the internals required to attribute
// a prediction back to individual vocabulary terms.
type LinearScorer interface {
	Scorer

	// Coefficients returns the per-feature weight vector for the toxic class.
	Coefficients() []float64

	// Vocabulary returns the term-to-feature-index mapping. Read-only.
	Vocabulary() map[string]int

	// Transform returns the sparse feature representation of text, keyed by
	// feature index, with only nonzero entries present.
	Transform(text string) map[int]float64
}

// Linear is a logistic regression over TF-IDF features. It implements both
// Scorer and LinearScorer.
type Linear struct {
	version   string
	vec       *vectorize.Vectorizer
	coef      []float64
	intercept float64
}

// NewLinear assembles a logistic TF-IDF model from its parts. The coefficient
// vector must cover every feature index in the vocabulary.
func NewLinear(version string, vocab map[string]int, idf, coef []float64, intercept float64) (*Linear, error) {
	if len(coef) != len(idf) {
		return nil, fmt.Errorf("coefficient vector length %d does not match IDF vector length %d", len(coef), len(idf))
	}
	vec, err := vectorize.New(vocab, idf, ngramMax(vocab))
	if err != nil {
		return nil, fmt.Errorf("invalid vocabulary: %w", err)
	}
	return &Linear{
		version:   version,
		vec:       vec,
		coef:      coef,
		intercept: intercept,
	}, nil
}

// Score computes the toxic probability as sigmoid(w·x + b) over the
// TF-IDF representation of text.
func (m *Linear) Score(text string) Scores {
	var z float64 = m.intercept
	for idx, value := range m.vec.Transform(text) {
		z += m.coef[idx] * value
	}
	toxic := sigmoid(z)
	return Scores{NonToxic: 1 - toxic, Toxic: toxic}
}

// Version returns the artifact version string.
func (m *Linear) Version() string {
	return m.version
}

// Coefficients returns the toxic-class weight vector. Read-only.
func (m *Linear) Coefficients() []float64 {
	return m.coef
}

// Vocabulary returns the term-to-feature-index mapping. Read-only.
func (m *Linear) Vocabulary() map[string]int {
	return m.vec.Vocabulary()
}

// Transform returns the sparse TF-IDF representation of text.
func (m *Linear) Transform(text string) map[int]float64 {
	return m.vec.Transform(text)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// ngramMax derives the largest n-gram length present in a vocabulary by
// counting internal spaces; the training vectorizer joins n-grams with
// single spaces.
func ngramMax(vocab map[string]int) int {
	maxN := 1
	for term := range vocab {
		n := 1
		for _, r := range term {
			if r == ' ' {
				n++
			}
		}
		if n > maxN {
			maxN = n
		}
	}
	return maxN
}

// artifact is the on-disk JSON schema written by the training pipeline.
type artifact struct {
	Kind       string         `json:"kind"`
	Version    string         `json:"version"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Coef       []float64      `json:"coef"`
	Intercept  float64        `json:"intercept"`
}

// kindLogisticTFIDF is the only artifact kind the loader currently accepts.
const kindLogisticTFIDF = "logistic_tfidf"

// Load reads a model artifact from path and returns the model behind its
// Scorer capability. Callers needing rationale extraction assert LinearScorer
// once after loading.
func Load(path string) (Scorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %q: %w", path, err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %q: %w", path, err)
	}
	if a.Kind != kindLogisticTFIDF {
		return nil, fmt.Errorf("unsupported model kind %q in %q", a.Kind, path)
	}

	m, err := NewLinear(a.Version, a.Vocabulary, a.IDF, a.Coef, a.Intercept)
	if err != nil {
		return nil, fmt.Errorf("invalid model artifact %q: %w", path, err)
	}
	return m, nil
}
