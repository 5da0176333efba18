// Package vectorize transforms raw text into the sparse TF-IDF feature
// representation a trained linear classifier scores against.
//
// The transformation mirrors the vectorizer used at training time: text is
// lowercased, split into word tokens of two or more word characters, expanded
// into unigrams and bigrams, weighted by term frequency times a precomputed
// smooth IDF, and L2-normalized. The vocabulary and IDF weights are part of
// the model artifact; this package never learns anything at runtime.
//
// Usage Example:
//
//	v, err := vectorize.New(vocab, idf, 2)
//	features := v.Transform("You are an idiot!")
//	// features maps feature index -> normalized TF-IDF value
package vectorize

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
)

// tokenRegex matches word tokens of at least two word characters,
// matching the training vectorizer's token pattern.
var tokenRegex = regexp.MustCompile(`\b\w\w+\b`)

// Vectorizer holds the read-only vocabulary and IDF weights for one model.
// It is safe for concurrent use; Transform never mutates shared state.
type Vectorizer struct {
	vocab    map[string]int // term -> feature index
	idf      []float64      // per-feature IDF weight
	ngramMax int            // largest n-gram length in the vocabulary
}

// New creates a Vectorizer from a model artifact's vocabulary and IDF vector.
// Every feature index in the vocabulary must address a valid IDF entry.
func New(vocab map[string]int, idf []float64, ngramMax int) (*Vectorizer, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}
	if ngramMax < 1 {
		return nil, fmt.Errorf("invalid ngram max %d", ngramMax)
	}
	for term, idx := range vocab {
		if idx < 0 || idx >= len(idf) {
			return nil, fmt.Errorf("term %q has feature index %d outside IDF vector of length %d", term, idx, len(idf))
		}
	}

	slog.Debug("Vectorizer created", "vocabularySize", len(vocab), "ngramMax", ngramMax)
	return &Vectorizer{vocab: vocab, idf: idf, ngramMax: ngramMax}, nil
}

// Vocabulary returns the term-to-feature-index mapping.
// Callers must treat the map as read-only.
func (v *Vectorizer) Vocabulary() map[string]int {
	return v.vocab
}

// Transform converts text into a sparse, L2-normalized TF-IDF vector keyed by
// feature index. Terms absent from the vocabulary are ignored. An empty map
// is returned when no vocabulary term occurs in the text.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	counts := v.termCounts(text)
	if len(counts) == 0 {
		return map[int]float64{}
	}

	// raw term frequency times IDF
	features := make(map[int]float64, len(counts))
	var sumSquares float64
	for idx, count := range counts {
		w := float64(count) * v.idf[idx]
		features[idx] = w
		sumSquares += w * w
	}

	// L2 normalization so coefficient magnitudes are comparable across texts
	norm := math.Sqrt(sumSquares)
	if norm > 0 {
		for idx := range features {
			features[idx] /= norm
		}
	}

	slog.Debug("Text transformed", "textLength", len(text), "activeFeatures", len(features))
	return features
}

// termCounts tallies raw occurrence counts of in-vocabulary terms.
func (v *Vectorizer) termCounts(text string) map[int]int {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[int]int)
	for n := 1; n <= v.ngramMax; n++ {
		for _, term := range ngrams(tokens, n) {
			if idx, ok := v.vocab[term]; ok {
				counts[idx]++
			}
		}
	}
	return counts
}

// Tokenize lowercases text and extracts word tokens of two or more word
// characters in document order.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

// ngrams joins each run of n consecutive tokens with single spaces.
// For n == 1 the tokens are returned as-is.
func ngrams(tokens []string, n int) []string {
	if n == 1 {
		return tokens
	}
	if len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}
