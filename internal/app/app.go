// Package app contains the core application logic for the vitriol CLI tool.
// It wires the model, rationale engine, and redactor together and formats
// results, keeping CLI concerns out of the classification core.
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/chriscorrea/vitriol/internal/counter"
	"github.com/chriscorrea/vitriol/internal/model"
	"github.com/chriscorrea/vitriol/internal/rationale"
	"github.com/chriscorrea/vitriol/internal/redact"
)

// Input length bounds enforced at the serving edge; the classification core
// assumes non-empty text and never re-validates.
const (
	MinTextChars = 1
	MaxTextChars = 5000
)

// Config holds options shared by single-text classification and document
// scanning.
type Config struct {
	ModelPath        string
	Threshold        float64
	TopK             int
	IncludeRationale bool
	Redact           bool
	RedactMode       redact.Mode
	JSON             bool
	Quiet            bool
	Debug            bool
}

// Meta is the observational side data attached to every result.
type Meta struct {
	LatencyMS     float64       `json:"latency_ms"`
	ThresholdUsed float64       `json:"threshold_used"`
	ModelVersion  string        `json:"model_version"`
	Stats         counter.Stats `json:"stats"`
}

// Result is the full outcome of classifying one text.
type Result struct {
	Label        string           `json:"label"`
	Confidence   float64          `json:"confidence"`
	Scores       model.Scores     `json:"scores"`
	Rationale    []rationale.Span `json:"rationale,omitempty"`
	RedactedText string           `json:"redacted_text,omitempty"`
	Meta         Meta             `json:"meta"`
}

// newCalculator builds the token counter, tolerating environments where the
// tiktoken encoding cannot be initialized (first use downloads it); token
// counts are reported as zero rather than failing the classification.
func newCalculator() *counter.Calculator {
	calc, err := counter.NewCalculator()
	if err != nil {
		slog.Debug("Token counting unavailable", "reason", err)
		return nil
	}
	return calc
}

// textStats measures text, with token counts only when a calculator exists.
func textStats(calc *counter.Calculator, text string) counter.Stats {
	if calc == nil {
		return counter.Stats{
			Characters: counter.Characters(text),
			Words:      counter.Words(text),
		}
	}
	return calc.Stats(text)
}

// validateLength enforces the input bounds the serving contract fixes at
// 1 to 5000 characters.
func validateLength(text string) error {
	chars := counter.Characters(text)
	if chars < MinTextChars {
		return fmt.Errorf("text is empty")
	}
	if chars > MaxTextChars {
		return fmt.Errorf("text is %d characters, maximum is %d", chars, MaxTextChars)
	}
	return nil
}

// roundLatency keeps latency readable: two decimal places of milliseconds.
func roundLatency(ms float64) float64 {
	return math.Round(ms*100) / 100
}

// formatResult renders a Result as JSON or as a human-readable report.
func formatResult(r Result, asJSON bool) (string, error) {
	if asJSON {
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return string(out) + "\n", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "label: %s (confidence %.3f)\n", r.Label, r.Confidence)
	fmt.Fprintf(&b, "scores: non_toxic=%.3f toxic=%.3f\n", r.Scores.NonToxic, r.Scores.Toxic)
	if len(r.Rationale) > 0 {
		b.WriteString("rationale:\n")
		for i, s := range r.Rationale {
			fmt.Fprintf(&b, "  %d. %q [%d:%d] weight=%.3f\n", i+1, s.Text, s.Start, s.End, s.Weight)
		}
	}
	if r.RedactedText != "" {
		fmt.Fprintf(&b, "redacted: %s\n", r.RedactedText)
	}
	fmt.Fprintf(&b, "meta: latency=%.2fms threshold=%.2f model=%s tokens=%d\n",
		r.Meta.LatencyMS, r.Meta.ThresholdUsed, r.Meta.ModelVersion, r.Meta.Stats.Tokens)
	return b.String(), nil
}
