package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/chriscorrea/vitriol/internal/counter"
	"github.com/chriscorrea/vitriol/internal/fetch"
	"github.com/chriscorrea/vitriol/internal/model"
	"github.com/chriscorrea/vitriol/internal/rationale"
	"github.com/chriscorrea/vitriol/internal/redact"
)

// Run classifies a single text and returns the formatted result.
//
// An empty text argument reads standard input. The model is loaded fresh per
// invocation; a CLI process classifies once and exits.
func Run(ctx context.Context, cfg Config, text string) (string, error) {
	if text == "" {
		stdin, err := fetch.Open(ctx, "-")
		if err != nil {
			return "", err
		}
		defer stdin.Close()
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(raw)
	}

	if err := validateLength(text); err != nil {
		return "", err
	}

	m, err := model.Load(cfg.ModelPath)
	if err != nil {
		return "", err
	}
	engine := rationale.NewEngine(m)
	calc := newCalculator()

	result := classifyText(engine, calc, cfg, text)
	return formatResult(result, cfg.JSON)
}

// classifyText runs the full per-request pipeline: score, label, explain,
// redact, measure.
func classifyText(engine *rationale.Engine, calc *counter.Calculator, cfg Config, text string) Result {
	start := time.Now()

	classification := engine.Classify(text, cfg.Threshold)

	var spans []rationale.Span
	if cfg.IncludeRationale {
		spans = engine.Explain(text, cfg.TopK)
	}

	var redacted string
	if cfg.Redact {
		if out, ok := redact.Apply(text, spans, cfg.RedactMode); ok {
			redacted = out
		}
	}

	latency := roundLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	slog.Debug("Classification completed", "label", classification.Label, "latencyMs", latency, "spans", len(spans))

	return Result{
		Label:        classification.Label,
		Confidence:   classification.Confidence,
		Scores:       classification.Scores,
		Rationale:    spans,
		RedactedText: redacted,
		Meta: Meta{
			LatencyMS:     latency,
			ThresholdUsed: cfg.Threshold,
			ModelVersion:  engine.Model().Version(),
			Stats:         textStats(calc, text),
		},
	}
}
