package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/chriscorrea/vitriol/internal/boilerplate"
	"github.com/chriscorrea/vitriol/internal/chunk"
	"github.com/chriscorrea/vitriol/internal/counter"
	"github.com/chriscorrea/vitriol/internal/extract"
	"github.com/chriscorrea/vitriol/internal/fetch"
	"github.com/chriscorrea/vitriol/internal/model"
	"github.com/chriscorrea/vitriol/internal/rationale"
	"github.com/chriscorrea/vitriol/internal/spinner"
)

// DefaultPassageChars sizes scan passages well under the single-call input
// bound so every passage remains a valid classification request.
const DefaultPassageChars = 2000

// ScanConfig extends Config with document-scan options.
type ScanConfig struct {
	Config
	Sources      []string // URLs, file paths, or "-" for stdin
	Selector     string   // optional CSS selector for HTML sources
	KeepAll      bool     // skip readability and boilerplate filtering
	PassageChars int      // maximum passage size; DefaultPassageChars if <= 0
}

// FlaggedPassage is one passage a scan classified as toxic.
type FlaggedPassage struct {
	Index        int              `json:"index"`
	Excerpt      string           `json:"excerpt"`
	Confidence   float64          `json:"confidence"`
	Rationale    []rationale.Span `json:"rationale,omitempty"`
	RedactedText string           `json:"redacted_text,omitempty"`
}

// ScanResult summarizes one scanned source.
type ScanResult struct {
	Source   string           `json:"source"`
	Passages int              `json:"passages"`
	Skipped  int              `json:"skipped"`
	Flagged  []FlaggedPassage `json:"flagged"`
}

// Scan fetches each source, splits it into passages, and classifies every
// passage that survives boilerplate filtering. Sources that fail to fetch
// are reported to stderr and skipped, matching the per-source resilience of
// multi-source processing.
func Scan(ctx context.Context, cfg ScanConfig) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}
	if cfg.PassageChars <= 0 {
		cfg.PassageChars = DefaultPassageChars
	}

	m, err := model.Load(cfg.ModelPath)
	if err != nil {
		return "", err
	}
	engine := rationale.NewEngine(m)
	calc := newCalculator()
	filter := boilerplate.NewFilter()

	var results []ScanResult
	for _, source := range cfg.Sources {
		result, err := scanSource(ctx, cfg, engine, calc, filter, source)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to scan source %q: %v\n", source, err)
			}
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return "", fmt.Errorf("no sources could be scanned")
	}
	return formatScan(results, cfg.JSON)
}

// scanSource processes one source end to end: fetch, extract, split,
// filter, classify.
func scanSource(ctx context.Context, cfg ScanConfig, engine *rationale.Engine, calc *counter.Calculator, filter *boilerplate.Filter, source string) (ScanResult, error) {
	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, fmt.Sprintf("Scanning %s...", source))
		sp.Start()
		defer sp.Stop()
	}

	reader, err := fetch.Open(ctx, source)
	if err != nil {
		return ScanResult{}, err
	}
	defer reader.Close()

	var baseURL *url.URL
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		baseURL, _ = url.Parse(source)
	}

	text, err := extract.Text(reader, extract.Options{
		Selector: cfg.Selector,
		KeepAll:  cfg.KeepAll,
		BaseURL:  baseURL,
	})
	if err != nil {
		return ScanResult{}, err
	}

	passages := chunk.Split(text, cfg.PassageChars)
	result := ScanResult{Source: source, Passages: len(passages)}

	for i, passage := range passages {
		if !cfg.KeepAll && filter.Skip(passage) {
			result.Skipped++
			continue
		}

		classified := classifyText(engine, calc, cfg.Config, passage)
		if classified.Label != model.LabelToxic {
			continue
		}
		result.Flagged = append(result.Flagged, FlaggedPassage{
			Index:        i,
			Excerpt:      excerpt(passage),
			Confidence:   classified.Confidence,
			Rationale:    classified.Rationale,
			RedactedText: classified.RedactedText,
		})
	}

	slog.Debug("Source scanned", "source", source, "passages", result.Passages, "skipped", result.Skipped, "flagged", len(result.Flagged))
	return result, nil
}

// excerpt trims a passage for display in scan reports.
const excerptLimit = 160

func excerpt(passage string) string {
	passage = strings.Join(strings.Fields(passage), " ")
	if len(passage) <= excerptLimit {
		return passage
	}
	return passage[:excerptLimit] + "…"
}

// formatScan renders scan results as JSON or as a human-readable report.
func formatScan(results []ScanResult, asJSON bool) (string, error) {
	if asJSON {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode scan results: %w", err)
		}
		return string(out) + "\n", nil
	}

	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s: %d passages (%d skipped), %d flagged\n", r.Source, r.Passages, r.Skipped, len(r.Flagged))
		for _, f := range r.Flagged {
			fmt.Fprintf(&b, "  passage %d (confidence %.3f): %s\n", f.Index, f.Confidence, f.Excerpt)
			for _, s := range f.Rationale {
				fmt.Fprintf(&b, "    - %q [%d:%d] weight=%.3f\n", s.Text, s.Start, s.End, s.Weight)
			}
		}
	}
	return b.String(), nil
}
