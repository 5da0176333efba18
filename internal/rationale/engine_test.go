package rationale_test

import (
	"testing"

	"github.com/chriscorrea/vitriol/internal/model"
	"github.com/chriscorrea/vitriol/internal/rationale"
)

func TestEngineClassify(t *testing.T) {
	engine := rationale.NewEngine(newLinearFixture(t))

	tests := []struct {
		name          string
		text          string
		threshold     float64
		wantLabel     string
		minConfidence float64
	}{
		{
			name:      "toxic text at default threshold",
			text:      "You are an idiot!",
			threshold: 0.5,
			wantLabel: model.LabelToxic, minConfidence: 0.5,
		},
		{
			name:      "benign text at default threshold",
			text:      "Thank you for your help",
			threshold: 0.5,
			wantLabel: model.LabelNonToxic, minConfidence: 0.5,
		},
		{
			name:      "zero threshold flags everything",
			text:      "Thank you for your help",
			threshold: 0.0,
			wantLabel: model.LabelToxic,
		},
		{
			name:      "impossible threshold flags nothing",
			text:      "You are an idiot!",
			threshold: 1.01,
			wantLabel: model.LabelNonToxic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Classify(tt.text, tt.threshold)
			if got.Label != tt.wantLabel {
				t.Errorf("Classify(%q, %v).Label = %q, want %q", tt.text, tt.threshold, got.Label, tt.wantLabel)
			}
			if got.Confidence < tt.minConfidence {
				t.Errorf("Confidence = %f, want >= %f", got.Confidence, tt.minConfidence)
			}
		})
	}
}

func TestEngineExplainLinearPath(t *testing.T) {
	engine := rationale.NewEngine(newLinearFixture(t))

	text := "You are an idiot!"
	spans := engine.Explain(text, 0)
	if len(spans) != 1 {
		t.Fatalf("Explain(%q) = %v, want one span", text, spans)
	}

	// "you" is a stop word; only "idiot" survives, at its exact offsets
	s := spans[0]
	if s.Text != "idiot" || s.Start != 11 || s.End != 16 {
		t.Errorf("Explain()[0] = %+v, want idiot at (11, 16)", s)
	}
	if s.Weight <= 0.1 {
		t.Errorf("weight = %f, want above the minimum score threshold", s.Weight)
	}
}

func TestEngineExplainBenignText(t *testing.T) {
	engine := rationale.NewEngine(newLinearFixture(t))
	if spans := engine.Explain("Thank you for your help", 5); spans != nil {
		t.Errorf("Explain() = %v, want nil for benign text", spans)
	}
}

func TestEngineExplainFallsBackForOpaqueModel(t *testing.T) {
	engine := rationale.NewEngine(opaqueModel{toxic: 0.9})

	spans := engine.Explain("You are an idiot!", 5)
	if len(spans) != 1 {
		t.Fatalf("Explain() = %v, want one fallback span", spans)
	}
	s := spans[0]
	if s.Text != "idiot" || s.Start != 11 || s.End != 16 {
		t.Errorf("fallback span = %+v, want idiot at (11, 16)", s)
	}
	if s.Weight != 1.0 {
		t.Errorf("fallback weight = %f, want fixed 1.0", s.Weight)
	}
}

func TestEngineExplainFallsBackForMalformedModel(t *testing.T) {
	engine := rationale.NewEngine(brokenLinear{})

	// term scoring errors out, but rationale still arrives via the keyword list
	spans := engine.Explain("what an idiot", 5)
	if len(spans) != 1 || spans[0].Text != "idiot" {
		t.Errorf("Explain() = %v, want fallback idiot span", spans)
	}
}

func TestEngineExplainOrderingInvariant(t *testing.T) {
	engine := rationale.NewEngine(newLinearFixture(t))
	spans := engine.Explain("idiot you idiot", 5)
	for i := 1; i < len(spans); i++ {
		if spans[i].Weight > spans[i-1].Weight {
			t.Errorf("Explain() not sorted by non-increasing weight: %v", spans)
		}
	}
}

func TestEngineTopSpan(t *testing.T) {
	engine := rationale.NewEngine(newLinearFixture(t))

	if top := engine.TopSpan("You are an idiot!"); top == nil || top.Text != "idiot" {
		t.Errorf("TopSpan() = %v, want the idiot span", top)
	}
	if top := engine.TopSpan("Thank you for your help"); top != nil {
		t.Errorf("TopSpan() = %v, want nil for benign text", top)
	}
}
