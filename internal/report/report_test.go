package report

import (
	"strings"
	"testing"
	"time"

	"github.com/linnemanlabs/sentinel/internal/alert"
	"github.com/linnemanlabs/sentinel/internal/investigation"
)

func draftableResult() *investigation.Result {
	return &investigation.Result{
		Reasoning:           "Coordinated trading detected.",
		BehavioralDeviation: "Volume spike far above baseline.",
		FraudAlignment:      "Matches collusive trading typologies.",
		Evidence:            []string{"Shared device fingerprint", "Mirrored order timing"},
		BenignExplanations:  "Market making, unlikely given timing.",
		Urgency:             "Immediate",
		NextSteps:           "Freeze withdrawals.",
		SARDraft:            "Subject engaged in mirrored trades consistent with wash trading.",
	}
}

func draftAlert() *alert.Alert {
	return &alert.Alert{
		ID:        "ALT-8821",
		Username:  "quant_trader_7",
		RiskScore: 92,
		RiskLevel: alert.LevelCritical,
		Category:  alert.CategoryCollusiveTrading,
		Status:    alert.StatusFlagged,
	}
}

func TestSAR_Compose(t *testing.T) {
	t.Parallel()

	c := NewSAR()
	al, res := draftAlert(), draftableResult()

	doc, err := c.Compose(al, res)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.HasPrefix(doc.ID, "SAR-") {
		t.Errorf("ID = %q, want SAR- prefix", doc.ID)
	}
	if doc.AlertID != "ALT-8821" || doc.Username != "quant_trader_7" {
		t.Errorf("identity fields = %q/%q", doc.AlertID, doc.Username)
	}
	if doc.Narrative != res.SARDraft {
		t.Errorf("narrative = %q", doc.Narrative)
	}
	if doc.Synthetic {
		t.Error("live analysis must not mark the document synthetic")
	}
	if doc.GeneratedAt.IsZero() || doc.GeneratedAt.Location() != time.UTC {
		t.Error("GeneratedAt must be a UTC timestamp")
	}

	// composition is read-only over its inputs
	doc.Evidence[0] = "mutated"
	if res.Evidence[0] == "mutated" {
		t.Error("Compose shared the analysis evidence slice")
	}
}

func TestSAR_ComposeSynthetic(t *testing.T) {
	t.Parallel()

	res := draftableResult()
	res.Synthetic = true

	doc, err := NewSAR().Compose(draftAlert(), res)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !doc.Synthetic {
		t.Error("synthetic analysis must mark the document")
	}
	if !strings.Contains(doc.Render(), "synthetic fallback analysis") {
		t.Error("rendered body must disclose the synthetic source")
	}
}

func TestSAR_ComposeRejectsIncomplete(t *testing.T) {
	t.Parallel()

	c := NewSAR()
	if _, err := c.Compose(nil, draftableResult()); err == nil {
		t.Error("nil alert should fail")
	}
	if _, err := c.Compose(draftAlert(), nil); err == nil {
		t.Error("nil analysis should fail")
	}

	res := draftableResult()
	res.SARDraft = ""
	if _, err := c.Compose(draftAlert(), res); err == nil {
		t.Error("missing sarDraft should fail")
	}
}

func TestDocument_Render(t *testing.T) {
	t.Parallel()

	doc, err := NewSAR().Compose(draftAlert(), draftableResult())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	body := doc.Render()
	for _, want := range []string{
		"SUSPICIOUS ACTIVITY REPORT " + doc.ID,
		"Alert: ALT-8821",
		"NARRATIVE",
		"- Shared device fingerprint",
		"NEXT STEPS",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered body missing %q", want)
		}
	}
}
