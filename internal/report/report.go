// Package report composes escalation documents from a confirmed
// investigation. Composition is read-only over its inputs; the alert and
// analysis are never mutated.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/sentinel/internal/alert"
	"github.com/linnemanlabs/sentinel/internal/investigation"
)

// Document is one regulator-ready escalation record.
type Document struct {
	ID          string         `json:"id"`
	AlertID     string         `json:"alertId"`
	Username    string         `json:"username"`
	RiskScore   int            `json:"riskScore"`
	RiskLevel   alert.RiskLevel `json:"riskLevel"`
	Category    alert.Category `json:"category"`
	Urgency     string         `json:"urgency"`
	Narrative   string         `json:"narrative"`
	Evidence    []string       `json:"evidence"`
	NextSteps   string         `json:"nextSteps"`
	Synthetic   bool           `json:"synthetic"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// Compositor turns a confirmed (alert, analysis) pair into a document.
type Compositor interface {
	Compose(al *alert.Alert, res *investigation.Result) (*Document, error)
}

// SAR composes Suspicious Activity Report drafts.
type SAR struct {
	now func() time.Time
}

// NewSAR creates a SAR compositor.
func NewSAR() *SAR {
	return &SAR{now: time.Now}
}

// Compose builds a SAR document. The analysis must carry the full
// mandated key set; a synthetic analysis composes like a live one but the
// document is marked accordingly.
func (c *SAR) Compose(al *alert.Alert, res *investigation.Result) (*Document, error) {
	if al == nil || res == nil {
		return nil, fmt.Errorf("compose requires an alert and an analysis")
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("analysis is not draftable: %w", err)
	}

	return &Document{
		ID:          "SAR-" + ulid.Make().String(),
		AlertID:     al.ID,
		Username:    al.Username,
		RiskScore:   al.RiskScore,
		RiskLevel:   al.RiskLevel,
		Category:    al.Category,
		Urgency:     res.Urgency,
		Narrative:   res.SARDraft,
		Evidence:    append([]string(nil), res.Evidence...),
		NextSteps:   res.NextSteps,
		Synthetic:   res.Synthetic,
		GeneratedAt: c.now().UTC(),
	}, nil
}

// Render produces the document's plain-text body for handoff surfaces.
func (d *Document) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SUSPICIOUS ACTIVITY REPORT %s\n", d.ID)
	fmt.Fprintf(&b, "Alert: %s  Subject: %s\n", d.AlertID, d.Username)
	fmt.Fprintf(&b, "Risk: %d (%s)  Category: %s  Urgency: %s\n", d.RiskScore, d.RiskLevel, d.Category, d.Urgency)
	if d.Synthetic {
		b.WriteString("Source: synthetic fallback analysis\n")
	}
	b.WriteString("\nNARRATIVE\n")
	b.WriteString(d.Narrative)
	b.WriteString("\n\nEVIDENCE\n")
	for _, e := range d.Evidence {
		fmt.Fprintf(&b, "- %s\n", e)
	}
	b.WriteString("\nNEXT STEPS\n")
	b.WriteString(d.NextSteps)
	b.WriteString("\n")
	return b.String()
}
