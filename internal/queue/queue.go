// Package queue implements the triage queue's filter engine: a pure mapping
// from (alert set, criteria) to the ordered visible subset, plus priority
// auto-selection.
package queue

import (
	"strings"

	"github.com/linnemanlabs/sentinel/internal/alert"
)

// FilterAll is the wildcard value for the category and status criteria.
const FilterAll = "ALL"

// Criteria is the analyst-controlled queue filter. Zero MinRisk and empty
// Text match everything; Category and Status default to FilterAll.
type Criteria struct {
	Text     string `json:"text"`
	MinRisk  int    `json:"minRisk"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// NewCriteria returns criteria that admit every alert.
func NewCriteria() Criteria {
	return Criteria{Category: FilterAll, Status: FilterAll}
}

// Matches reports whether a single alert passes all four predicates.
func Matches(a *alert.Alert, c Criteria) bool {
	term := strings.ToLower(c.Text)
	matchesText := strings.Contains(strings.ToLower(a.Username), term) ||
		strings.Contains(strings.ToLower(a.ID), term) ||
		strings.Contains(strings.ToLower(a.OriginExplanation), term)

	matchesRisk := a.RiskScore >= c.MinRisk
	matchesCategory := c.Category == FilterAll || string(a.Category) == c.Category
	matchesStatus := c.Status == FilterAll || string(a.Status) == c.Status

	return matchesText && matchesRisk && matchesCategory && matchesStatus
}

// Visible filters alerts against the criteria, preserving input order.
// It never re-sorts; ranking is the repository's concern.
func Visible(alerts []*alert.Alert, c Criteria) []*alert.Alert {
	out := make([]*alert.Alert, 0, len(alerts))
	for _, a := range alerts {
		if Matches(a, c) {
			out = append(out, a)
		}
	}
	return out
}

// AutoSelectPriority returns the highest-risk alert among those not yet
// resolved, or nil when none qualify. Ties go to the earliest alert in
// input order, keeping the selection deterministic.
func AutoSelectPriority(alerts []*alert.Alert) *alert.Alert {
	var best *alert.Alert
	for _, a := range alerts {
		if a.Status.Resolved() {
			continue
		}
		if best == nil || a.RiskScore > best.RiskScore {
			best = a
		}
	}
	return best
}
