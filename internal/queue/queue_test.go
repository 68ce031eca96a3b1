package queue

import (
	"testing"

	"github.com/linnemanlabs/sentinel/internal/alert"
)

func fixtureAlerts() []*alert.Alert {
	return []*alert.Alert{
		{
			ID: "ALT-1", Username: "alex_trader_42", RiskScore: 92,
			Category: alert.CategoryCollusiveTrading, Status: alert.StatusFlagged,
			OriginExplanation: "wash trades over a shared IP",
		},
		{
			ID: "ALT-2", Username: "merchant_ops", RiskScore: 78,
			Category: alert.CategoryLaundering, Status: alert.StatusBlocked,
			OriginExplanation: "multi-hop transfers, network anomaly cluster",
		},
		{
			ID: "ALT-3", Username: "crypto_newbie", RiskScore: 45,
			Category: alert.CategoryStructuring, Status: alert.StatusMonitoring,
			OriginExplanation: "sub-threshold deposit anomaly",
		},
		{
			ID: "ALT-4", Username: "resolved_user", RiskScore: 99,
			Category: alert.CategoryAccountTakeover, Status: alert.StatusResolvedBenign,
			OriginExplanation: "session hijack pattern, cleared by analyst",
		},
	}
}

func TestVisible_NoCriteriaReturnsAll(t *testing.T) {
	t.Parallel()

	alerts := fixtureAlerts()
	got := Visible(alerts, NewCriteria())
	if len(got) != len(alerts) {
		t.Fatalf("len = %d, want %d", len(got), len(alerts))
	}
	for i := range alerts {
		if got[i].ID != alerts[i].ID {
			t.Errorf("order changed at %d: %q want %q", i, got[i].ID, alerts[i].ID)
		}
	}
}

func TestVisible_AllPredicatesAND(t *testing.T) {
	t.Parallel()

	c := NewCriteria()
	c.Text = "anomaly"
	c.MinRisk = 50
	got := Visible(fixtureAlerts(), c)
	if len(got) != 1 || got[0].ID != "ALT-2" {
		t.Fatalf("got %d alerts, want exactly ALT-2", len(got))
	}
}

func TestVisible_TextSearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := NewCriteria()
	c.Text = "ALEX_TRADER"
	got := Visible(fixtureAlerts(), c)
	if len(got) != 1 || got[0].ID != "ALT-1" {
		t.Fatalf("got %d alerts, want exactly ALT-1", len(got))
	}

	// id and origin explanation are searched too
	c.Text = "alt-3"
	if got := Visible(fixtureAlerts(), c); len(got) != 1 || got[0].ID != "ALT-3" {
		t.Fatal("expected id substring match for ALT-3")
	}
	c.Text = "shared ip"
	if got := Visible(fixtureAlerts(), c); len(got) != 1 || got[0].ID != "ALT-1" {
		t.Fatal("expected origin-explanation match for ALT-1")
	}
}

func TestVisible_MinRiskBoundary(t *testing.T) {
	t.Parallel()

	// riskScore=92 FLAGGED COLLUSIVE_TRADING: included at minRisk=50,
	// excluded at minRisk=95
	c := NewCriteria()
	c.MinRisk = 50
	c.Category = string(alert.CategoryCollusiveTrading)
	if got := Visible(fixtureAlerts(), c); len(got) != 1 || got[0].ID != "ALT-1" {
		t.Fatal("expected ALT-1 included at minRisk=50")
	}
	c.MinRisk = 95
	if got := Visible(fixtureAlerts(), c); len(got) != 0 {
		t.Fatalf("expected ALT-1 excluded at minRisk=95, got %d", len(got))
	}
}

func TestVisible_CategoryAndStatusFilters(t *testing.T) {
	t.Parallel()

	c := NewCriteria()
	c.Category = string(alert.CategoryLaundering)
	if got := Visible(fixtureAlerts(), c); len(got) != 1 || got[0].ID != "ALT-2" {
		t.Fatal("category filter should return only ALT-2")
	}

	c = NewCriteria()
	c.Status = string(alert.StatusMonitoring)
	if got := Visible(fixtureAlerts(), c); len(got) != 1 || got[0].ID != "ALT-3" {
		t.Fatal("status filter should return only ALT-3")
	}
}

func TestVisible_TighteningNeverGrows(t *testing.T) {
	t.Parallel()

	alerts := fixtureAlerts()
	base := NewCriteria()
	baseLen := len(Visible(alerts, base))

	tighter := []Criteria{
		{Text: "a", Category: FilterAll, Status: FilterAll},
		{MinRisk: 40, Category: FilterAll, Status: FilterAll},
		{Category: string(alert.CategoryStructuring), Status: FilterAll},
		{Category: FilterAll, Status: string(alert.StatusFlagged)},
	}
	for i, c := range tighter {
		if n := len(Visible(alerts, c)); n > baseLen {
			t.Errorf("criteria %d: tightened result %d > base %d", i, n, baseLen)
		}
	}
}

func TestAutoSelectPriority_SkipsResolved(t *testing.T) {
	t.Parallel()

	// RESOLVED_BENIGN with score 99 must lose to FLAGGED with 92
	got := AutoSelectPriority(fixtureAlerts())
	if got == nil {
		t.Fatal("expected a selection")
	}
	if got.ID != "ALT-1" {
		t.Errorf("selected %q, want ALT-1", got.ID)
	}
}

func TestAutoSelectPriority_ResolvedOnly(t *testing.T) {
	t.Parallel()

	alerts := []*alert.Alert{
		{ID: "ALT-1", RiskScore: 99, Status: alert.StatusResolvedBenign},
		{ID: "ALT-2", RiskScore: 80, Status: alert.StatusResolvedSuspicious},
	}
	if got := AutoSelectPriority(alerts); got != nil {
		t.Errorf("expected nil, got %q", got.ID)
	}
}

func TestAutoSelectPriority_TieBreakFirstInOrder(t *testing.T) {
	t.Parallel()

	alerts := []*alert.Alert{
		{ID: "ALT-A", RiskScore: 80, Status: alert.StatusMonitoring},
		{ID: "ALT-B", RiskScore: 80, Status: alert.StatusFlagged},
	}
	got := AutoSelectPriority(alerts)
	if got == nil || got.ID != "ALT-A" {
		t.Fatal("tie must resolve to the first alert in input order")
	}
}
