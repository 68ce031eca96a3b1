package consoleapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linnemanlabs/sentinel/internal/alert"
	"github.com/linnemanlabs/sentinel/internal/feed"
	"github.com/linnemanlabs/sentinel/internal/investigation"
	"github.com/linnemanlabs/sentinel/internal/report"
	"github.com/linnemanlabs/sentinel/internal/stats"
)

type stubAnalyzer struct {
	err error
}

func (s *stubAnalyzer) Analyze(_ context.Context, al *alert.Alert) (*investigation.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &investigation.Result{
		Reasoning:           "analysis for " + al.ID,
		BehavioralDeviation: "deviation",
		FraudAlignment:      "alignment",
		Evidence:            []string{"e1"},
		BenignExplanations:  "benign",
		Urgency:             "High",
		NextSteps:           "freeze",
		SARDraft:            "draft narrative",
	}, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	docs []*report.Document
}

func (n *recordingNotifier) Send(_ context.Context, doc *report.Document) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.docs = append(n.docs, doc)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.docs)
}

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.5 }
func (fixedRand) IntN(n int) int   { return 0 }

type testDeps struct {
	router   chi.Router
	repo     *alert.Repository
	session  *investigation.Session
	feed     *feed.Generator
	notifier *recordingNotifier
}

func newTestDeps(t *testing.T, analyzer investigation.Analyzer) *testDeps {
	t.Helper()
	if analyzer == nil {
		analyzer = &stubAnalyzer{}
	}
	repo := alert.NewRepository(alert.Seed()...)
	session := investigation.NewSession(analyzer, nil, nil, nil, investigation.Options{
		AnalysisTimeout: time.Second,
		FallbackDelay:   5 * time.Millisecond,
	})
	agg := stats.New(fixedRand{}, nil)
	gen := feed.New(fixedRand{})
	notifier := &recordingNotifier{}

	api := New(nil, repo, session, agg, gen, nil, notifier)
	r := chi.NewRouter()
	api.RegisterRoutes(r)

	return &testDeps{router: r, repo: repo, session: session, feed: gen, notifier: notifier}
}

func (d *testDeps) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	d.router.ServeHTTP(rec, req)
	return rec
}

func (d *testDeps) waitReady(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if d.session.Snapshot().State == investigation.StateReady {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("session never reached READY")
}

func TestNew_NilRepoPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for nil repository")
		}
	}()
	New(nil, nil, nil, nil, nil, nil, nil)
}

func TestListAlerts(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	rec := d.do(t, http.MethodGet, "/api/v1/alerts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Alerts []alert.Alert `json:"alerts"`
		Total  int           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Alerts) != 3 || body.Total != 3 {
		t.Errorf("alerts = %d total = %d, want 3/3", len(body.Alerts), body.Total)
	}
}

func TestListAlerts_Filtered(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"min risk 80", "?minRisk=80", 1},
		{"category filter", "?category=" + url.QueryEscape(string(alert.CategoryLaundering)), 1},
		{"status filter", "?status=MONITORING", 1},
		{"text match", "?text=alex", 1},
		{"no match", "?text=nobody", 0},
		{"combined", "?minRisk=40&status=FLAGGED", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := d.do(t, http.MethodGet, "/api/v1/alerts"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var body struct {
				Alerts []alert.Alert `json:"alerts"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Alerts) != tt.want {
				t.Errorf("visible = %d, want %d", len(body.Alerts), tt.want)
			}
		})
	}
}

func TestListAlerts_BadMinRisk(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	for _, q := range []string{"?minRisk=abc", "?minRisk=-1", "?minRisk=101"} {
		if rec := d.do(t, http.MethodGet, "/api/v1/alerts"+q); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestGetAlert(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)

	rec := d.do(t, http.MethodGet, "/api/v1/alerts/ALT-8821")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var al alert.Alert
	if err := json.Unmarshal(rec.Body.Bytes(), &al); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if al.ID != "ALT-8821" || al.RiskScore != 92 {
		t.Errorf("got %s/%d, want ALT-8821/92", al.ID, al.RiskScore)
	}

	if rec := d.do(t, http.MethodGet, "/api/v1/alerts/ALT-0000"); rec.Code != http.StatusNotFound {
		t.Errorf("missing alert: status = %d, want 404", rec.Code)
	}
}

func TestSelectAlert(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)

	rec := d.do(t, http.MethodPost, "/api/v1/alerts/ALT-8822/select")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	d.waitReady(t)

	snap := d.session.Snapshot()
	if snap.AlertID != "ALT-8822" {
		t.Errorf("session alert = %q, want ALT-8822", snap.AlertID)
	}

	if rec := d.do(t, http.MethodPost, "/api/v1/alerts/ALT-0000/select"); rec.Code != http.StatusNotFound {
		t.Errorf("missing alert: status = %d, want 404", rec.Code)
	}
}

func TestAutoSelect(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)

	rec := d.do(t, http.MethodPost, "/api/v1/queue/auto-select")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	var body struct {
		Selected alert.Alert `json:"selected"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// highest risk score among unresolved seeds
	if body.Selected.ID != "ALT-8821" {
		t.Errorf("selected = %q, want ALT-8821", body.Selected.ID)
	}
}

func TestAutoSelect_RespectsFilter(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)

	rec := d.do(t, http.MethodPost, "/api/v1/queue/auto-select?status=MONITORING")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	var body struct {
		Selected alert.Alert `json:"selected"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Selected.ID != "ALT-8823" {
		t.Errorf("selected = %q, want ALT-8823", body.Selected.ID)
	}
}

func TestAutoSelect_EmptyQueue(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	if rec := d.do(t, http.MethodPost, "/api/v1/queue/auto-select?text=nobody"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)

	rec := d.do(t, http.MethodGet, "/api/v1/session")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap investigation.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.State != investigation.StateIdle {
		t.Errorf("state = %q, want IDLE", snap.State)
	}

	// recovery actions are invalid before any failure
	for _, p := range []string{"retry", "fallback", "briefing", "escalate"} {
		if rec := d.do(t, http.MethodPost, "/api/v1/session/"+p); rec.Code != http.StatusConflict {
			t.Errorf("%s from IDLE: status = %d, want 409", p, rec.Code)
		}
	}
}

func TestRetryAndFallbackOverHTTP(t *testing.T) {
	t.Parallel()

	an := &stubAnalyzer{err: &investigation.AnalysisError{Kind: investigation.FailRateLimited, Message: "429"}}
	d := newTestDeps(t, an)

	d.do(t, http.MethodPost, "/api/v1/alerts/ALT-8821/select")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && d.session.Snapshot().State != investigation.StateError {
		time.Sleep(2 * time.Millisecond)
	}

	if rec := d.do(t, http.MethodPost, "/api/v1/session/retry"); rec.Code != http.StatusAccepted {
		t.Fatalf("retry status = %d, want 202", rec.Code)
	}
	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && d.session.Snapshot().State != investigation.StateError {
		time.Sleep(2 * time.Millisecond)
	}

	if rec := d.do(t, http.MethodPost, "/api/v1/session/fallback"); rec.Code != http.StatusAccepted {
		t.Fatalf("fallback status = %d, want 202", rec.Code)
	}
	d.waitReady(t)

	snap := d.session.Snapshot()
	if snap.Result == nil || !snap.Result.Synthetic {
		t.Error("expected a synthetic result after fallback")
	}
}

func TestEscalateOverHTTP(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	d.do(t, http.MethodPost, "/api/v1/alerts/ALT-8821/select")
	d.waitReady(t)

	rec := d.do(t, http.MethodPost, "/api/v1/session/escalate")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var doc report.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(doc.ID, "SAR-") {
		t.Errorf("doc id = %q, want SAR- prefix", doc.ID)
	}
	if doc.AlertID != "ALT-8821" {
		t.Errorf("doc alert = %q, want ALT-8821", doc.AlertID)
	}
	if d.notifier.count() != 1 {
		t.Errorf("notifier deliveries = %d, want 1", d.notifier.count())
	}
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	rec := d.do(t, http.MethodGet, "/api/v1/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Distribution []stats.Bucket `json:"distribution"`
		Throughput   []float64      `json:"throughput"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Distribution) != 5 {
		t.Errorf("distribution buckets = %d, want 5", len(body.Distribution))
	}
	if len(body.Throughput) != stats.ThroughputWindow {
		t.Errorf("throughput window = %d, want %d", len(body.Throughput), stats.ThroughputWindow)
	}
}

func TestFeedEndpoint(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	d.feed.Emit()
	d.feed.Emit()

	rec := d.do(t, http.MethodGet, "/api/v1/feed")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Transactions []feed.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Transactions) != 2 {
		t.Errorf("transactions = %d, want 2", len(body.Transactions))
	}
}
