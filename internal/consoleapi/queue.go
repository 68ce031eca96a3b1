package consoleapi

import (
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"

	"github.com/linnemanlabs/sentinel/internal/queue"
)

// parseCriteria reads the queue filter from query parameters. Absent
// parameters keep the permissive defaults.
func parseCriteria(q url.Values) (queue.Criteria, error) {
	c := queue.NewCriteria()
	if v := q.Get("text"); v != "" {
		c.Text = v
	}
	if v := q.Get("minRisk"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return c, strconv.ErrRange
		}
		c.MinRisk = n
	}
	if v := q.Get("category"); v != "" {
		c.Category = v
	}
	if v := q.Get("status"); v != "" {
		c.Status = v
	}
	return c, nil
}

func (a *API) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r.URL.Query())
	if err != nil {
		http.Error(w, `{"error":"minRisk must be an integer in 0..100"}`, http.StatusBadRequest)
		return
	}

	visible := queue.Visible(a.repo.List(), c)

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.Int("sentinel.queue.visible", len(visible)))

	a.writeJSON(w, http.StatusOK, map[string]any{
		"alerts": visible,
		"total":  a.repo.Len(),
	})
}

func (a *API) handleGetAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("sentinel.alert.id", id))

	al, ok := a.repo.Get(id)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	a.writeJSON(w, http.StatusOK, al)
}

func (a *API) handleSelectAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("sentinel.alert.id", id))

	al, ok := a.repo.Get(id)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	a.session.Select(r.Context(), al)
	a.writeJSON(w, http.StatusAccepted, a.session.Snapshot())
}

// handleAutoSelect picks the highest-risk unresolved alert in the visible
// queue and selects it for investigation.
func (a *API) handleAutoSelect(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r.URL.Query())
	if err != nil {
		http.Error(w, `{"error":"minRisk must be an integer in 0..100"}`, http.StatusBadRequest)
		return
	}

	visible := queue.Visible(a.repo.List(), c)
	al := queue.AutoSelectPriority(visible)
	if al == nil {
		http.Error(w, `{"error":"no selectable alert in the queue"}`, http.StatusNotFound)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("sentinel.alert.id", al.ID))

	a.logger.Info(r.Context(), "auto-selected priority alert", "alert_id", al.ID, "risk_score", al.RiskScore)
	a.session.Select(r.Context(), al)
	a.writeJSON(w, http.StatusAccepted, map[string]any{
		"selected": al,
		"session":  a.session.Snapshot(),
	})
}
