package consoleapi

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap := a.session.Snapshot()

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("sentinel.session.state", string(snap.State)))

	a.writeJSON(w, http.StatusOK, snap)
}

func (a *API) handleRetry(w http.ResponseWriter, r *http.Request) {
	if err := a.session.Retry(r.Context()); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
		return
	}
	a.writeJSON(w, http.StatusAccepted, a.session.Snapshot())
}

func (a *API) handleFallback(w http.ResponseWriter, r *http.Request) {
	if err := a.session.Fallback(r.Context()); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
		return
	}
	a.writeJSON(w, http.StatusAccepted, a.session.Snapshot())
}

func (a *API) handleBriefing(w http.ResponseWriter, r *http.Request) {
	if err := a.session.PlayBriefing(r.Context()); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
		return
	}
	a.writeJSON(w, http.StatusAccepted, a.session.Snapshot())
}

// handleEscalate confirms the current analysis, composes the escalation
// document, and forwards it to the notifier. Delivery failure does not
// fail the escalation; the document is already composed.
func (a *API) handleEscalate(w http.ResponseWriter, r *http.Request) {
	al, res, err := a.session.ConfirmDraft()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
		return
	}

	doc, err := a.compositor.Compose(al, res)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to compose escalation document", "alert_id", al.ID)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("sentinel.report.id", doc.ID))

	if a.notifier != nil {
		if err := a.notifier.Send(r.Context(), doc); err != nil {
			a.logger.Warn(r.Context(), "escalation notification failed", "report_id", doc.ID, "error", err)
		}
	}

	a.logger.Info(r.Context(), "escalation composed", "report_id", doc.ID, "alert_id", al.ID)
	a.writeJSON(w, http.StatusCreated, doc)
}
