// Package consoleapi exposes the analyst console over HTTP: the alert
// queue, risk statistics, the live transaction feed, and the
// investigation session.
package consoleapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/sentinel/internal/alert"
	"github.com/linnemanlabs/sentinel/internal/feed"
	"github.com/linnemanlabs/sentinel/internal/investigation"
	"github.com/linnemanlabs/sentinel/internal/report"
	"github.com/linnemanlabs/sentinel/internal/stats"
)

// Notifier forwards escalation documents to an external surface.
type Notifier interface {
	Send(ctx context.Context, doc *report.Document) error
}

// API holds dependencies for the console HTTP handlers.
type API struct {
	logger     log.Logger
	repo       *alert.Repository
	session    *investigation.Session
	stats      *stats.Aggregator
	feed       *feed.Generator
	compositor report.Compositor
	notifier   Notifier
}

// New creates a new API handler. The repository and session are required;
// a nil compositor defaults to the SAR compositor and a nil notifier
// disables escalation delivery.
func New(logger log.Logger, repo *alert.Repository, session *investigation.Session,
	agg *stats.Aggregator, gen *feed.Generator, compositor report.Compositor, notifier Notifier) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if repo == nil {
		panic(xerrors.New("alert repository is required"))
	}
	if session == nil {
		panic(xerrors.New("investigation session is required"))
	}
	if compositor == nil {
		compositor = report.NewSAR()
	}
	return &API{
		logger:     logger,
		repo:       repo,
		session:    session,
		stats:      agg,
		feed:       gen,
		compositor: compositor,
		notifier:   notifier,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/alerts", a.handleListAlerts)
		r.Get("/alerts/{id}", a.handleGetAlert)
		r.Post("/alerts/{id}/select", a.handleSelectAlert)
		r.Post("/queue/auto-select", a.handleAutoSelect)

		r.Get("/session", a.handleGetSession)
		r.Post("/session/retry", a.handleRetry)
		r.Post("/session/fallback", a.handleFallback)
		r.Post("/session/briefing", a.handleBriefing)
		r.Post("/session/escalate", a.handleEscalate)

		r.Get("/stats", a.handleStats)
		r.Get("/feed", a.handleFeed)
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
