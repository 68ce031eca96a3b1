package consoleapi

import "net/http"

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	if a.stats == nil {
		http.Error(w, `{"error":"statistics are not enabled"}`, http.StatusNotFound)
		return
	}
	buckets, throughput := a.stats.Snapshot()
	a.writeJSON(w, http.StatusOK, map[string]any{
		"distribution": buckets,
		"throughput":   throughput,
	})
}

func (a *API) handleFeed(w http.ResponseWriter, r *http.Request) {
	if a.feed == nil {
		http.Error(w, `{"error":"the transaction feed is not enabled"}`, http.StatusNotFound)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"transactions": a.feed.Recent(),
	})
}
