package alert

import (
	"fmt"
	"sync"
)

// Repository holds the working set of alerts in memory. Listing order is
// insertion order. All returned alerts are copies; mutations go through
// repository methods so the level-score invariant holds.
type Repository struct {
	mu     sync.RWMutex
	alerts map[string]*Alert
	order  []string
}

// NewRepository initializes a repository with the given seed alerts.
// Seed entries whose risk level disagrees with their score are normalized.
func NewRepository(seed ...*Alert) *Repository {
	r := &Repository{
		alerts: make(map[string]*Alert, len(seed)),
	}
	for _, a := range seed {
		// seed data is trusted to have unique ids
		_ = r.Add(a)
	}
	return r
}

// Add inserts a new alert, deriving its risk level from the score.
func (r *Repository) Add(a *Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.alerts[a.ID]; exists {
		return fmt.Errorf("alert %s already exists", a.ID)
	}
	cp := a.Clone()
	cp.RiskLevel = LevelFromScore(cp.RiskScore)
	r.alerts[cp.ID] = cp
	r.order = append(r.order, cp.ID)
	return nil
}

// Get retrieves an alert by ID. Returns a copy.
func (r *Repository) Get(id string) (*Alert, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.alerts[id]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// List returns all alerts in insertion order. Returns copies.
func (r *Repository) List() []*Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Alert, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.alerts[id].Clone())
	}
	return out
}

// SetStatus transitions an alert's triage status.
func (r *Repository) SetStatus(id string, s Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[id]
	if !ok {
		return fmt.Errorf("alert %s not found", id)
	}
	a.Status = s
	return nil
}

// SetRiskScore updates an alert's score and re-derives its level.
func (r *Repository) SetRiskScore(id string, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[id]
	if !ok {
		return fmt.Errorf("alert %s not found", id)
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("risk score %d out of range 0..100", score)
	}
	a.RiskScore = score
	a.RiskLevel = LevelFromScore(score)
	return nil
}

// Len reports the number of alerts in the working set.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
