// Package alert defines the fraud-alert domain model and the in-memory
// working set the console operates on.
package alert

import "time"

// RiskLevel is the discrete priority band derived from the risk score.
type RiskLevel string

const (
	LevelCritical RiskLevel = "CRITICAL"
	LevelHigh     RiskLevel = "HIGH"
	LevelMedium   RiskLevel = "MEDIUM"
	LevelLow      RiskLevel = "LOW"
)

// LevelFromScore derives the risk level from a 0-100 score. The repository
// maintains level-score consistency through this function; callers never set
// the level directly.
func LevelFromScore(score int) RiskLevel {
	switch {
	case score >= 90:
		return LevelCritical
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Category tags an alert with a suspected fraud typology. The set is open;
// upstream detectors may emit values outside this list.
type Category string

const (
	CategoryLaundering        Category = "Money Laundering"
	CategoryAccountTakeover   Category = "Account Takeover"
	CategorySyntheticIdentity Category = "Synthetic Identity"
	CategoryCollusiveTrading  Category = "Collusive Trading"
	CategoryStructuring       Category = "Structuring / Smurfing"
	CategoryUnknown           Category = "Unknown Anomaly"
)

// Categories lists the known typologies in display order.
func Categories() []Category {
	return []Category{
		CategoryLaundering,
		CategoryAccountTakeover,
		CategorySyntheticIdentity,
		CategoryCollusiveTrading,
		CategoryStructuring,
		CategoryUnknown,
	}
}

// Status tracks where an alert is in its triage lifecycle.
type Status string

const (
	// StatusMonitoring means under passive observation, no action taken.
	StatusMonitoring Status = "MONITORING"

	// StatusFlagged means escalated for analyst attention.
	StatusFlagged Status = "FLAGGED"

	// StatusBlocked means the account's activity has been restricted.
	StatusBlocked Status = "BLOCKED"

	// StatusResolvedSuspicious means closed with suspicion confirmed.
	StatusResolvedSuspicious Status = "RESOLVED_SUSPICIOUS"

	// StatusResolvedBenign means closed as a false positive.
	StatusResolvedBenign Status = "RESOLVED_BENIGN"
)

// Resolved reports whether the status is terminal for triage purposes.
func (s Status) Resolved() bool {
	return s == StatusResolvedSuspicious || s == StatusResolvedBenign
}

// Importance grades a timeline event's weight in the case narrative.
type Importance string

const (
	ImportanceCritical Importance = "CRITICAL"
	ImportanceHigh     Importance = "HIGH"
	ImportanceMedium   Importance = "MEDIUM"
	ImportanceLow      Importance = "LOW"
)

// Signals carries the three independent ML sub-scores, each in [0,1].
type Signals struct {
	Behavioral float64 `json:"behavioralScore"`
	Temporal   float64 `json:"temporalScore"`
	Network    float64 `json:"networkScore"`
}

// TimelineEvent is one entry in an alert's event chain. Events are immutable
// once created and owned exclusively by their alert; ordering is insertion
// order and assumed chronological.
type TimelineEvent struct {
	ID          string     `json:"id"`
	Timestamp   time.Time  `json:"timestamp"`
	Type        string     `json:"type"` // open set: LOGIN, DEPOSIT, TRADE, WITHDRAWAL, TRANSFER, ...
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
}

// Alert is a scored, investigable fraud-risk case tied to one user.
type Alert struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	Username          string          `json:"username"`
	RiskScore         int             `json:"riskScore"`
	RiskLevel         RiskLevel       `json:"riskLevel"`
	Category          Category        `json:"category"`
	Status            Status          `json:"status"`
	OriginExplanation string          `json:"originExplanation"`
	Signals           Signals         `json:"signals"`
	Timeline          []TimelineEvent `json:"timeline"`
	CreatedAt         time.Time       `json:"timestamp"`
}

// Clone returns a deep copy so callers can hand alerts across goroutines
// without sharing the timeline slice.
func (a *Alert) Clone() *Alert {
	cp := *a
	cp.Timeline = make([]TimelineEvent, len(a.Timeline))
	copy(cp.Timeline, a.Timeline)
	return &cp
}
