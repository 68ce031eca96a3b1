package feed

import (
	"fmt"

	"github.com/linnemanlabs/sentinel/internal/alert"
)

// ToAlert materializes a flagged feed transaction as a new MONITORING
// alert for the working set. The detector layer that would normally score
// and categorize it is out of scope, so the category is Unknown and the
// sub-scores are proportional to the event's risk score.
func ToAlert(tx Transaction) *alert.Alert {
	score := float64(tx.RiskScore) / 100
	return &alert.Alert{
		ID:                "ALT-" + tx.ID,
		UserID:            "USR-" + tx.ID[len(tx.ID)-4:],
		Username:          "feed_subject_" + tx.ID[len(tx.ID)-4:],
		RiskScore:         tx.RiskScore,
		RiskLevel:         alert.LevelFromScore(tx.RiskScore),
		Category:          alert.CategoryUnknown,
		Status:            alert.StatusMonitoring,
		OriginExplanation: fmt.Sprintf("Real-time feed anomaly: %s of %.2f %s scored %d by the L1 screen.", tx.Type, tx.Amount, tx.Currency, tx.RiskScore),
		Signals: alert.Signals{
			Behavioral: score,
			Temporal:   score * 0.8,
			Network:    score * 0.5,
		},
		Timeline: []alert.TimelineEvent{
			{
				ID:          "ev-" + tx.ID,
				Timestamp:   tx.Timestamp,
				Type:        tx.Type,
				Description: fmt.Sprintf("%s of %.2f %s flagged at ingestion", tx.Type, tx.Amount, tx.Currency),
				Importance:  alert.ImportanceHigh,
			},
		},
		CreatedAt: tx.Timestamp,
	}
}
