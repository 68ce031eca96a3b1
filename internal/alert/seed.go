package alert

import "time"

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed returns the canonical starting working set for a fresh process.
// There is no durable store; a restart always begins from these cases.
func Seed() []*Alert {
	now := time.Now()
	return []*Alert{
		{
			ID:                "ALT-8821",
			UserID:            "USR-9012",
			Username:          "alex_trader_42",
			RiskScore:         92,
			RiskLevel:         LevelCritical,
			Category:          CategoryCollusiveTrading,
			Status:            StatusFlagged,
			OriginExplanation: "Identified series of high-frequency wash trades with USR-4412 over a shared IP, suggesting risk-free profit laundering.",
			Signals:           Signals{Behavioral: 0.85, Temporal: 0.94, Network: 0.88},
			Timeline: []TimelineEvent{
				{ID: "ev-1", Timestamp: mustTime("2023-11-20T10:00:00Z"), Type: "LOGIN", Description: "Login from new device in Singapore", Importance: ImportanceMedium},
				{ID: "ev-2", Timestamp: mustTime("2023-11-20T10:05:00Z"), Type: "DEPOSIT", Description: "Deposit of $5,000 via Crypto Rail", Importance: ImportanceHigh},
				{ID: "ev-3", Timestamp: mustTime("2023-11-20T10:12:00Z"), Type: "TRADE", Description: "Series of 15 offsetting trades with USR-4412", Importance: ImportanceCritical},
				{ID: "ev-4", Timestamp: mustTime("2023-11-20T10:25:00Z"), Type: "WITHDRAWAL", Description: "Attempted withdrawal of $4,990 to external wallet", Importance: ImportanceHigh},
			},
			CreatedAt: now,
		},
		{
			ID:                "ALT-8822",
			UserID:            "USR-1150",
			Username:          "merchant_ops_global",
			RiskScore:         78,
			RiskLevel:         LevelHigh,
			Category:          CategoryLaundering,
			Status:            StatusBlocked,
			OriginExplanation: "Sudden velocity shift: Large deposit followed by multi-hop internal transfers to high-risk legacy accounts.",
			Signals:           Signals{Behavioral: 0.72, Temporal: 0.81, Network: 0.45},
			Timeline: []TimelineEvent{
				{ID: "ev-5", Timestamp: mustTime("2023-11-20T08:00:00Z"), Type: "DEPOSIT", Description: "Batch deposit of $12,500 across 4 payment methods", Importance: ImportanceHigh},
				{ID: "ev-6", Timestamp: mustTime("2023-11-20T09:30:00Z"), Type: "TRANSFER", Description: "Internal transfer to USR-8812 (High Risk)", Importance: ImportanceHigh},
			},
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID:                "ALT-8823",
			UserID:            "USR-4491",
			Username:          "crypto_newbie_01",
			RiskScore:         45,
			RiskLevel:         LevelMedium,
			Category:          CategoryStructuring,
			Status:            StatusMonitoring,
			OriginExplanation: "Sequence of sub-threshold deposits over 48 hours indicates possible deliberate limit avoidance (Structuring).",
			Signals:           Signals{Behavioral: 0.45, Temporal: 0.55, Network: 0.12},
			Timeline: []TimelineEvent{
				{ID: "ev-7", Timestamp: mustTime("2023-11-20T06:00:00Z"), Type: "DEPOSIT", Description: "Multiple deposits of $950 ($10k limit avoidance)", Importance: ImportanceMedium},
			},
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}
}
