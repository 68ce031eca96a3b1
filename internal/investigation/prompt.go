package investigation

import (
	"fmt"
	"strings"
	"time"

	"github.com/linnemanlabs/sentinel/internal/alert"
)

// SystemInstructions is the fixed system prompt describing the five-part
// reasoning framework and the mandated JSON response shape.
const SystemInstructions = `You are Sentinel AI, a world-class Financial Crime Intelligence Investigator.
Your goal is to analyze transaction data, ML anomaly scores, and network graph signals to provide high-quality investigation summaries.

REASONING FRAMEWORK:
1. Behavioral: Is this account acting differently from its historical norm? (Behavioral Deviation)
2. Temporal: Is there a suspicious sequence of events?
3. Typology: How does this align with known fraud or laundering patterns? (Fraud Alignment)
4. Network: Are there shared devices, IPs, or coordinated trades?
5. Risk: What is the final urgency?

TONE: Professional, regulator-ready, objective, evidence-based.
Avoid accusations; use phrases like "Activity is consistent with..." or "Patterns suggest possible...".

OUTPUT STRUCTURE (JSON):
{
  "reasoning": "High-level summary for the analyst.",
  "behavioralDeviation": "Detailed description of how the user's current behavior deviates from their baseline or peer group.",
  "fraudAlignment": "Analysis of how this behavior matches specific, known fraud or laundering typologies.",
  "evidence": ["Evidence 1", "Evidence 2"],
  "benignExplanations": "Logical, non-suspicious alternatives for this activity.",
  "urgency": "Immediate / High / Routine",
  "nextSteps": "Concise instruction for the human analyst.",
  "sarDraft": "A regulatory-ready draft narrative for a Suspicious Activity Report (SAR)."
}

IMPORTANT: Return ONLY valid JSON. No markdown formatting, no backticks.`

// BuildPrompt renders the structured analysis payload for one alert,
// embedding its identity, scores, category, status, and full timeline.
func BuildPrompt(al *alert.Alert) string {
	var timeline strings.Builder
	for i, e := range al.Timeline {
		if i > 0 {
			timeline.WriteString("\n")
		}
		fmt.Fprintf(&timeline, "[%s] %s: %s (Importance: %s)",
			e.Timestamp.Format(time.RFC3339), e.Type, e.Description, e.Importance)
	}

	return fmt.Sprintf(`Analyze the following financial alert and provide a regulator-ready investigation briefing.

Alert ID: %s
User: %s (ID: %s)
Risk Level: %s
Risk Score (Confidence): %d
Category: %s
Status: %s

ML SIGNALS:
- Behavioral Anomaly Score: %g
- Sequence/Temporal Score: %g
- Network Linkage Score: %g

TIMELINE:
%s

REQUIREMENT: Provide a deep analysis of behavioral deviation and alignment with known fraud typologies.
Specifically, explain the network linkage signals and how they suggest coordinated activity.`,
		al.ID,
		al.Username, al.UserID,
		al.RiskLevel,
		al.RiskScore,
		al.Category,
		al.Status,
		al.Signals.Behavioral,
		al.Signals.Temporal,
		al.Signals.Network,
		timeline.String(),
	)
}
