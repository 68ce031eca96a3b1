package investigation

import "fmt"

// NetworkSignal is one linkage indicator in the network-analysis block.
type NetworkSignal struct {
	Type      string `json:"type"`
	Detail    string `json:"detail"`
	Relevance string `json:"relevance"`
}

// NetworkAnalysis summarizes graph-linkage findings.
type NetworkAnalysis struct {
	Summary string          `json:"summary"`
	Signals []NetworkSignal `json:"signals"`
}

// Result is the structured analysis for one investigation. It is owned by
// the session that created it and replaced wholesale on re-analysis, never
// merged.
type Result struct {
	Reasoning           string           `json:"reasoning"`
	BehavioralDeviation string           `json:"behavioralDeviation"`
	FraudAlignment      string           `json:"fraudAlignment"`
	Evidence            []string         `json:"evidence"`
	BenignExplanations  string           `json:"benignExplanations"`
	Urgency             string           `json:"urgency"` // open set: Immediate / High / Routine
	NextSteps           string           `json:"nextSteps"`
	SARDraft            string           `json:"sarDraft"`
	NetworkAnalysis     *NetworkAnalysis `json:"networkAnalysis,omitempty"`

	// Synthetic marks a locally generated fallback result.
	Synthetic bool `json:"synthetic,omitempty"`
}

// Validate checks that the mandated response keys are populated.
func (r *Result) Validate() error {
	required := map[string]string{
		"reasoning":           r.Reasoning,
		"behavioralDeviation": r.BehavioralDeviation,
		"fraudAlignment":      r.FraudAlignment,
		"benignExplanations":  r.BenignExplanations,
		"urgency":             r.Urgency,
		"nextSteps":           r.NextSteps,
		"sarDraft":            r.SARDraft,
	}
	for key, v := range required {
		if v == "" {
			return fmt.Errorf("missing required key %q", key)
		}
	}
	if r.Evidence == nil {
		return fmt.Errorf("missing required key %q", "evidence")
	}
	return nil
}

// Clone returns a deep copy of the result.
func (r *Result) Clone() *Result {
	cp := *r
	cp.Evidence = append([]string(nil), r.Evidence...)
	if r.NetworkAnalysis != nil {
		na := *r.NetworkAnalysis
		na.Signals = append([]NetworkSignal(nil), r.NetworkAnalysis.Signals...)
		cp.NetworkAnalysis = &na
	}
	return &cp
}
