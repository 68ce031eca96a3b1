// Package investigation owns the per-selection analysis session: the
// lifecycle of requesting and holding an AI-generated analysis for one
// selected alert. It defines the Session state machine (dispatch, retry,
// synthetic fallback, briefing playback), the Analyzer boundary contract,
// and the analysis result model.
package investigation
