package cfg

import (
	"errors"
	"flag"
	"fmt"
)

// Config adds console-specific configuration fields to the
// common cfg.Registerable and cfg.Validatable interfaces
type Config struct {
	DrainSeconds           int
	ShutdownBudgetSeconds  int
	APIPort                int
	ClaudeAPIKey           string
	ClaudeModel            string
	NarratorEndpoint       string
	SlackWebhookURL        string
	FeedIntervalMS         int
	StatsTickSeconds       int
	AnalysisTimeoutSeconds int
	FallbackDelayMS        int
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.ClaudeAPIKey, "claude-api-key", "", "API key for accessing the Claude LLM provider")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-5", "Claude model to use")
	fs.StringVar(&c.NarratorEndpoint, "narrator-endpoint", "", "TTS service endpoint for audio briefings (empty = briefings disabled)")
	fs.StringVar(&c.SlackWebhookURL, "slack-webhook-url", "", "Slack webhook URL for escalation notifications")
	fs.IntVar(&c.FeedIntervalMS, "feed-interval-ms", 2000, "cadence of the synthetic transaction feed in milliseconds (100..60000)")
	fs.IntVar(&c.StatsTickSeconds, "stats-tick-seconds", 5, "interval of the statistics jitter tick in seconds (1..300)")
	fs.IntVar(&c.AnalysisTimeoutSeconds, "analysis-timeout-seconds", 60, "budget for one analysis round-trip in seconds (1..600)")
	fs.IntVar(&c.FallbackDelayMS, "fallback-delay-ms", 1500, "fixed latency of the synthetic fallback analysis in milliseconds (0..60000)")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// Claude API key is required for LLM access
	if c.ClaudeAPIKey == "" {
		errs = append(errs, errors.New("CLAUDE_API_KEY is required"))
	}

	// Claude model is required for LLM access
	if c.ClaudeModel == "" {
		errs = append(errs, errors.New("CLAUDE_MODEL is required"))
	}

	if c.FeedIntervalMS < 100 || c.FeedIntervalMS > 60000 {
		errs = append(errs, fmt.Errorf("invalid FEED_INTERVAL_MS %d (must be 100..60000)", c.FeedIntervalMS))
	}
	if c.StatsTickSeconds <= 0 || c.StatsTickSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid STATS_TICK_SECONDS %d (must be 1..300)", c.StatsTickSeconds))
	}
	if c.AnalysisTimeoutSeconds <= 0 || c.AnalysisTimeoutSeconds > 600 {
		errs = append(errs, fmt.Errorf("invalid ANALYSIS_TIMEOUT_SECONDS %d (must be 1..600)", c.AnalysisTimeoutSeconds))
	}
	if c.FallbackDelayMS < 0 || c.FallbackDelayMS > 60000 {
		errs = append(errs, fmt.Errorf("invalid FALLBACK_DELAY_MS %d (must be 0..60000)", c.FallbackDelayMS))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
