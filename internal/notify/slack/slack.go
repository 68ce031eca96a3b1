// Package slack posts escalation documents to Slack via incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/sentinel/internal/alert"
	"github.com/linnemanlabs/sentinel/internal/report"
)

const (
	maxNarrativeLen = 3000
	httpTimeout     = 10 * time.Second
)

// Notifier sends escalation documents to a Slack webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

// New creates a new Slack notifier. If webhookURL is empty, Send is a no-op.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: httpTimeout},
	}
}

// Send posts an escalation document to the configured Slack webhook.
// If no webhook URL is configured, it returns nil immediately.
func (n *Notifier) Send(ctx context.Context, doc *report.Document) error {
	if n.webhookURL == "" {
		return nil
	}

	msg := buildMessage(doc)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func buildMessage(d *report.Document) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			headerBlock(d),
			{"type": "divider"},
			fieldsBlock(d),
			{"type": "divider"},
			narrativeBlock(d),
			{"type": "divider"},
			contextBlock(d),
		},
	}
}

func headerBlock(d *report.Document) map[string]any {
	text := fmt.Sprintf("%s Escalation: %s", levelEmoji(d.RiskLevel), d.AlertID)

	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type": "plain_text",
			"text": text,
		},
	}
}

func fieldsBlock(d *report.Document) map[string]any {
	source := "live analysis"
	if d.Synthetic {
		source = "synthetic fallback"
	}

	fields := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Subject:* %s", d.Username),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Risk:* %d (%s)", d.RiskScore, d.RiskLevel),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Category:* %s", d.Category),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Urgency:* %s", d.Urgency),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Source:* %s", source),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Evidence items:* %d", len(d.Evidence)),
		},
	}

	return map[string]any{
		"type":   "section",
		"fields": fields,
	}
}

func narrativeBlock(d *report.Document) map[string]any {
	text := truncate(d.Narrative, maxNarrativeLen)
	if text == "" {
		text = "_No narrative available._"
	}

	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*SAR Narrative*\n\n%s", text),
		},
	}
}

func contextBlock(d *report.Document) map[string]any {
	elements := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("sentinel • %s • %s", d.ID, d.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")),
		},
	}

	return map[string]any{
		"type":     "context",
		"elements": elements,
	}
}

func levelEmoji(level alert.RiskLevel) string {
	switch level {
	case alert.LevelCritical:
		return "\U0001f534" // red circle
	case alert.LevelHigh:
		return "\U0001f7e0" // orange circle
	case alert.LevelMedium:
		return "\U0001f7e1" // yellow circle
	default:
		return "\U0001f7e2" // green circle
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
