// Package claude adapts the Anthropic Messages API to the investigation
// Analyzer boundary. One selection maps to exactly one request; retries
// are analyst-initiated, never internal.
package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/linnemanlabs/sentinel/internal/alert"
	"github.com/linnemanlabs/sentinel/internal/investigation"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5"

const maxTokens = 2048

// Client calls the Claude Messages API and parses the mandated JSON
// briefing schema out of the response text.
type Client struct {
	api   anthropic.Client
	model anthropic.Model
}

// New creates a client for the given API key and model name. An empty
// model selects DefaultModel. Extra request options are passed through to
// the SDK, which lets tests point the client at a local server.
func New(apiKey, model string, opts ...option.RequestOption) *Client {
	if model == "" {
		model = DefaultModel
	}
	all := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		// session-level retry is an analyst action, keep the SDK single-shot
		option.WithMaxRetries(0),
	}, opts...)
	return &Client{
		api:   anthropic.NewClient(all...),
		model: anthropic.Model(model),
	}
}

// Analyze sends one analysis request for the alert and returns the parsed
// result. Failures are normalized into investigation.AnalysisError: HTTP
// 429 becomes rate_limited, schema violations become malformed_response,
// and everything else is a service error.
func (c *Client) Analyze(ctx context.Context, al *alert.Alert) (*investigation.Result, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: investigation.SystemInstructions},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(investigation.BuildPrompt(al))),
		},
	})
	if err != nil {
		return nil, classifyRequestError(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := stripFences(sb.String())
	if text == "" {
		return nil, &investigation.AnalysisError{
			Kind:    investigation.FailMalformed,
			Message: "empty response from analysis service",
		}
	}

	var res investigation.Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return nil, &investigation.AnalysisError{
			Kind:    investigation.FailMalformed,
			Message: "analysis response is not valid JSON: " + err.Error(),
		}
	}
	if err := res.Validate(); err != nil {
		return nil, &investigation.AnalysisError{
			Kind:    investigation.FailMalformed,
			Message: err.Error(),
		}
	}
	res.Synthetic = false
	return &res, nil
}

func classifyRequestError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == http.StatusTooManyRequests {
			return &investigation.AnalysisError{
				Kind:    investigation.FailRateLimited,
				Message: "analysis service rate limit exceeded",
			}
		}
		return &investigation.AnalysisError{
			Kind:    investigation.FailService,
			Message: apierr.Error(),
		}
	}
	return &investigation.AnalysisError{
		Kind:    investigation.FailService,
		Message: err.Error(),
	}
}

// stripFences tolerates models that wrap the JSON in a markdown code
// fence despite the instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
