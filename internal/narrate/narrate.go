// Package narrate is the boundary to the optional audio-briefing service.
// Narration is supplementary: every failure degrades to "no audio" at the
// session layer, never an error surfaced to the analyst.
package narrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider generates narrated audio for a briefing text. It returns the
// base64-encoded little-endian 16-bit PCM payload, or an empty string when
// narration is unsupported.
type Provider interface {
	Briefing(ctx context.Context, text string) (string, error)
}

// Disabled is a Provider that reports narration as unsupported.
type Disabled struct{}

// Briefing always returns no audio.
func (Disabled) Briefing(context.Context, string) (string, error) { return "", nil }

// Client calls an HTTP narration endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a narration client for the given endpoint.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type briefingRequest struct {
	Text       string `json:"text"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

type briefingResponse struct {
	Audio string `json:"audio"` // base64 pcm16le, empty if unsupported
}

// Briefing requests narrated audio for the given text.
func (c *Client) Briefing(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(briefingRequest{Text: text, SampleRate: 24000, Channels: 1})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("narration api error %d: %s", resp.StatusCode, string(respBody))
	}

	var out briefingResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return out.Audio, nil
}
