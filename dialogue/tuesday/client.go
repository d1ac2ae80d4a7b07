// Package tuesday provides a dialogue.Engine backed by a Tuesday dialogue
// engine HTTP server.
package tuesday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shillcollin/voicepipe/dialogue"
	"github.com/shillcollin/voicepipe/internal/httpclient"
)

const defaultBaseURL = "http://localhost:8600"

// Client talks to a Tuesday engine server exposing POST /generate and
// POST /reset.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the engine server base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a new Tuesday engine client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpclient.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Response   string  `json:"response"`
	Mode       string  `json:"mode"`
	Confidence float64 `json:"confidence"`
}

// Generate implements dialogue.Engine.
func (c *Client) Generate(ctx context.Context, userText string) (*dialogue.Result, error) {
	body, err := json.Marshal(generateRequest{Text: userText})
	if err != nil {
		return nil, fmt.Errorf("tuesday: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tuesday: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tuesday: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tuesday: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tuesday: unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return nil, fmt.Errorf("tuesday: parse response: %w", err)
	}

	return &dialogue.Result{
		Reply:      gr.Response,
		Mode:       gr.Mode,
		Confidence: gr.Confidence,
	}, nil
}

// ClearMemory implements dialogue.Engine.
func (c *Client) ClearMemory(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reset", nil)
	if err != nil {
		return fmt.Errorf("tuesday: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tuesday: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tuesday: unexpected status %d: %s", resp.StatusCode, string(data))
	}
	return nil
}
