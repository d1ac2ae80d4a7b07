// Package edge provides a tts.Provider backed by an edge-tts bridge server.
//
// The bridge accepts JSON {text, voice, rate, pitch} and returns encoded MP3
// bytes, or 204 No Content when the engine produced no audio for the input.
package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shillcollin/voicepipe/internal/httpclient"
	"github.com/shillcollin/voicepipe/tts"
)

const (
	defaultBaseURL = "http://localhost:7071"
	defaultVoice   = "en-US-JennyNeural"
)

// Client is an edge-tts bridge TTS provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	voice      string
}

// Option configures an edge client.
type Option func(*Client)

// WithBaseURL sets the bridge server base URL.
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

// WithVoice sets the default voice.
func WithVoice(voice string) Option {
	return func(c *Client) {
		c.voice = voice
	}
}

// New creates a new edge client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpclient.New(),
		voice:      defaultVoice,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Rate  string `json:"rate,omitempty"`
	Pitch string `json:"pitch,omitempty"`
}

// Synthesize implements tts.Provider.
func (c *Client) Synthesize(ctx context.Context, text string, opts tts.Options) (*tts.Audio, error) {
	voice := opts.Voice
	if voice == "" {
		voice = c.voice
	}

	body, err := json.Marshal(synthesizeRequest{
		Text:  text,
		Voice: voice,
		Rate:  opts.Rate,
		Pitch: opts.Pitch,
	})
	if err != nil {
		return nil, fmt.Errorf("edge: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("edge: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("edge: request failed: %w", err)
	}
	defer resp.Body.Close()

	// The engine reports degenerate input (no speakable content) as 204.
	if resp.StatusCode == http.StatusNoContent {
		return nil, tts.ErrNoAudio
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("edge: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edge: unexpected status %d: %s", resp.StatusCode, string(data))
	}
	if len(data) == 0 {
		return nil, tts.ErrNoAudio
	}

	return &tts.Audio{
		Data:     data,
		Format:   tts.FormatMP3,
		Voice:    voice,
		Provider: "edge",
	}, nil
}

// Voices implements tts.Provider.
func (c *Client) Voices() []tts.Voice {
	return []tts.Voice{
		{ID: "en-US-JennyNeural", Name: "Jenny", Language: "en-US", Gender: "female"},
		{ID: "en-US-GuyNeural", Name: "Guy", Language: "en-US", Gender: "male"},
		{ID: "en-GB-SoniaNeural", Name: "Sonia", Language: "en-GB", Gender: "female"},
	}
}

// Capabilities implements tts.Provider.
func (c *Client) Capabilities() tts.Capabilities {
	return tts.Capabilities{
		Provider:  "edge",
		Voices:    c.Voices(),
		Languages: []string{"en-US", "en-GB"},
		Prosody:   true,
	}
}
