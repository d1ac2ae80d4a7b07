// Package whisper provides an stt.Provider backed by a whisper.cpp-style
// inference HTTP server.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/shillcollin/voicepipe/internal/httpclient"
	"github.com/shillcollin/voicepipe/stt"
)

const (
	defaultBaseURL = "http://localhost:7070"
	defaultModel   = "small"
	defaultDevice  = "cpu"
)

// Client is a whisper-server STT provider. The server accepts a multipart
// "file" field and returns JSON with the transcript segments.
type Client struct {
	baseURL    string
	httpClient *http.Client
	model      string
	device     string
}

// Option configures a whisper client.
type Option func(*Client)

// WithBaseURL sets the inference server base URL.
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

// WithModel sets the default model size (tiny, base, small, medium, large).
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithDevice sets the inference placement (cpu, cuda).
func WithDevice(device string) Option {
	return func(c *Client) {
		c.device = device
	}
}

// New creates a new whisper client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpclient.New(),
		model:      defaultModel,
		device:     defaultDevice,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperResponse struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Segments []whisperSegment `json:"segments"`
}

// Transcribe implements stt.Provider.
func (c *Client) Transcribe(ctx context.Context, audio []byte, opts stt.Options) (*stt.Transcript, error) {
	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}

	// Multipart form with the audio under "file" plus inference selectors.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("whisper: create form file: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return nil, fmt.Errorf("whisper: write audio: %w", err)
	}
	_ = mw.WriteField("model", model)
	_ = mw.WriteField("device", c.device)
	if opts.Language != "" {
		_ = mw.WriteField("language", opts.Language)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("whisper: close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inference", &body)
	if err != nil {
		return nil, fmt.Errorf("whisper: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whisper: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper: unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var wr whisperResponse
	if err := json.Unmarshal(data, &wr); err != nil {
		return nil, fmt.Errorf("whisper: parse response: %w", err)
	}

	segments := make([]stt.Segment, 0, len(wr.Segments))
	for _, seg := range wr.Segments {
		segments = append(segments, stt.Segment{Text: seg.Text, Start: seg.Start, End: seg.End})
	}
	// Servers running without segment output return the flat transcript only.
	if len(segments) == 0 && strings.TrimSpace(wr.Text) != "" {
		segments = append(segments, stt.Segment{Text: wr.Text})
	}

	return &stt.Transcript{
		Segments: segments,
		Language: wr.Language,
		Model:    model,
		Provider: "whisper",
	}, nil
}

// Capabilities implements stt.Provider.
func (c *Client) Capabilities() stt.Capabilities {
	return stt.Capabilities{
		Provider:  "whisper",
		Models:    []string{"tiny", "base", "small", "medium", "large-v3"},
		Languages: []string{"en"},
	}
}
