// Package stt provides Speech-to-Text provider interfaces and types.
package stt

import (
	"context"
	"strings"
)

// Provider is the interface for speech-to-text providers. Input is always
// the canonical waveform produced by the audio normalizer: mono 16 kHz
// signed 16-bit PCM.
type Provider interface {
	// Transcribe converts audio bytes into an ordered sequence of
	// transcript segments.
	Transcribe(ctx context.Context, audio []byte, opts Options) (*Transcript, error)

	// Capabilities returns the provider's capabilities.
	Capabilities() Capabilities
}

// Capabilities describes the features supported by an STT provider.
type Capabilities struct {
	Provider  string   // Provider identifier (e.g., "whisper")
	Models    []string // Available model sizes
	Languages []string // Supported language codes
}

// Options configures a transcription request.
type Options struct {
	Model    string         // Model-size selector (e.g., "small")
	Language string         // Language code (e.g., "en")
	Custom   map[string]any // Provider-specific options
}

// Segment is one ordered piece of a transcription.
type Segment struct {
	Text  string  // Segment text
	Start float64 // Start time in seconds (0 if unknown)
	End   float64 // End time in seconds (0 if unknown)
}

// Transcript is a transcription result: an ordered sequence of segments.
type Transcript struct {
	Segments []Segment // Ordered segments
	Language string    // Detected/used language
	Model    string    // Model used
	Provider string    // Provider used
}

// Text joins the segment texts with single spaces and trims the result.
// An empty transcript yields the empty string.
func (t *Transcript) Text() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if s := strings.TrimSpace(seg.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Option is a functional option for configuring transcription requests.
type Option func(*Options)

// Apply applies all options to the Options struct.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithModel sets the STT model size to use.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithLanguage sets the language for transcription.
func WithLanguage(lang string) Option {
	return func(o *Options) {
		o.Language = lang
	}
}

// WithCustomOption sets a provider-specific option.
func WithCustomOption(key string, value any) Option {
	return func(o *Options) {
		if o.Custom == nil {
			o.Custom = make(map[string]any)
		}
		o.Custom[key] = value
	}
}
