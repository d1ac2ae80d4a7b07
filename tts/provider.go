// Package tts provides Text-to-Speech provider interfaces and types.
package tts

import (
	"context"
	"errors"
)

// ErrNoAudio is returned by Synthesize when the engine legitimately produces
// no audio for the input (degenerate text such as bare punctuation). Callers
// streaming sentence units skip the unit and continue.
var ErrNoAudio = errors.New("tts: no audio produced")

// Provider is the interface for text-to-speech providers.
type Provider interface {
	// Synthesize converts text to encoded audio using the given prosody.
	Synthesize(ctx context.Context, text string, opts Options) (*Audio, error)

	// Voices returns available voices for this provider.
	Voices() []Voice

	// Capabilities returns the provider's capabilities.
	Capabilities() Capabilities
}

// Capabilities describes the features supported by a TTS provider.
type Capabilities struct {
	Provider  string   // Provider identifier (e.g., "edge")
	Voices    []Voice  // Available voices
	Languages []string // Supported language codes
	Prosody   bool     // Supports rate/pitch deltas
}

// Options configures a synthesis request. Rate and Pitch are signed deltas
// in the engine's own notation ("+10%", "-2Hz"); empty means no adjustment.
type Options struct {
	Voice  string      // Voice identifier (e.g., "en-US-JennyNeural")
	Rate   string      // Speech rate delta
	Pitch  string      // Pitch delta
	Format AudioFormat // Output audio format
}

// Voice represents an available voice.
type Voice struct {
	ID       string // Unique voice identifier
	Name     string // Display name
	Language string // Primary language code (e.g., "en-US")
	Gender   string // "male", "female", or "neutral"
}

// Audio represents synthesized audio.
type Audio struct {
	Data     []byte      // Encoded audio bytes
	Format   AudioFormat // Audio format
	Voice    string      // Voice used
	Provider string      // Provider used
}

// AudioFormat specifies the audio output format.
type AudioFormat string

const (
	FormatMP3 AudioFormat = "mp3"
	FormatWAV AudioFormat = "wav"
	FormatPCM AudioFormat = "pcm"
	FormatOGG AudioFormat = "ogg"
)

// Option is a functional option for configuring TTS requests.
type Option func(*Options)

// Apply applies all options to the Options struct.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithVoice sets the voice to use for synthesis.
func WithVoice(voice string) Option {
	return func(o *Options) {
		o.Voice = voice
	}
}

// WithRate sets the speech rate delta.
func WithRate(rate string) Option {
	return func(o *Options) {
		o.Rate = rate
	}
}

// WithPitch sets the pitch delta.
func WithPitch(pitch string) Option {
	return func(o *Options) {
		o.Pitch = pitch
	}
}

// WithFormat sets the output audio format.
func WithFormat(format AudioFormat) Option {
	return func(o *Options) {
		o.Format = format
	}
}
