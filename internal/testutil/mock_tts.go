package testutil

import (
	"context"

	"github.com/shillcollin/voicepipe/tts"
)

// MockTTSProvider is a mock TTS provider for testing.
type MockTTSProvider struct {
	// SynthesizeFunc allows customizing the synthesize behavior.
	SynthesizeFunc func(ctx context.Context, text string, opts tts.Options) (*tts.Audio, error)

	// Track calls for assertions.
	SynthesizeCalls []SynthesizeCall
}

// SynthesizeCall records a call to Synthesize.
type SynthesizeCall struct {
	Text string
	Opts tts.Options
}

// NewMockTTS creates a new mock TTS provider producing fake audio sized to
// the input text.
func NewMockTTS() *MockTTSProvider {
	return &MockTTSProvider{}
}

// Synthesize implements tts.Provider.
func (m *MockTTSProvider) Synthesize(ctx context.Context, text string, opts tts.Options) (*tts.Audio, error) {
	m.SynthesizeCalls = append(m.SynthesizeCalls, SynthesizeCall{Text: text, Opts: opts})

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, opts)
	}

	data := make([]byte, len(text)*10)
	for i := range data {
		data[i] = byte(i % 256)
	}
	return &tts.Audio{
		Data:     data,
		Format:   tts.FormatMP3,
		Voice:    opts.Voice,
		Provider: "mock",
	}, nil
}

// Voices implements tts.Provider.
func (m *MockTTSProvider) Voices() []tts.Voice {
	return []tts.Voice{{ID: "default", Name: "Default Voice", Language: "en", Gender: "neutral"}}
}

// Capabilities implements tts.Provider.
func (m *MockTTSProvider) Capabilities() tts.Capabilities {
	return tts.Capabilities{
		Provider:  "mock",
		Voices:    m.Voices(),
		Languages: []string{"en"},
		Prosody:   true,
	}
}

// MockTTSWithError creates a mock that returns an error for every unit.
func MockTTSWithError(err error) *MockTTSProvider {
	return &MockTTSProvider{
		SynthesizeFunc: func(ctx context.Context, text string, opts tts.Options) (*tts.Audio, error) {
			return nil, err
		},
	}
}
