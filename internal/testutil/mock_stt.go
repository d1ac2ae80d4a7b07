package testutil

import (
	"context"

	"github.com/shillcollin/voicepipe/stt"
)

// MockSTTProvider is a mock STT provider for testing.
type MockSTTProvider struct {
	// TranscribeFunc allows customizing the transcribe behavior.
	TranscribeFunc func(ctx context.Context, audio []byte, opts stt.Options) (*stt.Transcript, error)

	// DefaultText is returned as a single segment for simple tests. Leave
	// empty to simulate silence.
	DefaultText string

	// Track calls for assertions.
	TranscribeCalls []TranscribeCall
}

// TranscribeCall records a call to Transcribe.
type TranscribeCall struct {
	Audio []byte
	Opts  stt.Options
}

// NewMockSTT creates a new mock STT provider.
func NewMockSTT(text string) *MockSTTProvider {
	return &MockSTTProvider{DefaultText: text}
}

// Transcribe implements stt.Provider.
func (m *MockSTTProvider) Transcribe(ctx context.Context, audio []byte, opts stt.Options) (*stt.Transcript, error) {
	m.TranscribeCalls = append(m.TranscribeCalls, TranscribeCall{Audio: audio, Opts: opts})

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, opts)
	}

	t := &stt.Transcript{Model: opts.Model, Provider: "mock"}
	if m.DefaultText != "" {
		t.Segments = []stt.Segment{{Text: m.DefaultText}}
	}
	return t, nil
}

// Capabilities implements stt.Provider.
func (m *MockSTTProvider) Capabilities() stt.Capabilities {
	return stt.Capabilities{
		Provider:  "mock",
		Models:    []string{"small"},
		Languages: []string{"en"},
	}
}
