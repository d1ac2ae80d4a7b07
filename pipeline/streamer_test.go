package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shillcollin/voicepipe/affect"
	"github.com/shillcollin/voicepipe/internal/testutil"
	"github.com/shillcollin/voicepipe/session"
	"github.com/shillcollin/voicepipe/tts"
)

// recordingChannel captures pushed payloads in order.
type recordingChannel struct {
	mu     sync.Mutex
	events []Event
}

func (c *recordingChannel) Send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, payload.(Event))
	return nil
}

func (c *recordingChannel) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func newStreamerForTest(t *testing.T, provider tts.Provider) (*Streamer, *session.Registry, string) {
	t.Helper()
	dir := t.TempDir()
	registry := session.NewRegistry()
	return NewStreamer(provider, registry, dir, "en-US-JennyNeural", nil), registry, dir
}

func TestStreamOrderedChunksAndDone(t *testing.T) {
	streamer, registry, dir := newStreamerForTest(t, testutil.NewMockTTS())

	ch := &recordingChannel{}
	registry.Connect("tok", ch)

	streamer.Stream(context.Background(), "tok",
		"First sentence here. Second sentence too! Third one as well.",
		affect.ProsodyFor(affect.ModeChillTalk))

	events := ch.Events()
	if len(events) != 4 {
		t.Fatalf("expected 3 chunks + done, got %d events: %v", len(events), events)
	}
	for i := 0; i < 3; i++ {
		if events[i].Event != EventAudioChunk {
			t.Fatalf("event %d: expected chunk, got %q", i, events[i].Event)
		}
		want := fmt.Sprintf("tok_chunk_%d.mp3", i)
		if events[i].Filename != want {
			t.Fatalf("event %d: filename %q, want %q", i, events[i].Filename, want)
		}
		if _, err := os.Stat(filepath.Join(dir, events[i].Filename)); err != nil {
			t.Fatalf("artifact missing: %v", err)
		}
	}
	if events[3].Event != EventAudioDone || events[3].Filename != "" {
		t.Fatalf("last event should be bare done, got %+v", events[3])
	}
}

func TestStreamSkipsNoAudioUnits(t *testing.T) {
	mock := testutil.NewMockTTS()
	mock.SynthesizeFunc = func(ctx context.Context, text string, opts tts.Options) (*tts.Audio, error) {
		if strings.Contains(text, "Second") {
			return nil, tts.ErrNoAudio
		}
		return &tts.Audio{Data: []byte("mp3"), Format: tts.FormatMP3}, nil
	}
	streamer, registry, _ := newStreamerForTest(t, mock)

	ch := &recordingChannel{}
	registry.Connect("tok", ch)

	streamer.Stream(context.Background(), "tok",
		"First sentence here. Second sentence too! Third one as well.",
		affect.ProsodyFor(affect.ModeChillTalk))

	events := ch.Events()
	if len(events) != 3 {
		t.Fatalf("expected 2 chunks + done, got %v", events)
	}
	// Indices follow sentence order; the skipped unit leaves a gap.
	if events[0].Filename != "tok_chunk_0.mp3" || events[1].Filename != "tok_chunk_2.mp3" {
		t.Fatalf("unexpected filenames: %v", events)
	}
	if events[2].Event != EventAudioDone {
		t.Fatalf("missing done event: %v", events)
	}
}

func TestStreamAppliesResolvedProsody(t *testing.T) {
	mock := testutil.NewMockTTS()
	streamer, registry, _ := newStreamerForTest(t, mock)
	registry.Connect("tok", &recordingChannel{})

	streamer.Stream(context.Background(), "tok",
		"Let's go get it done today!",
		affect.ProsodyFor(affect.ModeHypeSession))

	if len(mock.SynthesizeCalls) != 1 {
		t.Fatalf("expected one synthesis call, got %d", len(mock.SynthesizeCalls))
	}
	opts := mock.SynthesizeCalls[0].Opts
	if opts.Rate != "+10%" || opts.Pitch != "+2Hz" {
		t.Fatalf("prosody not applied: %+v", opts)
	}
	if opts.Voice != "en-US-JennyNeural" {
		t.Fatalf("voice not applied: %+v", opts)
	}
}

func TestStreamWithoutChannelStillWritesArtifacts(t *testing.T) {
	streamer, _, dir := newStreamerForTest(t, testutil.NewMockTTS())

	// No channel connected: pushes are dropped, synthesis continues.
	streamer.Stream(context.Background(), "ghost",
		"Nobody is listening right now.",
		affect.ProsodyFor(affect.ModeChillTalk))

	if _, err := os.Stat(filepath.Join(dir, "ghost_chunk_0.mp3")); err != nil {
		t.Fatalf("artifact should exist even without a channel: %v", err)
	}
}

func TestStreamSynthesisErrorSkipsUnit(t *testing.T) {
	streamer, registry, _ := newStreamerForTest(t, testutil.MockTTSWithError(context.DeadlineExceeded))

	ch := &recordingChannel{}
	registry.Connect("tok", ch)

	streamer.Stream(context.Background(), "tok",
		"This unit will fail loudly.",
		affect.ProsodyFor(affect.ModeChillTalk))

	events := ch.Events()
	if len(events) != 1 || events[0].Event != EventAudioDone {
		t.Fatalf("expected only the done event, got %v", events)
	}
}

func TestWriteArtifactLeavesNoTempFile(t *testing.T) {
	streamer, registry, dir := newStreamerForTest(t, testutil.NewMockTTS())
	registry.Connect("tok", &recordingChannel{})

	streamer.Stream(context.Background(), "tok",
		"A single sentence to synthesize.",
		affect.ProsodyFor(affect.ModeChillTalk))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
