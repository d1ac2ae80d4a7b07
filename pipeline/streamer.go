package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shillcollin/voicepipe/affect"
	"github.com/shillcollin/voicepipe/obs"
	"github.com/shillcollin/voicepipe/session"
	"github.com/shillcollin/voicepipe/tts"
)

// Streamer synthesizes a reply sentence by sentence and announces each
// finished artifact on the session's delivery channel, in source order.
type Streamer struct {
	tts      tts.Provider
	registry *session.Registry
	dir      string
	voice    string
	logger   *slog.Logger
}

// NewStreamer creates a Streamer writing artifacts into dir.
func NewStreamer(provider tts.Provider, registry *session.Registry, dir, voice string, logger *slog.Logger) *Streamer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Streamer{
		tts:      provider,
		registry: registry,
		dir:      dir,
		voice:    voice,
		logger:   logger,
	}
}

// Stream synthesizes text with the given prosody and pushes one chunk event
// per finished unit, then exactly one done event. Units the engine produces
// no audio for are skipped silently. Pushes to a disconnected session are
// dropped; the stream still runs to completion so artifacts exist for a
// late-connecting client.
//
// Chunk i for a stream is never announced before chunk i-1: synthesis is
// sequential in sentence order.
func (s *Streamer) Stream(ctx context.Context, token, text string, prosody affect.Prosody) {
	logger := s.logger.With("session_id", token)

	for i, unit := range SplitSentences(text) {
		audio, err := s.tts.Synthesize(ctx, unit, tts.Options{
			Voice: s.voice,
			Rate:  prosody.Rate,
			Pitch: prosody.Pitch,
		})
		if err != nil {
			if errors.Is(err, tts.ErrNoAudio) {
				continue
			}
			logger.Warn("chunk synthesis failed, skipping unit", "index", i, "error", err)
			continue
		}

		filename := fmt.Sprintf("%s_chunk_%d.mp3", token, i)
		if err := s.writeArtifact(filename, audio.Data); err != nil {
			logger.Warn("chunk write failed, skipping unit", "index", i, "error", err)
			continue
		}
		obs.RecordChunk()

		delivered := s.registry.Push(token, Event{Event: EventAudioChunk, Filename: filename})
		obs.RecordPush(delivered)
	}

	delivered := s.registry.Push(token, Event{Event: EventAudioDone})
	obs.RecordPush(delivered)
	logger.Debug("stream finished")
}

// writeArtifact writes to a temporary name and renames into place, so a
// reader never observes a partially written file at the final path.
func (s *Streamer) writeArtifact(filename string, data []byte) error {
	final := filepath.Join(s.dir, filename)
	tmp := final + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, final)
}
