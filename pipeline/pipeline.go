package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shillcollin/voicepipe/affect"
	"github.com/shillcollin/voicepipe/audio"
	"github.com/shillcollin/voicepipe/dialogue"
	"github.com/shillcollin/voicepipe/internal/pool"
	"github.com/shillcollin/voicepipe/obs"
	"github.com/shillcollin/voicepipe/sanitize"
	"github.com/shillcollin/voicepipe/stt"
)

// Fallback reply when no speech is heard, or when the dialogue engine
// itself fails. The dialogue engine is never called with an empty
// transcript.
const (
	fallbackReply = "i couldn't hear you clearly."
	fallbackMode  = affect.ModeGentleCheck
)

// TalkResult is the synchronous portion of a voice turn, returned before
// any audio is produced.
type TalkResult struct {
	UserText     string
	AIText       string
	Mode         affect.Mode
	ProcessingMS int64
}

// Pipeline runs the per-request control flow and owns artifact cleanup.
type Pipeline struct {
	normalizer *audio.Normalizer
	stt        stt.Provider
	engine     dialogue.Engine
	sanitizer  *sanitize.Sanitizer
	streamer   *Streamer
	workers    *pool.Pool
	tmpDir     string
	sttOpts    stt.Options
	logger     *slog.Logger
}

// Config assembles a Pipeline from its collaborators.
type Config struct {
	Normalizer *audio.Normalizer
	STT        stt.Provider
	Engine     dialogue.Engine
	Sanitizer  *sanitize.Sanitizer
	Streamer   *Streamer
	Workers    *pool.Pool
	TmpDir     string
	STTOptions stt.Options
	Logger     *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		normalizer: cfg.Normalizer,
		stt:        cfg.STT,
		engine:     cfg.Engine,
		sanitizer:  cfg.Sanitizer,
		streamer:   cfg.Streamer,
		workers:    cfg.Workers,
		tmpDir:     cfg.TmpDir,
		sttOpts:    cfg.STTOptions,
		logger:     logger,
	}
}

// Talk runs one voice turn for the session token. The returned result is
// available as soon as the reply text is resolved; chunked audio delivery
// continues asynchronously over the session's channel. A transcode failure
// is returned as a *audio.TranscodeError.
//
// The uploaded and normalized files are removed on every exit path,
// including the transcode-failure path.
func (p *Pipeline) Talk(ctx context.Context, token string, upload io.Reader) (*TalkResult, error) {
	start := time.Now()
	logger := p.logger.With("session_id", token)

	rawPath := filepath.Join(p.tmpDir, token+".webm")
	wavPath := filepath.Join(p.tmpDir, token+".wav")
	defer p.cleanup(rawPath, wavPath)

	if err := saveUpload(rawPath, upload); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	if err := p.workers.Do(ctx, func(ctx context.Context) error {
		return p.normalizer.Normalize(ctx, rawPath, wavPath)
	}); err != nil {
		return nil, err
	}

	wav, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, fmt.Errorf("read normalized audio: %w", err)
	}

	var transcript *stt.Transcript
	if err := p.workers.Do(ctx, func(ctx context.Context) error {
		var terr error
		transcript, terr = p.stt.Transcribe(ctx, wav, p.sttOpts)
		return terr
	}); err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	userText := transcript.Text()
	result := p.dialogueResult(ctx, logger, userText)
	resolved := affect.Resolve(result)
	spoken := p.sanitizer.Sanitize(resolved.Reply, resolved.Mode)

	// The synchronous response is complete; audio streams in the
	// background and is not awaited by the request cycle.
	go p.streamer.Stream(context.WithoutCancel(ctx), token, spoken, resolved.Prosody)

	elapsed := time.Since(start)
	obs.RecordTalk(resolved.Mode.String(), float64(elapsed.Milliseconds()))
	logger.Info("talk resolved",
		"mode", resolved.Mode,
		"user_text_len", len(userText),
		"processing_ms", elapsed.Milliseconds(),
	)

	return &TalkResult{
		UserText:     userText,
		AIText:       resolved.Reply,
		Mode:         resolved.Mode,
		ProcessingMS: elapsed.Milliseconds(),
	}, nil
}

// dialogueResult consults the dialogue engine for non-empty utterances. An
// empty transcript never reaches the engine; an engine failure degrades to
// the same fallback rather than failing the request.
func (p *Pipeline) dialogueResult(ctx context.Context, logger *slog.Logger, userText string) dialogue.Result {
	fallback := dialogue.Result{Reply: fallbackReply, Mode: fallbackMode.String(), Confidence: 1}

	if userText == "" {
		return fallback
	}

	result, err := p.engine.Generate(ctx, userText)
	if err != nil {
		logger.Warn("dialogue engine failed, using fallback reply", "error", err)
		return fallback
	}
	return *result
}

// Reset clears the dialogue engine's conversation memory.
func (p *Pipeline) Reset(ctx context.Context) error {
	return p.engine.ClearMemory(ctx)
}

// cleanup unlinks transient request artifacts, tolerating files that were
// never created.
func (p *Pipeline) cleanup(paths ...string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			p.logger.Warn("cleanup failed", "path", path, "error", err)
		}
	}
}

func saveUpload(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
