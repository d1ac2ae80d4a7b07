// Command voicepiped runs the voice conversation pipeline server.
//
// Configuration comes from an optional YAML file (-config) and environment
// variables; a .env file is loaded when present.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/shillcollin/voicepipe/audio"
	"github.com/shillcollin/voicepipe/config"
	"github.com/shillcollin/voicepipe/dialogue/tuesday"
	"github.com/shillcollin/voicepipe/internal/pool"
	"github.com/shillcollin/voicepipe/obs"
	"github.com/shillcollin/voicepipe/pipeline"
	"github.com/shillcollin/voicepipe/sanitize"
	"github.com/shillcollin/voicepipe/server"
	"github.com/shillcollin/voicepipe/session"
	"github.com/shillcollin/voicepipe/stt"
	"github.com/shillcollin/voicepipe/tts"

	// Provider self-registration.
	_ "github.com/shillcollin/voicepipe/stt/whisper"
	_ "github.com/shillcollin/voicepipe/tts/edge"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "voicepiped:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("VOICEPIPE_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownObs, err := obs.Init(ctx, obs.Options{
		ServiceName:    "voicepipe",
		DisableTracing: os.Getenv("VOICEPIPE_TRACE") == "",
	})
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	if err := os.MkdirAll(cfg.TmpDir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	sttProvider, err := stt.NewProvider(cfg.STT.Provider, stt.ProviderConfig{
		BaseURL: cfg.STT.BaseURL,
		Model:   cfg.STT.Model,
		Device:  cfg.Device,
	})
	if err != nil {
		return err
	}

	ttsProvider, err := tts.NewProvider(cfg.TTS.Provider, tts.ProviderConfig{
		BaseURL: cfg.TTS.BaseURL,
		Voice:   cfg.Voice,
	})
	if err != nil {
		return err
	}

	var engineOpts []tuesday.Option
	if cfg.Dialogue.BaseURL != "" {
		engineOpts = append(engineOpts, tuesday.WithBaseURL(cfg.Dialogue.BaseURL))
	}
	engine := tuesday.New(engineOpts...)

	registry := session.NewRegistry()
	workers := pool.New(cfg.Workers, cfg.Workers*4)
	defer workers.Close()

	streamer := pipeline.NewStreamer(ttsProvider, registry, cfg.TmpDir, cfg.Voice, logger)

	pipe := pipeline.New(pipeline.Config{
		Normalizer: audio.NewNormalizer(),
		STT:        sttProvider,
		Engine:     engine,
		Sanitizer:  sanitize.New(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Streamer:   streamer,
		Workers:    workers,
		TmpDir:     cfg.TmpDir,
		STTOptions: stt.Options{Model: cfg.STT.Model},
		Logger:     logger,
	})

	srv := server.New(server.Config{
		Addr:     cfg.Addr,
		Pipeline: pipe,
		Registry: registry,
		AudioDir: cfg.TmpDir,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Warn("server shutdown", "error", err)
		}
		return shutdownObs(shCtx)
	})

	return g.Wait()
}
