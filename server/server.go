// Package server exposes the voice pipeline over HTTP: the synchronous
// /talk endpoint, the per-session WebSocket delivery channel, and static
// serving of the audio artifact directory.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shillcollin/voicepipe/pipeline"
	"github.com/shillcollin/voicepipe/session"
)

// Server wires HTTP handlers to the pipeline and session registry.
type Server struct {
	pipeline *pipeline.Pipeline
	registry *session.Registry
	audioDir string
	upgrader websocket.Upgrader
	logger   *slog.Logger

	httpServer *http.Server
}

// Config configures a Server.
type Config struct {
	Addr     string
	Pipeline *pipeline.Pipeline
	Registry *session.Registry
	AudioDir string
	Logger   *slog.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		pipeline: cfg.Pipeline,
		registry: cfg.Registry,
		audioDir: cfg.AudioDir,
		upgrader: websocket.Upgrader{
			// Browser clients connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHealth)
	mux.HandleFunc("POST /talk", s.handleTalk)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /ws/{session_id}", s.handleWS)
	mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(cfg.AudioDir))))

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// ListenAndServe runs the server until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// cors allows any origin; the pipeline serves browser clients on other
// hosts during development.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
