package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/shillcollin/voicepipe/audio"
)

type talkResponse struct {
	UserText     string `json:"user_text"`
	AIText       string `json:"ai_text"`
	Mode         string `json:"mode"`
	ProcessingMS int64  `json:"processing_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "voicepipe"})
}

// handleTalk accepts a multipart audio upload and responds with the
// transcript and resolved reply as soon as they are known; synthesized
// audio follows asynchronously over the session's channel.
func (s *Server) handleTalk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing audio file"})
		return
	}
	defer file.Close()

	token := r.FormValue("session_id")
	if token == "" {
		token = r.URL.Query().Get("session_id")
	}
	if token == "" {
		token = uuid.NewString()
	}

	result, err := s.pipeline.Talk(r.Context(), token, file)
	if err != nil {
		var terr *audio.TranscodeError
		if errors.As(err, &terr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: terr.Error()})
			return
		}
		s.logger.Error("talk failed", "session_id", token, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, talkResponse{
		UserText:     result.UserText,
		AIText:       result.AIText,
		Mode:         result.Mode.String(),
		ProcessingMS: result.ProcessingMS,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.Reset(r.Context()); err != nil {
		s.logger.Error("reset failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "dialogue engine reset failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
