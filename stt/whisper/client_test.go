package whisper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shillcollin/voicepipe/stt"
)

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/inference" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "medium" {
			t.Errorf("model = %q", got)
		}
		if got := r.FormValue("device"); got != "cuda" {
			t.Errorf("device = %q", got)
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			file.Close()
			if string(data) != "wav-bytes" {
				t.Errorf("audio payload = %q", data)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "hello there general",
			"language": "en",
			"segments": [
				{"text": "hello there", "start": 0.0, "end": 1.2},
				{"text": "general", "start": 1.2, "end": 1.8}
			]
		}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL), WithModel("medium"), WithDevice("cuda"))
	transcript, err := client.Transcribe(context.Background(), []byte("wav-bytes"), stt.Options{})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}

	if len(transcript.Segments) != 2 {
		t.Fatalf("segments: %+v", transcript.Segments)
	}
	if transcript.Segments[1].Start != 1.2 || transcript.Segments[1].End != 1.8 {
		t.Fatalf("segment timing: %+v", transcript.Segments[1])
	}
	if transcript.Text() != "hello there general" {
		t.Fatalf("Text() = %q", transcript.Text())
	}
	if transcript.Language != "en" || transcript.Provider != "whisper" {
		t.Fatalf("transcript meta: %+v", transcript)
	}
}

func TestTranscribeFlatTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": " just the text ", "language": "en"}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	transcript, err := client.Transcribe(context.Background(), []byte("wav"), stt.Options{})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if transcript.Text() != "just the text" {
		t.Fatalf("Text() = %q", transcript.Text())
	}
}

func TestTranscribeEmptyResultIsSilence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "", "segments": []}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	transcript, err := client.Transcribe(context.Background(), []byte("wav"), stt.Options{})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if transcript.Text() != "" {
		t.Fatalf("silence should yield empty text, got %q", transcript.Text())
	}
}

func TestTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	if _, err := client.Transcribe(context.Background(), []byte("wav"), stt.Options{}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestTranscribeOptionsOverrideModel(t *testing.T) {
	var gotModel, gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(32 << 20)
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		w.Write([]byte(`{"text": "ok"}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL), WithModel("small"))
	_, err := client.Transcribe(context.Background(), []byte("wav"), stt.Options{Model: "large-v3", Language: "en"})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if gotModel != "large-v3" {
		t.Fatalf("model = %q", gotModel)
	}
	if gotLanguage != "en" {
		t.Fatalf("language = %q", gotLanguage)
	}
}
