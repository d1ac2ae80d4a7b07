// Package audio converts uploaded audio into the canonical waveform the
// transcription engine consumes.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// TranscodeError is returned when the transcoding subprocess exits non-zero.
// It carries the process's diagnostic output so the failure can be reported
// to the caller as a structured result.
type TranscodeError struct {
	Input  string
	Detail string
	Err    error
}

func (e *TranscodeError) Error() string {
	detail := strings.TrimSpace(e.Detail)
	if detail != "" {
		return fmt.Sprintf("transcode %s: %v: %s", e.Input, e.Err, detail)
	}
	return fmt.Sprintf("transcode %s: %v", e.Input, e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }

// Normalizer converts arbitrary audio containers into mono 16 kHz signed
// 16-bit little-endian PCM WAV files via an ffmpeg subprocess.
type Normalizer struct {
	binary string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithBinary overrides the transcoder binary path (default "ffmpeg").
func WithBinary(path string) Option {
	return func(n *Normalizer) { n.binary = path }
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize transcodes inputPath into outputPath as mono/16kHz/s16le PCM,
// regardless of the input container or codec. A non-zero subprocess exit is
// returned as a *TranscodeError; there is no retry.
func (n *Normalizer) Normalize(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, n.binary,
		"-y",
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &TranscodeError{
			Input:  inputPath,
			Detail: lastLines(stderr.String(), 5),
			Err:    err,
		}
	}
	return nil
}

// lastLines keeps the tail of the transcoder's diagnostics; ffmpeg prints
// the actual failure reason last.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
