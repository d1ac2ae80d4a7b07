// Package dialogue defines the interface to the external dialogue/emotion
// engine that produces affect-tagged replies.
package dialogue

import "context"

// Result is one reply from the dialogue engine.
type Result struct {
	// Reply is the raw reply text, before sanitization.
	Reply string

	// Mode is the detected conversational-affect label.
	Mode string

	// Confidence is the engine's certainty in Mode, in [0, 1].
	Confidence float64
}

// Engine is the interface for the stateful dialogue engine. The engine owns
// all cross-request conversation memory; the pipeline keeps none.
type Engine interface {
	// Generate produces an affect-tagged reply for the user's text. The
	// caller must never pass an empty string; empty transcripts are handled
	// upstream with a fixed fallback.
	Generate(ctx context.Context, userText string) (*Result, error)

	// ClearMemory resets the engine's conversation memory.
	ClearMemory(ctx context.Context) error
}
